package http

import (
	"net/http"

	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
)

// InfoHandler serves the read-only session endpoints.
type InfoHandler struct{}

// HandleCurrent godoc
//
//	@Summary		Current Session
//	@Description	Returns metadata for the session resolved from the bearer credential.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	sessionsdk.SessionInfo		"user_ref, sid, created_at, expiries"
//	@Failure		401	{object}	sessionsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/session [get].
func (h *InfoHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionsdk.SessionInfo{
		UserRef:          sess.UserRef,
		SID:              sess.SID,
		CreatedAt:        sess.Created,
		AccessExpiresAt:  sess.AccessExpiresAt,
		RefreshExpiresAt: sess.RefreshExpiresAt,
	})
}

// HandlePeek godoc
//
//	@Summary		Peek Session
//	@Description	Reports whether the request carries a resolvable session. Never fails on a missing or invalid credential.
//	@Tags			Sessions
//	@Produce		json
//	@Success		200	{object}	sessionsdk.PeekResponse	"authenticated, user_ref"
//	@Router			/v1/session/peek [get].
func (h *InfoHandler) HandlePeek(w http.ResponseWriter, r *http.Request) {
	resp := sessionsdk.PeekResponse{}
	if sess, ok := SessionFromContext(r.Context()); ok {
		resp.Authenticated = true
		resp.UserRef = sess.UserRef
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
