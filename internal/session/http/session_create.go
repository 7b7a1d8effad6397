package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cinelog/sessiond/internal/session/domain"
	"github.com/cinelog/sessiond/internal/session/service"
	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
	"github.com/cinelog/sessiond/pkg/slogx"
)

// CreateHandler serves POST /v1/session.
//
// Issuance assumes the caller has already verified the principal's identity;
// the user reference is opaque and never interpreted here.
type CreateHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Issue Session
//	@Description	Exchanges a verified user reference for a fresh access/refresh token pair.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sessionsdk.CreateSessionRequest	true	"Opaque reference to the verified principal"
//	@Success		200		{object}	sessionsdk.SessionResponse		"access_token, access_expires_at, refresh_token, refresh_expires_at"
//	@Failure		400		{object}	sessionsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	sessionsdk.ErrorResponse		"error, error_description"
//	@Header			200		{string}	Cache-Control					"no-store"
//	@Router			/v1/session [post].
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sessionsdk.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sessionsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	req.UserRef = strings.TrimSpace(req.UserRef)
	if req.UserRef == "" {
		sessionsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sess, err := h.SessionService.Create(ctx, req.UserRef)
	if err != nil {
		// A collision here means token generation itself is broken; the
		// service already retried with fresh values.
		if errors.Is(err, service.ErrCollision) {
			log.Error("session issuance exhausted collision retries", "user_ref", req.UserRef)
		} else {
			log.Error("session issuance failed", "err", err)
		}
		sessionsdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("session issued", "sid", sess.SID)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(sess))
}

func sessionResponse(sess domain.Session) sessionsdk.SessionResponse {
	return sessionsdk.SessionResponse{
		AccessToken:      sess.AccessToken,
		AccessExpiresAt:  sess.AccessExpiresAt,
		RefreshToken:     sess.RefreshToken,
		RefreshExpiresAt: sess.RefreshExpiresAt,
		TokenType:        "Bearer",
		UserRef:          sess.UserRef,
		SID:              sess.SID,
	}
}
