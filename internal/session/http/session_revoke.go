package http

import (
	"errors"
	"net/http"

	"github.com/cinelog/sessiond/internal/session/service"
	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
	"github.com/cinelog/sessiond/pkg/slogx"
)

// RevokeHandler serves POST /v1/session/revoke. The session to revoke is the
// one resolved by the Required authentication gate in front of this handler.
type RevokeHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Revoke Session
//	@Description	Permanently invalidates the presented session. Revocation is terminal; the record is retained with backdated expiries.
//	@Tags			Sessions
//	@Produce		json
//	@Success		204	{string}	string						"no content"
//	@Failure		401	{object}	sessionsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	sessionsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/session/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sess, ok := SessionFromContext(ctx)
	if !ok {
		writeBearerError(w)
		return
	}

	if err := h.SessionService.Revoke(ctx, sess.ID); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			sessionsdk.ErrUnauthorized.WriteError(w)
			return
		}
		log.Error("session revocation failed", "err", err)
		sessionsdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("session revoked", "sid", sess.SID)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
