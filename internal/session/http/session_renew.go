package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cinelog/sessiond/internal/session/service"
	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
	"github.com/cinelog/sessiond/pkg/slogx"
)

// RenewHandler serves POST /v1/session/renew.
type RenewHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Renew Session
//	@Description	Rotates a token pair using the matching refresh token. The refresh token is single-use: the old pair is revoked before the new pair is issued.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		sessionsdk.RenewSessionRequest	true	"Current access token and its refresh token"
//	@Success		200		{object}	sessionsdk.SessionResponse		"fresh token pair"
//	@Failure		400		{object}	sessionsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	sessionsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	sessionsdk.ErrorResponse		"error, error_description"
//	@Header			200		{string}	Cache-Control					"no-store"
//	@Router			/v1/session/renew [post].
func (h *RenewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req sessionsdk.RenewSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sessionsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sess, err := h.SessionService.Renew(ctx, req.AccessToken, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			sessionsdk.ErrUnauthorized.WriteError(w)
			return
		}
		log.Error("session renewal failed", "err", err)
		sessionsdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("session renewed", "sid", sess.SID)
	httpx.WriteJSON(w, http.StatusOK, sessionResponse(sess))
}
