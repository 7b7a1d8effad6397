package http

import (
	"net/http"
	"time"

	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning basic service health, uptime, and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	sessionsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, sessionsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
