package http

import (
	"net/http"
	"time"

	"github.com/cinelog/sessiond/internal/session/store"
	"github.com/cinelog/sessiond/pkg/httpx"
	"github.com/cinelog/sessiond/pkg/sessionsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the session store connection alongside uptime and version.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	sessionsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	sessionsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &sessionsdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, sessionsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
