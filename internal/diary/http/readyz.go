package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
)

// Pinger is the database check /readyz runs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SchedulerState reports whether background maintenance is running.
type SchedulerState interface {
	Running() bool
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database and the maintenance scheduler
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	diarysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	diarysdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, db Pinger, scheduler SchedulerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &diarysdk.HealthChecks{
			Database:    "ok",
			Maintenance: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := db.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// A stopped scheduler degrades the status but still answers 200.
		if scheduler == nil || !scheduler.Running() {
			checks.Maintenance = "stopped"
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		}

		httpx.WriteJSON(w, statusCode, diarysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
