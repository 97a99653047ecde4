package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/productivity-hub/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, checks []ReadinessCheck, sessionSvc service.SessionService, migrations MigrationReporter) {
	h := NewHealthHandler(checks...)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewSessionHandler(sessionSvc).Register(api)
		NewMigrationHandler(migrations).Register(api)
	}
}
