package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/productivity-hub/internal/model"
	"github.com/maxviazov/productivity-hub/internal/repository"
	"github.com/maxviazov/productivity-hub/pkg/response"
)

// MigrationReporter exposes the outcome of the startup legacy session migration.
type MigrationReporter interface {
	LastReport() (model.MigrationReport, bool)
}

type MigrationHandler struct {
	reporter MigrationReporter
}

func NewMigrationHandler(reporter MigrationReporter) *MigrationHandler {
	return &MigrationHandler{reporter: reporter}
}

func (h *MigrationHandler) Register(r *gin.RouterGroup) {
	r.GET("/migrations/legacy-sessions", h.lastReport)
}

func (h *MigrationHandler) lastReport(c *gin.Context) {
	if h.reporter == nil {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	report, ok := h.reporter.LastReport()
	if !ok {
		response.WriteError(c, repository.ErrNotFound)
		return
	}
	response.WriteData(c, http.StatusOK, report)
}
