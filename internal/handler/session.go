package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/productivity-hub/internal/pagination"
	"github.com/maxviazov/productivity-hub/internal/service"
	"github.com/maxviazov/productivity-hub/pkg/response"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler { return &SessionHandler{svc: svc} }

func (h *SessionHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/sessions")
	{
		g.GET("", h.list)
		g.GET("/:session_id", h.getByID)
	}
}

func (h *SessionHandler) list(c *gin.Context) {
	req := pagination.ParseRequest(c.Query("page"), c.Query("limit"))
	page, err := h.svc.ListSessions(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, page)
}

func (h *SessionHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("session_id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.InvalidField("id", "must be an integer"))
		return
	}
	s, err := h.svc.GetSession(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}
