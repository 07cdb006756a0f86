package crontask

import (
	"github.com/gin-gonic/gin"
	pkgcron "github.com/readshelf/core/internal/pkg/cron"
	"github.com/readshelf/core/internal/pkg/response"
)

// Handler wraps the scheduler for HTTP access.
type Handler struct {
	sched *pkgcron.Scheduler
}

func NewHandler(sched *pkgcron.Scheduler) *Handler {
	return &Handler{sched: sched}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/cron-task", authMW)
	g.GET("", h.list)
	g.GET("/:name", h.get)
	g.POST("/:name/run", h.run)
}

// GET /cron-task
func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.sched.List())
}

// GET /cron-task/:name
func (h *Handler) get(c *gin.Context) {
	result, err := h.sched.GetTask(c.Param("name"))
	if err != nil {
		response.NotFoundMsg(c, "job not found")
		return
	}
	response.OK(c, result)
}

// POST /cron-task/:name/run?wait=1
func (h *Handler) run(c *gin.Context) {
	name := c.Param("name")
	if c.Query("wait") != "" {
		result, err := h.sched.RunNow(c.Request.Context(), name)
		if err != nil {
			response.NotFoundMsg(c, "job not found")
			return
		}
		response.OK(c, result)
		return
	}
	if err := h.sched.Run(c.Request.Context(), name); err != nil {
		response.NotFoundMsg(c, "job not found")
		return
	}
	response.OK(c, gin.H{"message": "job triggered"})
}
