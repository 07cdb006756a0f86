package tracking

import (
	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/devices", authMW)
	g.POST("/cache/clear", h.clearUser)
}

// POST /devices/cache/clear
func (h *Handler) clearUser(c *gin.Context) {
	cleared, err := h.svc.ClearUserDeviceCaches(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"cleared": cleared})
}
