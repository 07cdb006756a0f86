package registry

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/pkg/pagination"
	"github.com/readshelf/core/internal/pkg/params"
	"github.com/readshelf/core/internal/pkg/response"
)

// CacheInvalidator drops cached lookups for a device.
type CacheInvalidator interface {
	ClearDeviceCache(ctx context.Context, deviceID int)
}

type Handler struct {
	svc   *Service
	cache CacheInvalidator
}

func NewHandler(svc *Service, cache CacheInvalidator) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/devices", authMW)
	g.GET("", h.list)
	g.DELETE("/:id", h.delete)
}

// GET /devices
func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

// DELETE /devices/:id
func (h *Handler) delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ok, err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !ok {
		response.NotFoundMsg(c, "device not found")
		return
	}
	if h.cache != nil {
		h.cache.ClearDeviceCache(c.Request.Context(), id)
	}
	response.NoContent(c)
}
