package catalog

import (
	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/pkg/params"
	"github.com/readshelf/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/library", authMW)
	g.GET("/series/:seriesId", h.series)
	g.GET("/volumes/:volumeId", h.volume)
	g.GET("/chapters/:chapterId", h.chapter)
}

// GET /library/series/:seriesId
func (h *Handler) series(c *gin.Context) {
	id, err := params.ID(c, "seriesId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.SeriesProgress(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if out == nil {
		response.NotFoundMsg(c, "series not found")
		return
	}
	response.OK(c, out)
}

// GET /library/volumes/:volumeId
func (h *Handler) volume(c *gin.Context) {
	id, err := params.ID(c, "volumeId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.VolumeProgress(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if out == nil {
		response.NotFoundMsg(c, "volume not found")
		return
	}
	response.OK(c, out)
}

// GET /library/chapters/:chapterId
func (h *Handler) chapter(c *gin.Context) {
	id, err := params.ID(c, "chapterId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.ChapterProgress(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if out == nil {
		response.NotFoundMsg(c, "chapter not found")
		return
	}
	response.OK(c, out)
}
