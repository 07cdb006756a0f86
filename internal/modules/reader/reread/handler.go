package reread

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
	g := rg.Group("/reader/reread", authMW)
	g.GET("/series/:seriesId", h.series)
	g.GET("/volume/:volumeId", h.volume)
	g.GET("/chapter/:chapterId", h.chapter)
}

type ancestors struct {
	seriesID  int
	libraryID int
}

func parseAncestors(c *gin.Context) (ancestors, bool) {
	var a ancestors
	var err error
	if a.seriesID, err = params.QueryInt(c, "seriesId"); err != nil {
		response.BadRequest(c, err.Error())
		return a, false
	}
	if a.libraryID, err = params.QueryInt(c, "libraryId"); err != nil {
		response.BadRequest(c, err.Error())
		return a, false
	}
	return a, true
}

// GET /reader/reread/series/:seriesId?libraryId=
func (h *Handler) series(c *gin.Context) {
	id, err := params.ID(c, "seriesId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	a, ok := parseAncestors(c)
	if !ok {
		return
	}
	v, err := h.svc.CheckSeriesForReRead(c.Request.Context(), middleware.CurrentUserID(c), id, a.libraryID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, v)
}

// GET /reader/reread/volume/:volumeId?seriesId=&libraryId=
func (h *Handler) volume(c *gin.Context) {
	id, err := params.ID(c, "volumeId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	a, ok := parseAncestors(c)
	if !ok {
		return
	}
	v, err := h.svc.CheckVolumeForReRead(c.Request.Context(), middleware.CurrentUserID(c), id, a.seriesID, a.libraryID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, v)
}

// GET /reader/reread/chapter/:chapterId?seriesId=&libraryId=
func (h *Handler) chapter(c *gin.Context) {
	id, err := params.ID(c, "chapterId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	a, ok := parseAncestors(c)
	if !ok {
		return
	}
	v, err := h.svc.CheckChapterForReRead(c.Request.Context(), middleware.CurrentUserID(c), id, a.seriesID, a.libraryID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, v)
}
