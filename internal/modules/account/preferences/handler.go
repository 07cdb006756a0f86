package preferences

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
	g := rg.Group("/account/preferences", authMW)
	g.GET("", h.get)
	g.PUT("", h.update)
}

// GET /account/preferences
func (h *Handler) get(c *gin.Context) {
	prefs, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, prefs)
}

// PUT /account/preferences
func (h *Handler) update(c *gin.Context) {
	var dto UpdatePreferencesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.PromptForRereadsAfter < 0 {
		response.UnprocessableEntity(c, "promptForRereadsAfter must be >= 0")
		return
	}
	prefs, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, prefs)
}
