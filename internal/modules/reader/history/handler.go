package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/pkg/pagination"
	"github.com/readshelf/core/internal/pkg/response"
)

const (
	dateLayout    = "2006-01-02"
	defaultWindow = 30
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/reader", authMW)
	g.GET("/history", h.list)
}

// GET /reader/history?from=2026-01-01&to=2026-01-31
func (h *Handler) list(c *gin.Context) {
	to := Day(h.svc.now())
	from := to.AddDate(0, 0, -defaultWindow+1)
	var err error
	if from, err = parseDate(c.Query("from"), from); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if to, err = parseDate(c.Query("to"), to); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "to must not be before from")
		return
	}

	items, pag, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), from, to, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func parseDate(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}
