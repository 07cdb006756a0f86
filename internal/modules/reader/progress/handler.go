package progress

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/readshelf/core/internal/middleware"
	"github.com/readshelf/core/internal/models"
	"github.com/readshelf/core/internal/modules/reader/session"
	"github.com/readshelf/core/internal/pkg/clientinfo"
	"github.com/readshelf/core/internal/pkg/response"
	"go.uber.org/zap"
)

// DeviceTracker resolves the device a request came from.
type DeviceTracker interface {
	TrackDevice(ctx context.Context, userID int, info clientinfo.ClientInfo, clientDeviceID string) (int, error)
}

// SessionRecorder appends page turns to reading sessions.
type SessionRecorder interface {
	Record(ctx context.Context, userID int, ev session.Event) (*models.ReadingSessionModel, error)
}

type Handler struct {
	svc      *Service
	devices  DeviceTracker
	sessions SessionRecorder
	log      *zap.Logger
}

func NewHandler(svc *Service, devices DeviceTracker, sessions SessionRecorder, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, devices: devices, sessions: sessions, log: log}
}

// RegisterRoutes mounts the progress endpoints; limit may be nil.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, limit gin.HandlerFunc) {
	chain := []gin.HandlerFunc{h.save}
	if limit != nil {
		chain = append([]gin.HandlerFunc{limit}, chain...)
	}
	g := rg.Group("/reader", authMW)
	g.POST("/progress", chain...)
}

// POST /reader/progress
func (h *Handler) save(c *gin.Context) {
	var dto SaveProgressDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	row, err := h.svc.Save(ctx, userID, dto)
	if errors.Is(err, ErrChapterNotFound) {
		response.NotFoundMsg(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	// progress is already stored; device and session bookkeeping must not fail the request
	deviceID := 0
	if h.devices != nil {
		info := clientinfo.FromContext(c, middleware.CurrentAuthType(c))
		if deviceID, err = h.devices.TrackDevice(ctx, userID, info, dto.ClientDeviceID); err != nil {
			h.log.Warn("device tracking failed", zap.Int("user_id", userID), zap.Error(err))
			deviceID = 0
		}
	}
	if h.sessions != nil {
		_, err := h.sessions.Record(ctx, userID, session.Event{
			ChapterID: row.ChapterID,
			VolumeID:  row.VolumeID,
			SeriesID:  row.SeriesID,
			LibraryID: row.LibraryID,
			Page:      row.PagesRead,
			DeviceID:  deviceID,
		})
		if err != nil {
			h.log.Warn("session record failed", zap.Int("user_id", userID), zap.Error(err))
		}
	}

	response.NoContent(c)
}
