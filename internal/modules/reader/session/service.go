package session

import (
	"context"
	"errors"
	"time"

	"github.com/readshelf/core/internal/models"
	"gorm.io/gorm"
)

// DefaultIdle is how long a session may go without a page turn before a new one starts.
const DefaultIdle = 30 * time.Minute

// Event is a single page turn.
type Event struct {
	ChapterID int
	VolumeID  int
	SeriesID  int
	LibraryID int
	Page      int
	DeviceID  int // 0 when the device could not be resolved
}

// Service records reading sessions and their per-chapter activities.
type Service struct {
	db   *gorm.DB
	idle time.Duration
	now  func() time.Time
}

func NewService(db *gorm.DB, idle time.Duration) *Service {
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Service{db: db, idle: idle, now: time.Now}
}

// Record appends a page turn to the user's active session, opening a new session when
// none is active or the active one has been idle too long.
func (s *Service) Record(ctx context.Context, userID int, ev Event) (*models.ReadingSessionModel, error) {
	now := s.now().UTC()
	var out models.ReadingSessionModel

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, err := s.activeSession(tx, userID, now)
		if err != nil {
			return err
		}

		var act models.ReadingActivityModel
		err = tx.Where("session_id = ? AND chapter_id = ?", sess.ID, ev.ChapterID).First(&act).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			act = models.ReadingActivityModel{
				SessionID:    sess.ID,
				ChapterID:    ev.ChapterID,
				VolumeID:     ev.VolumeID,
				SeriesID:     ev.SeriesID,
				LibraryID:    ev.LibraryID,
				StartPage:    ev.Page,
				EndPage:      ev.Page,
				DeviceIDs:    models.IntArray{},
				StartTimeUtc: now,
				EndTimeUtc:   now,
			}
		case err != nil:
			return err
		default:
			if ev.Page < act.StartPage {
				act.StartPage = ev.Page
			}
			if ev.Page > act.EndPage {
				act.EndPage = ev.Page
			}
			act.EndTimeUtc = now
		}
		act.PagesRead = act.EndPage - act.StartPage
		if ev.DeviceID > 0 && !act.DeviceIDs.Contains(ev.DeviceID) {
			act.DeviceIDs = append(act.DeviceIDs, ev.DeviceID)
		}
		if err := tx.Save(&act).Error; err != nil {
			return err
		}

		sess.LastActivityUtc = now
		if err := tx.Model(sess).Update("last_activity_utc", now).Error; err != nil {
			return err
		}
		out = *sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) activeSession(tx *gorm.DB, userID int, now time.Time) (*models.ReadingSessionModel, error) {
	var sess models.ReadingSessionModel
	err := tx.Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_activity_utc DESC").
		First(&sess).Error
	if err == nil && now.Sub(sess.LastActivityUtc) <= s.idle {
		return &sess, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		if err := closeSession(tx, &sess); err != nil {
			return nil, err
		}
	}

	sess = models.ReadingSessionModel{
		UserID:          userID,
		StartTimeUtc:    now,
		LastActivityUtc: now,
		IsActive:        true,
	}
	if err := tx.Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func closeSession(tx *gorm.DB, sess *models.ReadingSessionModel) error {
	end := sess.LastActivityUtc
	sess.EndTimeUtc = &end
	sess.IsActive = false
	return tx.Model(sess).Updates(map[string]interface{}{
		"is_active":    false,
		"end_time_utc": end,
	}).Error
}

// EndStaleSessions closes every active session idle since before cutoff.
func (s *Service) EndStaleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.ReadingSessionModel{}).
		Where("is_active = ? AND last_activity_utc < ?", true, cutoff.UTC()).
		Updates(map[string]interface{}{
			"is_active":    false,
			"end_time_utc": gorm.Expr("last_activity_utc"),
		})
	return res.RowsAffected, res.Error
}

// EndIdleSessions closes sessions idle longer than the configured idle window.
func (s *Service) EndIdleSessions(ctx context.Context) (int64, error) {
	return s.EndStaleSessions(ctx, s.now().Add(-s.idle))
}

// DeviceIDsForUser lists the device ids referenced by every activity of the user's sessions.
// Ids repeat when several activities share a device.
func (s *Service) DeviceIDsForUser(ctx context.Context, userID int) ([]int, error) {
	var rows []struct {
		DeviceIDs models.IntArray
	}
	err := s.db.WithContext(ctx).
		Model(&models.ReadingActivityModel{}).
		Select("reading_activities.device_ids").
		Joins("JOIN reading_sessions ON reading_sessions.id = reading_activities.session_id").
		Where("reading_sessions.user_id = ? AND reading_sessions.deleted_at IS NULL", userID).
		Order("reading_activities.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.DeviceIDs...)
	}
	return ids, nil
}

// ClosedBetween returns finished sessions that started in [from, to), activities preloaded.
func (s *Service) ClosedBetween(ctx context.Context, from, to time.Time) ([]models.ReadingSessionModel, error) {
	var out []models.ReadingSessionModel
	err := s.db.WithContext(ctx).
		Preload("Activities").
		Where("is_active = ? AND start_time_utc >= ? AND start_time_utc < ?", false, from.UTC(), to.UTC()).
		Order("start_time_utc ASC").
		Find(&out).Error
	return out, err
}

// Active returns the user's open session, nil if none.
func (s *Service) Active(ctx context.Context, userID int) (*models.ReadingSessionModel, error) {
	var sess models.ReadingSessionModel
	err := s.db.WithContext(ctx).
		Preload("Activities").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_activity_utc DESC").
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}
