package history

import (
	"context"
	"strings"
	"time"

	"github.com/readshelf/core/internal/models"
	"github.com/readshelf/core/internal/pkg/pagination"
	"github.com/readshelf/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionSource lists finished reading sessions.
type SessionSource interface {
	ClosedBetween(ctx context.Context, from, to time.Time) ([]models.ReadingSessionModel, error)
}

// Service folds closed reading sessions into one history row per user and UTC day.
type Service struct {
	db       *gorm.DB
	sessions SessionSource
	log      *zap.Logger
	now      func() time.Time
}

func NewService(db *gorm.DB, sessions SessionSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, sessions: sessions, log: log.Named("history"), now: time.Now}
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type totals struct {
	minutes  time.Duration
	pages    int
	chapters map[int]struct{}
	series   map[int]struct{}
	devices  models.IntArray
}

// Aggregate rebuilds the history rows of every user with closed sessions starting on day.
// It returns the number of rows written.
func (s *Service) Aggregate(ctx context.Context, day time.Time) (int, error) {
	from := Day(day)
	sessions, err := s.sessions.ClosedBetween(ctx, from, from.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	byUser := make(map[int]*totals)
	var users []int
	for _, sess := range sessions {
		t, ok := byUser[sess.UserID]
		if !ok {
			t = &totals{chapters: map[int]struct{}{}, series: map[int]struct{}{}, devices: models.IntArray{}}
			byUser[sess.UserID] = t
			users = append(users, sess.UserID)
		}
		if sess.EndTimeUtc != nil && sess.EndTimeUtc.After(sess.StartTimeUtc) {
			t.minutes += sess.EndTimeUtc.Sub(sess.StartTimeUtc)
		}
		for _, act := range sess.Activities {
			t.pages += act.PagesRead
			t.chapters[act.ChapterID] = struct{}{}
			if act.SeriesID > 0 {
				t.series[act.SeriesID] = struct{}{}
			}
			for _, id := range act.DeviceIDs {
				if !t.devices.Contains(id) {
					t.devices = append(t.devices, id)
				}
			}
		}
	}

	for _, userID := range users {
		t := byUser[userID]
		summary, err := s.clientSummary(ctx, userID, t.devices)
		if err != nil {
			return 0, err
		}
		row := models.ReadingHistoryModel{
			UserID:            userID,
			DateUtc:           from,
			TotalMinutes:      int(t.minutes / time.Minute),
			TotalPages:        t.pages,
			ChaptersTouched:   len(t.chapters),
			SeriesTouched:     len(t.series),
			DeviceIDs:         t.devices,
			ClientInfoSummary: summary,
		}
		err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date_utc"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_minutes", "total_pages", "chapters_touched", "series_touched",
				"device_ids", "client_info_summary", "updated_at",
			}),
		}).Create(&row).Error
		if err != nil {
			return 0, err
		}
	}
	s.log.Debug("reading history aggregated", zap.Time("day", from), zap.Int("users", len(users)))
	return len(users), nil
}

// AggregateRecent refreshes yesterday and today.
func (s *Service) AggregateRecent(ctx context.Context) (int, error) {
	today := Day(s.now())
	total := 0
	for _, day := range []time.Time{today.AddDate(0, 0, -1), today} {
		n, err := s.Aggregate(ctx, day)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// clientSummary names the devices used, in first-use order. Deleted devices are skipped.
func (s *Service) clientSummary(ctx context.Context, userID int, ids []int) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	var devices []models.DeviceModel
	err := s.db.WithContext(ctx).
		Select("id", "name").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&devices).Error
	if err != nil {
		return "", err
	}
	names := make(map[int]string, len(devices))
	for _, d := range devices {
		names[d.ID] = d.Name
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok && n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ", "), nil
}

// List returns the user's daily rows in [from, to], newest first.
func (s *Service) List(ctx context.Context, userID int, from, to time.Time, q pagination.Query) ([]models.ReadingHistoryModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.ReadingHistoryModel{}).
		Where("user_id = ? AND date_utc >= ? AND date_utc <= ?", userID, Day(from), Day(to)).
		Order("date_utc DESC")
	var items []models.ReadingHistoryModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}
