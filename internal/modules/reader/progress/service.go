package progress

import (
	"context"
	"errors"
	"time"

	"github.com/readshelf/core/internal/models"
	"github.com/readshelf/core/internal/modules/library/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrChapterNotFound = errors.New("chapter not found")

// Service persists per-chapter reading progress.
type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
	now     func() time.Time
}

func NewService(db *gorm.DB, catalogSvc *catalog.Service) *Service {
	return &Service{db: db, catalog: catalogSvc, now: time.Now}
}

func (s *Service) latest(ctx context.Context, userID int, column string, id int) (*time.Time, error) {
	var rows []models.ProgressModel
	err := s.db.WithContext(ctx).
		Select("last_read_at").
		Where("user_id = ? AND "+column+" = ?", userID, id).
		Order("last_read_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	t := rows[0].LastReadAt.UTC()
	return &t, nil
}

// GetLatestProgressForSeries returns the most recent progress time in the series, nil if none.
func (s *Service) GetLatestProgressForSeries(ctx context.Context, seriesID, userID int) (*time.Time, error) {
	return s.latest(ctx, userID, "series_id", seriesID)
}

// GetLatestProgressForVolume returns the most recent progress time in the volume, nil if none.
func (s *Service) GetLatestProgressForVolume(ctx context.Context, volumeID, userID int) (*time.Time, error) {
	return s.latest(ctx, userID, "volume_id", volumeID)
}

// GetLatestProgressForChapter returns the chapter's progress time, nil if never read.
func (s *Service) GetLatestProgressForChapter(ctx context.Context, chapterID, userID int) (*time.Time, error) {
	return s.latest(ctx, userID, "chapter_id", chapterID)
}

// AnyUserProgressForSeries reports whether the user has read any page of the series.
func (s *Service) AnyUserProgressForSeries(ctx context.Context, seriesID, userID int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ProgressModel{}).
		Where("user_id = ? AND series_id = ? AND pages_read > 0", userID, seriesID).
		Count(&count).Error
	return count > 0, err
}

// Save upserts the user's page position for a chapter. The page is clamped to [0, chapter pages];
// volume and series ids are taken from the chapter itself.
func (s *Service) Save(ctx context.Context, userID int, dto SaveProgressDTO) (*models.ProgressModel, error) {
	chapter, err := s.catalog.Chapter(ctx, dto.ChapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, ErrChapterNotFound
	}

	libraryID := dto.LibraryID
	if libraryID == 0 {
		if libraryID, err = s.catalog.LibraryIDForSeries(ctx, chapter.SeriesID); err != nil {
			return nil, err
		}
	}

	page := dto.PageNum
	if page < 0 {
		page = 0
	}
	if page > chapter.Pages {
		page = chapter.Pages
	}

	now := s.now().UTC()
	row := models.ProgressModel{
		UserID:     userID,
		ChapterID:  chapter.ID,
		VolumeID:   chapter.VolumeID,
		SeriesID:   chapter.SeriesID,
		LibraryID:  libraryID,
		PagesRead:  page,
		LastReadAt: now,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"volume_id", "series_id", "library_id", "pages_read", "last_read_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
