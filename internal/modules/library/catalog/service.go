package catalog

import (
	"context"
	"errors"

	"github.com/readshelf/core/internal/models"
	"gorm.io/gorm"
)

// Service reads library entities joined with one user's progress.
// Lookups of missing entities return (nil, nil).
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type chapterRow struct {
	ID           int
	VolumeID     int
	SeriesID     int
	Title        string
	NumberRange  string
	Number       float64
	SortOrder    float64
	IsSpecial    bool
	Pages        int
	VolumeNumber float64
}

const chapterColumns = "chapters.id, chapters.volume_id, chapters.series_id, chapters.title, chapters.number_range, " +
	"chapters.number, chapters.sort_order, chapters.is_special, chapters.pages, volumes.number AS volume_number"

// chapters loads the matching chapters in canonical order with pagesRead filled for userID.
func (s *Service) chapters(ctx context.Context, userID int, query string, args ...interface{}) ([]ChapterProgress, error) {
	var rows []chapterRow
	err := s.db.WithContext(ctx).
		Table("chapters").
		Select(chapterColumns).
		Joins("JOIN volumes ON volumes.id = chapters.volume_id").
		Where(query, args...).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []ChapterProgress{}, nil
	}

	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	read, err := s.pagesRead(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ChapterProgress, 0, len(rows))
	for _, r := range rows {
		out = append(out, ChapterProgress{
			ID:           r.ID,
			VolumeID:     r.VolumeID,
			SeriesID:     r.SeriesID,
			Title:        r.Title,
			Range:        r.NumberRange,
			Number:       r.Number,
			SortOrder:    r.SortOrder,
			IsSpecial:    r.IsSpecial,
			VolumeNumber: r.VolumeNumber,
			Pages:        r.Pages,
			PagesRead:    clamp(read[r.ID], r.Pages),
		})
	}
	SortChapters(out)
	return out, nil
}

func (s *Service) pagesRead(ctx context.Context, userID int, chapterIDs []int) (map[int]int, error) {
	var rows []models.ProgressModel
	err := s.db.WithContext(ctx).
		Select("chapter_id", "pages_read").
		Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(rows))
	for _, r := range rows {
		out[r.ChapterID] = r.PagesRead
	}
	return out, nil
}

func clamp(read, pages int) int {
	if read < 0 {
		return 0
	}
	if read > pages {
		return pages
	}
	return read
}

func totals(chapters []ChapterProgress) (pages, read int) {
	for _, c := range chapters {
		pages += c.Pages
		read += c.PagesRead
	}
	return pages, read
}

func first[T any](db *gorm.DB, dest *T, id int) (bool, error) {
	if err := db.First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SeriesProgress returns the series with all chapters, or nil when it does not exist.
func (s *Service) SeriesProgress(ctx context.Context, seriesID, userID int) (*SeriesProgress, error) {
	var series models.SeriesModel
	ok, err := first(s.db.WithContext(ctx), &series, seriesID)
	if err != nil || !ok {
		return nil, err
	}

	chapters, err := s.chapters(ctx, userID, "chapters.series_id = ?", seriesID)
	if err != nil {
		return nil, err
	}
	pages, read := totals(chapters)
	return &SeriesProgress{
		ID:        series.ID,
		LibraryID: series.LibraryID,
		Name:      series.Name,
		Pages:     pages,
		PagesRead: read,
		Chapters:  chapters,
	}, nil
}

// VolumeProgress returns the volume with its chapters, or nil when it does not exist.
func (s *Service) VolumeProgress(ctx context.Context, volumeID, userID int) (*VolumeProgress, error) {
	var volume models.VolumeModel
	ok, err := first(s.db.WithContext(ctx), &volume, volumeID)
	if err != nil || !ok {
		return nil, err
	}

	var series models.SeriesModel
	if _, err := first(s.db.WithContext(ctx), &series, volume.SeriesID); err != nil {
		return nil, err
	}

	chapters, err := s.chapters(ctx, userID, "chapters.volume_id = ?", volumeID)
	if err != nil {
		return nil, err
	}
	pages, read := totals(chapters)
	return &VolumeProgress{
		ID:        volume.ID,
		SeriesID:  volume.SeriesID,
		LibraryID: series.LibraryID,
		Name:      volume.Name,
		Number:    volume.Number,
		Pages:     pages,
		PagesRead: read,
		Chapters:  chapters,
	}, nil
}

// ChapterProgress returns a single chapter, or nil when it does not exist.
func (s *Service) ChapterProgress(ctx context.Context, chapterID, userID int) (*ChapterProgress, error) {
	chapters, err := s.chapters(ctx, userID, "chapters.id = ?", chapterID)
	if err != nil || len(chapters) == 0 {
		return nil, err
	}
	return &chapters[0], nil
}

// Chapter returns the raw chapter entity, or nil when it does not exist.
func (s *Service) Chapter(ctx context.Context, chapterID int) (*models.ChapterModel, error) {
	var chapter models.ChapterModel
	ok, err := first(s.db.WithContext(ctx), &chapter, chapterID)
	if err != nil || !ok {
		return nil, err
	}
	return &chapter, nil
}

// LibraryIDForSeries resolves the owning library, 0 when the series is missing.
func (s *Service) LibraryIDForSeries(ctx context.Context, seriesID int) (int, error) {
	var series models.SeriesModel
	ok, err := first(s.db.WithContext(ctx), &series, seriesID)
	if err != nil || !ok {
		return 0, err
	}
	return series.LibraryID, nil
}
