package models

import "time"

// ProgressModel is a user's page position within one chapter.
type ProgressModel struct {
	ID         int       `json:"id"         gorm:"primaryKey"`
	UserID     int       `json:"userId"     gorm:"uniqueIndex:idx_progress_user_chapter;index:idx_progress_user_series,priority:1;not null"`
	ChapterID  int       `json:"chapterId"  gorm:"uniqueIndex:idx_progress_user_chapter;not null"`
	VolumeID   int       `json:"volumeId"   gorm:"index"`
	SeriesID   int       `json:"seriesId"   gorm:"index:idx_progress_user_series,priority:2"`
	LibraryID  int       `json:"libraryId"`
	PagesRead  int       `json:"pagesRead"`
	LastReadAt time.Time `json:"lastReadAt" gorm:"index"`
	CreatedAt  time.Time `json:"created"`
	UpdatedAt  time.Time `json:"modified"`
}

func (ProgressModel) TableName() string { return "progress" }
