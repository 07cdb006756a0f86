package models

import "time"

// ReadingHistoryModel is one user's reading totals for a UTC day.
type ReadingHistoryModel struct {
	ID                int       `json:"id"                gorm:"primaryKey"`
	UserID            int       `json:"-"                 gorm:"uniqueIndex:idx_history_user_date;not null"`
	DateUtc           time.Time `json:"dateUtc"           gorm:"uniqueIndex:idx_history_user_date;not null"`
	TotalMinutes      int       `json:"totalMinutes"`
	TotalPages        int       `json:"totalPages"`
	ChaptersTouched   int       `json:"chaptersTouched"`
	SeriesTouched     int       `json:"seriesTouched"`
	DeviceIDs         IntArray  `json:"deviceIds"         gorm:"type:text"`
	ClientInfoSummary string    `json:"clientInfoSummary" gorm:"type:text"`
	CreatedAt         time.Time `json:"created"`
	UpdatedAt         time.Time `json:"modified"`
}

func (ReadingHistoryModel) TableName() string { return "reading_history" }
