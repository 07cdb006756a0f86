package models

import "time"

// ReadingSessionModel groups a user's consecutive page turns.
type ReadingSessionModel struct {
	Base
	UserID          int                    `json:"userId"          gorm:"index;not null"`
	StartTimeUtc    time.Time              `json:"startTimeUtc"`
	EndTimeUtc      *time.Time             `json:"endTimeUtc"      gorm:"index"`
	LastActivityUtc time.Time              `json:"lastActivityUtc"`
	IsActive        bool                   `json:"isActive"        gorm:"index"`
	Activities      []ReadingActivityModel `json:"activities,omitempty" gorm:"foreignKey:SessionID"`
}

func (ReadingSessionModel) TableName() string { return "reading_sessions" }

// ReadingActivityModel is the span read within one chapter during a session.
type ReadingActivityModel struct {
	ID           int       `json:"id"           gorm:"primaryKey"`
	SessionID    string    `json:"sessionId"    gorm:"type:char(36);index;not null"`
	ChapterID    int       `json:"chapterId"    gorm:"index"`
	VolumeID     int       `json:"volumeId"`
	SeriesID     int       `json:"seriesId"`
	LibraryID    int       `json:"libraryId"`
	StartPage    int       `json:"startPage"`
	EndPage      int       `json:"endPage"`
	PagesRead    int       `json:"pagesRead"`
	DeviceIDs    IntArray  `json:"deviceIds"    gorm:"type:text"`
	StartTimeUtc time.Time `json:"startTimeUtc"`
	EndTimeUtc   time.Time `json:"endTimeUtc"`
}

func (ReadingActivityModel) TableName() string { return "reading_activities" }
