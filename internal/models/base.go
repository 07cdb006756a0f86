package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by entities whose id is generated by the server rather than the database.
type Base struct {
	ID        string         `json:"id"       gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time      `json:"created"`
	UpdatedAt time.Time      `json:"modified"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// All returns every model managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&UserPreferencesModel{},
		&LibraryModel{},
		&SeriesModel{},
		&VolumeModel{},
		&ChapterModel{},
		&ProgressModel{},
		&DeviceModel{},
		&ReadingSessionModel{},
		&ReadingActivityModel{},
		&ReadingHistoryModel{},
	}
}
