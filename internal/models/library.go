package models

import "time"

// LooseLeafVolumeNumber marks the synthetic volume holding chapters that belong to no numbered volume.
const LooseLeafVolumeNumber = -100000

type LibraryModel struct {
	ID        int       `json:"id"       gorm:"primaryKey"`
	Name      string    `json:"name"     gorm:"not null"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (LibraryModel) TableName() string { return "libraries" }

type SeriesModel struct {
	ID        int       `json:"id"        gorm:"primaryKey"`
	LibraryID int       `json:"libraryId" gorm:"index;not null"`
	Name      string    `json:"name"      gorm:"not null"`
	SortName  string    `json:"sortName"`
	Pages     int       `json:"pages"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (SeriesModel) TableName() string { return "series" }

type VolumeModel struct {
	ID        int       `json:"id"       gorm:"primaryKey"`
	SeriesID  int       `json:"seriesId" gorm:"index;not null"`
	Name      string    `json:"name"`
	Number    float64   `json:"number"`
	Pages     int       `json:"pages"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (VolumeModel) TableName() string { return "volumes" }

// IsLooseLeaf reports whether the volume is the container for volume-less chapters.
func (v VolumeModel) IsLooseLeaf() bool { return v.Number == LooseLeafVolumeNumber }

type ChapterModel struct {
	ID        int       `json:"id"        gorm:"primaryKey"`
	VolumeID  int       `json:"volumeId"  gorm:"index;not null"`
	SeriesID  int       `json:"seriesId"  gorm:"index;not null"`
	Title     string    `json:"title"`
	Range     string    `json:"range"     gorm:"column:number_range"`
	Number    float64   `json:"number"`
	SortOrder float64   `json:"sortOrder" gorm:"index"`
	IsSpecial bool      `json:"isSpecial"`
	Pages     int       `json:"pages"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (ChapterModel) TableName() string { return "chapters" }
