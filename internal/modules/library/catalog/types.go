package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ChapterProgress is a chapter with the requesting user's pages read.
type ChapterProgress struct {
	ID           int     `json:"id"`
	VolumeID     int     `json:"volumeId"`
	SeriesID     int     `json:"seriesId"`
	Title        string  `json:"title"`
	Range        string  `json:"range"`
	Number       float64 `json:"number"`
	SortOrder    float64 `json:"sortOrder"`
	IsSpecial    bool    `json:"isSpecial"`
	VolumeNumber float64 `json:"volumeNumber"`
	Pages        int     `json:"pages"`
	PagesRead    int     `json:"pagesRead"`
}

// FullyRead reports whether every page of a non-empty chapter was read.
func (c ChapterProgress) FullyRead() bool { return c.Pages > 0 && c.PagesRead == c.Pages }

// Label is the display name: title, then range, then number.
func (c ChapterProgress) Label() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	if r := strings.TrimSpace(c.Range); r != "" {
		return "Chapter " + r
	}
	return "Chapter " + strconv.FormatFloat(c.Number, 'f', -1, 64)
}

// SeriesProgress aggregates page counts over all chapters of a series.
type SeriesProgress struct {
	ID        int               `json:"id"`
	LibraryID int               `json:"libraryId"`
	Name      string            `json:"name"`
	Pages     int               `json:"pages"`
	PagesRead int               `json:"pagesRead"`
	Chapters  []ChapterProgress `json:"chapters"`
}

func (s SeriesProgress) FullyRead() bool { return s.Pages > 0 && s.PagesRead == s.Pages }

// VolumeProgress aggregates page counts over the chapters of one volume.
type VolumeProgress struct {
	ID        int               `json:"id"`
	SeriesID  int               `json:"seriesId"`
	LibraryID int               `json:"libraryId"`
	Name      string            `json:"name"`
	Number    float64           `json:"number"`
	Pages     int               `json:"pages"`
	PagesRead int               `json:"pagesRead"`
	Chapters  []ChapterProgress `json:"chapters"`
}

func (v VolumeProgress) FullyRead() bool { return v.Pages > 0 && v.PagesRead == v.Pages }

// Label is the volume name, or "Volume N" when unnamed.
func (v VolumeProgress) Label() string {
	if n := strings.TrimSpace(v.Name); n != "" {
		return n
	}
	return fmt.Sprintf("Volume %s", strconv.FormatFloat(v.Number, 'f', -1, 64))
}
