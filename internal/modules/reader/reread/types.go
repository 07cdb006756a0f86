package reread

import "github.com/readshelf/core/internal/modules/library/catalog"

// ChapterRef points the client at a chapter to open.
type ChapterRef struct {
	ID        int    `json:"id"`
	VolumeID  int    `json:"volumeId"`
	SeriesID  int    `json:"seriesId"`
	LibraryID int    `json:"libraryId"`
	Label     string `json:"label"`
	Pages     int    `json:"pages"`
	PagesRead int    `json:"pagesRead"`
}

// Verdict is the outcome of a reread check. The zero value means "don't prompt".
type Verdict struct {
	ShouldPrompt      bool        `json:"shouldPrompt"`
	FullReread        bool        `json:"fullReread"`
	TimePrompt        bool        `json:"timePrompt"`
	DaysSinceLastRead int         `json:"daysSinceLastRead"`
	ChapterOnContinue *ChapterRef `json:"chapterOnContinue"`
	ChapterOnReread   *ChapterRef `json:"chapterOnReread"`
}

func newRef(c catalog.ChapterProgress, libraryID int) *ChapterRef {
	return &ChapterRef{
		ID:        c.ID,
		VolumeID:  c.VolumeID,
		SeriesID:  c.SeriesID,
		LibraryID: libraryID,
		Label:     c.Label(),
		Pages:     c.Pages,
		PagesRead: c.PagesRead,
	}
}

// labelled returns a copy of r carrying label.
func labelled(r *ChapterRef, label string) *ChapterRef {
	out := *r
	out.Label = label
	return &out
}
