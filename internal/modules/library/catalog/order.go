package catalog

import (
	"sort"

	"github.com/readshelf/core/internal/models"
)

const (
	groupNumbered = iota
	groupLooseLeaf
	groupSpecial
)

func orderGroup(c ChapterProgress) int {
	switch {
	case c.IsSpecial:
		return groupSpecial
	case c.VolumeNumber == models.LooseLeafVolumeNumber:
		return groupLooseLeaf
	default:
		return groupNumbered
	}
}

// SortChapters orders chapters canonically: numbered volumes ascending, then loose-leaf
// chapters, then specials. Within a volume chapters follow SortOrder; ties fall back to id.
func SortChapters(chapters []ChapterProgress) {
	sort.SliceStable(chapters, func(i, j int) bool {
		a, b := chapters[i], chapters[j]
		if ga, gb := orderGroup(a), orderGroup(b); ga != gb {
			return ga < gb
		}
		if a.VolumeNumber != b.VolumeNumber {
			return a.VolumeNumber < b.VolumeNumber
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
}
