package progress

type SaveProgressDTO struct {
	SeriesID       int    `json:"seriesId"`
	VolumeID       int    `json:"volumeId"`
	ChapterID      int    `json:"chapterId"      binding:"required,gt=0"`
	LibraryID      int    `json:"libraryId"`
	PageNum        int    `json:"pageNum"`
	ClientDeviceID string `json:"clientDeviceId"`
}
