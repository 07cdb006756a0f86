package models

import "time"

type UserModel struct {
	ID        int       `json:"id"       gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:191;not null"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (UserModel) TableName() string { return "users" }

// UserPreferencesModel holds per-user reader settings.
// PromptForRereadsAfter is in days; 0 disables time-based reread prompts.
type UserPreferencesModel struct {
	UserID                int       `json:"-"                     gorm:"primaryKey;autoIncrement:false"`
	PromptForRereadsAfter int       `json:"promptForRereadsAfter" gorm:"not null;default:0"`
	UpdatedAt             time.Time `json:"modified"`
}

func (UserPreferencesModel) TableName() string { return "user_preferences" }
