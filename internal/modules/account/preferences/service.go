package preferences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/readshelf/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service reads and writes per-user reader settings. Users without a row get the defaults.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service { return &Service{db: db, now: time.Now} }

// Get returns the user's preferences, defaults when none were saved.
func (s *Service) Get(ctx context.Context, userID int) (models.UserPreferencesModel, error) {
	var prefs models.UserPreferencesModel
	err := s.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserPreferencesModel{UserID: userID}, nil
	}
	return prefs, err
}

// PromptForRereadsAfter returns the reread threshold in days; 0 means disabled.
func (s *Service) PromptForRereadsAfter(ctx context.Context, userID int) (int, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return prefs.PromptForRereadsAfter, nil
}

// Update stores the user's preferences.
func (s *Service) Update(ctx context.Context, userID int, dto UpdatePreferencesDTO) (models.UserPreferencesModel, error) {
	if dto.PromptForRereadsAfter < 0 {
		return models.UserPreferencesModel{}, fmt.Errorf("promptForRereadsAfter must be >= 0, got %d", dto.PromptForRereadsAfter)
	}
	prefs := models.UserPreferencesModel{
		UserID:                userID,
		PromptForRereadsAfter: dto.PromptForRereadsAfter,
		UpdatedAt:             s.now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"prompt_for_rereads_after", "updated_at"}),
	}).Create(&prefs).Error
	return prefs, err
}
