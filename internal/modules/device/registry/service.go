package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/readshelf/core/internal/models"
	"github.com/readshelf/core/internal/pkg/clientinfo"
	"github.com/readshelf/core/internal/pkg/pagination"
	"github.com/readshelf/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service owns persisted device identities.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service { return &Service{db: db, now: time.Now} }

// IdentifyOrRegisterDevice returns the user's device matching clientDeviceID, or the browser when no
// client id is supplied, creating it on first sight. Last-seen signals are refreshed on every call.
func (s *Service) IdentifyOrRegisterDevice(ctx context.Context, userID int, info clientinfo.ClientInfo, clientDeviceID string) (*models.DeviceModel, error) {
	clientDeviceID = strings.TrimSpace(clientDeviceID)
	now := s.now().UTC()
	var device models.DeviceModel

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID)
		if clientDeviceID != "" {
			q = q.Where("client_device_id = ?", clientDeviceID)
		} else {
			q = q.Where("client_device_id = ? AND browser = ?", "", info.Browser)
		}
		err := q.Order("id ASC").First(&device).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			device = models.DeviceModel{
				UserID:         userID,
				ClientDeviceID: clientDeviceID,
				Name:           deviceName(info),
				FirstSeenUtc:   now,
			}
		} else if err != nil {
			return err
		}

		device.Platform = info.Platform
		device.Browser = info.Browser
		device.DeviceType = info.DeviceType
		device.UserAgent = info.UserAgent
		device.IPAddress = info.IP
		device.AuthType = info.AuthType
		device.LastSeenUtc = now
		return tx.Save(&device).Error
	})
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func deviceName(info clientinfo.ClientInfo) string {
	browser, platform := info.Browser, info.Platform
	if browser == "" {
		browser = clientinfo.Unknown
	}
	if platform == "" || platform == clientinfo.Unknown {
		return browser
	}
	return browser + " on " + platform
}

// List returns the user's devices, most recently seen first.
func (s *Service) List(ctx context.Context, userID int, q pagination.Query) ([]models.DeviceModel, response.Pagination, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Where("user_id = ?", userID).
		Order("last_seen_utc DESC, id DESC")
	var items []models.DeviceModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// Delete removes a device owned by the user and reports whether it existed.
func (s *Service) Delete(ctx context.Context, userID, deviceID int) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", deviceID, userID).
		Delete(&models.DeviceModel{})
	return res.RowsAffected > 0, res.Error
}
