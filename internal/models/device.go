package models

import "time"

// DeviceModel is a client a user has read from.
type DeviceModel struct {
	ID             int       `json:"id"             gorm:"primaryKey"`
	UserID         int       `json:"-"              gorm:"index:idx_device_user_client,priority:1;not null"`
	ClientDeviceID string    `json:"clientDeviceId" gorm:"index:idx_device_user_client,priority:2;size:191"`
	Name           string    `json:"name"`
	Platform       string    `json:"platform"`
	Browser        string    `json:"browser"        gorm:"size:64"`
	DeviceType     string    `json:"deviceType"`
	UserAgent      string    `json:"userAgent"      gorm:"type:text"`
	IPAddress      string    `json:"ipAddress"`
	AuthType       string    `json:"authType"`
	FirstSeenUtc   time.Time `json:"firstSeenUtc"`
	LastSeenUtc    time.Time `json:"lastSeenUtc"    gorm:"index"`
}

func (DeviceModel) TableName() string { return "devices" }
