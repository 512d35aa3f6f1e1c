package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityLog is a persisted security or endpoint event.
type SecurityLog struct {
	gorm.Model
	EventType string `json:"event_type" gorm:"type:varchar(64);index"`
	UserID    string `json:"user_id" gorm:"type:varchar(64);index"`
	Email     string `json:"email" gorm:"type:varchar(191);index"`
	IP        string `json:"ip" gorm:"type:varchar(45)"`
	// City/Country when the GeoIP database resolved the address.
	Location  string         `json:"location" gorm:"type:varchar(255)"`
	UserAgent string         `json:"user_agent" gorm:"type:varchar(512)"`
	RequestID string         `json:"request_id" gorm:"type:varchar(64)"`
	Message   string         `json:"message" gorm:"type:text"`
	Details   datatypes.JSON `json:"details" gorm:"type:json"`
}
