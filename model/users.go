package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name           string `json:"name" gorm:"type:varchar(191);not null"`
	Email          string `json:"email" gorm:"type:varchar(191);uniqueIndex;not null"`
	Phone          string `json:"phone" gorm:"type:varchar(32)"`
	Password       string `json:"-" gorm:"type:varchar(255);not null"`
	PasswordSalt   string `json:"-" gorm:"type:varchar(64)"`
	RoleID         uint32 `json:"role_id" gorm:"not null;index"`
	IsActive       bool   `json:"is_active" gorm:"not null;default:true"`
	FailedAttempts int    `json:"-" gorm:"not null;default:0"`
	LockedUntil    *int64 `json:"-"`
}

type Session struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	SessionToken string    `json:"session_token" gorm:"type:varchar(512);uniqueIndex;not null"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null"`
	ClientIP     string    `json:"client_ip" gorm:"type:varchar(45)"`
	Browser      string    `json:"browser" gorm:"type:varchar(512)"`
}

// MemberProfile carries the member-facing counters. LoyaltyPoints is a cache of
// the loyalty ledger and is only written by the loyalty service.
type MemberProfile struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"not null;uniqueIndex"`
	LoyaltyPoints int    `json:"loyalty_points" gorm:"not null;default:0"`
	StreakDays    int    `json:"streak_days" gorm:"not null;default:0"`
	TotalVisits   int    `json:"total_visits" gorm:"not null;default:0"`
	LastVisitDate string `json:"last_visit_date" gorm:"type:varchar(10)"`
	CurrentPlanID *uint  `json:"current_plan_id"`
}
