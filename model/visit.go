package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	CheckInManual      = "manual"
	CheckInQRCode      = "qr_code"
	CheckInFrontDesk   = "front_desk"
	CheckInSelfService = "self_service"
)

// GymVisit is an append-only check-in row. VisitDate and
// ConsistencyWeekStart are calendar dates in YYYY-MM-DD form.
type GymVisit struct {
	gorm.Model
	UserID               uint      `json:"user_id" gorm:"not null;index:idx_visit_user_week,priority:1"`
	VisitDate            string    `json:"visit_date" gorm:"type:varchar(10);not null;index"`
	CheckInTime          time.Time `json:"check_in_time" gorm:"not null"`
	CheckInType          string    `json:"check_in_type" gorm:"type:varchar(20);not null"`
	ConsistencyWeekStart string    `json:"consistency_week_start" gorm:"type:varchar(10);not null;index:idx_visit_user_week,priority:2"`
	RecordedBy           *uint     `json:"recorded_by"`
	Notes                string    `json:"notes" gorm:"type:text"`
}

type ConsistencyAchievement struct {
	gorm.Model
	UserID              uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_achievement_user_week,priority:1"`
	WeekStart           string     `json:"week_start" gorm:"type:varchar(10);not null;uniqueIndex:idx_achievement_user_week,priority:2"`
	UniqueDays          int        `json:"unique_days" gorm:"not null;default:0"`
	ConsistencyAchieved bool       `json:"consistency_achieved" gorm:"not null;default:false"`
	PointsAwarded       int        `json:"points_awarded" gorm:"not null;default:0"`
	AwardedAt           *time.Time `json:"awarded_at"`
}
