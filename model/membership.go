package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionPending   = "pending"
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
	SubscriptionRejected  = "rejected"
)

// MonthlyPlan prices are in minor currency units.
type MonthlyPlan struct {
	gorm.Model
	Name           string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description    string `json:"description" gorm:"type:text"`
	Price          int64  `json:"price" gorm:"not null"`
	DurationMonths int    `json:"duration_months" gorm:"not null;default:1"`
	IsActive       bool   `json:"is_active" gorm:"not null;default:true"`
}

type Subscription struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"not null;index"`
	PlanID        uint       `json:"plan_id" gorm:"not null;index"`
	Status        string     `json:"status" gorm:"type:varchar(20);not null;default:pending;index"`
	StartDate     string     `json:"start_date" gorm:"type:varchar(10)"`
	EndDate       string     `json:"end_date" gorm:"type:varchar(10)"`
	AmountDue     int64      `json:"amount_due" gorm:"not null"`
	CreditApplied int64      `json:"credit_applied" gorm:"not null;default:0"`
	ChangeFromID  *uint      `json:"change_from_id"`
	ApprovedBy    *uint      `json:"approved_by"`
	ApprovedAt    *time.Time `json:"approved_at"`
}
