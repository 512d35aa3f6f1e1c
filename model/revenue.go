package model

import "gorm.io/gorm"

const (
	RevenueMembership       = "membership"
	RevenuePersonalTraining = "personal_training"
	RevenueFacility         = "facility"
	RevenueNutrition        = "nutrition"
	RevenueMerchandise      = "merchandise"
	RevenueOther            = "other"
)

const (
	RevenuePending   = "pending"
	RevenueCompleted = "completed"
	RevenueRefunded  = "refunded"
	RevenueCancelled = "cancelled"
)

// RevenueSources lists the accepted revenue_source values.
var RevenueSources = []string{
	RevenueMembership, RevenuePersonalTraining, RevenueFacility,
	RevenueNutrition, RevenueMerchandise, RevenueOther,
}

type RevenueRecord struct {
	gorm.Model
	UserID            *uint  `json:"user_id" gorm:"index"`
	Amount            int64  `json:"amount" gorm:"not null"`
	RevenueSource     string `json:"revenue_source" gorm:"type:varchar(30);not null;index"`
	TransactionStatus string `json:"transaction_status" gorm:"type:varchar(20);not null;index"`
	TransactionDate   string `json:"transaction_date" gorm:"type:varchar(10);not null;index"`
	ReferenceType     string `json:"reference_type" gorm:"type:varchar(50)"`
	ReferenceID       *uint  `json:"reference_id"`
	Description       string `json:"description" gorm:"type:varchar(255)"`
}

func (RevenueRecord) TableName() string {
	return "gym_revenue"
}
