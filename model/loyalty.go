package model

import "gorm.io/gorm"

const (
	LoyaltyEarned   = "earned"
	LoyaltyRedeemed = "redeemed"
	LoyaltyAdjusted = "adjusted"
)

// LoyaltyTransaction is one signed entry of the points ledger.
type LoyaltyTransaction struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"not null;index"`
	Points          int    `json:"points" gorm:"not null"`
	BalanceAfter    int    `json:"balance_after" gorm:"not null"`
	TransactionType string `json:"transaction_type" gorm:"type:varchar(20);not null"`
	Source          string `json:"source" gorm:"type:varchar(50);not null"`
	Description     string `json:"description" gorm:"type:varchar(255)"`
	ReferenceType   string `json:"reference_type" gorm:"type:varchar(50)"`
	ReferenceID     *uint  `json:"reference_id"`
}
