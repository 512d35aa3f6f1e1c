package model

import "gorm.io/gorm"

type NutritionPlan struct {
	gorm.Model
	MemberID       uint   `json:"member_id" gorm:"not null;index"`
	NutritionistID uint   `json:"nutritionist_id" gorm:"not null;index"`
	Title          string `json:"title" gorm:"type:varchar(150);not null"`
	DailyCalories  int    `json:"daily_calories"`
	Notes          string `json:"notes" gorm:"type:text"`
}
