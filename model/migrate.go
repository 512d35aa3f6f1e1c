package model

import "gorm.io/gorm"

// AllModels is the full schema in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Session{},
		&MemberProfile{},
		&GymVisit{},
		&ConsistencyAchievement{},
		&LoyaltyTransaction{},
		&TrainerSchedule{},
		&TrainingSession{},
		&Facility{},
		&FacilitySlot{},
		&FacilityBooking{},
		&MonthlyPlan{},
		&Subscription{},
		&RevenueRecord{},
		&NutritionPlan{},
		&SecurityLog{},
	}
}

// Migrate creates or updates every table and seeds the role catalog.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return err
	}
	return SeedRoles(db)
}
