package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAchievementUniquePerUserWeek(t *testing.T) {
	db := setupTestDB(t, "achievements", &ConsistencyAchievement{})

	assert.NoError(t, db.Create(&ConsistencyAchievement{UserID: 1, WeekStart: "2024-05-06", UniqueDays: 1}).Error)
	assert.NoError(t, db.Create(&ConsistencyAchievement{UserID: 1, WeekStart: "2024-05-13", UniqueDays: 1}).Error)
	assert.NoError(t, db.Create(&ConsistencyAchievement{UserID: 2, WeekStart: "2024-05-06", UniqueDays: 1}).Error)

	assert.Error(t, db.Create(&ConsistencyAchievement{UserID: 1, WeekStart: "2024-05-06", UniqueDays: 2}).Error)
}

func TestGymVisitAllowsSeveralRowsPerDay(t *testing.T) {
	db := setupTestDB(t, "visits", &GymVisit{})

	at := time.Date(2024, 5, 6, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		v := GymVisit{UserID: 1, VisitDate: "2024-05-06", CheckInTime: at.Add(time.Duration(i) * time.Hour), CheckInType: CheckInManual, ConsistencyWeekStart: "2024-05-06"}
		assert.NoError(t, db.Create(&v).Error)
	}

	var distinct int64
	assert.NoError(t, db.Model(&GymVisit{}).Where("user_id = ?", 1).Distinct("visit_date").Count(&distinct).Error)
	assert.Equal(t, int64(1), distinct)
}
