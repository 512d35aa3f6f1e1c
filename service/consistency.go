package service

import (
	"context"

	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ReferenceConsistencyWeek = "consistency_week"

// ConsistencyService pays the weekly consistency bonus: enough distinct visit
// days in one Monday-Sunday week earn a fixed bonus, once per member and week.
type ConsistencyService struct {
	db   *gorm.DB
	deps Deps
}

func NewConsistencyService(db *gorm.DB, deps Deps) *ConsistencyService {
	return &ConsistencyService{db: db, deps: deps.withDefaults()}
}

// WeekOutcome is the state of one member week after evaluation. PointsAwarded
// is non-zero only for the call that actually paid the bonus.
type WeekOutcome struct {
	WeekStart     string `json:"week_start"`
	UniqueDays    int    `json:"unique_days"`
	Threshold     int    `json:"threshold"`
	Achieved      bool   `json:"achieved"`
	PointsAwarded int    `json:"points_awarded"`
}

// ProcessWeek re-evaluates the week containing weekStart. It is safe to call
// any number of times, concurrently too.
func (s *ConsistencyService) ProcessWeek(ctx context.Context, userID uint, weekStart string) (WeekOutcome, error) {
	week, err := normalizeWeekStart(weekStart, s.deps.Location)
	if err != nil {
		return WeekOutcome{}, err
	}

	var (
		outcome WeekOutcome
		entry   *model.LoyaltyTransaction
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		outcome, entry, err = processWeekTx(tx, s.deps, userID, week)
		return err
	})
	if err != nil {
		return WeekOutcome{}, classify(err)
	}
	if entry != nil {
		s.deps.Metrics.ConsistencyAwarded()
		s.deps.Metrics.PointsAwarded(entry.Source, entry.Points)
		s.deps.publish(ctx, events.PointsAwarded, userID, entry)
	}
	return outcome, nil
}

// processWeekTx is the only place the consistency bonus is paid. The award is
// claimed with a conditional UPDATE so exactly one caller wins the row.
func processWeekTx(tx *gorm.DB, deps Deps, userID uint, weekStart string) (WeekOutcome, *model.LoyaltyTransaction, error) {
	threshold := deps.Rules.ConsistencyThreshold
	outcome := WeekOutcome{WeekStart: weekStart, Threshold: threshold}

	var days int64
	err := tx.Model(&model.GymVisit{}).
		Where("user_id = ? AND consistency_week_start = ?", userID, weekStart).
		Distinct("visit_date").
		Count(&days).Error
	if err != nil {
		return outcome, nil, classify(err)
	}
	outcome.UniqueDays = int(days)
	outcome.Achieved = outcome.UniqueDays >= threshold

	row := model.ConsistencyAchievement{
		UserID:              userID,
		WeekStart:           weekStart,
		UniqueDays:          outcome.UniqueDays,
		ConsistencyAchieved: outcome.Achieved,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoUpdates: clause.AssignmentColumns([]string{"unique_days", "consistency_achieved", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return outcome, nil, classify(err)
	}

	var achievement model.ConsistencyAchievement
	if err := tx.Where("user_id = ? AND week_start = ?", userID, weekStart).First(&achievement).Error; err != nil {
		return outcome, nil, classify(err)
	}
	if !outcome.Achieved {
		return outcome, nil, nil
	}

	bonus := deps.Rules.ConsistencyBonusPoints
	now := deps.now()
	claim := tx.Model(&model.ConsistencyAchievement{}).
		Where("id = ? AND points_awarded = 0", achievement.ID).
		Updates(map[string]interface{}{"points_awarded": bonus, "awarded_at": now})
	if claim.Error != nil {
		return outcome, nil, classify(claim.Error)
	}
	if claim.RowsAffected != 1 {
		return outcome, nil, nil
	}

	ref := achievement.ID
	entry, err := awardTx(tx, PointsInput{
		UserID:        userID,
		Points:        bonus,
		Source:        SourceConsistencyBonus,
		Description:   "Weekly consistency bonus for week of " + weekStart,
		ReferenceType: ReferenceConsistencyWeek,
		ReferenceID:   &ref,
	})
	if err != nil {
		return outcome, nil, err
	}
	outcome.PointsAwarded = bonus
	return outcome, entry, nil
}

// Achievements lists the latest evaluated weeks of a member, newest first.
func (s *ConsistencyService) Achievements(ctx context.Context, userID uint, weeks int) ([]model.ConsistencyAchievement, error) {
	rows := []model.ConsistencyAchievement{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Limit(clampLimit(weeks, 4, 52)).
		Find(&rows).Error
	return rows, classify(err)
}
