package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"gorm.io/gorm"
)

// CheckInService records gym visits and feeds them into the weekly
// consistency evaluation.
type CheckInService struct {
	db   *gorm.DB
	deps Deps
}

func NewCheckInService(db *gorm.DB, deps Deps) *CheckInService {
	return &CheckInService{db: db, deps: deps.withDefaults()}
}

type MemberSearchResult struct {
	UserID        uint   `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LoyaltyPoints int    `json:"loyalty_points"`
	TotalVisits   int    `json:"total_visits"`
	LastVisitDate string `json:"last_visit_date"`
	MatchRank     int    `json:"-"`
}

// likeEscaper neutralises LIKE wildcards in user input; queries pair it with
// ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchActiveMembers finds active members by a case-insensitive substring of
// id, email or name. Results are ranked exact id, exact email, exact name,
// name prefix, then any other substring.
func (s *CheckInService) SearchActiveMembers(ctx context.Context, term string, limit int) ([]MemberSearchResult, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, validationf("search term is required")
	}

	var id uint64
	if n, err := strconv.ParseUint(term, 10, 32); err == nil {
		id = n
	}
	escaped := likeEscaper.Replace(term)
	like := "%" + escaped + "%"

	results := []MemberSearchResult{}
	err := s.db.WithContext(ctx).
		Table("users").
		Select(`users.id AS user_id, users.name, users.email, users.phone,
			member_profiles.loyalty_points, member_profiles.total_visits, member_profiles.last_visit_date,
			CASE
				WHEN users.id = ? THEN 0
				WHEN LOWER(users.email) = ? THEN 1
				WHEN LOWER(users.name) = ? THEN 2
				WHEN LOWER(users.name) LIKE ? ESCAPE '!' THEN 3
				ELSE 4
			END AS match_rank`, id, term, term, escaped+"%").
		Joins("JOIN member_profiles ON member_profiles.user_id = users.id AND member_profiles.deleted_at IS NULL").
		Where("users.deleted_at IS NULL AND users.is_active = ? AND users.role_id = ?", true, model.RoleMember).
		Where(`(CAST(users.id AS TEXT) LIKE ? ESCAPE '!'
			OR LOWER(users.name) LIKE ? ESCAPE '!'
			OR LOWER(users.email) LIKE ? ESCAPE '!')`, like, like, like).
		Order("match_rank, users.name, users.id").
		Limit(clampLimit(limit, 10, s.deps.Rules.MaxSearchResults)).
		Scan(&results).Error
	if err != nil {
		return nil, classify(err)
	}
	return results, nil
}

type CheckInInput struct {
	UserID      uint      `json:"user_id"`
	CheckInTime time.Time `json:"check_in_time"`
	CheckInType string    `json:"check_in_type"`
	RecordedBy  *uint     `json:"recorded_by"`
	Notes       string    `json:"notes"`
}

type CheckInResult struct {
	Visit       model.GymVisit      `json:"visit"`
	Profile     model.MemberProfile `json:"profile"`
	Consistency WeekOutcome         `json:"consistency"`
}

// RecordCheckIn stores a visit, updates the member counters and evaluates the
// visit's week, all in one transaction.
func (s *CheckInService) RecordCheckIn(ctx context.Context, in CheckInInput) (*CheckInResult, error) {
	if in.UserID == 0 {
		return nil, validationf("user_id is required")
	}
	if in.CheckInType == "" {
		in.CheckInType = model.CheckInManual
	}
	if !s.deps.Rules.HasCheckInType(in.CheckInType) {
		return nil, validationf("unknown check-in type %q", in.CheckInType)
	}
	at := in.CheckInTime
	if at.IsZero() {
		at = s.deps.now()
	}
	local := at.In(s.deps.Location)
	if local.After(s.deps.now().Add(5 * time.Minute)) {
		return nil, validationf("check-in time is in the future")
	}

	result := &CheckInResult{}
	var bonus *model.LoyaltyTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.MemberProfile
		err := forUpdate(tx, "member_profiles").Where("user_id = ?", in.UserID).First(&profile).Error
		if err == gorm.ErrRecordNotFound {
			return ErrMemberNotFound
		}
		if err != nil {
			return err
		}

		var active int64
		err = tx.Model(&model.User{}).
			Where("id = ? AND is_active = ? AND role_id = ?", in.UserID, true, model.RoleMember).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active == 0 {
			return notFoundf("active member %d not found", in.UserID)
		}

		visit := model.GymVisit{
			UserID:               in.UserID,
			VisitDate:            local.Format(DateLayout),
			CheckInTime:          at.UTC().Truncate(time.Microsecond),
			CheckInType:          in.CheckInType,
			ConsistencyWeekStart: WeekStartDate(local),
			RecordedBy:           in.RecordedBy,
			Notes:                util.SanitizeText(in.Notes),
		}
		if err := tx.Create(&visit).Error; err != nil {
			return err
		}

		streak, last, err := nextStreak(profile, visit.VisitDate)
		if err != nil {
			return err
		}
		err = tx.Model(&profile).Updates(map[string]interface{}{
			"total_visits":    gorm.Expr("total_visits + 1"),
			"streak_days":     streak,
			"last_visit_date": last,
		}).Error
		if err != nil {
			return err
		}
		if err := tx.First(&profile, profile.ID).Error; err != nil {
			return err
		}

		outcome, entry, err := processWeekTx(tx, s.deps, in.UserID, visit.ConsistencyWeekStart)
		if err != nil {
			return err
		}
		if entry != nil {
			profile.LoyaltyPoints = entry.BalanceAfter
		}

		result.Visit = visit
		result.Profile = profile
		result.Consistency = outcome
		bonus = entry
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	s.deps.Metrics.CheckInRecorded(in.CheckInType)
	s.deps.publish(ctx, events.CheckInRecorded, in.UserID, result.Visit)
	if bonus != nil {
		s.deps.Metrics.ConsistencyAwarded()
		s.deps.Metrics.PointsAwarded(bonus.Source, bonus.Points)
		s.deps.publish(ctx, events.PointsAwarded, in.UserID, bonus)
	}
	return result, nil
}

// nextStreak returns the streak and last visit date after a visit on
// visitDate. Repeat and backdated visits leave the streak alone.
func nextStreak(p model.MemberProfile, visitDate string) (int, string, error) {
	if p.LastVisitDate == "" {
		return 1, visitDate, nil
	}
	gap, err := daysBetween(p.LastVisitDate, visitDate)
	if err != nil {
		return 0, "", err
	}
	switch {
	case gap <= 0:
		return p.StreakDays, p.LastVisitDate, nil
	case gap == 1:
		return p.StreakDays + 1, visitDate, nil
	default:
		return 1, visitDate, nil
	}
}

type RecentFilter struct {
	Date  string
	Limit int
}

type RecentCheckIn struct {
	VisitID     uint      `json:"visit_id"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	VisitDate   string    `json:"visit_date"`
	CheckInTime time.Time `json:"check_in_time"`
	CheckInType string    `json:"check_in_type"`
}

// GetRecentCheckIns lists the latest check-ins of a day, today by default.
func (s *CheckInService) GetRecentCheckIns(ctx context.Context, f RecentFilter) ([]RecentCheckIn, error) {
	date := f.Date
	if date == "" {
		date = s.deps.today()
	} else if _, err := ParseDate(date, s.deps.Location); err != nil {
		return nil, err
	}

	rows := []RecentCheckIn{}
	err := s.db.WithContext(ctx).
		Table("gym_visits").
		Select("gym_visits.id AS visit_id, gym_visits.user_id, users.name, users.email, gym_visits.visit_date, gym_visits.check_in_time, gym_visits.check_in_type").
		Joins("JOIN users ON users.id = gym_visits.user_id").
		Where("gym_visits.deleted_at IS NULL AND gym_visits.visit_date = ?", date).
		Order("gym_visits.check_in_time DESC, gym_visits.id DESC").
		Limit(clampLimit(f.Limit, 20, 100)).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return rows, nil
}

type HistoryFilter struct {
	From   string
	To     string
	Limit  int
	Offset int
}

// GetMemberCheckInHistory pages through a member's visits, newest first.
func (s *CheckInService) GetMemberCheckInHistory(ctx context.Context, userID uint, f HistoryFilter) ([]model.GymVisit, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.GymVisit{}).Where("user_id = ?", userID)
	if f.From != "" {
		if _, err := ParseDate(f.From, s.deps.Location); err != nil {
			return nil, 0, err
		}
		q = q.Where("visit_date >= ?", f.From)
	}
	if f.To != "" {
		if _, err := ParseDate(f.To, s.deps.Location); err != nil {
			return nil, 0, err
		}
		q = q.Where("visit_date <= ?", f.To)
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return nil, 0, validationf("from must not be after to")
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}
	visits := []model.GymVisit{}
	err := q.Order("check_in_time DESC, id DESC").Limit(clampLimit(f.Limit, 20, 100)).Offset(f.Offset).Find(&visits).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return visits, total, nil
}

type WeekProgress struct {
	WeekStart     string `json:"week_start"`
	UniqueDays    int    `json:"unique_days"`
	Threshold     int    `json:"threshold"`
	Remaining     int    `json:"remaining"`
	Achieved      bool   `json:"achieved"`
	PointsAwarded int    `json:"points_awarded"`
}

type ConsistencySummary struct {
	CurrentWeek   WeekProgress                   `json:"current_week"`
	StreakDays    int                            `json:"streak_days"`
	TotalVisits   int                            `json:"total_visits"`
	LoyaltyPoints int                            `json:"loyalty_points"`
	Recent        []model.ConsistencyAchievement `json:"recent_weeks"`
}

// GetMemberConsistency reports progress in the week containing now plus the
// latest evaluated weeks.
func (s *CheckInService) GetMemberConsistency(ctx context.Context, userID uint, weeks int, now time.Time) (*ConsistencySummary, error) {
	db := s.db.WithContext(ctx)

	var profile model.MemberProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, classify(err)
	}

	if now.IsZero() {
		now = s.deps.now()
	}
	week := WeekStartDate(now.In(s.deps.Location))
	threshold := s.deps.Rules.ConsistencyThreshold

	var days int64
	err = db.Model(&model.GymVisit{}).
		Where("user_id = ? AND consistency_week_start = ?", userID, week).
		Distinct("visit_date").
		Count(&days).Error
	if err != nil {
		return nil, classify(err)
	}

	progress := WeekProgress{
		WeekStart:  week,
		UniqueDays: int(days),
		Threshold:  threshold,
		Achieved:   int(days) >= threshold,
	}
	if !progress.Achieved {
		progress.Remaining = threshold - progress.UniqueDays
	}

	recent, err := NewConsistencyService(s.db, s.deps).Achievements(ctx, userID, weeks)
	if err != nil {
		return nil, err
	}
	for _, a := range recent {
		if a.WeekStart == week {
			progress.PointsAwarded = a.PointsAwarded
		}
	}

	return &ConsistencySummary{
		CurrentWeek:   progress,
		StreakDays:    profile.StreakDays,
		TotalVisits:   profile.TotalVisits,
		LoyaltyPoints: profile.LoyaltyPoints,
		Recent:        recent,
	}, nil
}
