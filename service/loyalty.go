package service

import (
	"context"
	"strings"

	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"gorm.io/gorm"
)

const (
	SourceConsistencyBonus = "consistency_bonus"
	SourceManual           = "manual"
	SourceRedemption       = "redemption"
)

// LoyaltyService owns MemberProfile.LoyaltyPoints and the ledger behind it.
type LoyaltyService struct {
	db   *gorm.DB
	deps Deps
}

func NewLoyaltyService(db *gorm.DB, deps Deps) *LoyaltyService {
	return &LoyaltyService{db: db, deps: deps.withDefaults()}
}

// PointsInput describes one ledger movement. Points is always positive; the
// direction comes from the operation.
type PointsInput struct {
	UserID        uint   `json:"user_id"`
	Points        int    `json:"points"`
	Source        string `json:"source"`
	Description   string `json:"description"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   *uint  `json:"reference_id"`
}

func (in *PointsInput) validate(defaultSource string) error {
	if in.UserID == 0 {
		return validationf("user_id is required")
	}
	if in.Points <= 0 {
		return validationf("points must be positive")
	}
	in.Source = strings.TrimSpace(in.Source)
	if in.Source == "" {
		in.Source = defaultSource
	}
	return nil
}

// Award credits points and appends the ledger entry in one transaction.
func (s *LoyaltyService) Award(ctx context.Context, in PointsInput) (*model.LoyaltyTransaction, error) {
	if err := in.validate(SourceManual); err != nil {
		return nil, err
	}
	var entry *model.LoyaltyTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = awardTx(tx, in)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	s.deps.Metrics.PointsAwarded(entry.Source, entry.Points)
	s.deps.publish(ctx, events.PointsAwarded, entry.UserID, entry)
	return entry, nil
}

// Deduct debits points. The balance never goes negative: an insufficient
// balance fails with ErrInsufficientPoints and changes nothing.
func (s *LoyaltyService) Deduct(ctx context.Context, in PointsInput) (*model.LoyaltyTransaction, error) {
	if err := in.validate(SourceRedemption); err != nil {
		return nil, err
	}
	var entry *model.LoyaltyTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = deductTx(tx, in)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	s.deps.Metrics.PointsDeducted(entry.Source, -entry.Points)
	s.deps.publish(ctx, events.PointsDeducted, entry.UserID, entry)
	return entry, nil
}

func awardTx(tx *gorm.DB, in PointsInput) (*model.LoyaltyTransaction, error) {
	res := tx.Model(&model.MemberProfile{}).
		Where("user_id = ?", in.UserID).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", in.Points))
	if res.Error != nil {
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrMemberNotFound
	}
	return appendLedger(tx, in, in.Points, ledgerType(in.Source, model.LoyaltyEarned))
}

// ledgerType files staff corrections as adjustments.
func ledgerType(source, def string) string {
	if source == SourceManual {
		return model.LoyaltyAdjusted
	}
	return def
}

func deductTx(tx *gorm.DB, in PointsInput) (*model.LoyaltyTransaction, error) {
	res := tx.Model(&model.MemberProfile{}).
		Where("user_id = ? AND loyalty_points >= ?", in.UserID, in.Points).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points - ?", in.Points))
	if res.Error != nil {
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.MemberProfile{}).Where("user_id = ?", in.UserID).Count(&count).Error; err != nil {
			return nil, classify(err)
		}
		if count == 0 {
			return nil, ErrMemberNotFound
		}
		return nil, ErrInsufficientPoints
	}
	return appendLedger(tx, in, -in.Points, ledgerType(in.Source, model.LoyaltyRedeemed))
}

func appendLedger(tx *gorm.DB, in PointsInput, delta int, kind string) (*model.LoyaltyTransaction, error) {
	balance, err := balanceTx(tx, in.UserID)
	if err != nil {
		return nil, err
	}
	entry := model.LoyaltyTransaction{
		UserID:          in.UserID,
		Points:          delta,
		BalanceAfter:    balance,
		TransactionType: kind,
		Source:          in.Source,
		Description:     in.Description,
		ReferenceType:   in.ReferenceType,
		ReferenceID:     in.ReferenceID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, classify(err)
	}
	return &entry, nil
}

func balanceTx(tx *gorm.DB, userID uint) (int, error) {
	var profile model.MemberProfile
	err := tx.Select("loyalty_points").Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return 0, ErrMemberNotFound
	}
	if err != nil {
		return 0, classify(err)
	}
	return profile.LoyaltyPoints, nil
}

// Balance returns the cached balance of a member.
func (s *LoyaltyService) Balance(ctx context.Context, userID uint) (int, error) {
	return balanceTx(s.db.WithContext(ctx), userID)
}

// History pages through a member's ledger, newest first.
func (s *LoyaltyService) History(ctx context.Context, userID uint, limit, offset int) ([]model.LoyaltyTransaction, int64, error) {
	if offset < 0 {
		offset = 0
	}
	q := s.db.WithContext(ctx).Model(&model.LoyaltyTransaction{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}
	entries := []model.LoyaltyTransaction{}
	err := q.Order("id DESC").Limit(clampLimit(limit, 20, 100)).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, classify(err)
	}
	return entries, total, nil
}

// ReconcileReport compares a cached balance with its ledger.
type ReconcileReport struct {
	UserID        uint `json:"user_id"`
	CachedBalance int  `json:"cached_balance"`
	LedgerBalance int  `json:"ledger_balance"`
	Drift         int  `json:"drift"`
	Fixed         bool `json:"fixed"`
}

// Reconcile checks one member. With fix set, a drifted cache is rewritten to
// the ledger sum.
func (s *LoyaltyService) Reconcile(ctx context.Context, userID uint, fix bool) (ReconcileReport, error) {
	report := ReconcileReport{UserID: userID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.MemberProfile
		err := forUpdate(tx, "member_profiles").Where("user_id = ?", userID).First(&profile).Error
		if err == gorm.ErrRecordNotFound {
			return ErrMemberNotFound
		}
		if err != nil {
			return err
		}

		var ledger int
		err = tx.Model(&model.LoyaltyTransaction{}).
			Select("COALESCE(SUM(points), 0)").
			Where("user_id = ?", userID).
			Scan(&ledger).Error
		if err != nil {
			return err
		}

		report.CachedBalance = profile.LoyaltyPoints
		report.LedgerBalance = ledger
		report.Drift = profile.LoyaltyPoints - ledger
		if !fix || report.Drift == 0 {
			return nil
		}
		if err := tx.Model(&profile).UpdateColumn("loyalty_points", ledger).Error; err != nil {
			return err
		}
		report.Fixed = true
		return nil
	})
	return report, classify(err)
}

// ReconcileAll reports every member whose cache disagrees with the ledger.
func (s *LoyaltyService) ReconcileAll(ctx context.Context, fix bool) ([]ReconcileReport, error) {
	var drifted []struct {
		UserID uint
	}
	err := s.db.WithContext(ctx).
		Table("member_profiles").
		Select("member_profiles.user_id").
		Joins("LEFT JOIN loyalty_transactions lt ON lt.user_id = member_profiles.user_id AND lt.deleted_at IS NULL").
		Where("member_profiles.deleted_at IS NULL").
		Group("member_profiles.user_id, member_profiles.loyalty_points").
		Having("member_profiles.loyalty_points <> COALESCE(SUM(lt.points), 0)").
		Order("member_profiles.user_id").
		Scan(&drifted).Error
	if err != nil {
		return nil, classify(err)
	}

	reports := make([]ReconcileReport, 0, len(drifted))
	for _, d := range drifted {
		r, err := s.Reconcile(ctx, d.UserID, fix)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
