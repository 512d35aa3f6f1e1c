package service

import (
	"context"
	"strings"
	"time"

	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	cache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const ReferenceSubscription = "subscription"

// MembershipService sells monthly plans. Every purchase or plan change is a
// pending subscription with a pending revenue row until an admin approves it.
type MembershipService struct {
	db    *gorm.DB
	deps  Deps
	plans *cache.Cache
}

func NewMembershipService(db *gorm.DB, deps Deps) *MembershipService {
	deps = deps.withDefaults()
	return &MembershipService{db: db, deps: deps, plans: deps.PlanCache}
}

func planCacheKey(activeOnly bool) string {
	if activeOnly {
		return "plans:active"
	}
	return "plans:all"
}

// ListPlans returns the plan catalog, served from memory between writes.
func (s *MembershipService) ListPlans(ctx context.Context, activeOnly bool) ([]model.MonthlyPlan, error) {
	key := planCacheKey(activeOnly)
	if cached, ok := s.plans.Get(key); ok {
		return cached.([]model.MonthlyPlan), nil
	}

	q := s.db.WithContext(ctx).Order("price, name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	plans := []model.MonthlyPlan{}
	if err := q.Find(&plans).Error; err != nil {
		return nil, classify(err)
	}
	s.plans.Set(key, plans, cache.DefaultExpiration)
	return plans, nil
}

type PlanInput struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Price          *int64  `json:"price"`
	DurationMonths *int    `json:"duration_months"`
	IsActive       *bool   `json:"is_active"`
}

func (in PlanInput) changes() (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validationf("name must not be empty")
		}
		changes["name"] = name
	}
	if in.Description != nil {
		changes["description"] = util.SanitizeText(*in.Description)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, validationf("price must be positive")
		}
		changes["price"] = *in.Price
	}
	if in.DurationMonths != nil {
		if *in.DurationMonths < 1 || *in.DurationMonths > 36 {
			return nil, validationf("duration_months must be between 1 and 36")
		}
		changes["duration_months"] = *in.DurationMonths
	}
	if in.IsActive != nil {
		changes["is_active"] = *in.IsActive
	}
	return changes, nil
}

func (s *MembershipService) CreatePlan(ctx context.Context, in PlanInput) (*model.MonthlyPlan, error) {
	if in.Name == nil || in.Price == nil {
		return nil, validationf("name and price are required")
	}
	changes, err := in.changes()
	if err != nil {
		return nil, err
	}

	plan := model.MonthlyPlan{
		Name:           changes["name"].(string),
		Price:          *in.Price,
		DurationMonths: 1,
		IsActive:       true,
	}
	if d, ok := changes["description"].(string); ok {
		plan.Description = d
	}
	if in.DurationMonths != nil {
		plan.DurationMonths = *in.DurationMonths
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("plan %q already exists", plan.Name)
		}
		return nil, classify(err)
	}
	if in.IsActive != nil && !*in.IsActive {
		if err := s.db.WithContext(ctx).Model(&plan).Update("is_active", false).Error; err != nil {
			return nil, classify(err)
		}
		plan.IsActive = false
	}
	s.plans.Flush()
	return &plan, nil
}

func (s *MembershipService) UpdatePlan(ctx context.Context, planID uint, in PlanInput) (*model.MonthlyPlan, error) {
	changes, err := in.changes()
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	var plan model.MonthlyPlan
	if err := db.First(&plan, planID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundf("plan %d not found", planID)
		}
		return nil, classify(err)
	}
	if len(changes) > 0 {
		if err := db.Model(&plan).Updates(changes).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, conflictf("plan name already in use")
			}
			return nil, classify(err)
		}
		if err := db.First(&plan, planID).Error; err != nil {
			return nil, classify(err)
		}
	}
	s.plans.Flush()
	return &plan, nil
}

func activePlan(tx *gorm.DB, planID uint) (model.MonthlyPlan, error) {
	var plan model.MonthlyPlan
	err := tx.Where("id = ? AND is_active = ?", planID, true).First(&plan).Error
	if err == gorm.ErrRecordNotFound {
		return plan, notFoundf("plan %d not found", planID)
	}
	return plan, err
}

func lockProfile(tx *gorm.DB, userID uint) (model.MemberProfile, error) {
	var profile model.MemberProfile
	err := forUpdate(tx, "member_profiles").Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return profile, ErrMemberNotFound
	}
	return profile, err
}

func ensureNoPending(tx *gorm.DB, userID uint) error {
	var pending int64
	err := tx.Model(&model.Subscription{}).
		Where("user_id = ? AND status = ?", userID, model.SubscriptionPending).
		Count(&pending).Error
	if err != nil {
		return err
	}
	if pending > 0 {
		return conflictf("a subscription request is already pending approval")
	}
	return nil
}

func (s *MembershipService) createPending(tx *gorm.DB, sub *model.Subscription, description string) error {
	if err := tx.Create(sub).Error; err != nil {
		return err
	}
	ref := sub.ID
	uid := sub.UserID
	revenue := model.RevenueRecord{
		UserID:            &uid,
		Amount:            sub.AmountDue,
		RevenueSource:     model.RevenueMembership,
		TransactionStatus: model.RevenuePending,
		TransactionDate:   s.deps.today(),
		ReferenceType:     ReferenceSubscription,
		ReferenceID:       &ref,
		Description:       description,
	}
	return tx.Create(&revenue).Error
}

// Checkout requests a new plan for a member without an active subscription
// change in flight.
func (s *MembershipService) Checkout(ctx context.Context, userID, planID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockProfile(tx, userID); err != nil {
			return err
		}
		plan, err := activePlan(tx, planID)
		if err != nil {
			return err
		}
		if err := ensureNoPending(tx, userID); err != nil {
			return err
		}
		sub = model.Subscription{
			UserID:    userID,
			PlanID:    plan.ID,
			Status:    model.SubscriptionPending,
			AmountDue: plan.Price,
		}
		return s.createPending(tx, &sub, "Membership checkout: "+plan.Name)
	})
	if err != nil {
		return nil, classify(err)
	}
	s.deps.publish(ctx, events.SubscriptionRequested, userID, sub)
	return &sub, nil
}

// ApproveSubscription activates a pending subscription, expires the member's
// previous one and completes the matching revenue row.
func (s *MembershipService) ApproveSubscription(ctx context.Context, adminID, subID uint, now time.Time) (*model.Subscription, error) {
	if now.IsZero() {
		now = s.deps.now()
	}
	local := now.In(s.deps.Location)
	today := local.Format(DateLayout)

	var sub model.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, subID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return notFoundf("subscription %d not found", subID)
			}
			return err
		}
		if _, err := lockProfile(tx, sub.UserID); err != nil {
			return err
		}
		var plan model.MonthlyPlan
		if err := tx.Unscoped().First(&plan, sub.PlanID).Error; err != nil {
			return err
		}

		start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.deps.Location)
		approvedAt := now.UTC()
		res := tx.Model(&model.Subscription{}).
			Where("id = ? AND status = ?", subID, model.SubscriptionPending).
			Updates(map[string]interface{}{
				"status":      model.SubscriptionActive,
				"start_date":  today,
				"end_date":    start.AddDate(0, plan.DurationMonths, 0).Format(DateLayout),
				"approved_by": adminID,
				"approved_at": approvedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		err := tx.Model(&model.Subscription{}).
			Where("user_id = ? AND status = ? AND id <> ?", sub.UserID, model.SubscriptionActive, subID).
			Update("status", model.SubscriptionExpired).Error
		if err != nil {
			return err
		}
		err = tx.Model(&model.MemberProfile{}).
			Where("user_id = ?", sub.UserID).
			Update("current_plan_id", sub.PlanID).Error
		if err != nil {
			return err
		}
		err = s.settleRevenue(tx, subID, model.RevenueCompleted, today)
		if err != nil {
			return err
		}
		return tx.First(&sub, subID).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	s.deps.publish(ctx, events.SubscriptionApproved, sub.UserID, sub)
	return &sub, nil
}

// RejectSubscription declines a pending request and cancels its revenue row.
func (s *MembershipService) RejectSubscription(ctx context.Context, adminID, subID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Subscription{}).
			Where("id = ? AND status = ?", subID, model.SubscriptionPending).
			Updates(map[string]interface{}{"status": model.SubscriptionRejected, "approved_by": adminID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Subscription{}).Where("id = ?", subID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return notFoundf("subscription %d not found", subID)
			}
			return ErrInvalidTransition
		}
		if err := s.settleRevenue(tx, subID, model.RevenueCancelled, ""); err != nil {
			return err
		}
		return tx.First(&sub, subID).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &sub, nil
}

func (s *MembershipService) settleRevenue(tx *gorm.DB, subID uint, status, date string) error {
	changes := map[string]interface{}{"transaction_status": status}
	if date != "" {
		changes["transaction_date"] = date
	}
	return tx.Model(&model.RevenueRecord{}).
		Where("reference_type = ? AND reference_id = ? AND transaction_status = ?", ReferenceSubscription, subID, model.RevenuePending).
		Updates(changes).Error
}

// PlanChangeQuote prices a switch from the current subscription to a new
// plan. Amounts are in minor currency units.
type PlanChangeQuote struct {
	CurrentSubscriptionID *uint `json:"current_subscription_id"`
	CurrentPlanID         *uint `json:"current_plan_id"`
	NewPlanID             uint  `json:"new_plan_id"`
	NewPlanPrice          int64 `json:"new_plan_price"`
	RemainingDays         int   `json:"remaining_days"`
	TotalDays             int   `json:"total_days"`
	Credit                int64 `json:"credit"`
	AmountDue             int64 `json:"amount_due"`
}

// QuotePlanChange credits the unused part of current against plan:
// credit = paid * remaining / total (floored), amount due = max(0, price - credit).
// The value of a subscription is what was paid plus the credit it consumed.
func QuotePlanChange(current *model.Subscription, plan model.MonthlyPlan, today string) PlanChangeQuote {
	quote := PlanChangeQuote{NewPlanID: plan.ID, NewPlanPrice: plan.Price, AmountDue: plan.Price}
	if current == nil {
		return quote
	}
	id, planID := current.ID, current.PlanID
	quote.CurrentSubscriptionID = &id
	quote.CurrentPlanID = &planID

	total, err := daysBetween(current.StartDate, current.EndDate)
	if err != nil || total <= 0 {
		return quote
	}
	remaining, err := daysBetween(today, current.EndDate)
	if err != nil || remaining <= 0 {
		return quote
	}
	if remaining > total {
		remaining = total
	}

	paid := current.AmountDue + current.CreditApplied
	quote.TotalDays = total
	quote.RemainingDays = remaining
	quote.Credit = paid * int64(remaining) / int64(total)
	if quote.Credit < plan.Price {
		quote.AmountDue = plan.Price - quote.Credit
	} else {
		quote.AmountDue = 0
	}
	return quote
}

func activeSubscription(tx *gorm.DB, userID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := tx.Where("user_id = ? AND status = ?", userID, model.SubscriptionActive).
		Order("id DESC").
		First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// PreviewPlanChange quotes a plan change without writing anything.
func (s *MembershipService) PreviewPlanChange(ctx context.Context, userID, planID uint) (*PlanChangeQuote, error) {
	db := s.db.WithContext(ctx)
	plan, err := activePlan(db, planID)
	if err != nil {
		return nil, classify(err)
	}
	current, err := activeSubscription(db, userID)
	if err != nil {
		return nil, classify(err)
	}
	quote := QuotePlanChange(current, plan, s.deps.today())
	return &quote, nil
}

// ChangePlan requests a switch to planID, crediting the unused part of the
// active subscription. The request goes through the same approval as
// Checkout.
func (s *MembershipService) ChangePlan(ctx context.Context, userID, planID uint) (*model.Subscription, *PlanChangeQuote, error) {
	var (
		sub   model.Subscription
		quote PlanChangeQuote
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockProfile(tx, userID); err != nil {
			return err
		}
		plan, err := activePlan(tx, planID)
		if err != nil {
			return err
		}
		current, err := activeSubscription(tx, userID)
		if err != nil {
			return err
		}
		if current == nil {
			return validationf("no active subscription to change, use checkout instead")
		}
		if current.PlanID == planID {
			return validationf("already subscribed to plan %d", planID)
		}
		if err := ensureNoPending(tx, userID); err != nil {
			return err
		}

		quote = QuotePlanChange(current, plan, s.deps.today())
		applied := quote.Credit
		if applied > plan.Price {
			applied = plan.Price
		}
		from := current.ID
		sub = model.Subscription{
			UserID:        userID,
			PlanID:        plan.ID,
			Status:        model.SubscriptionPending,
			AmountDue:     quote.AmountDue,
			CreditApplied: applied,
			ChangeFromID:  &from,
		}
		return s.createPending(tx, &sub, "Plan change: "+plan.Name)
	})
	if err != nil {
		return nil, nil, classify(err)
	}
	s.deps.publish(ctx, events.SubscriptionRequested, userID, sub)
	return &sub, &quote, nil
}

func (s *MembershipService) ListUserSubscriptions(ctx context.Context, userID uint) ([]model.Subscription, error) {
	subs := []model.Subscription{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&subs).Error
	return subs, classify(err)
}

func (s *MembershipService) ListPendingSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	subs := []model.Subscription{}
	err := s.db.WithContext(ctx).Where("status = ?", model.SubscriptionPending).Order("id").Find(&subs).Error
	return subs, classify(err)
}
