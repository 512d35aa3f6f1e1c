package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// RevenueService aggregates the gym_revenue ledger. Only completed
// transactions count, and empty periods report zeros.
type RevenueService struct {
	db   *gorm.DB
	deps Deps
}

func NewRevenueService(db *gorm.DB, deps Deps) *RevenueService {
	return &RevenueService{db: db, deps: deps.withDefaults()}
}

type SourceTotal struct {
	Source string `json:"revenue_source"`
	Amount int64  `json:"amount"`
	Count  int64  `json:"count"`
}

type RevenueBucket struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
	Count  int64  `json:"count"`
}

type RevenueSummary struct {
	From             string        `json:"from"`
	To               string        `json:"to"`
	TotalAmount      int64         `json:"total_amount"`
	TransactionCount int64         `json:"transaction_count"`
	BySource         []SourceTotal `json:"by_source"`
}

type PeriodBreakdown struct {
	Period           string          `json:"period"`
	TotalAmount      int64           `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
	Buckets          []RevenueBucket `json:"buckets"`
}

func (s *RevenueService) completed(ctx context.Context, from, to string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&model.RevenueRecord{}).
		Where("transaction_status = ? AND transaction_date BETWEEN ? AND ?", model.RevenueCompleted, from, to)
}

func (s *RevenueService) total(ctx context.Context, from, to string) (int64, int64, error) {
	var row struct {
		Amount int64
		Count  int64
	}
	err := s.completed(ctx, from, to).
		Select("COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Scan(&row).Error
	return row.Amount, row.Count, err
}

// DailySummary totals one day, split by source.
func (s *RevenueService) DailySummary(ctx context.Context, date string) (*RevenueSummary, error) {
	if date == "" {
		date = s.deps.today()
	}
	if _, err := ParseDate(date, s.deps.Location); err != nil {
		return nil, err
	}
	return s.summary(ctx, date, date)
}

func (s *RevenueService) summary(ctx context.Context, from, to string) (*RevenueSummary, error) {
	amount, count, err := s.total(ctx, from, to)
	if err != nil {
		return nil, classify(err)
	}
	sources, err := s.bySource(ctx, from, to)
	if err != nil {
		return nil, classify(err)
	}
	return &RevenueSummary{From: from, To: to, TotalAmount: amount, TransactionCount: count, BySource: sources}, nil
}

// SourceBreakdown totals [from, to] per revenue source. Every known source is
// present even when it has no revenue.
func (s *RevenueService) SourceBreakdown(ctx context.Context, from, to string) ([]SourceTotal, error) {
	if _, err := ParseDate(from, s.deps.Location); err != nil {
		return nil, err
	}
	if _, err := ParseDate(to, s.deps.Location); err != nil {
		return nil, err
	}
	if from > to {
		return nil, validationf("from must not be after to")
	}
	sources, err := s.bySource(ctx, from, to)
	return sources, classify(err)
}

func (s *RevenueService) bySource(ctx context.Context, from, to string) ([]SourceTotal, error) {
	var rows []SourceTotal
	err := s.completed(ctx, from, to).
		Select("revenue_source AS source, SUM(amount) AS amount, COUNT(*) AS count").
		Group("revenue_source").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	found := make(map[string]SourceTotal, len(rows))
	for _, r := range rows {
		found[r.Source] = r
	}
	totals := make([]SourceTotal, 0, len(model.RevenueSources))
	for _, src := range model.RevenueSources {
		t := found[src]
		t.Source = src
		totals = append(totals, t)
		delete(found, src)
	}
	for _, r := range rows {
		if _, extra := found[r.Source]; extra {
			totals = append(totals, r)
		}
	}
	return totals, nil
}

// MonthlyBreakdown buckets a month per day.
func (s *RevenueService) MonthlyBreakdown(ctx context.Context, year, month int) (*PeriodBreakdown, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, validationf("month must be between 1 and 12")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	labels := make([]string, days)
	for i := range labels {
		labels[i] = first.AddDate(0, 0, i).Format(DateLayout)
	}
	return s.breakdown(ctx, first.Format("2006-01"), labels[0], labels[days-1], "transaction_date", labels)
}

// YearlyBreakdown buckets a year per month.
func (s *RevenueService) YearlyBreakdown(ctx context.Context, year int) (*PeriodBreakdown, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}
	labels := make([]string, 12)
	for i := range labels {
		labels[i] = fmt.Sprintf("%04d-%02d", year, i+1)
	}
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)
	return s.breakdown(ctx, fmt.Sprintf("%04d", year), from, to, "SUBSTR(transaction_date, 1, 7)", labels)
}

func (s *RevenueService) breakdown(ctx context.Context, period, from, to, bucketExpr string, labels []string) (*PeriodBreakdown, error) {
	var rows []RevenueBucket
	err := s.completed(ctx, from, to).
		Select(bucketExpr + " AS label, SUM(amount) AS amount, COUNT(*) AS count").
		Group(bucketExpr).
		Scan(&rows).Error
	if err != nil {
		return nil, classify(err)
	}

	found := make(map[string]RevenueBucket, len(rows))
	for _, r := range rows {
		found[r.Label] = r
	}
	out := &PeriodBreakdown{Period: period, Buckets: make([]RevenueBucket, 0, len(labels))}
	for _, label := range labels {
		b := found[label]
		b.Label = label
		out.TotalAmount += b.Amount
		out.TransactionCount += b.Count
		out.Buckets = append(out.Buckets, b)
	}
	return out, nil
}

func validYear(year int) error {
	if year < 2000 || year > 9999 {
		return validationf("year must be between 2000 and 9999")
	}
	return nil
}

type DashboardStats struct {
	Date             string `json:"date"`
	TodayRevenue     int64  `json:"today_revenue"`
	MonthRevenue     int64  `json:"month_revenue"`
	YearRevenue      int64  `json:"year_revenue"`
	ActiveMembers    int64  `json:"active_members"`
	PendingApprovals int64  `json:"pending_approvals"`
	TodayCheckIns    int64  `json:"today_check_ins"`
}

// Dashboard gathers the admin headline numbers concurrently.
func (s *RevenueService) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	if now.IsZero() {
		now = s.deps.now()
	}
	local := now.In(s.deps.Location)
	today := local.Format(DateLayout)
	monthStart := local.Format("2006-01") + "-01"
	yearStart := local.Format("2006") + "-01-01"

	stats := &DashboardStats{Date: today}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TodayRevenue, _, err = s.total(gctx, today, today)
		return err
	})
	g.Go(func() (err error) {
		stats.MonthRevenue, _, err = s.total(gctx, monthStart, today)
		return err
	})
	g.Go(func() (err error) {
		stats.YearRevenue, _, err = s.total(gctx, yearStart, today)
		return err
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&model.User{}).
			Where("role_id = ? AND is_active = ?", model.RoleMember, true).
			Count(&stats.ActiveMembers).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&model.Subscription{}).
			Where("status = ?", model.SubscriptionPending).
			Count(&stats.PendingApprovals).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&model.GymVisit{}).
			Where("visit_date = ?", today).
			Count(&stats.TodayCheckIns).Error
	})
	if err := g.Wait(); err != nil {
		return nil, classify(err)
	}
	return stats, nil
}

type RevenueInput struct {
	UserID            *uint  `json:"user_id"`
	Amount            int64  `json:"amount"`
	RevenueSource     string `json:"revenue_source"`
	TransactionStatus string `json:"transaction_status"`
	TransactionDate   string `json:"transaction_date"`
	Description       string `json:"description"`
}

var revenueStatuses = []string{model.RevenuePending, model.RevenueCompleted, model.RevenueRefunded, model.RevenueCancelled}

// RecordRevenue stores a manual ledger entry, completed and dated today
// unless told otherwise.
func (s *RevenueService) RecordRevenue(ctx context.Context, in RevenueInput) (*model.RevenueRecord, error) {
	if in.Amount <= 0 {
		return nil, validationf("amount must be positive")
	}
	if !util.Contains(in.RevenueSource, model.RevenueSources) {
		return nil, validationf("unknown revenue source %q", in.RevenueSource)
	}
	if in.TransactionStatus == "" {
		in.TransactionStatus = model.RevenueCompleted
	}
	if !util.Contains(in.TransactionStatus, revenueStatuses) {
		return nil, validationf("unknown transaction status %q", in.TransactionStatus)
	}
	if in.TransactionDate == "" {
		in.TransactionDate = s.deps.today()
	} else if _, err := ParseDate(in.TransactionDate, s.deps.Location); err != nil {
		return nil, err
	}

	record := model.RevenueRecord{
		UserID:            in.UserID,
		Amount:            in.Amount,
		RevenueSource:     in.RevenueSource,
		TransactionStatus: in.TransactionStatus,
		TransactionDate:   in.TransactionDate,
		ReferenceType:     "manual",
		Description:       util.SanitizeText(in.Description),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, classify(err)
	}
	return &record, nil
}
