package service

import (
	"context"
	"testing"

	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardAndDeduct(t *testing.T) {
	db := newTestDB(t)
	deps, pub := testDeps(at("2024-05-08", 20))
	svc := NewLoyaltyService(db, deps)
	m := createMember(t, db, "Oki", "oki@example.com")
	ctx := context.Background()

	entry, err := svc.Award(ctx, PointsInput{UserID: m.ID, Points: 50, Description: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, 50, entry.Points)
	assert.Equal(t, 50, entry.BalanceAfter)
	assert.Equal(t, SourceManual, entry.Source)
	assert.Equal(t, model.LoyaltyAdjusted, entry.TransactionType)

	entry, err = svc.Deduct(ctx, PointsInput{UserID: m.ID, Points: 20})
	require.NoError(t, err)
	assert.Equal(t, -20, entry.Points)
	assert.Equal(t, 30, entry.BalanceAfter)
	assert.Equal(t, SourceRedemption, entry.Source)
	assert.Equal(t, model.LoyaltyRedeemed, entry.TransactionType)

	balance, err := svc.Balance(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, balance)

	history, total, err := svc.History(ctx, m.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, history, 2)
	assert.Equal(t, -20, history[0].Points)

	assert.Len(t, pub.OfType(events.PointsAwarded), 1)
	assert.Len(t, pub.OfType(events.PointsDeducted), 1)
}

func TestLedgerTypeFollowsSource(t *testing.T) {
	db := newTestDB(t)
	deps, _ := testDeps(at("2024-05-08", 20))
	svc := NewLoyaltyService(db, deps)
	m := createMember(t, db, "Rani", "rani@example.com")
	ctx := context.Background()

	entry, err := svc.Award(ctx, PointsInput{UserID: m.ID, Points: 10, Source: SourceConsistencyBonus})
	require.NoError(t, err)
	assert.Equal(t, model.LoyaltyEarned, entry.TransactionType)

	entry, err = svc.Deduct(ctx, PointsInput{UserID: m.ID, Points: 4, Source: SourceManual})
	require.NoError(t, err)
	assert.Equal(t, model.LoyaltyAdjusted, entry.TransactionType)
	assert.Equal(t, 6, entry.BalanceAfter)
}

func TestDeductNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	deps, _ := testDeps(at("2024-05-08", 20))
	svc := NewLoyaltyService(db, deps)
	m := createMember(t, db, "Putri", "putri@example.com")
	ctx := context.Background()

	_, err := svc.Award(ctx, PointsInput{UserID: m.ID, Points: 10})
	require.NoError(t, err)

	_, err = svc.Deduct(ctx, PointsInput{UserID: m.ID, Points: 11})
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.ErrorIs(t, err, ErrValidation)

	balance, err := svc.Balance(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)

	_, total, err := svc.History(ctx, m.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = svc.Deduct(ctx, PointsInput{UserID: m.ID, Points: 10})
	assert.NoError(t, err)
}

func TestPointsInputValidation(t *testing.T) {
	db := newTestDB(t)
	deps, _ := testDeps(at("2024-05-08", 20))
	svc := NewLoyaltyService(db, deps)
	m := createMember(t, db, "Rudi", "rudi@example.com")
	ctx := context.Background()

	_, err := svc.Award(ctx, PointsInput{UserID: m.ID, Points: 0})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Deduct(ctx, PointsInput{UserID: m.ID, Points: -5})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Award(ctx, PointsInput{Points: 5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Award(ctx, PointsInput{UserID: 4242, Points: 5})
	assert.ErrorIs(t, err, ErrMemberNotFound)
	_, err = svc.Deduct(ctx, PointsInput{UserID: 4242, Points: 5})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestReconcileDetectsAndFixesDrift(t *testing.T) {
	db := newTestDB(t)
	deps, _ := testDeps(at("2024-05-08", 20))
	svc := NewLoyaltyService(db, deps)
	drifted := createMember(t, db, "Sari", "sari@example.com")
	clean := createMember(t, db, "Tono", "tono@example.com")
	ctx := context.Background()

	_, err := svc.Award(ctx, PointsInput{UserID: drifted.ID, Points: 30})
	require.NoError(t, err)
	_, err = svc.Award(ctx, PointsInput{UserID: clean.ID, Points: 5})
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.MemberProfile{}).Where("user_id = ?", drifted.ID).UpdateColumn("loyalty_points", 99).Error)

	report, err := svc.Reconcile(ctx, drifted.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 99, report.CachedBalance)
	assert.Equal(t, 30, report.LedgerBalance)
	assert.Equal(t, 69, report.Drift)
	assert.False(t, report.Fixed)
	assert.Equal(t, 99, profileOf(t, db, drifted.ID).LoyaltyPoints)

	reports, err := svc.ReconcileAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, drifted.ID, reports[0].UserID)
	assert.True(t, reports[0].Fixed)
	assert.Equal(t, 30, profileOf(t, db, drifted.ID).LoyaltyPoints)

	reports, err = svc.ReconcileAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, reports)

	_, err = svc.Reconcile(ctx, 777, false)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
