package service

import (
	"context"
	"testing"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutritionPlans(t *testing.T) {
	db := newTestDB(t)
	deps, _ := testDeps(at("2024-05-08", 9))
	svc := NewNutritionService(db, deps)
	ctx := context.Background()
	nutri := createUser(t, db, "Dr Gizi", "gizi@example.com", model.RoleNutritionist)
	other := createUser(t, db, "Dr Lain", "lain@example.com", model.RoleNutritionist)
	m := createMember(t, db, "Eka", "eka@example.com")

	plan, err := svc.CreatePlan(ctx, nutri.ID, NutritionPlanInput{
		MemberID:      m.ID,
		Title:         ptr("Cutting phase"),
		DailyCalories: ptr(2100),
		Notes:         ptr(`<script>alert(1)</script>More protein`),
	})
	require.NoError(t, err)
	assert.Equal(t, "More protein", plan.Notes)

	_, err = svc.CreatePlan(ctx, nutri.ID, NutritionPlanInput{MemberID: 999, Title: ptr("x")})
	assert.ErrorIs(t, err, ErrMemberNotFound)
	_, err = svc.CreatePlan(ctx, nutri.ID, NutritionPlanInput{MemberID: m.ID})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdatePlan(ctx, other.ID, plan.ID, NutritionPlanInput{DailyCalories: ptr(1800)})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdatePlan(ctx, nutri.ID, plan.ID, NutritionPlanInput{DailyCalories: ptr(1900)})
	require.NoError(t, err)
	assert.Equal(t, 1900, updated.DailyCalories)
	assert.Equal(t, "Cutting phase", updated.Title)

	mine, err := svc.ListForMember(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	authored, err := svc.ListByNutritionist(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, authored)
}
