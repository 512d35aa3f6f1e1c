package endpoint_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkInResult struct {
	Visit       model.GymVisit      `json:"visit"`
	Profile     model.MemberProfile `json:"profile"`
	Consistency service.WeekOutcome `json:"consistency"`
}

func recordCheckIn(t *testing.T, r http.Handler, token string, userID uint, at time.Time) checkInResult {
	t.Helper()
	rr := doRequest(r, requestParams{method: http.MethodPost, path: "/api/checkin", token: token, body: map[string]interface{}{
		"user_id":       userID,
		"check_in_type": "front_desk",
		"check_in_time": at,
	}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var res checkInResult
	decodeData(t, rr, &res)
	return res
}

func TestFiveDaysInAWeekEarnConsistencyBonusOnce(t *testing.T) {
	r, db := SetupTestServer(t)
	desk := createStaff(t, r, db, model.RoleFrontDesk, "desk@example.com")
	member := CreateAndLoginUser(t, r, SignupCreds{Name: "Ann Runner", Email: "ann@example.com", Password: "password123"})

	lastMonday := service.WeekStart(time.Now().UTC()).AddDate(0, 0, -7).Add(8 * time.Hour)
	for day := 0; day < 4; day++ {
		res := recordCheckIn(t, r, desk.Token, member.UserID, lastMonday.AddDate(0, 0, day))
		assert.False(t, res.Consistency.Achieved)
		assert.Zero(t, res.Consistency.PointsAwarded)
	}

	res := recordCheckIn(t, r, desk.Token, member.UserID, lastMonday.AddDate(0, 0, 4))
	assert.True(t, res.Consistency.Achieved)
	assert.Equal(t, 5, res.Consistency.UniqueDays)
	assert.Equal(t, 10, res.Consistency.PointsAwarded)
	assert.Equal(t, 10, res.Profile.LoyaltyPoints)
	assert.Equal(t, 5, res.Profile.TotalVisits)

	// A second visit on a counted day changes nothing.
	res = recordCheckIn(t, r, desk.Token, member.UserID, lastMonday.AddDate(0, 0, 4).Add(2*time.Hour))
	assert.True(t, res.Consistency.Achieved)
	assert.Zero(t, res.Consistency.PointsAwarded)

	rr := doRequest(r, requestParams{method: http.MethodGet, path: "/api/members/me/loyalty", token: member.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var summary struct {
		Balance int                        `json:"balance"`
		Recent  []model.LoyaltyTransaction `json:"recent"`
	}
	decodeData(t, rr, &summary)
	assert.Equal(t, 10, summary.Balance)
	require.Len(t, summary.Recent, 1)
	assert.Equal(t, service.SourceConsistencyBonus, summary.Recent[0].Source)

	var bonuses int64
	require.NoError(t, db.Model(&model.LoyaltyTransaction{}).Where("user_id = ?", member.UserID).Count(&bonuses).Error)
	assert.EqualValues(t, 1, bonuses)
}

func TestCheckInRejectsUnknownMemberAndFutureTime(t *testing.T) {
	r, db := SetupTestServer(t)
	desk := createStaff(t, r, db, model.RoleFrontDesk, "desk@example.com")
	member := CreateAndLoginUser(t, r, SignupCreds{Name: "Ann", Email: "ann@example.com", Password: "password123"})

	rr := doRequest(r, requestParams{method: http.MethodPost, path: "/api/checkin", token: desk.Token, body: map[string]interface{}{
		"user_id": 9999,
	}})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: "/api/checkin", token: desk.Token, body: map[string]interface{}{
		"user_id":       member.UserID,
		"check_in_time": time.Now().Add(2 * time.Hour),
	}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: "/api/checkin", token: desk.Token, body: map[string]interface{}{
		"user_id":       member.UserID,
		"check_in_type": "teleport",
	}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFrontDeskSearchAndHistory(t *testing.T) {
	r, db := SetupTestServer(t)
	desk := createStaff(t, r, db, model.RoleFrontDesk, "desk@example.com")
	member := CreateAndLoginUser(t, r, SignupCreds{Name: "Ann Runner", Email: "ann@example.com", Password: "password123"})
	CreateAndLoginUser(t, r, SignupCreds{Name: "Bob Lifter", Email: "bob@example.com", Password: "password123"})

	rr := doRequest(r, requestParams{method: http.MethodGet, path: "/api/checkin/search?q=ann", token: desk.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var found []service.MemberSearchResult
	decodeData(t, rr, &found)
	require.Len(t, found, 1)

	recordCheckIn(t, r, desk.Token, member.UserID, time.Now().Add(-time.Minute))

	rr = doRequest(r, requestParams{method: http.MethodGet, path: "/api/checkin/recent", token: desk.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	path := fmt.Sprintf("/api/checkin/members/%d/history", member.UserID)
	rr = doRequest(r, requestParams{method: http.MethodGet, path: path, token: desk.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodGet, path: "/api/members/me/checkins", token: member.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodGet, path: "/api/members/me/consistency?weeks=2", token: member.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestRedeemPoints(t *testing.T) {
	r, db := SetupTestServer(t)
	admin := createStaff(t, r, db, model.RoleAdmin, "admin@example.com")
	member := CreateAndLoginUser(t, r, SignupCreds{Name: "Ann", Email: "ann@example.com", Password: "password123"})

	rr := doRequest(r, requestParams{method: http.MethodPost, path: "/api/members/me/loyalty/redeem", token: member.Token,
		body: map[string]interface{}{"points": 5}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: "/api/admin/loyalty/award", token: admin.Token,
		body: map[string]interface{}{"user_id": member.UserID, "points": 20, "description": "welcome gift"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodPost, path: "/api/members/me/loyalty/redeem", token: member.Token,
		body: map[string]interface{}{"points": 15, "description": "water bottle"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var entry model.LoyaltyTransaction
	decodeData(t, rr, &entry)
	assert.Equal(t, -15, entry.Points)
	assert.Equal(t, 5, entry.BalanceAfter)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: "/api/members/me/loyalty/redeem", token: member.Token,
		body: map[string]interface{}{"points": 6}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: "/api/admin/loyalty/reconcile", token: admin.Token,
		body: map[string]interface{}{"user_id": member.UserID}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var reports []service.ReconcileReport
	decodeData(t, rr, &reports)
	require.Len(t, reports, 1)
}
