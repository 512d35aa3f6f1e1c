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

func tomorrow() (string, int) {
	d := time.Now().UTC().AddDate(0, 0, 1)
	return d.Format(service.DateLayout), int(d.Weekday())
}

func slotStatus(t *testing.T, grid []service.SlotView, day int, slot string) string {
	t.Helper()
	for _, v := range grid {
		if v.DayOfWeek == day && v.TimeSlot == slot {
			return v.Status
		}
	}
	t.Fatalf("cell %d %s missing from grid", day, slot)
	return ""
}

func TestTrainerBookingLifecycle(t *testing.T) {
	r, db := SetupTestServer(t)
	trainer := createStaff(t, r, db, model.RoleTrainer, "coach@example.com")
	alice := CreateAndLoginUser(t, r, SignupCreds{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	bob := CreateAndLoginUser(t, r, SignupCreds{Name: "Bob", Email: "bob@example.com", Password: "password123"})
	date, day := tomorrow()

	rr := doRequest(r, requestParams{method: http.MethodPut, path: "/api/trainers/me/schedule", token: trainer.Token, body: map[string]interface{}{
		"slots": []service.SlotCell{{DayOfWeek: day, TimeSlot: "07:00", Available: true}},
	}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodGet, path: "/api/trainers", token: alice.Token})
	require.Equal(t, http.StatusOK, rr.Code)
	var trainers []map[string]interface{}
	decodeData(t, rr, &trainers)
	assert.Len(t, trainers, 1)

	bookPath := fmt.Sprintf("/api/trainers/%d/book", trainer.UserID)
	rr = doRequest(r, requestParams{method: http.MethodPost, path: bookPath, token: alice.Token, body: map[string]string{
		"session_date": date, "time_slot": "07:00",
	}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var booked model.TrainingSession
	decodeData(t, rr, &booked)
	assert.Equal(t, model.SessionPending, booked.Status)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: bookPath, token: bob.Token, body: map[string]string{
		"session_date": date, "time_slot": "07:00",
	}})
	assert.Equal(t, http.StatusConflict, rr.Code)

	schedulePath := fmt.Sprintf("/api/trainers/%d/schedule", trainer.UserID)
	rr = doRequest(r, requestParams{method: http.MethodGet, path: schedulePath, token: bob.Token})
	require.Equal(t, http.StatusOK, rr.Code)
	var grid []service.SlotView
	decodeData(t, rr, &grid)
	assert.Equal(t, model.SlotBooked, slotStatus(t, grid, day, "07:00"))

	acceptPath := fmt.Sprintf("/api/trainers/sessions/%d/accept", booked.ID)
	rr = doRequest(r, requestParams{method: http.MethodPatch, path: acceptPath, token: alice.Token})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPatch, path: acceptPath, token: trainer.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodPatch, path: acceptPath, token: trainer.Token})
	assert.Equal(t, http.StatusConflict, rr.Code)

	cancelPath := fmt.Sprintf("/api/trainers/sessions/%d/cancel", booked.ID)
	rr = doRequest(r, requestParams{method: http.MethodPatch, path: cancelPath, token: bob.Token})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPatch, path: cancelPath, token: alice.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodGet, path: schedulePath, token: bob.Token})
	decodeData(t, rr, &grid)
	assert.Equal(t, model.SlotAvailable, slotStatus(t, grid, day, "07:00"))

	rr = doRequest(r, requestParams{method: http.MethodPost, path: bookPath, token: bob.Token, body: map[string]string{
		"session_date": date, "time_slot": "07:00",
	}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodGet, path: "/api/trainers/me/sessions?status=pending", token: trainer.Token})
	require.Equal(t, http.StatusOK, rr.Code)
	var sessions []model.TrainingSession
	decodeData(t, rr, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, bob.UserID, sessions[0].ClientID)
}

func TestBookingRejectsPastDatesAndClosedSlots(t *testing.T) {
	r, db := SetupTestServer(t)
	trainer := createStaff(t, r, db, model.RoleTrainer, "coach@example.com")
	member := CreateAndLoginUser(t, r, SignupCreds{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	date, _ := tomorrow()
	bookPath := fmt.Sprintf("/api/trainers/%d/book", trainer.UserID)

	rr := doRequest(r, requestParams{method: http.MethodPost, path: bookPath, token: member.Token, body: map[string]string{
		"session_date": "2000-01-03", "time_slot": "07:00",
	}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: bookPath, token: member.Token, body: map[string]string{
		"session_date": date, "time_slot": "07:00",
	}})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: fmt.Sprintf("/api/trainers/%d/book", member.UserID), token: member.Token,
		body: map[string]string{"session_date": date, "time_slot": "07:00"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPut, path: "/api/trainers/me/schedule", token: member.Token, body: map[string]interface{}{
		"slots": []service.SlotCell{{DayOfWeek: 1, TimeSlot: "07:00", Available: true}},
	}})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestFacilityBooking(t *testing.T) {
	r, db := SetupTestServer(t)
	admin := createStaff(t, r, db, model.RoleAdmin, "admin@example.com")
	alice := CreateAndLoginUser(t, r, SignupCreds{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	bob := CreateAndLoginUser(t, r, SignupCreds{Name: "Bob", Email: "bob@example.com", Password: "password123"})
	date, day := tomorrow()

	rr := doRequest(r, requestParams{method: http.MethodPost, path: "/api/facilities", token: alice.Token,
		body: map[string]interface{}{"name": "Squash Court", "capacity": 2}})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: "/api/facilities", token: admin.Token,
		body: map[string]interface{}{"name": "Squash Court", "capacity": 2}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var facility model.Facility
	decodeData(t, rr, &facility)

	slotsPath := fmt.Sprintf("/api/facilities/%d/slots", facility.ID)
	rr = doRequest(r, requestParams{method: http.MethodPut, path: slotsPath, token: admin.Token, body: map[string]interface{}{
		"slots": []service.SlotCell{{DayOfWeek: day, TimeSlot: "18:00", Available: true}},
	}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	bookPath := fmt.Sprintf("/api/facilities/%d/book", facility.ID)
	rr = doRequest(r, requestParams{method: http.MethodPost, path: bookPath, token: alice.Token,
		body: map[string]string{"booking_date": date, "time_slot": "18:00"}})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var booking model.FacilityBooking
	decodeData(t, rr, &booking)

	rr = doRequest(r, requestParams{method: http.MethodPost, path: bookPath, token: bob.Token,
		body: map[string]string{"booking_date": date, "time_slot": "18:00"}})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPut, path: slotsPath, token: admin.Token, body: map[string]interface{}{
		"slots": []service.SlotCell{{DayOfWeek: day, TimeSlot: "18:00", Available: false}},
	}})
	assert.Equal(t, http.StatusConflict, rr.Code)

	cancelPath := fmt.Sprintf("/api/facilities/bookings/%d/cancel", booking.ID)
	rr = doRequest(r, requestParams{method: http.MethodPatch, path: cancelPath, token: bob.Token})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodPatch, path: cancelPath, token: alice.Token})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doRequest(r, requestParams{method: http.MethodPatch, path: cancelPath, token: alice.Token})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doRequest(r, requestParams{method: http.MethodGet, path: "/api/facilities/me/bookings", token: alice.Token})
	require.Equal(t, http.StatusOK, rr.Code)
	var mine []model.FacilityBooking
	decodeData(t, rr, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, model.FacilityBookingCancelled, mine[0].Status)
}
