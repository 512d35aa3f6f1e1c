package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type bookingFixture struct {
	db      *gorm.DB
	svc     *BookingService
	trainer model.User
	alice   model.User
	bob     model.User
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()
	db := newTestDB(t)
	deps, _ := testDeps(at("2024-05-01", 8))
	f := bookingFixture{
		db:      db,
		svc:     NewBookingService(db, deps),
		trainer: createUser(t, db, "Coach", "coach@example.com", model.RoleTrainer),
		alice:   createMember(t, db, "Alice", "alice@example.com"),
		bob:     createMember(t, db, "Bob", "bob@example.com"),
	}
	_, err := f.svc.SetTrainerAvailability(context.Background(), f.trainer.ID, []SlotCell{
		{DayOfWeek: int(time.Monday), TimeSlot: "09:00", Available: true},
		{DayOfWeek: int(time.Monday), TimeSlot: "10:00", Available: true},
	})
	require.NoError(t, err)
	return f
}

func (f bookingFixture) book(client model.User, date, slot string) (*model.TrainingSession, error) {
	return f.svc.BookSession(context.Background(), BookingInput{
		TrainerID:   f.trainer.ID,
		ClientID:    client.ID,
		SessionDate: date,
		TimeSlot:    slot,
	})
}

func (f bookingFixture) cell(t *testing.T, day int, slot string) model.TrainerSchedule {
	t.Helper()
	var row model.TrainerSchedule
	require.NoError(t, f.db.Where("trainer_id = ? AND day_of_week = ? AND time_slot = ?", f.trainer.ID, day, slot).First(&row).Error)
	return row
}

func TestBookSessionClaimsSlot(t *testing.T) {
	f := newBookingFixture(t)

	session, err := f.book(f.alice, "2024-05-06", "09:00")
	require.NoError(t, err)
	assert.Equal(t, model.SessionPending, session.Status)
	assert.Equal(t, int(time.Monday), session.DayOfWeek)

	cell := f.cell(t, int(time.Monday), "09:00")
	assert.Equal(t, model.SlotBooked, cell.Status)
	require.NotNil(t, cell.BookingID)
	assert.Equal(t, session.ID, *cell.BookingID)
	require.NotNil(t, cell.ClientID)
	assert.Equal(t, f.alice.ID, *cell.ClientID)
}

func TestDoubleBookingIsRejected(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.book(f.alice, "2024-05-06", "09:00")
	require.NoError(t, err)

	_, err = f.book(f.bob, "2024-05-06", "09:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.book(f.alice, "2024-05-06", "09:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = f.book(f.bob, "2024-05-13", "09:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	var sessions int64
	require.NoError(t, f.db.Model(&model.TrainingSession{}).Count(&sessions).Error)
	assert.Equal(t, int64(1), sessions)
}

func TestBookingRequiresOpenSlot(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.book(f.alice, "2024-05-07", "09:00")
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = f.book(f.alice, "2024-04-29", "09:00")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.book(f.alice, "2024-05-06", "09:30")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.BookSession(context.Background(), BookingInput{TrainerID: f.bob.ID, ClientID: f.alice.ID, SessionDate: "2024-05-06", TimeSlot: "09:00"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectFreesSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	coach := Actor{UserID: f.trainer.ID, RoleID: model.RoleTrainer}

	session, err := f.book(f.alice, "2024-05-06", "09:00")
	require.NoError(t, err)

	rejected, err := f.svc.RejectSession(ctx, coach, session.ID, "fully booked that morning")
	require.NoError(t, err)
	assert.Equal(t, model.SessionRejected, rejected.Status)
	assert.Equal(t, "fully booked that morning", rejected.RejectionReason)
	assert.Nil(t, rejected.SlotKey)

	cell := f.cell(t, int(time.Monday), "09:00")
	assert.Equal(t, model.SlotAvailable, cell.Status)
	assert.Nil(t, cell.BookingID)

	_, err = f.book(f.bob, "2024-05-06", "09:00")
	assert.NoError(t, err)
}

func TestRejectReasonTruncatedByCharacter(t *testing.T) {
	f := newBookingFixture(t)
	coach := Actor{UserID: f.trainer.ID, RoleID: model.RoleTrainer}

	session, err := f.book(f.alice, "2024-05-06", "09:00")
	require.NoError(t, err)

	rejected, err := f.svc.RejectSession(context.Background(), coach, session.ID, strings.Repeat("é", 300))
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(rejected.RejectionReason))
	assert.Equal(t, 255, utf8.RuneCountInString(rejected.RejectionReason))
	assert.Equal(t, strings.Repeat("é", 255), rejected.RejectionReason)
}

func TestSessionLifecycle(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	coach := Actor{UserID: f.trainer.ID, RoleID: model.RoleTrainer}
	other := createUser(t, f.db, "Other Coach", "other@example.com", model.RoleTrainer)

	session, err := f.book(f.alice, "2024-05-06", "10:00")
	require.NoError(t, err)

	_, err = f.svc.CompleteSession(ctx, coach, session.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.AcceptSession(ctx, Actor{UserID: other.ID, RoleID: model.RoleTrainer}, session.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	accepted, err := f.svc.AcceptSession(ctx, coach, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionAccepted, accepted.Status)

	_, err = f.svc.AcceptSession(ctx, coach, session.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	completed, err := f.svc.CompleteSession(ctx, coach, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, completed.Status)
	assert.Equal(t, model.SlotAvailable, f.cell(t, int(time.Monday), "10:00").Status)

	_, err = f.svc.CancelSession(ctx, Actor{UserID: f.alice.ID, RoleID: model.RoleMember}, session.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.AcceptSession(ctx, coach, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientCancelsOwnSession(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	session, err := f.book(f.alice, "2024-05-06", "09:00")
	require.NoError(t, err)

	_, err = f.svc.CancelSession(ctx, Actor{UserID: f.bob.ID, RoleID: model.RoleMember}, session.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := f.svc.CancelSession(ctx, Actor{UserID: f.alice.ID, RoleID: model.RoleMember}, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCancelled, cancelled.Status)
	assert.Equal(t, model.SlotAvailable, f.cell(t, int(time.Monday), "09:00").Status)

	mine, err := f.svc.ListClientSessions(ctx, f.alice.ID, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	pending, err := f.svc.ListTrainerSessions(ctx, f.trainer.ID, model.SessionPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAvailabilityGrid(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.book(f.alice, "2024-05-06", "09:00")
	require.NoError(t, err)

	_, err = f.svc.SetTrainerAvailability(ctx, f.trainer.ID, []SlotCell{{DayOfWeek: int(time.Monday), TimeSlot: "09:00", Available: false}})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.SetTrainerAvailability(ctx, f.trainer.ID, []SlotCell{{DayOfWeek: 7, TimeSlot: "09:00", Available: true}})
	assert.ErrorIs(t, err, ErrValidation)

	grid, err := f.svc.SetTrainerAvailability(ctx, f.trainer.ID, []SlotCell{
		{DayOfWeek: int(time.Monday), TimeSlot: "10:00", Available: false},
		{DayOfWeek: int(time.Friday), TimeSlot: "18:00", Available: true},
	})
	require.NoError(t, err)
	assert.Len(t, grid, 7*len(f.svc.deps.Rules.TimeSlots))

	status := map[string]string{}
	for _, c := range grid {
		status[time.Weekday(c.DayOfWeek).String()+" "+c.TimeSlot] = c.Status
	}
	assert.Equal(t, model.SlotBooked, status["Monday 09:00"])
	assert.Equal(t, model.SlotUnavailable, status["Monday 10:00"])
	assert.Equal(t, model.SlotAvailable, status["Friday 18:00"])
	assert.Equal(t, model.SlotUnavailable, status["Sunday 06:00"])

	_, err = f.svc.TrainerWeek(ctx, f.alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
