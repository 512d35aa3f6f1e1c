package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ariebrainware/gym-portal/events"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"gorm.io/gorm"
)

// BookingService manages trainer availability and personal training
// sessions.
type BookingService struct {
	db   *gorm.DB
	deps Deps
}

func NewBookingService(db *gorm.DB, deps Deps) *BookingService {
	return &BookingService{db: db, deps: deps.withDefaults()}
}

// SetTrainerAvailability opens or closes cells of a trainer's weekly grid.
func (s *BookingService) SetTrainerAvailability(ctx context.Context, trainerID uint, cells []SlotCell) ([]SlotView, error) {
	if len(cells) == 0 {
		return nil, validationf("at least one slot is required")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireStaff(tx, trainerID, model.RoleTrainer); err != nil {
			return err
		}
		return trainerGrid.apply(tx, s.deps.Rules, trainerID, cells, s.deps.now())
	})
	if err != nil {
		return nil, classify(err)
	}
	return s.TrainerWeek(ctx, trainerID)
}

// TrainerWeek returns the full weekly grid of a trainer.
func (s *BookingService) TrainerWeek(ctx context.Context, trainerID uint) ([]SlotView, error) {
	db := s.db.WithContext(ctx)
	if err := requireStaff(db, trainerID, model.RoleTrainer); err != nil {
		return nil, classify(err)
	}
	grid, err := trainerGrid.week(db, s.deps.Rules, trainerID)
	return grid, classify(err)
}

type BookingInput struct {
	TrainerID   uint   `json:"trainer_id"`
	ClientID    uint   `json:"client_id"`
	SessionDate string `json:"session_date"`
	TimeSlot    string `json:"time_slot"`
	Notes       string `json:"notes"`
}

// BookSession reserves a trainer slot for a member. The session row and the
// slot claim commit together; a taken slot yields ErrSlotUnavailable.
func (s *BookingService) BookSession(ctx context.Context, in BookingInput) (*model.TrainingSession, error) {
	if in.TrainerID == 0 || in.ClientID == 0 {
		return nil, validationf("trainer_id and client_id are required")
	}
	if in.TrainerID == in.ClientID {
		return nil, validationf("trainers cannot book themselves")
	}
	date, err := bookableDate(s.deps, in.SessionDate)
	if err != nil {
		return nil, err
	}
	if !s.deps.Rules.HasTimeSlot(in.TimeSlot) {
		return nil, validationf("unknown time slot %q", in.TimeSlot)
	}

	session := model.TrainingSession{
		TrainerID:   in.TrainerID,
		ClientID:    in.ClientID,
		SessionDate: in.SessionDate,
		DayOfWeek:   int(date.Weekday()),
		TimeSlot:    in.TimeSlot,
		Status:      model.SessionPending,
		Notes:       util.SanitizeText(in.Notes),
		SlotKey:     slotKey(in.TrainerID, in.SessionDate, in.TimeSlot),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireStaff(tx, in.TrainerID, model.RoleTrainer); err != nil {
			return err
		}
		if err := tx.Create(&session).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlotUnavailable
			}
			return err
		}
		return trainerGrid.claim(tx, in.TrainerID, session.DayOfWeek, session.TimeSlot, session.ID, in.ClientID, s.deps.now())
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			s.deps.Metrics.BookingConflict("trainer")
		}
		return nil, classify(err)
	}
	s.deps.publish(ctx, events.SessionBooked, in.ClientID, session)
	return &session, nil
}

// Actor identifies who asks for a state change.
type Actor struct {
	UserID uint
	RoleID uint32
}

func (a Actor) isAdmin() bool { return a.RoleID == model.RoleAdmin }

type sessionTransition struct {
	from    []string
	to      string
	release bool
	allowed func(Actor, model.TrainingSession) bool
	extra   map[string]interface{}
}

func trainerOnly(a Actor, s model.TrainingSession) bool {
	return a.UserID == s.TrainerID || a.isAdmin()
}

func trainerOrClient(a Actor, s model.TrainingSession) bool {
	return a.UserID == s.TrainerID || a.UserID == s.ClientID || a.isAdmin()
}

func (s *BookingService) AcceptSession(ctx context.Context, actor Actor, sessionID uint) (*model.TrainingSession, error) {
	return s.transition(ctx, actor, sessionID, sessionTransition{
		from:    []string{model.SessionPending},
		to:      model.SessionAccepted,
		allowed: trainerOnly,
	})
}

// maxReasonLen is counted in characters to match varchar(255).
const maxReasonLen = 255

func (s *BookingService) RejectSession(ctx context.Context, actor Actor, sessionID uint, reason string) (*model.TrainingSession, error) {
	reason = strings.TrimSpace(util.SanitizeText(reason))
	if r := []rune(reason); len(r) > maxReasonLen {
		reason = string(r[:maxReasonLen])
	}
	return s.transition(ctx, actor, sessionID, sessionTransition{
		from:    []string{model.SessionPending, model.SessionAccepted},
		to:      model.SessionRejected,
		release: true,
		allowed: trainerOnly,
		extra:   map[string]interface{}{"rejection_reason": reason},
	})
}

func (s *BookingService) CompleteSession(ctx context.Context, actor Actor, sessionID uint) (*model.TrainingSession, error) {
	return s.transition(ctx, actor, sessionID, sessionTransition{
		from:    []string{model.SessionAccepted},
		to:      model.SessionCompleted,
		release: true,
		allowed: trainerOnly,
	})
}

func (s *BookingService) CancelSession(ctx context.Context, actor Actor, sessionID uint) (*model.TrainingSession, error) {
	return s.transition(ctx, actor, sessionID, sessionTransition{
		from:    []string{model.SessionPending, model.SessionAccepted},
		to:      model.SessionCancelled,
		release: true,
		allowed: trainerOrClient,
	})
}

func (s *BookingService) transition(ctx context.Context, actor Actor, sessionID uint, t sessionTransition) (*model.TrainingSession, error) {
	var session model.TrainingSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx, "training_sessions").First(&session, sessionID).Error
		if err == gorm.ErrRecordNotFound {
			return notFoundf("training session %d not found", sessionID)
		}
		if err != nil {
			return err
		}
		if !t.allowed(actor, session) {
			return forbiddenf("not allowed to change session %d", sessionID)
		}

		changes := map[string]interface{}{"status": t.to}
		for k, v := range t.extra {
			changes[k] = v
		}
		if t.release {
			changes["slot_key"] = nil
		}
		res := tx.Model(&model.TrainingSession{}).
			Where("id = ? AND status IN ?", sessionID, t.from).
			Updates(changes)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		if t.release {
			if err := trainerGrid.release(tx, session.TrainerID, session.ID, s.deps.now()); err != nil {
				return err
			}
		}
		return tx.First(&session, sessionID).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	s.deps.publish(ctx, events.SessionStatusChanged, session.ClientID, session)
	return &session, nil
}

// ListTrainerSessions lists the sessions of a trainer, optionally by status.
func (s *BookingService) ListTrainerSessions(ctx context.Context, trainerID uint, status string) ([]model.TrainingSession, error) {
	return s.listSessions(ctx, "trainer_id", trainerID, status)
}

// ListClientSessions lists the sessions booked by a member.
func (s *BookingService) ListClientSessions(ctx context.Context, clientID uint, status string) ([]model.TrainingSession, error) {
	return s.listSessions(ctx, "client_id", clientID, status)
}

func (s *BookingService) listSessions(ctx context.Context, column string, id uint, status string) ([]model.TrainingSession, error) {
	q := s.db.WithContext(ctx).Where(column+" = ?", id)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	sessions := []model.TrainingSession{}
	err := q.Order("session_date DESC, time_slot DESC").Find(&sessions).Error
	return sessions, classify(err)
}

// requireStaff checks that userID is an active user holding roleID.
func requireStaff(tx *gorm.DB, userID uint, roleID uint32) error {
	var count int64
	err := tx.Model(&model.User{}).
		Where("id = ? AND role_id = ? AND is_active = ?", userID, roleID, true).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return notFoundf("%s %d not found", model.RoleName(roleID), userID)
	}
	return nil
}
