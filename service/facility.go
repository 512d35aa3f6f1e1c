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

// FacilityService manages bookable rooms and equipment. Each slot of a
// facility holds one booking; Capacity is informational.
type FacilityService struct {
	db   *gorm.DB
	deps Deps
}

func NewFacilityService(db *gorm.DB, deps Deps) *FacilityService {
	return &FacilityService{db: db, deps: deps.withDefaults()}
}

type FacilityInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
}

func (s *FacilityService) CreateFacility(ctx context.Context, in FacilityInput) (*model.Facility, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationf("name is required")
	}
	if in.Capacity <= 0 {
		in.Capacity = 1
	}
	facility := model.Facility{
		Name:        name,
		Description: util.SanitizeText(in.Description),
		Capacity:    in.Capacity,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(&facility).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictf("facility %q already exists", name)
		}
		return nil, classify(err)
	}
	return &facility, nil
}

func (s *FacilityService) ListFacilities(ctx context.Context, activeOnly bool) ([]model.Facility, error) {
	q := s.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	facilities := []model.Facility{}
	err := q.Find(&facilities).Error
	return facilities, classify(err)
}

func requireFacility(tx *gorm.DB, facilityID uint) error {
	var count int64
	if err := tx.Model(&model.Facility{}).Where("id = ? AND is_active = ?", facilityID, true).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFoundf("facility %d not found", facilityID)
	}
	return nil
}

// SetFacilitySlots opens or closes cells of a facility's weekly grid.
func (s *FacilityService) SetFacilitySlots(ctx context.Context, facilityID uint, cells []SlotCell) ([]SlotView, error) {
	if len(cells) == 0 {
		return nil, validationf("at least one slot is required")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFacility(tx, facilityID); err != nil {
			return err
		}
		return facilityGrid.apply(tx, s.deps.Rules, facilityID, cells, s.deps.now())
	})
	if err != nil {
		return nil, classify(err)
	}
	return s.FacilityWeek(ctx, facilityID)
}

func (s *FacilityService) FacilityWeek(ctx context.Context, facilityID uint) ([]SlotView, error) {
	db := s.db.WithContext(ctx)
	if err := requireFacility(db, facilityID); err != nil {
		return nil, classify(err)
	}
	grid, err := facilityGrid.week(db, s.deps.Rules, facilityID)
	return grid, classify(err)
}

type FacilityBookingInput struct {
	FacilityID  uint   `json:"facility_id"`
	UserID      uint   `json:"user_id"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
}

// BookFacility reserves a facility slot, with the same claim semantics as
// trainer sessions.
func (s *FacilityService) BookFacility(ctx context.Context, in FacilityBookingInput) (*model.FacilityBooking, error) {
	if in.FacilityID == 0 || in.UserID == 0 {
		return nil, validationf("facility_id and user_id are required")
	}
	date, err := bookableDate(s.deps, in.BookingDate)
	if err != nil {
		return nil, err
	}
	if !s.deps.Rules.HasTimeSlot(in.TimeSlot) {
		return nil, validationf("unknown time slot %q", in.TimeSlot)
	}

	booking := model.FacilityBooking{
		FacilityID:  in.FacilityID,
		UserID:      in.UserID,
		BookingDate: in.BookingDate,
		DayOfWeek:   int(date.Weekday()),
		TimeSlot:    in.TimeSlot,
		Status:      model.FacilityBookingConfirmed,
		SlotKey:     slotKey(in.FacilityID, in.BookingDate, in.TimeSlot),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFacility(tx, in.FacilityID); err != nil {
			return err
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlotUnavailable
			}
			return err
		}
		return facilityGrid.claim(tx, in.FacilityID, booking.DayOfWeek, booking.TimeSlot, booking.ID, in.UserID, s.deps.now())
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			s.deps.Metrics.BookingConflict("facility")
		}
		return nil, classify(err)
	}
	s.deps.publish(ctx, events.FacilityBooked, in.UserID, booking)
	return &booking, nil
}

// CancelFacilityBooking cancels a confirmed booking of the actor (or any
// booking for admins) and frees its slot.
func (s *FacilityService) CancelFacilityBooking(ctx context.Context, actor Actor, bookingID uint) (*model.FacilityBooking, error) {
	var booking model.FacilityBooking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx, "facility_bookings").First(&booking, bookingID).Error
		if err == gorm.ErrRecordNotFound {
			return notFoundf("facility booking %d not found", bookingID)
		}
		if err != nil {
			return err
		}
		if booking.UserID != actor.UserID && !actor.isAdmin() {
			return forbiddenf("not allowed to cancel booking %d", bookingID)
		}

		res := tx.Model(&model.FacilityBooking{}).
			Where("id = ? AND status = ?", bookingID, model.FacilityBookingConfirmed).
			Updates(map[string]interface{}{"status": model.FacilityBookingCancelled, "slot_key": nil})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		if err := facilityGrid.release(tx, booking.FacilityID, booking.ID, s.deps.now()); err != nil {
			return err
		}
		return tx.First(&booking, bookingID).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &booking, nil
}

// ListFacilityBookings lists a member's bookings, newest first.
func (s *FacilityService) ListFacilityBookings(ctx context.Context, userID uint) ([]model.FacilityBooking, error) {
	bookings := []model.FacilityBooking{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_date DESC, time_slot DESC").
		Find(&bookings).Error
	return bookings, classify(err)
}
