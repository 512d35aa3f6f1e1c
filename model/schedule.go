package model

import "gorm.io/gorm"

const (
	SlotAvailable   = "available"
	SlotBooked      = "booked"
	SlotUnavailable = "unavailable"
)

const (
	SessionPending   = "pending"
	SessionAccepted  = "accepted"
	SessionRejected  = "rejected"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// TrainerSchedule is one cell of a trainer's weekly grid. DayOfWeek follows
// time.Weekday (0 = Sunday).
type TrainerSchedule struct {
	gorm.Model
	TrainerID uint   `json:"trainer_id" gorm:"not null;uniqueIndex:idx_trainer_slot,priority:1"`
	DayOfWeek int    `json:"day_of_week" gorm:"not null;uniqueIndex:idx_trainer_slot,priority:2"`
	TimeSlot  string `json:"time_slot" gorm:"type:varchar(5);not null;uniqueIndex:idx_trainer_slot,priority:3"`
	Status    string `json:"status" gorm:"type:varchar(20);not null;default:available"`
	BookingID *uint  `json:"booking_id"`
	ClientID  *uint  `json:"client_id"`
}

// TrainingSession is a booked personal training. SlotKey is set while the
// session holds its slot and is cleared once the slot is released, so the
// unique index only covers live bookings.
type TrainingSession struct {
	gorm.Model
	TrainerID       uint    `json:"trainer_id" gorm:"not null;index"`
	ClientID        uint    `json:"client_id" gorm:"not null;index"`
	SessionDate     string  `json:"session_date" gorm:"type:varchar(10);not null"`
	DayOfWeek       int     `json:"day_of_week" gorm:"not null"`
	TimeSlot        string  `json:"time_slot" gorm:"type:varchar(5);not null"`
	Status          string  `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	Notes           string  `json:"notes" gorm:"type:text"`
	RejectionReason string  `json:"rejection_reason" gorm:"type:varchar(255)"`
	SlotKey         *string `json:"-" gorm:"type:varchar(64);uniqueIndex"`
}

type Facility struct {
	gorm.Model
	Name        string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Capacity    int    `json:"capacity" gorm:"not null;default:1"`
	IsActive    bool   `json:"is_active" gorm:"not null;default:true"`
}

type FacilitySlot struct {
	gorm.Model
	FacilityID uint   `json:"facility_id" gorm:"not null;uniqueIndex:idx_facility_slot,priority:1"`
	DayOfWeek  int    `json:"day_of_week" gorm:"not null;uniqueIndex:idx_facility_slot,priority:2"`
	TimeSlot   string `json:"time_slot" gorm:"type:varchar(5);not null;uniqueIndex:idx_facility_slot,priority:3"`
	Status     string `json:"status" gorm:"type:varchar(20);not null;default:available"`
	BookingID  *uint  `json:"booking_id"`
	ClientID   *uint  `json:"client_id"`
}

const (
	FacilityBookingConfirmed = "confirmed"
	FacilityBookingCancelled = "cancelled"
	FacilityBookingCompleted = "completed"
)

type FacilityBooking struct {
	gorm.Model
	FacilityID  uint    `json:"facility_id" gorm:"not null;index"`
	UserID      uint    `json:"user_id" gorm:"not null;index"`
	BookingDate string  `json:"booking_date" gorm:"type:varchar(10);not null"`
	DayOfWeek   int     `json:"day_of_week" gorm:"not null"`
	TimeSlot    string  `json:"time_slot" gorm:"type:varchar(5);not null"`
	Status      string  `json:"status" gorm:"type:varchar(20);not null;default:confirmed"`
	SlotKey     *string `json:"-" gorm:"type:varchar(64);uniqueIndex"`
}
