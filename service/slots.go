package service

import (
	"fmt"
	"time"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/model"
	"gorm.io/gorm"
)

// slotTable describes a weekly grid table. Trainer schedules and facility
// slots share the same columns apart from the owner column.
type slotTable struct {
	table       string
	ownerColumn string
	newRow      func(owner uint, day int, slot, status string) interface{}
}

var trainerGrid = slotTable{
	table:       "trainer_schedules",
	ownerColumn: "trainer_id",
	newRow: func(owner uint, day int, slot, status string) interface{} {
		return &model.TrainerSchedule{TrainerID: owner, DayOfWeek: day, TimeSlot: slot, Status: status}
	},
}

var facilityGrid = slotTable{
	table:       "facility_slots",
	ownerColumn: "facility_id",
	newRow: func(owner uint, day int, slot, status string) interface{} {
		return &model.FacilitySlot{FacilityID: owner, DayOfWeek: day, TimeSlot: slot, Status: status}
	},
}

// SlotCell is one requested change to a weekly grid.
type SlotCell struct {
	DayOfWeek int    `json:"day_of_week"`
	TimeSlot  string `json:"time_slot"`
	Available bool   `json:"available"`
}

// SlotView is one cell of a weekly grid as stored.
type SlotView struct {
	DayOfWeek int    `json:"day_of_week"`
	TimeSlot  string `json:"time_slot"`
	Status    string `json:"status"`
	BookingID *uint  `json:"booking_id,omitempty"`
	ClientID  *uint  `json:"client_id,omitempty"`
}

func slotKey(owner uint, date, slot string) *string {
	key := fmt.Sprintf("%d:%s:%s", owner, date, slot)
	return &key
}

func (t slotTable) scope(tx *gorm.DB, owner uint) *gorm.DB {
	return tx.Table(t.table).Where(t.ownerColumn+" = ? AND deleted_at IS NULL", owner)
}

// claim moves an available cell to booked. Only one concurrent caller can
// win a cell; the others get ErrSlotUnavailable.
func (t slotTable) claim(tx *gorm.DB, owner uint, day int, slot string, bookingID, clientID uint, now time.Time) error {
	res := t.scope(tx, owner).
		Where("day_of_week = ? AND time_slot = ? AND status = ?", day, slot, model.SlotAvailable).
		Updates(map[string]interface{}{
			"status":     model.SlotBooked,
			"booking_id": bookingID,
			"client_id":  clientID,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSlotUnavailable
	}
	return nil
}

// release frees the cell held by bookingID, if any.
func (t slotTable) release(tx *gorm.DB, owner, bookingID uint, now time.Time) error {
	return t.scope(tx, owner).
		Where("booking_id = ? AND status = ?", bookingID, model.SlotBooked).
		Updates(map[string]interface{}{
			"status":     model.SlotAvailable,
			"booking_id": nil,
			"client_id":  nil,
			"updated_at": now,
		}).Error
}

// apply writes the requested cells. A booked cell cannot be made
// unavailable and is left untouched when marked available.
func (t slotTable) apply(tx *gorm.DB, rules config.Rules, owner uint, cells []SlotCell, now time.Time) error {
	for _, cell := range cells {
		if cell.DayOfWeek < 0 || cell.DayOfWeek > 6 {
			return validationf("day_of_week must be between 0 and 6, got %d", cell.DayOfWeek)
		}
		if !rules.HasTimeSlot(cell.TimeSlot) {
			return validationf("unknown time slot %q", cell.TimeSlot)
		}

		status := model.SlotUnavailable
		if cell.Available {
			status = model.SlotAvailable
		}

		var current []SlotView
		err := t.scope(tx, owner).
			Select("day_of_week, time_slot, status, booking_id, client_id").
			Where("day_of_week = ? AND time_slot = ?", cell.DayOfWeek, cell.TimeSlot).
			Limit(1).
			Scan(&current).Error
		if err != nil {
			return err
		}

		if len(current) == 0 {
			if err := tx.Create(t.newRow(owner, cell.DayOfWeek, cell.TimeSlot, status)).Error; err != nil {
				return err
			}
			continue
		}
		if current[0].Status == model.SlotBooked {
			if !cell.Available {
				return conflictf("slot %s on day %d is booked", cell.TimeSlot, cell.DayOfWeek)
			}
			continue
		}
		if current[0].Status == status {
			continue
		}
		err = t.scope(tx, owner).
			Where("day_of_week = ? AND time_slot = ? AND status <> ?", cell.DayOfWeek, cell.TimeSlot, model.SlotBooked).
			Updates(map[string]interface{}{"status": status, "updated_at": now}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// week returns the full grid of owner: every day and every configured slot,
// with cells that were never set reported as unavailable.
func (t slotTable) week(db *gorm.DB, rules config.Rules, owner uint) ([]SlotView, error) {
	var stored []SlotView
	err := t.scope(db, owner).
		Select("day_of_week, time_slot, status, booking_id, client_id").
		Scan(&stored).Error
	if err != nil {
		return nil, err
	}

	byCell := make(map[string]SlotView, len(stored))
	for _, v := range stored {
		byCell[fmt.Sprintf("%d-%s", v.DayOfWeek, v.TimeSlot)] = v
	}

	grid := make([]SlotView, 0, 7*len(rules.TimeSlots))
	for day := 0; day < 7; day++ {
		for _, slot := range rules.TimeSlots {
			if v, ok := byCell[fmt.Sprintf("%d-%s", day, slot)]; ok {
				grid = append(grid, v)
				continue
			}
			grid = append(grid, SlotView{DayOfWeek: day, TimeSlot: slot, Status: model.SlotUnavailable})
		}
	}
	return grid, nil
}

// bookableDate parses a booking date and rejects dates before today.
func bookableDate(deps Deps, date string) (time.Time, error) {
	t, err := ParseDate(date, deps.Location)
	if err != nil {
		return time.Time{}, err
	}
	if date < deps.today() {
		return time.Time{}, validationf("cannot book a date in the past")
	}
	return t, nil
}
