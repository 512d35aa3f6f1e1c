package endpoint

import (
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// BookFacilityRequest books a facility for one date and slot.
type BookFacilityRequest struct {
	BookingDate string `json:"booking_date" binding:"required" example:"2024-05-08"`
	TimeSlot    string `json:"time_slot" binding:"required" example:"18:00"`
}

func facilityService(c *gin.Context) (*service.FacilityService, bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return nil, false
	}
	return service.NewFacilityService(db, currentDeps()), true
}

// ListFacilities godoc
// @Summary      Facilities
// @Tags         Facilities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.Facility} "Facilities"
// @Router       /facilities [get]
func ListFacilities(c *gin.Context) {
	svc, ok := facilityService(c)
	if !ok {
		return
	}
	facilities, err := svc.ListFacilities(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, "Failed to list facilities", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Facilities", Data: facilities})
}

// CreateFacility godoc
// @Summary      Create facility (admin only)
// @Tags         Facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body service.FacilityInput true "Facility"
// @Success      201 {object} util.APIResponse{data=model.Facility} "Facility created"
// @Failure      400 {object} util.APIResponse "Invalid facility"
// @Failure      409 {object} util.APIResponse "Duplicate name"
// @Router       /facilities [post]
func CreateFacility(c *gin.Context) {
	var in service.FacilityInput
	if !bindJSONOrRespond(c, &in, "Invalid request payload") {
		return
	}
	svc, ok := facilityService(c)
	if !ok {
		return
	}
	facility, err := svc.CreateFacility(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, "Failed to create facility", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Facility created", Data: facility})
}

// FacilitySlots godoc
// @Summary      Facility weekly grid
// @Tags         Facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Facility id"
// @Success      200 {object} util.APIResponse{data=[]service.SlotView} "Slots"
// @Failure      404 {object} util.APIResponse "Facility not found"
// @Router       /facilities/{id}/slots [get]
func FacilitySlots(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	svc, ok := facilityService(c)
	if !ok {
		return
	}
	grid, err := svc.FacilityWeek(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "Failed to load facility slots", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Facility slots", Data: grid})
}

// SetFacilitySlots godoc
// @Summary      Set facility availability (admin only)
// @Tags         Facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Facility id"
// @Param        request body ScheduleRequest true "Cells to change"
// @Success      200 {object} util.APIResponse{data=[]service.SlotView} "Slots updated"
// @Failure      400 {object} util.APIResponse "Invalid cell"
// @Failure      409 {object} util.APIResponse "Slot is booked"
// @Router       /facilities/{id}/slots [put]
func SetFacilitySlots(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var req ScheduleRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := facilityService(c)
	if !ok {
		return
	}
	grid, err := svc.SetFacilitySlots(c.Request.Context(), id, req.Slots)
	if err != nil {
		respondServiceError(c, "Failed to update facility slots", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Facility slots updated", Data: grid})
}

// BookFacility godoc
// @Summary      Book a facility
// @Tags         Facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Facility id"
// @Param        request body BookFacilityRequest true "Date and slot"
// @Success      201 {object} util.APIResponse{data=model.FacilityBooking} "Facility booked"
// @Failure      400 {object} util.APIResponse "Invalid date or slot"
// @Failure      404 {object} util.APIResponse "Facility not found"
// @Failure      409 {object} util.APIResponse "Slot unavailable"
// @Router       /facilities/{id}/book [post]
func BookFacility(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var req BookFacilityRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := facilityService(c)
	if !ok {
		return
	}
	booking, err := svc.BookFacility(c.Request.Context(), service.FacilityBookingInput{
		FacilityID:  id,
		UserID:      userID,
		BookingDate: req.BookingDate,
		TimeSlot:    req.TimeSlot,
	})
	if err != nil {
		respondServiceError(c, "Failed to book facility", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Facility booked", Data: booking})
}

// CancelFacilityBooking godoc
// @Summary      Cancel a facility booking
// @Tags         Facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Booking id"
// @Success      200 {object} util.APIResponse{data=model.FacilityBooking} "Booking cancelled"
// @Failure      403 {object} util.APIResponse "Not the booking owner"
// @Failure      409 {object} util.APIResponse "Booking is not confirmed"
// @Router       /facilities/bookings/{id}/cancel [patch]
func CancelFacilityBooking(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	actor, ok := actorOrRespond(c)
	if !ok {
		return
	}
	svc, ok := facilityService(c)
	if !ok {
		return
	}
	booking, err := svc.CancelFacilityBooking(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, "Failed to cancel booking", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Booking cancelled", Data: booking})
}

// MyFacilityBookings godoc
// @Summary      My facility bookings
// @Tags         Facilities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.FacilityBooking} "Bookings"
// @Router       /facilities/me/bookings [get]
func MyFacilityBookings(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := facilityService(c)
	if !ok {
		return
	}
	bookings, err := svc.ListFacilityBookings(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "Failed to list bookings", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Facility bookings", Data: bookings})
}
