package endpoint

import (
	"context"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// ScheduleRequest opens or closes cells of the caller's weekly grid.
type ScheduleRequest struct {
	Slots []service.SlotCell `json:"slots" binding:"required,min=1"`
}

// BookSessionRequest books a trainer for one date and slot.
type BookSessionRequest struct {
	SessionDate string `json:"session_date" binding:"required" example:"2024-05-08"`
	TimeSlot    string `json:"time_slot" binding:"required" example:"07:00"`
	Notes       string `json:"notes" example:"knee rehab"`
}

// RejectSessionRequest carries an optional reason.
type RejectSessionRequest struct {
	Reason string `json:"reason" example:"on leave"`
}

// TrainerSummary is the public face of a trainer.
type TrainerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListTrainers godoc
// @Summary      Trainers
// @Tags         Trainers
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]TrainerSummary} "Trainers"
// @Router       /trainers [get]
func ListTrainers(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	trainers := []TrainerSummary{}
	err := db.Model(&model.User{}).
		Select("id, name, email").
		Where("role_id = ? AND is_active = ?", model.RoleTrainer, true).
		Order("name").
		Scan(&trainers).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to list trainers", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Trainers", Data: trainers})
}

// TrainerSchedule godoc
// @Summary      Trainer weekly grid
// @Description  Every weekday and slot of the trainer; cells never opened read unavailable
// @Tags         Trainers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Trainer user id"
// @Success      200 {object} util.APIResponse{data=[]service.SlotView} "Schedule"
// @Failure      404 {object} util.APIResponse "Trainer not found"
// @Router       /trainers/{id}/schedule [get]
func TrainerSchedule(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	grid, err := service.NewBookingService(db, currentDeps()).TrainerWeek(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "Failed to load schedule", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Trainer schedule", Data: grid})
}

// SetMySchedule godoc
// @Summary      Set my availability
// @Description  Open or close slots of the calling trainer. Booked slots cannot be closed.
// @Tags         Trainers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ScheduleRequest true "Cells to change"
// @Success      200 {object} util.APIResponse{data=[]service.SlotView} "Schedule updated"
// @Failure      400 {object} util.APIResponse "Invalid cell"
// @Failure      409 {object} util.APIResponse "Slot is booked"
// @Router       /trainers/me/schedule [put]
func SetMySchedule(c *gin.Context) {
	var req ScheduleRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	trainerID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	grid, err := service.NewBookingService(db, currentDeps()).SetTrainerAvailability(c.Request.Context(), trainerID, req.Slots)
	if err != nil {
		respondServiceError(c, "Failed to update schedule", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Schedule updated", Data: grid})
}

// BookTrainer godoc
// @Summary      Book a trainer
// @Description  Reserve an available slot; the session starts pending until the trainer accepts
// @Tags         Trainers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Trainer user id"
// @Param        request body BookSessionRequest true "Date and slot"
// @Success      201 {object} util.APIResponse{data=model.TrainingSession} "Session booked"
// @Failure      400 {object} util.APIResponse "Invalid date or slot"
// @Failure      404 {object} util.APIResponse "Trainer not found"
// @Failure      409 {object} util.APIResponse "Slot unavailable"
// @Router       /trainers/{id}/book [post]
func BookTrainer(c *gin.Context) {
	trainerID, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var req BookSessionRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	clientID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	session, err := service.NewBookingService(db, currentDeps()).BookSession(c.Request.Context(), service.BookingInput{
		TrainerID:   trainerID,
		ClientID:    clientID,
		SessionDate: req.SessionDate,
		TimeSlot:    req.TimeSlot,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(c, "Failed to book session", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Session booked", Data: session})
}

// MyTrainerSessions godoc
// @Summary      Sessions booked with me
// @Tags         Trainers
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Success      200 {object} util.APIResponse{data=[]model.TrainingSession} "Sessions"
// @Router       /trainers/me/sessions [get]
func MyTrainerSessions(c *gin.Context) {
	trainerID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	sessions, err := service.NewBookingService(db, currentDeps()).ListTrainerSessions(c.Request.Context(), trainerID, c.Query("status"))
	if err != nil {
		respondServiceError(c, "Failed to list sessions", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Training sessions", Data: sessions})
}

type sessionAction func(ctx context.Context, svc *service.BookingService, actor service.Actor, id uint) (*model.TrainingSession, error)

func runSessionAction(c *gin.Context, msg string, action sessionAction) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	actor, ok := actorOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	session, err := action(c.Request.Context(), service.NewBookingService(db, currentDeps()), actor, id)
	if err != nil {
		respondServiceError(c, "Failed to update session", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: msg, Data: session})
}

// AcceptSession godoc
// @Summary      Accept a pending session
// @Tags         Trainers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session id"
// @Success      200 {object} util.APIResponse{data=model.TrainingSession} "Session accepted"
// @Failure      403 {object} util.APIResponse "Not the session's trainer"
// @Failure      409 {object} util.APIResponse "Status does not allow this action"
// @Router       /trainers/sessions/{id}/accept [patch]
func AcceptSession(c *gin.Context) {
	runSessionAction(c, "Session accepted", func(ctx context.Context, svc *service.BookingService, actor service.Actor, id uint) (*model.TrainingSession, error) {
		return svc.AcceptSession(ctx, actor, id)
	})
}

// RejectSession godoc
// @Summary      Reject a session
// @Description  Reject a pending or accepted session and free its slot
// @Tags         Trainers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session id"
// @Param        request body RejectSessionRequest false "Reason"
// @Success      200 {object} util.APIResponse{data=model.TrainingSession} "Session rejected"
// @Failure      403 {object} util.APIResponse "Not the session's trainer"
// @Failure      409 {object} util.APIResponse "Status does not allow this action"
// @Router       /trainers/sessions/{id}/reject [patch]
func RejectSession(c *gin.Context) {
	var req RejectSessionRequest
	if c.Request.ContentLength > 0 && !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	runSessionAction(c, "Session rejected", func(ctx context.Context, svc *service.BookingService, actor service.Actor, id uint) (*model.TrainingSession, error) {
		return svc.RejectSession(ctx, actor, id, req.Reason)
	})
}

// CompleteSession godoc
// @Summary      Complete an accepted session
// @Tags         Trainers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session id"
// @Success      200 {object} util.APIResponse{data=model.TrainingSession} "Session completed"
// @Failure      403 {object} util.APIResponse "Not the session's trainer"
// @Failure      409 {object} util.APIResponse "Status does not allow this action"
// @Router       /trainers/sessions/{id}/complete [patch]
func CompleteSession(c *gin.Context) {
	runSessionAction(c, "Session completed", func(ctx context.Context, svc *service.BookingService, actor service.Actor, id uint) (*model.TrainingSession, error) {
		return svc.CompleteSession(ctx, actor, id)
	})
}

// CancelSession godoc
// @Summary      Cancel a session
// @Description  The client or the trainer cancels a pending or accepted session, freeing its slot
// @Tags         Trainers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session id"
// @Success      200 {object} util.APIResponse{data=model.TrainingSession} "Session cancelled"
// @Failure      403 {object} util.APIResponse "Not a participant"
// @Failure      409 {object} util.APIResponse "Status does not allow this action"
// @Router       /trainers/sessions/{id}/cancel [patch]
func CancelSession(c *gin.Context) {
	runSessionAction(c, "Session cancelled", func(ctx context.Context, svc *service.BookingService, actor service.Actor, id uint) (*model.TrainingSession, error) {
		return svc.CancelSession(ctx, actor, id)
	})
}
