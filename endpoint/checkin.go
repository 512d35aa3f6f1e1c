package endpoint

import (
	"time"

	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// CheckInRequest is submitted by front desk staff. CheckInTime defaults to
// the server clock.
type CheckInRequest struct {
	UserID      uint       `json:"user_id" binding:"required" example:"42"`
	CheckInType string     `json:"check_in_type" example:"front_desk"`
	CheckInTime *time.Time `json:"check_in_time" example:"2024-05-06T07:30:00Z"`
	Notes       string     `json:"notes" example:"forgot membership card"`
}

// SearchMembers godoc
// @Summary      Search members for check-in
// @Description  Find active members by id, email or name, best matches first
// @Tags         CheckIn
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Member id, email or name"
// @Param        limit query int false "Maximum results"
// @Success      200 {object} util.APIResponse{data=[]service.MemberSearchResult} "Members found"
// @Failure      400 {object} util.APIResponse "Missing search term"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /checkin/search [get]
func SearchMembers(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	svc := service.NewCheckInService(db, currentDeps())
	results, err := svc.SearchActiveMembers(c.Request.Context(), c.Query("q"), parsePositiveInt(c.Query("limit"), 0, 0))
	if err != nil {
		respondServiceError(c, "Failed to search members", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Members found", Data: results})
}

// RecordCheckIn godoc
// @Summary      Record a member check-in
// @Description  Store a visit, update streak and visit counters and award the weekly consistency bonus when earned
// @Tags         CheckIn
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CheckInRequest true "Check-in"
// @Success      201 {object} util.APIResponse{data=service.CheckInResult} "Check-in recorded"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Member not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /checkin [post]
func RecordCheckIn(c *gin.Context) {
	var req CheckInRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	staffID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	in := service.CheckInInput{
		UserID:      req.UserID,
		CheckInType: req.CheckInType,
		RecordedBy:  &staffID,
		Notes:       req.Notes,
	}
	if req.CheckInTime != nil {
		in.CheckInTime = *req.CheckInTime
	}

	result, err := service.NewCheckInService(db, currentDeps()).RecordCheckIn(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, "Failed to record check-in", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Check-in recorded", Data: result})
}

// RecentCheckIns godoc
// @Summary      Recent check-ins
// @Description  Latest check-ins of a day, today by default
// @Tags         CheckIn
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Day, YYYY-MM-DD"
// @Param        limit query int false "Maximum rows (default 20, max 100)"
// @Success      200 {object} util.APIResponse{data=[]service.RecentCheckIn} "Recent check-ins"
// @Failure      400 {object} util.APIResponse "Invalid date"
// @Router       /checkin/recent [get]
func RecentCheckIns(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	rows, err := service.NewCheckInService(db, currentDeps()).GetRecentCheckIns(c.Request.Context(), service.RecentFilter{
		Date:  c.Query("date"),
		Limit: parsePositiveInt(c.Query("limit"), 0, 0),
	})
	if err != nil {
		respondServiceError(c, "Failed to list check-ins", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Recent check-ins", Data: rows})
}

// MemberCheckInHistory godoc
// @Summary      Member check-in history
// @Tags         CheckIn
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member user id"
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Rows to skip"
// @Success      200 {object} util.APIResponse{data=object} "Visits"
// @Failure      400 {object} util.APIResponse "Invalid filter"
// @Router       /checkin/members/{id}/history [get]
func MemberCheckInHistory(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	respondCheckInHistory(c, id)
}

// MyCheckIns godoc
// @Summary      My check-in history
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Rows to skip"
// @Success      200 {object} util.APIResponse{data=object} "Visits"
// @Router       /members/me/checkins [get]
func MyCheckIns(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	respondCheckInHistory(c, userID)
}

func respondCheckInHistory(c *gin.Context, userID uint) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	visits, total, err := service.NewCheckInService(db, currentDeps()).GetMemberCheckInHistory(c.Request.Context(), userID, service.HistoryFilter{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  parsePositiveInt(c.Query("limit"), 0, 0),
		Offset: parsePositiveInt(c.Query("offset"), 0, 0),
	})
	if err != nil {
		respondServiceError(c, "Failed to load check-in history", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Check-in history",
		Data: map[string]interface{}{"visits": visits, "total": total},
	})
}

// MemberConsistency godoc
// @Summary      Member consistency summary
// @Description  Progress in the current week plus recently evaluated weeks
// @Tags         CheckIn
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member user id"
// @Param        weeks query int false "Evaluated weeks to include (default 8)"
// @Success      200 {object} util.APIResponse{data=service.ConsistencySummary} "Consistency"
// @Failure      404 {object} util.APIResponse "Member not found"
// @Router       /checkin/members/{id}/consistency [get]
func MemberConsistency(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	respondConsistency(c, id)
}

// MyConsistency godoc
// @Summary      My consistency summary
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        weeks query int false "Evaluated weeks to include (default 8)"
// @Success      200 {object} util.APIResponse{data=service.ConsistencySummary} "Consistency"
// @Failure      404 {object} util.APIResponse "Member profile not found"
// @Router       /members/me/consistency [get]
func MyConsistency(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	respondConsistency(c, userID)
}

func respondConsistency(c *gin.Context, userID uint) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	weeks := parsePositiveInt(c.Query("weeks"), 8, 52)
	summary, err := service.NewCheckInService(db, currentDeps()).GetMemberConsistency(c.Request.Context(), userID, weeks, time.Time{})
	if err != nil {
		respondServiceError(c, "Failed to load consistency", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Consistency summary", Data: summary})
}
