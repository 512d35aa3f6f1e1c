package endpoint

import (
	"context"
	"strconv"
	"time"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/monitoring"
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// AdminPointsRequest moves points on a member's balance.
type AdminPointsRequest struct {
	UserID      uint   `json:"user_id" binding:"required" example:"42"`
	Points      int    `json:"points" binding:"required" example:"25"`
	Description string `json:"description" example:"birthday bonus"`
}

// ReconcileRequest selects one member, or every member when UserID is 0.
type ReconcileRequest struct {
	UserID uint `json:"user_id" example:"42"`
	Fix    bool `json:"fix" example:"true"`
}

func revenueService(c *gin.Context) (*service.RevenueService, bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return nil, false
	}
	return service.NewRevenueService(db, currentDeps()), true
}

func intQueryOrRespond(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: name + " must be a number", Err: err})
		return 0, false
	}
	return v, true
}

// DailyRevenue godoc
// @Summary      Daily revenue (admin only)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Day, YYYY-MM-DD (default today)"
// @Success      200 {object} util.APIResponse{data=service.RevenueSummary} "Daily summary"
// @Failure      400 {object} util.APIResponse "Invalid date"
// @Router       /admin/revenue/daily [get]
func DailyRevenue(c *gin.Context) {
	svc, ok := revenueService(c)
	if !ok {
		return
	}
	summary, err := svc.DailySummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondServiceError(c, "Failed to load daily revenue", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Daily revenue", Data: summary})
}

// MonthlyRevenue godoc
// @Summary      Monthly revenue (admin only)
// @Description  Completed revenue of a month bucketed per day
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        year query int false "Year (default current)"
// @Param        month query int false "Month 1-12 (default current)"
// @Success      200 {object} util.APIResponse{data=service.PeriodBreakdown} "Monthly breakdown"
// @Failure      400 {object} util.APIResponse "Invalid period"
// @Router       /admin/revenue/monthly [get]
func MonthlyRevenue(c *gin.Context) {
	now := time.Now()
	year, ok := intQueryOrRespond(c, "year", now.Year())
	if !ok {
		return
	}
	month, ok := intQueryOrRespond(c, "month", int(now.Month()))
	if !ok {
		return
	}
	svc, ok := revenueService(c)
	if !ok {
		return
	}
	breakdown, err := svc.MonthlyBreakdown(c.Request.Context(), year, month)
	if err != nil {
		respondServiceError(c, "Failed to load monthly revenue", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Monthly revenue", Data: breakdown})
}

// YearlyRevenue godoc
// @Summary      Yearly revenue (admin only)
// @Description  Completed revenue of a year bucketed per month
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        year query int false "Year (default current)"
// @Success      200 {object} util.APIResponse{data=service.PeriodBreakdown} "Yearly breakdown"
// @Failure      400 {object} util.APIResponse "Invalid year"
// @Router       /admin/revenue/yearly [get]
func YearlyRevenue(c *gin.Context) {
	year, ok := intQueryOrRespond(c, "year", time.Now().Year())
	if !ok {
		return
	}
	svc, ok := revenueService(c)
	if !ok {
		return
	}
	breakdown, err := svc.YearlyBreakdown(c.Request.Context(), year)
	if err != nil {
		respondServiceError(c, "Failed to load yearly revenue", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Yearly revenue", Data: breakdown})
}

// RevenueSources godoc
// @Summary      Revenue by source (admin only)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        from query string true "First day, YYYY-MM-DD"
// @Param        to query string true "Last day, YYYY-MM-DD"
// @Success      200 {object} util.APIResponse{data=[]service.SourceTotal} "Totals per source"
// @Failure      400 {object} util.APIResponse "Invalid range"
// @Router       /admin/revenue/sources [get]
func RevenueSources(c *gin.Context) {
	svc, ok := revenueService(c)
	if !ok {
		return
	}
	totals, err := svc.SourceBreakdown(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, "Failed to load revenue sources", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Revenue by source", Data: totals})
}

// RevenueDashboard godoc
// @Summary      Admin dashboard (admin only)
// @Description  Today, month and year revenue, active members, pending approvals and today's check-ins
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=service.DashboardStats} "Dashboard"
// @Router       /admin/revenue/dashboard [get]
func RevenueDashboard(c *gin.Context) {
	svc, ok := revenueService(c)
	if !ok {
		return
	}
	stats, err := svc.Dashboard(c.Request.Context(), time.Time{})
	if err != nil {
		respondServiceError(c, "Failed to load dashboard", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dashboard", Data: stats})
}

// RecordRevenue godoc
// @Summary      Record revenue (admin only)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body service.RevenueInput true "Revenue entry"
// @Success      201 {object} util.APIResponse{data=model.RevenueRecord} "Revenue recorded"
// @Failure      400 {object} util.APIResponse "Invalid entry"
// @Router       /admin/revenue [post]
func RecordRevenue(c *gin.Context) {
	var in service.RevenueInput
	if !bindJSONOrRespond(c, &in, "Invalid request payload") {
		return
	}
	svc, ok := revenueService(c)
	if !ok {
		return
	}
	record, err := svc.RecordRevenue(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, "Failed to record revenue", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Revenue recorded", Data: record})
}

func loyaltyService(c *gin.Context) (*service.LoyaltyService, bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return nil, false
	}
	return service.NewLoyaltyService(db, currentDeps()), true
}

// AwardPoints godoc
// @Summary      Award loyalty points (admin only)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AdminPointsRequest true "Points"
// @Success      200 {object} util.APIResponse{data=model.LoyaltyTransaction} "Points awarded"
// @Failure      400 {object} util.APIResponse "Invalid points"
// @Failure      404 {object} util.APIResponse "Member not found"
// @Router       /admin/loyalty/award [post]
func AwardPoints(c *gin.Context) {
	adjustPoints(c, "Points awarded", (*service.LoyaltyService).Award)
}

// DeductPoints godoc
// @Summary      Deduct loyalty points (admin only)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AdminPointsRequest true "Points"
// @Success      200 {object} util.APIResponse{data=model.LoyaltyTransaction} "Points deducted"
// @Failure      400 {object} util.APIResponse "Insufficient points"
// @Failure      404 {object} util.APIResponse "Member not found"
// @Router       /admin/loyalty/deduct [post]
func DeductPoints(c *gin.Context) {
	adjustPoints(c, "Points deducted", (*service.LoyaltyService).Deduct)
}

type pointsOp func(*service.LoyaltyService, context.Context, service.PointsInput) (*model.LoyaltyTransaction, error)

func adjustPoints(c *gin.Context, msg string, op pointsOp) {
	var req AdminPointsRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := loyaltyService(c)
	if !ok {
		return
	}
	entry, err := op(svc, c.Request.Context(), service.PointsInput{
		UserID:      req.UserID,
		Points:      req.Points,
		Source:      service.SourceManual,
		Description: util.SanitizeText(req.Description),
	})
	if err != nil {
		respondServiceError(c, "Failed to adjust points", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: msg, Data: entry})
}

// ReconcileLoyalty godoc
// @Summary      Reconcile loyalty balances (admin only)
// @Description  Compare cached balances with the ledger, optionally rewriting drifted caches
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ReconcileRequest true "Scope"
// @Success      200 {object} util.APIResponse{data=[]service.ReconcileReport} "Reconciliation report"
// @Failure      404 {object} util.APIResponse "Member not found"
// @Router       /admin/loyalty/reconcile [post]
func ReconcileLoyalty(c *gin.Context) {
	var req ReconcileRequest
	if c.Request.ContentLength > 0 && !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	svc, ok := loyaltyService(c)
	if !ok {
		return
	}

	var (
		reports []service.ReconcileReport
		err     error
	)
	if req.UserID != 0 {
		var report service.ReconcileReport
		report, err = svc.Reconcile(c.Request.Context(), req.UserID, req.Fix)
		reports = []service.ReconcileReport{report}
	} else {
		reports, err = svc.ReconcileAll(c.Request.Context(), req.Fix)
	}
	if err != nil {
		respondServiceError(c, "Failed to reconcile loyalty", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Loyalty reconciled", Data: reports})
}

// ErrorSummary godoc
// @Summary      HTTP error counters (admin only)
// @Description  Errors answered since start, per route and status
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]monitoring.ErrorCount} "Error summary"
// @Router       /admin/monitoring/errors [get]
func ErrorSummary(c *gin.Context) {
	summary, err := monitoring.Get().ErrorSummary()
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to read metrics", Err: err})
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Error summary", Data: summary})
}
