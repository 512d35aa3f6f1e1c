package endpoint

import (
	"time"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// PlanRequest selects a monthly plan.
type PlanRequest struct {
	PlanID uint `json:"plan_id" binding:"required" example:"2"`
}

// PlanChangeResponse is the pending subscription with the quote it was priced by.
type PlanChangeResponse struct {
	Subscription *model.Subscription      `json:"subscription"`
	Quote        *service.PlanChangeQuote `json:"quote"`
}

func membershipService(c *gin.Context) (*service.MembershipService, bool) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return nil, false
	}
	return service.NewMembershipService(db, currentDeps()), true
}

// ListPlans godoc
// @Summary      Monthly plans
// @Description  Plans currently on sale
// @Tags         Membership
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.MonthlyPlan} "Plans"
// @Router       /members/plans [get]
func ListPlans(c *gin.Context) {
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	plans, err := svc.ListPlans(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, "Failed to list plans", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Plans", Data: plans})
}

// Checkout godoc
// @Summary      Buy a plan
// @Description  Create a pending subscription awaiting admin approval
// @Tags         Membership
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PlanRequest true "Plan"
// @Success      201 {object} util.APIResponse{data=model.Subscription} "Subscription requested"
// @Failure      400 {object} util.APIResponse "Invalid plan"
// @Failure      409 {object} util.APIResponse "A request is already pending"
// @Router       /members/checkout [post]
func Checkout(c *gin.Context) {
	var req PlanRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	sub, err := svc.Checkout(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		respondServiceError(c, "Failed to create subscription", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Subscription requested", Data: sub})
}

// QuotePlanChange godoc
// @Summary      Quote a plan change
// @Description  Price a switch to another plan, crediting the unused part of the active subscription
// @Tags         Membership
// @Produce      json
// @Security     BearerAuth
// @Param        plan_id query int true "Target plan"
// @Success      200 {object} util.APIResponse{data=service.PlanChangeQuote} "Quote"
// @Failure      400 {object} util.APIResponse "Invalid plan"
// @Router       /members/change-plan/quote [get]
func QuotePlanChange(c *gin.Context) {
	planID := parseUintQuery(c, "plan_id")
	if planID == 0 {
		util.CallUserError(c, util.APIErrorParams{Msg: "plan_id is required", Err: service.ErrValidation})
		return
	}
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	quote, err := svc.PreviewPlanChange(c.Request.Context(), userID, planID)
	if err != nil {
		respondServiceError(c, "Failed to quote plan change", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Plan change quote", Data: quote})
}

// ChangePlan godoc
// @Summary      Change plan
// @Description  Request a switch to another plan; approval follows the checkout path
// @Tags         Membership
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PlanRequest true "Target plan"
// @Success      201 {object} util.APIResponse{data=PlanChangeResponse} "Plan change requested"
// @Failure      400 {object} util.APIResponse "No active subscription or same plan"
// @Failure      409 {object} util.APIResponse "A request is already pending"
// @Router       /members/change-plan [post]
func ChangePlan(c *gin.Context) {
	var req PlanRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	sub, quote, err := svc.ChangePlan(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		respondServiceError(c, "Failed to change plan", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Plan change requested", Data: PlanChangeResponse{Subscription: sub, Quote: quote}})
}

// MySubscriptions godoc
// @Summary      My subscriptions
// @Tags         Membership
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.Subscription} "Subscriptions"
// @Router       /members/me/subscriptions [get]
func MySubscriptions(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	subs, err := svc.ListUserSubscriptions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "Failed to list subscriptions", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Subscriptions", Data: subs})
}

// AdminListPlans godoc
// @Summary      All plans (admin only)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        all query bool false "Include inactive plans (default true)"
// @Success      200 {object} util.APIResponse{data=[]model.MonthlyPlan} "Plans"
// @Router       /admin/plans [get]
func AdminListPlans(c *gin.Context) {
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	plans, err := svc.ListPlans(c.Request.Context(), !boolQuery(c, "all", true))
	if err != nil {
		respondServiceError(c, "Failed to list plans", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Plans", Data: plans})
}

// CreatePlan godoc
// @Summary      Create plan (admin only)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body service.PlanInput true "Plan"
// @Success      201 {object} util.APIResponse{data=model.MonthlyPlan} "Plan created"
// @Failure      400 {object} util.APIResponse "Invalid plan"
// @Failure      409 {object} util.APIResponse "Duplicate name"
// @Router       /admin/plans [post]
func CreatePlan(c *gin.Context) {
	var in service.PlanInput
	if !bindJSONOrRespond(c, &in, "Invalid request payload") {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	plan, err := svc.CreatePlan(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, "Failed to create plan", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Plan created", Data: plan})
}

// UpdatePlan godoc
// @Summary      Update plan (admin only)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan id"
// @Param        request body service.PlanInput true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.MonthlyPlan} "Plan updated"
// @Failure      404 {object} util.APIResponse "Plan not found"
// @Router       /admin/plans/{id} [patch]
func UpdatePlan(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var in service.PlanInput
	if !bindJSONOrRespond(c, &in, "Invalid request payload") {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	plan, err := svc.UpdatePlan(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, "Failed to update plan", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Plan updated", Data: plan})
}

// PendingSubscriptions godoc
// @Summary      Subscriptions awaiting approval (admin only)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.Subscription} "Pending subscriptions"
// @Router       /admin/subscriptions/pending [get]
func PendingSubscriptions(c *gin.Context) {
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	subs, err := svc.ListPendingSubscriptions(c.Request.Context())
	if err != nil {
		respondServiceError(c, "Failed to list subscriptions", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Pending subscriptions", Data: subs})
}

// ApproveSubscription godoc
// @Summary      Approve subscription (admin only)
// @Description  Activate a pending subscription, expire the previous one and settle its revenue
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Subscription id"
// @Success      200 {object} util.APIResponse{data=model.Subscription} "Subscription approved"
// @Failure      404 {object} util.APIResponse "Subscription not found"
// @Failure      409 {object} util.APIResponse "Subscription is not pending"
// @Router       /admin/subscriptions/{id}/approve [patch]
func ApproveSubscription(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	adminID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	sub, err := svc.ApproveSubscription(c.Request.Context(), adminID, id, time.Time{})
	if err != nil {
		respondServiceError(c, "Failed to approve subscription", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Subscription approved", Data: sub})
}

// RejectSubscription godoc
// @Summary      Reject subscription (admin only)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Subscription id"
// @Success      200 {object} util.APIResponse{data=model.Subscription} "Subscription rejected"
// @Failure      404 {object} util.APIResponse "Subscription not found"
// @Failure      409 {object} util.APIResponse "Subscription is not pending"
// @Router       /admin/subscriptions/{id}/reject [patch]
func RejectSubscription(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	adminID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	svc, ok := membershipService(c)
	if !ok {
		return
	}
	sub, err := svc.RejectSubscription(c.Request.Context(), adminID, id)
	if err != nil {
		respondServiceError(c, "Failed to reject subscription", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Subscription rejected", Data: sub})
}
