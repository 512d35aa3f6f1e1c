package endpoint

import (
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// LoyaltySummary is the member's balance with the latest ledger entries.
type LoyaltySummary struct {
	Balance int                        `json:"balance"`
	Recent  []model.LoyaltyTransaction `json:"recent"`
}

// RedeemRequest spends points from the caller's balance.
type RedeemRequest struct {
	Points      int    `json:"points" binding:"required" example:"50"`
	Description string `json:"description" example:"Protein shake"`
}

// MyLoyalty godoc
// @Summary      My loyalty balance
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=LoyaltySummary} "Loyalty balance"
// @Failure      404 {object} util.APIResponse "Member profile not found"
// @Router       /members/me/loyalty [get]
func MyLoyalty(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	svc := service.NewLoyaltyService(db, currentDeps())
	balance, err := svc.Balance(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "Failed to load loyalty balance", err)
		return
	}
	recent, _, err := svc.History(c.Request.Context(), userID, 5, 0)
	if err != nil {
		respondServiceError(c, "Failed to load loyalty history", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Loyalty balance", Data: LoyaltySummary{Balance: balance, Recent: recent}})
}

// MyLoyaltyTransactions godoc
// @Summary      My loyalty ledger
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 20, max 100)"
// @Param        offset query int false "Rows to skip"
// @Success      200 {object} util.APIResponse{data=object} "Ledger page"
// @Router       /members/me/loyalty/transactions [get]
func MyLoyaltyTransactions(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	entries, total, err := service.NewLoyaltyService(db, currentDeps()).History(c.Request.Context(), userID,
		parsePositiveInt(c.Query("limit"), 0, 0), parsePositiveInt(c.Query("offset"), 0, 0))
	if err != nil {
		respondServiceError(c, "Failed to load loyalty history", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Loyalty transactions",
		Data: map[string]interface{}{"transactions": entries, "total": total},
	})
}

// RedeemPoints godoc
// @Summary      Redeem loyalty points
// @Description  Deduct points from the caller's balance. The balance never goes negative.
// @Tags         Members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RedeemRequest true "Points to redeem"
// @Success      200 {object} util.APIResponse{data=model.LoyaltyTransaction} "Points redeemed"
// @Failure      400 {object} util.APIResponse "Insufficient points"
// @Failure      404 {object} util.APIResponse "Member profile not found"
// @Router       /members/me/loyalty/redeem [post]
func RedeemPoints(c *gin.Context) {
	var req RedeemRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	entry, err := service.NewLoyaltyService(db, currentDeps()).Deduct(c.Request.Context(), service.PointsInput{
		UserID:      userID,
		Points:      req.Points,
		Source:      service.SourceRedemption,
		Description: util.SanitizeText(req.Description),
	})
	if err != nil {
		respondServiceError(c, "Failed to redeem points", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Points redeemed", Data: entry})
}

// MyTrainingSessions godoc
// @Summary      My training sessions
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Success      200 {object} util.APIResponse{data=[]model.TrainingSession} "Sessions"
// @Router       /members/me/sessions [get]
func MyTrainingSessions(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	sessions, err := service.NewBookingService(db, currentDeps()).ListClientSessions(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondServiceError(c, "Failed to list sessions", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Training sessions", Data: sessions})
}

// MyNutritionPlans godoc
// @Summary      My nutrition plans
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.NutritionPlan} "Plans"
// @Router       /members/me/nutrition [get]
func MyNutritionPlans(c *gin.Context) {
	userID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	plans, err := service.NewNutritionService(db, currentDeps()).ListForMember(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "Failed to list nutrition plans", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Nutrition plans", Data: plans})
}
