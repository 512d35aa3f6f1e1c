package endpoint

import (
	"github.com/ariebrainware/gym-portal/service"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
)

// CreateNutritionPlan godoc
// @Summary      Create nutrition plan
// @Tags         Nutrition
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body service.NutritionPlanInput true "Plan"
// @Success      201 {object} util.APIResponse{data=model.NutritionPlan} "Plan created"
// @Failure      400 {object} util.APIResponse "Invalid plan"
// @Failure      404 {object} util.APIResponse "Member not found"
// @Router       /nutrition/plans [post]
func CreateNutritionPlan(c *gin.Context) {
	var in service.NutritionPlanInput
	if !bindJSONOrRespond(c, &in, "Invalid request payload") {
		return
	}
	nutritionistID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	plan, err := service.NewNutritionService(db, currentDeps()).CreatePlan(c.Request.Context(), nutritionistID, in)
	if err != nil {
		respondServiceError(c, "Failed to create nutrition plan", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Nutrition plan created", Data: plan})
}

// UpdateNutritionPlan godoc
// @Summary      Update nutrition plan
// @Description  Only the nutritionist who wrote the plan may change it
// @Tags         Nutrition
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Plan id"
// @Param        request body service.NutritionPlanInput true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.NutritionPlan} "Plan updated"
// @Failure      403 {object} util.APIResponse "Not the plan's author"
// @Failure      404 {object} util.APIResponse "Plan not found"
// @Router       /nutrition/plans/{id} [patch]
func UpdateNutritionPlan(c *gin.Context) {
	id, ok := idParamOrRespond(c, "id")
	if !ok {
		return
	}
	var in service.NutritionPlanInput
	if !bindJSONOrRespond(c, &in, "Invalid request payload") {
		return
	}
	nutritionistID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	plan, err := service.NewNutritionService(db, currentDeps()).UpdatePlan(c.Request.Context(), nutritionistID, id, in)
	if err != nil {
		respondServiceError(c, "Failed to update nutrition plan", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Nutrition plan updated", Data: plan})
}

// MyAuthoredNutritionPlans godoc
// @Summary      Plans I wrote
// @Tags         Nutrition
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.NutritionPlan} "Plans"
// @Router       /nutrition/plans [get]
func MyAuthoredNutritionPlans(c *gin.Context) {
	nutritionistID, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	plans, err := service.NewNutritionService(db, currentDeps()).ListByNutritionist(c.Request.Context(), nutritionistID)
	if err != nil {
		respondServiceError(c, "Failed to list nutrition plans", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Nutrition plans", Data: plans})
}
