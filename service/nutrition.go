package service

import (
	"context"
	"strings"

	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"gorm.io/gorm"
)

type NutritionService struct {
	db   *gorm.DB
	deps Deps
}

func NewNutritionService(db *gorm.DB, deps Deps) *NutritionService {
	return &NutritionService{db: db, deps: deps.withDefaults()}
}

type NutritionPlanInput struct {
	MemberID      uint    `json:"member_id"`
	Title         *string `json:"title"`
	DailyCalories *int    `json:"daily_calories"`
	Notes         *string `json:"notes"`
}

func (s *NutritionService) CreatePlan(ctx context.Context, nutritionistID uint, in NutritionPlanInput) (*model.NutritionPlan, error) {
	if in.MemberID == 0 || in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, validationf("member_id and title are required")
	}
	plan := model.NutritionPlan{
		MemberID:       in.MemberID,
		NutritionistID: nutritionistID,
		Title:          util.SanitizeText(*in.Title),
	}
	if in.DailyCalories != nil {
		if *in.DailyCalories < 0 {
			return nil, validationf("daily_calories must not be negative")
		}
		plan.DailyCalories = *in.DailyCalories
	}
	if in.Notes != nil {
		plan.Notes = util.SanitizeText(*in.Notes)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profiles int64
		if err := tx.Model(&model.MemberProfile{}).Where("user_id = ?", in.MemberID).Count(&profiles).Error; err != nil {
			return err
		}
		if profiles == 0 {
			return ErrMemberNotFound
		}
		return tx.Create(&plan).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return &plan, nil
}

// UpdatePlan edits a plan owned by nutritionistID.
func (s *NutritionService) UpdatePlan(ctx context.Context, nutritionistID, planID uint, in NutritionPlanInput) (*model.NutritionPlan, error) {
	changes := map[string]interface{}{}
	if in.Title != nil {
		title := util.SanitizeText(*in.Title)
		if title == "" {
			return nil, validationf("title must not be empty")
		}
		changes["title"] = title
	}
	if in.DailyCalories != nil {
		if *in.DailyCalories < 0 {
			return nil, validationf("daily_calories must not be negative")
		}
		changes["daily_calories"] = *in.DailyCalories
	}
	if in.Notes != nil {
		changes["notes"] = util.SanitizeText(*in.Notes)
	}

	db := s.db.WithContext(ctx)
	var plan model.NutritionPlan
	if err := db.First(&plan, planID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundf("nutrition plan %d not found", planID)
		}
		return nil, classify(err)
	}
	if plan.NutritionistID != nutritionistID {
		return nil, forbiddenf("nutrition plan %d belongs to another nutritionist", planID)
	}
	if len(changes) > 0 {
		if err := db.Model(&plan).Updates(changes).Error; err != nil {
			return nil, classify(err)
		}
	}
	if err := db.First(&plan, planID).Error; err != nil {
		return nil, classify(err)
	}
	return &plan, nil
}

func (s *NutritionService) ListByNutritionist(ctx context.Context, nutritionistID uint) ([]model.NutritionPlan, error) {
	plans := []model.NutritionPlan{}
	err := s.db.WithContext(ctx).Where("nutritionist_id = ?", nutritionistID).Order("id DESC").Find(&plans).Error
	return plans, classify(err)
}

func (s *NutritionService) ListForMember(ctx context.Context, memberID uint) ([]model.NutritionPlan, error) {
	plans := []model.NutritionPlan{}
	err := s.db.WithContext(ctx).Where("member_id = ?", memberID).Order("id DESC").Find(&plans).Error
	return plans, classify(err)
}
