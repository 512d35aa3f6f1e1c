package endpoint

import (
	"fmt"
	"net/http"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/middleware"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/monitoring"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter builds the HTTP API on top of db. Routes live under /api;
// /metrics exposes the Prometheus registry.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.LoadConfig()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	router.GET("/metrics", gin.WrapH(monitoring.Get().Handler()))

	api := router.Group("/api")
	loginLimiter := middleware.RateLimiter(middleware.RateLimitConfig{})

	users := api.Group("/users")
	{
		users.POST("/signup", loginLimiter, Signup)
		users.POST("/login", loginLimiter, Login)
		users.GET("/token/validate", ValidateToken)
	}

	auth := api.Group("")
	auth.Use(middleware.ValidateLoginToken())

	me := auth.Group("/users")
	{
		me.DELETE("/logout", Logout)
		me.GET("/me", GetMe)
		me.PATCH("/me", UpdateUser)
		me.POST("/verify-password", VerifyPassword)
	}

	members := auth.Group("/members")
	{
		members.GET("/plans", ListPlans)
		members.GET("/me/loyalty", MyLoyalty)
		members.GET("/me/loyalty/transactions", MyLoyaltyTransactions)
		members.GET("/me/checkins", MyCheckIns)
		members.GET("/me/consistency", MyConsistency)
		members.GET("/me/subscriptions", MySubscriptions)
		members.GET("/me/sessions", MyTrainingSessions)
		members.GET("/me/nutrition", MyNutritionPlans)

		buyer := members.Group("")
		buyer.Use(middleware.RequireRole(model.RoleMember))
		buyer.POST("/checkout", Checkout)
		buyer.GET("/change-plan/quote", QuotePlanChange)
		buyer.POST("/change-plan", ChangePlan)
		buyer.POST("/me/loyalty/redeem", RedeemPoints)
	}

	checkin := auth.Group("/checkin")
	checkin.Use(middleware.RequireRole(model.RoleFrontDesk, model.RoleAdmin))
	{
		checkin.GET("/search", SearchMembers)
		checkin.POST("", RecordCheckIn)
		checkin.GET("/recent", RecentCheckIns)
		checkin.GET("/members/:id/history", MemberCheckInHistory)
		checkin.GET("/members/:id/consistency", MemberConsistency)
	}

	trainers := auth.Group("/trainers")
	{
		trainers.GET("", ListTrainers)
		trainers.GET("/:id/schedule", TrainerSchedule)
		trainers.POST("/:id/book", middleware.RequireRole(model.RoleMember), BookTrainer)
		trainers.PATCH("/sessions/:id/cancel", CancelSession)

		trainerOnly := trainers.Group("")
		trainerOnly.Use(middleware.RequireRole(model.RoleTrainer))
		trainerOnly.PUT("/me/schedule", SetMySchedule)
		trainerOnly.GET("/me/sessions", MyTrainerSessions)
		trainerOnly.PATCH("/sessions/:id/accept", AcceptSession)
		trainerOnly.PATCH("/sessions/:id/reject", RejectSession)
		trainerOnly.PATCH("/sessions/:id/complete", CompleteSession)
	}

	facilities := auth.Group("/facilities")
	{
		facilities.GET("", ListFacilities)
		facilities.GET("/:id/slots", FacilitySlots)
		facilities.POST("/:id/book", BookFacility)
		facilities.GET("/me/bookings", MyFacilityBookings)
		facilities.PATCH("/bookings/:id/cancel", CancelFacilityBooking)

		facilityAdmin := facilities.Group("")
		facilityAdmin.Use(middleware.RequireRole(model.RoleAdmin))
		facilityAdmin.POST("", CreateFacility)
		facilityAdmin.PUT("/:id/slots", SetFacilitySlots)
	}

	nutrition := auth.Group("/nutrition")
	nutrition.Use(middleware.RequireRole(model.RoleNutritionist))
	{
		nutrition.GET("/plans", MyAuthoredNutritionPlans)
		nutrition.POST("/plans", CreateNutritionPlan)
		nutrition.PATCH("/plans/:id", UpdateNutritionPlan)
	}

	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/users", ListUsers)
		admin.POST("/users", CreateStaff)
		admin.GET("/users/:id", GetUserInfo)
		admin.PATCH("/users/:id", AdminUpdateUser)
		admin.PATCH("/users/:id/active", SetUserActive)
		admin.DELETE("/users/:id", DeleteUser)

		admin.GET("/plans", AdminListPlans)
		admin.POST("/plans", CreatePlan)
		admin.PATCH("/plans/:id", UpdatePlan)
		admin.GET("/subscriptions/pending", PendingSubscriptions)
		admin.PATCH("/subscriptions/:id/approve", ApproveSubscription)
		admin.PATCH("/subscriptions/:id/reject", RejectSubscription)

		admin.GET("/revenue/daily", DailyRevenue)
		admin.GET("/revenue/monthly", MonthlyRevenue)
		admin.GET("/revenue/yearly", YearlyRevenue)
		admin.GET("/revenue/sources", RevenueSources)
		admin.GET("/revenue/dashboard", RevenueDashboard)
		admin.POST("/revenue", RecordRevenue)

		admin.POST("/loyalty/award", AwardPoints)
		admin.POST("/loyalty/deduct", DeductPoints)
		admin.POST("/loyalty/reconcile", ReconcileLoyalty)

		admin.GET("/monitoring/errors", ErrorSummary)
	}

	return router
}
