package router

import (
	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	mealHandler *api.MealHandler,
	planHandler *api.PlanHandler,
	generateHandler *api.GenerateHandler,
	tokenValidator middleware.TokenValidator,
	generationLimiter *middleware.RateLimiter,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokenValidator))
	{
		// Profile routes
		profile := protected.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Meal routes
		meals := protected.Group("/meals")
		{
			meals.GET("", mealHandler.ListMeals)
			meals.GET("/:id", mealHandler.GetMeal)
			meals.POST("", mealHandler.CreateMeal)
			meals.DELETE("/:id", mealHandler.DeleteMeal)
		}

		// Plan routes
		plan := protected.Group("/plan")
		{
			plan.GET("", planHandler.GetRange)
			plan.GET("/day/:date", planHandler.GetDay)
			plan.POST("/items", planHandler.AddItem)
			plan.DELETE("/items/:id", planHandler.RemoveItem)
			plan.POST("/save", planHandler.SavePlan)
		}

		// Generation route, rate limited per user
		protected.POST("/generate", generationLimiter.Middleware(), generateHandler.Generate)
	}

	return router
}
