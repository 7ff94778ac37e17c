package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/KhoaTranFitus/backend-food-app/app/controllers"
	"github.com/KhoaTranFitus/backend-food-app/app/middlewares"
	"github.com/KhoaTranFitus/backend-food-app/app/services"
	"github.com/KhoaTranFitus/backend-food-app/internal/metrics"
)

// Controllers gom các controller để truyền vào setup.
type Controllers struct {
	Food    *controllers.FoodController
	Map     *controllers.MapController
	User    *controllers.UserController
	Review  *controllers.ReviewController
	Chatbot *controllers.ChatbotController
}

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, ctrl Controllers, auth *services.AuthService) {
	api := router.Group("/api")
	{
		// Food search routes
		food := api.Group("/food")
		{
			food.POST("/search", ctrl.Food.Search)
			food.GET("/restaurants", ctrl.Food.Restaurants)
			food.GET("/detail/:id", ctrl.Food.Detail)
			food.GET("/foods/restaurant/:id", ctrl.Food.MenuByRestaurant)
			food.GET("/reviews/:id", ctrl.Review.List)
			food.POST("/reviews", middlewares.RequireAuth(auth), ctrl.Review.Create)
			food.POST("/reload", middlewares.RequireAuth(auth), ctrl.Food.Reload)
		}

		// Map filter routes
		mapGroup := api.Group("/map")
		{
			mapGroup.POST("/filter", ctrl.Map.Filter)
		}

		// User routes
		user := api.Group("/user")
		{
			user.POST("/register", ctrl.User.Register)
			user.POST("/login", ctrl.User.Login)
			user.POST("/logout", middlewares.RequireAuth(auth), ctrl.User.Logout)
			user.GET("/profile", middlewares.RequireAuth(auth), ctrl.User.Profile)
			user.POST("/favorite/add", middlewares.RequireAuth(auth), ctrl.User.FavoriteToggle)
			user.GET("/favorites", middlewares.RequireAuth(auth), ctrl.User.FavoritesList)
		}

		// Chatbot routes
		chatbot := api.Group("/chatbot")
		{
			chatbot.POST("/chat", ctrl.Chatbot.Chat)
			chatbot.POST("/plan-route", middlewares.RequireAuth(auth), ctrl.Chatbot.PlanRoute)
		}
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// SetupMetricsRoutes thiết lập metrics routes (cho Prometheus)
func SetupMetricsRoutes(router *gin.Engine) {
	router.GET("/metrics", metrics.Handler())
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, ctrl Controllers, auth *services.AuthService) {
	// Thiết lập middleware
	setupMiddleware(router)

	// Thiết lập các loại routes
	SetupHealthRoutes(router)
	SetupAPIRoutes(router, ctrl, auth)
	SetupMetricsRoutes(router)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(metrics.Middleware())

	// CORS cho frontend mobile/web
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))
}
