package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/service"
)

// RouterDeps bundles what SetupRoutes wires into the engine.
// Gatherer and RateLimiter are optional.
type RouterDeps struct {
	JWTSecret string

	AuthService      service.AuthService
	GoalService      service.GoalService
	SessionService   service.SessionService
	ProgressService  service.ProgressService
	ProfileService   service.ProfileService
	AssistantService service.AssistantService
	CoachDocService  service.CoachDocService

	Metrics            *metrics.Manager
	Gatherer           prometheus.Gatherer
	RateLimiter        RequestRateLimiter
	AssistantPerMinute int
}

func SetupRoutes(router *gin.Engine, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthService)
	goalHandler := NewGoalHandler(deps.GoalService)
	sessionHandler := NewSessionHandler(deps.SessionService)
	progressHandler := NewProgressHandler(deps.ProgressService)
	profileHandler := NewProfileHandler(deps.ProfileService)
	assistantHandler := NewAssistantHandler(deps.AssistantService)
	coachDocHandler := NewCoachDocHandler(deps.CoachDocService)

	router.Use(PanicRecovery(deps.Metrics), RequestLogger())
	if deps.Metrics != nil {
		router.Use(RequestMetrics(deps.Metrics))
	}

	authMiddleware := AuthMiddleware(deps.JWTSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		protected.GET("/goals", goalHandler.ListGoals)
		protected.POST("/goals", goalHandler.SaveGoal)

		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.POST("", sessionHandler.RecordSession)
			sessionGroup.POST("/videos", sessionHandler.UploadVideo)
			sessionGroup.POST("/videos/upload-url", sessionHandler.VideoUploadURL)
		}

		protected.GET("/progress", progressHandler.GetProgress)
		protected.GET("/progress/items", progressHandler.GetItemRings)
		protected.GET("/history", progressHandler.GetHistory)

		protected.GET("/training-profile", profileHandler.GetProfile)
		protected.POST("/training-profile", profileHandler.SaveProfile)

		protected.POST("/assistant/query",
			RateLimit(deps.RateLimiter, "assistant", deps.AssistantPerMinute),
			assistantHandler.Query,
		)

		protected.GET("/coach-docs", coachDocHandler.List)
		protected.POST("/coach-docs", coachDocHandler.Upload)
	}
}
