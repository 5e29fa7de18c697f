package api

import (
	"net/http"
	"time"

	"wolfpack/fitness-hub/internal/config"
	"wolfpack/fitness-hub/internal/metrics"
	"wolfpack/fitness-hub/internal/service"
	"wolfpack/fitness-hub/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services bundles the service dependencies SetupRoutes wires into
// handlers.
type Services struct {
	Auth           service.AuthService
	User           service.UserService
	Workout        service.WorkoutService
	Apparel        service.ApparelService
	Achievement    service.AchievementService
	Challenge      service.ChallengeService
	Integration    service.IntegrationService
	Preference     service.PreferenceService
	Recommendation service.RecommendationService
}

// SetupRoutes registers every HTTP route and the live channel endpoint.
func SetupRoutes(router *gin.Engine, cfg config.Config, svcs Services, hub *ws.Hub, logger *zap.Logger) {
	router.Use(RequestLogger(logger))
	router.Use(metrics.Middleware())
	router.Use(cors.New(corsConfig(cfg.CORS)))

	authHandler := NewAuthHandler(svcs.Auth, cfg.JWT.CookieName, cfg.JWT.Expiration)
	userHandler := NewUserHandler(svcs.User)
	workoutHandler := NewWorkoutHandler(svcs.Workout)
	apparelHandler := NewApparelHandler(svcs.Apparel, svcs.Workout)
	progressHandler := NewProgressHandler(svcs.Achievement, svcs.Challenge)
	integrationHandler := NewIntegrationHandler(svcs.Integration)
	recommendationHandler := NewRecommendationHandler(svcs.Preference, svcs.Recommendation)

	authMiddleware := AuthMiddleware(svcs.Auth.GetJWTSecret(), cfg.JWT.CookieName)
	credentialLimiter := RateLimitMiddleware(cfg.RateLimit)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The live feed is public and advisory; it carries no authenticated
	// state.
	router.GET("/ws", ws.ServeWS(hub, logger))

	public := router.Group("/api")
	{
		public.POST("/register", credentialLimiter, authHandler.Register)
		public.POST("/login", credentialLimiter, authHandler.Login)
		public.GET("/challenges", progressHandler.Challenges)
		public.GET("/leaderboard", userHandler.Leaderboard)
	}

	protected := router.Group("/api")
	protected.Use(authMiddleware)
	{
		protected.POST("/logout", authHandler.Logout)

		protected.GET("/user", userHandler.GetProfile)
		protected.GET("/user/qrcode", userHandler.GetQRCode)
		protected.PUT("/user/privacy", userHandler.UpdatePrivacy)
		protected.POST("/user/avatar", userHandler.RequestAvatarUpload)
		protected.GET("/user/avatar", userHandler.GetAvatar)
		protected.DELETE("/user/avatar", userHandler.RemoveAvatar)
		protected.POST("/scan", userHandler.Scan)

		protected.GET("/workouts", workoutHandler.List)
		protected.GET("/workouts/stats", workoutHandler.Stats)
		protected.POST("/workouts", workoutHandler.Create)

		protected.GET("/apparel", apparelHandler.List)
		protected.POST("/apparel", apparelHandler.Register)
		protected.GET("/apparel/insights/most-used", apparelHandler.MostUsed)
		protected.GET("/apparel/insights/best-performing", apparelHandler.BestPerforming)
		protected.GET("/apparel/:id", apparelHandler.Get)
		protected.GET("/apparel/:id/stats", apparelHandler.Stats)
		protected.GET("/apparel/:id/workouts", apparelHandler.Workouts)

		protected.GET("/achievements", progressHandler.Achievements)
		protected.GET("/user/challenges", progressHandler.UserChallenges)
		protected.POST("/user/challenges", progressHandler.UpdateChallengeProgress)
		protected.POST("/challenges/:id/join", progressHandler.JoinChallenge)

		protected.GET("/integrations", integrationHandler.List)
		protected.POST("/integrations", integrationHandler.Connect)
		protected.DELETE("/integrations/:app", integrationHandler.Disconnect)

		protected.GET("/user/preferences", recommendationHandler.GetPreferences)
		protected.POST("/user/preferences", recommendationHandler.SavePreferences)
		protected.PATCH("/user/preferences", recommendationHandler.UpdatePreferences)

		protected.GET("/workout-recommendations", recommendationHandler.List)
		protected.GET("/workout-recommendations/:id", recommendationHandler.Get)
		protected.POST("/workout-recommendations/generate", recommendationHandler.Generate)
		protected.POST("/workout-recommendations/:id/complete", recommendationHandler.Complete)
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()))
	}
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	return corsCfg
}
