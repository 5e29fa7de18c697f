package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wolfpack/fitness-hub/internal/api"
	"wolfpack/fitness-hub/internal/config"
	"wolfpack/fitness-hub/internal/logging"
	"wolfpack/fitness-hub/internal/metrics"
	"wolfpack/fitness-hub/internal/repository"
	"wolfpack/fitness-hub/internal/repository/memory"
	mongorepo "wolfpack/fitness-hub/internal/repository/mongo"
	"wolfpack/fitness-hub/internal/seed"
	"wolfpack/fitness-hub/internal/service"
	"wolfpack/fitness-hub/internal/storage"
	"wolfpack/fitness-hub/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// repositories groups one backend's repository set.
type repositories struct {
	users           repository.UserRepository
	apparel         repository.ApparelRepository
	workouts        repository.WorkoutRepository
	achievements    repository.AchievementRepository
	challenges      repository.ChallengeRepository
	integrations    repository.IntegrationRepository
	preferences     repository.PreferenceRepository
	recommendations repository.RecommendationRepository
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: could not load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("FATAL: could not initialize logger: %v", err)
	}
	defer logger.Sync()

	metrics.Register()

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("storage initialization failed", zap.Error(err))
	}
	defer cleanup()

	// Catalogs must exist before the first workout is evaluated.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelSeed()
	if err := seed.Achievements(seedCtx, repos.achievements, logger); err != nil {
		logger.Fatal("achievement seeding failed", zap.Error(err))
	}
	if err := seed.Challenges(seedCtx, repos.challenges, logger); err != nil {
		logger.Fatal("challenge seeding failed", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(cfg.S3, logger)
		if err != nil {
			logger.Fatal("s3 initialization failed", zap.Error(err))
		}
	} else {
		logger.Info("s3 not configured, avatar uploads disabled")
	}

	svcs := api.Services{
		Auth:           service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration),
		User:           service.NewUserService(repos.users, repos.apparel, fileStorage),
		Workout:        service.NewWorkoutService(repos.users, repos.apparel, repos.workouts, repos.achievements, logger),
		Apparel:        service.NewApparelService(repos.apparel),
		Achievement:    service.NewAchievementService(repos.achievements),
		Challenge:      service.NewChallengeService(repos.challenges, repos.users, logger),
		Integration:    service.NewIntegrationService(repos.integrations),
		Preference:     service.NewPreferenceService(repos.preferences),
		Recommendation: service.NewRecommendationService(repos.recommendations, repos.preferences, repos.apparel),
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, cfg, svcs, hub, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

// buildRepositories constructs the repository set for the configured
// storage driver. The memory backend is the default deployment; mongo
// persists across restarts.
func buildRepositories(cfg config.Config, logger *zap.Logger) (repositories, func(), error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		store := memory.NewStore()
		logger.Info("using in-memory storage")
		return repositories{
			users:           memory.NewUserRepository(store),
			apparel:         memory.NewApparelRepository(store),
			workouts:        memory.NewWorkoutRepository(store),
			achievements:    memory.NewAchievementRepository(store),
			challenges:      memory.NewChallengeRepository(store),
			integrations:    memory.NewIntegrationRepository(store),
			preferences:     memory.NewPreferenceRepository(store),
			recommendations: memory.NewRecommendationRepository(store),
		}, func() {}, nil

	case "mongo":
		client, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return repositories{}, nil, err
		}
		db := client.Database(cfg.Database.Name)

		indexCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
			return repositories{}, nil, err
		}

		cleanup := func() {
			if err := mongorepo.DisconnectDB(client); err != nil {
				logger.Error("mongo disconnect failed", zap.Error(err))
			}
		}
		logger.Info("using mongo storage", zap.String("database", cfg.Database.Name))
		return repositories{
			users:           mongorepo.NewMongoUserRepository(db),
			apparel:         mongorepo.NewMongoApparelRepository(db),
			workouts:        mongorepo.NewMongoWorkoutRepository(db),
			achievements:    mongorepo.NewMongoAchievementRepository(db),
			challenges:      mongorepo.NewMongoChallengeRepository(db),
			integrations:    mongorepo.NewMongoIntegrationRepository(db),
			preferences:     mongorepo.NewMongoPreferenceRepository(db),
			recommendations: mongorepo.NewMongoRecommendationRepository(db),
		}, cleanup, nil

	default:
		return repositories{}, nil, errors.New("unknown storage driver: " + cfg.Storage.Driver)
	}
}
