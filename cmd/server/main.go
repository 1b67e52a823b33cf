package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"guardians/training-tracker/internal/api"
	"guardians/training-tracker/internal/config"
	"guardians/training-tracker/internal/logging"
	"guardians/training-tracker/internal/metrics"
	"guardians/training-tracker/internal/rag"
	"guardians/training-tracker/internal/repository/mongo"
	"guardians/training-tracker/internal/service"
	"guardians/training-tracker/internal/storage"
)

// @title Training Tracker API
// @version 1.0
// @description Goals, sessions, progress rings and a training assistant for gym and pitching work.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	log.Info("Starting Training Tracker server...")

	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("Database connection established")

	indexCtx, cancelIndexes := context.WithTimeout(ctx, time.Minute)
	if err := mongo.EnsureIndexes(indexCtx, appDB); err != nil {
		log.WithError(err).Warn("Some indexes could not be ensured")
	}
	cancelIndexes()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// --- Metrics ---
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("tracker", "server", promRegistry)

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	coachDocRepo := mongo.NewMongoCoachDocRepository(appDB)
	vectorRepo := mongo.NewMongoVectorRepository(appDB)

	// --- Assistant Collaborators ---
	var (
		documentEmbedder rag.Embedder      = rag.DisabledEmbedder{}
		queryEmbedder    rag.Embedder      = rag.DisabledEmbedder{}
		chat             rag.ChatCompleter = rag.DisabledChat{}
	)
	if cfg.GenAI.APIKey != "" {
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GenAI.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Fatalf("Failed to create GenAI client: %v", err)
		}
		onRetry := func() { metricsManager.CounterEmbeddingRetries.Inc() }
		documentEmbedder = rag.NewRetryingEmbedder(
			rag.NewGenAIEmbedder(genaiClient, cfg.GenAI.EmbeddingModel, rag.TaskRetrievalDocument),
			cfg.Embedding.MaxRetries, cfg.Embedding.InitialBackoff, onRetry,
		)
		queryEmbedder = rag.NewRetryingEmbedder(
			rag.NewGenAIEmbedder(genaiClient, cfg.GenAI.EmbeddingModel, rag.TaskRetrievalQuery),
			cfg.Embedding.MaxRetries, cfg.Embedding.InitialBackoff, onRetry,
		)
		chat = rag.NewGenAIChat(genaiClient, cfg.GenAI.ChatModel, cfg.GenAI.Temperature)
		log.WithFields(log.Fields{
			"embeddingModel": cfg.GenAI.EmbeddingModel,
			"chatModel":      cfg.GenAI.ChatModel,
		}).Info("GenAI assistant enabled")
	} else {
		log.Warn("GENAI_API_KEY is empty, indexing and the assistant are disabled")
	}
	indexer := rag.NewIndexer(documentEmbedder, vectorRepo, metricsManager)
	assistant := rag.NewAssistant(queryEmbedder, vectorRepo, chat, profileRepo, cfg.GenAI.TopK, metricsManager)

	// --- Rate Limiting ---
	var rateLimiter api.RequestRateLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Error("Failed to close redis client")
			}
		}()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		}
		rateLimiter = redis_rate.NewLimiter(rdb)
	} else {
		log.Warn("REDIS_ADDR is empty, assistant rate limiting is disabled")
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	goalService := service.NewGoalService(goalRepo, userRepo, indexer, metricsManager)
	sessionService := service.NewSessionService(sessionRepo, fileStorage, indexer, metricsManager, cfg.S3.URLExpiry)
	progressService := service.NewProgressService(goalRepo, sessionRepo)
	profileService := service.NewProfileService(profileRepo)
	coachDocService := service.NewCoachDocService(coachDocRepo, fileStorage, indexer, metricsManager)

	// --- Initialize Gin Engine ---
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	api.SetupRoutes(router, api.RouterDeps{
		JWTSecret:          cfg.JWT.Secret,
		AuthService:        authService,
		GoalService:        goalService,
		SessionService:     sessionService,
		ProgressService:    progressService,
		ProfileService:     profileService,
		AssistantService:   assistant,
		CoachDocService:    coachDocService,
		Metrics:            metricsManager,
		Gatherer:           promRegistry,
		RateLimiter:        rateLimiter,
		AssistantPerMinute: cfg.Redis.AssistantPerMinute,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("ListenAndServe error: %v", err)
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exiting.")
}
