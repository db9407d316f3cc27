package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adforge/api/docs"
	"github.com/adforge/api/internal/client"
	"github.com/adforge/api/internal/config"
	"github.com/adforge/api/internal/handler"
	"github.com/adforge/api/internal/logger"
	"github.com/adforge/api/internal/middleware"
	"github.com/adforge/api/internal/service"
	"github.com/adforge/api/internal/store"
	"github.com/adforge/api/internal/worker"
	ws "github.com/adforge/api/internal/websocket"
	"github.com/adforge/api/pkg/response"
)

// @title          AdForge API
// @version        1.0
// @description    Backend API for AdForge, the AI-powered video ad creation platform.
// @host           localhost:8000
// @BasePath       /
// @schemes        http https
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
// @description    Enter your bearer token in the format **Bearer &lt;token&gt;**
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Configure Swagger host/scheme based on environment
	if cfg.Server.ApiDomain != "" {
		docs.SwaggerInfo.Host = cfg.Server.ApiDomain
		docs.SwaggerInfo.Schemes = []string{"https"}
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
		docs.SwaggerInfo.Schemes = []string{"http"}
	}

	zl := logger.New(cfg.Server.Env, cfg.Server.LogLevel)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zl.Warn().Err(err).Msg("redis not available")
	}

	// Initialize Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize validator
	validate := validator.New()

	// Initialize WebSocket hub
	hub := ws.NewHub(zl)
	go hub.Run()

	// Initialize external clients
	llmClient := client.NewOpenRouterClient(&cfg.OpenRouter, zl)
	wavespeedClient := client.NewWaveSpeedClient(&cfg.WaveSpeed, zl)
	klingClient := client.NewKlingClient(&cfg.Kling, zl)

	registry := client.NewProviderRegistry(cfg.Video.DefaultProvider)
	registry.Register(wavespeedClient)
	registry.Register(klingClient)

	// Initialize stores
	campaignStore := store.NewCampaignStore(redisClient)
	generationStore := store.NewGenerationStore(redisClient)
	videoJobStore := store.NewVideoJobStore(redisClient)

	// Initialize services
	videoService := service.NewVideoService(
		videoJobStore, registry, asynqClient, hub,
		cfg.Video.Dir, time.Duration(cfg.Video.BatchDelaySec)*time.Second, zl,
	)
	campaignService := service.NewCampaignService(campaignStore, generationStore, videoService, zl)
	generationService := service.NewGenerationService(llmClient, campaignStore, generationStore, hub, validate, zl)
	exportService := service.NewExportService(campaignStore, generationStore, videoService, zl)

	// Initialize handlers
	campaignHandler := handler.NewCampaignHandler(campaignService, validate)
	generationHandler := handler.NewGenerationHandler(generationService, validate)
	videoHandler := handler.NewVideoHandler(videoService, campaignService, validate, cfg.Video.Dir)
	exportHandler := handler.NewExportHandler(exportService, validate)

	// Initialize middleware
	if cfg.Gateway.Enabled {
		zl.Info().Msg("gateway mode enabled, using header-based auth")
	}
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, cfg.Gateway.Enabled)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    10 * 1024 * 1024, // 10MB
	})

	// Global middleware
	app.Use(recover.New())
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path}\n"
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams}\n"
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Workspace-Id",
	}))

	// Swagger UI
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"llm":       llmClient.IsConfigured(),
				"wavespeed": wavespeedClient.IsConfigured(),
				"kling":     klingClient.IsConfigured(),
			},
		})
	})

	// API routes
	api := app.Group("/api", authMiddleware.Authenticate())

	// Campaign routes
	campaigns := api.Group("/campaigns")
	campaigns.Post("/", campaignHandler.Create)
	campaigns.Get("/", campaignHandler.List)
	campaigns.Get("/:id", campaignHandler.Get)
	campaigns.Put("/:id", campaignHandler.Update)
	campaigns.Delete("/:id", campaignHandler.Delete)

	// Generation routes
	generate := campaigns.Group("/:id/generate", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerMin))
	generate.Post("/angles", generationHandler.Angles)
	generate.Post("/hooks", generationHandler.Hooks)
	generate.Post("/scripts", generationHandler.Scripts)
	generate.Post("/storyboard", generationHandler.Storyboard)
	generate.Post("/ugc", generationHandler.UGC)
	generate.Post("/iteration", generationHandler.Iteration)
	campaigns.Post("/:id/optimize-prompt", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerMin), generationHandler.OptimizePrompt)
	campaigns.Get("/:id/generations", generationHandler.List)
	campaigns.Get("/:id/videos", videoHandler.ListCampaignVideos)

	// Export routes
	campaigns.Get("/:id/export", rateLimiter.ExportLimit(cfg.RateLimit.ExportPerHour), exportHandler.Brief)
	campaigns.Get("/:id/export/videos", rateLimiter.ExportLimit(cfg.RateLimit.ExportPerHour), exportHandler.Videos)

	// Video routes
	videos := api.Group("/videos")
	videos.Post("/generate", rateLimiter.VideoLimit(cfg.RateLimit.VideoPerHour), videoHandler.Generate)
	videos.Post("/batch", rateLimiter.VideoLimit(cfg.RateLimit.VideoPerHour), videoHandler.Batch)
	videos.Get("/jobs/:id", videoHandler.GetJob)
	videos.Post("/jobs/:id/retry", rateLimiter.VideoLimit(cfg.RateLimit.VideoPerHour), videoHandler.Retry)
	videos.Delete("/jobs/:id", videoHandler.DeleteJob)
	videos.Get("/files/:filename", videoHandler.ServeFile)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/streams/:streamId", websocket.New(func(c *websocket.Conn) {
		hub.HandleConnection(c, c.Params("streamId"))
	}))
	app.Get("/ws/jobs/:jobId", websocket.New(func(c *websocket.Conn) {
		hub.HandleConnection(c, c.Params("jobId"))
	}))

	// Start Asynq worker server
	go startWorkerServer(cfg, videoService, zl)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info().Msg("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Error().Err(err).Msg("server shutdown error")
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	zl.Info().Str("addr", addr).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func startWorkerServer(cfg *config.Config, videoService *service.VideoService, zl zerolog.Logger) {
	asynqLogLevel := asynq.InfoLevel
	switch {
	case strings.EqualFold(cfg.Server.LogLevel, "debug"):
		asynqLogLevel = asynq.DebugLevel
	case strings.EqualFold(cfg.Server.LogLevel, "warn"):
		asynqLogLevel = asynq.WarnLevel
	case strings.EqualFold(cfg.Server.LogLevel, "error"):
		asynqLogLevel = asynq.ErrorLevel
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			// Provider pacing is handled inside batch processing; keep
			// concurrency low so parallel batches cannot flood providers.
			Concurrency: 4,
			Queues: map[string]int{
				service.QueueVideos: 10,
			},
			LogLevel: asynqLogLevel,
		},
	)

	videoWorker := worker.NewVideoWorker(videoService, zl)
	mux := asynq.NewServeMux()
	videoWorker.Register(mux)

	if err := srv.Run(mux); err != nil {
		zl.Error().Err(err).Msg("asynq worker error")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return response.Error(c, code, response.CodeServiceError, message, nil)
}
