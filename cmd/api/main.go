package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/config"
	"github.com/pageza/openai-cake/backend/internal/api"
	"github.com/pageza/openai-cake/backend/internal/database"
	"github.com/pageza/openai-cake/backend/internal/logger"
	"github.com/pageza/openai-cake/backend/internal/middleware"
	"github.com/pageza/openai-cake/backend/internal/router"
	"github.com/pageza/openai-cake/backend/internal/server"
	"github.com/pageza/openai-cake/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	zlog.Info("starting recipe API",
		zap.String("addr", cfg.Addr()),
		zap.String("chat_model", cfg.ChatModel),
		zap.String("image_model", cfg.ImageModel),
		zap.Duration("openai_timeout", cfg.OpenAITimeout),
		logger.Secret("openai_api_key", cfg.OpenAIAPIKey),
	)

	ctx := context.Background()

	// Optional S3 mirroring of generated images
	var store service.ImageStore
	if cfg.ImageMirroringEnabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			zlog.Fatal("failed to initialize S3", zap.Error(err))
		}
		zlog.Info("mirroring images to S3", zap.String("bucket", s3cfg.BucketName), zap.String("region", s3cfg.Region))
		store = s3cfg
	}

	// Optional per-client rate limiting
	opts := router.Options{Metrics: cfg.MetricsEnabled, TrustedProxies: cfg.TrustedProxies}
	if cfg.RateLimitEnabled() {
		redisClient, err := database.NewRedisClient(ctx, cfg, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		opts.RateLimiter = middleware.NewRecipeRateLimiter(redisClient, cfg.RateLimitPerHour, zlog)
	}

	// Initialize services
	llmService := service.NewLLMService(cfg, zlog)
	imageService := service.NewImageService(cfg, store, zlog)
	recipeService := service.NewRecipeService(llmService, imageService, zlog)

	srv := server.New(cfg, router.SetupRouter(api.NewRecipeHandler(recipeService, zlog), zlog, opts), zlog)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}
