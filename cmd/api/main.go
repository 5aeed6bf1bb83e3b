// @title Quiz Forge API
// @version 1.0
// @description Generates true/false, multiple choice and fill-in-the-blank quizzes from uploaded documents.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/extractor"
	"quiz-forge/internal/adapter/quizgen"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	model, err := quizgen.NewModel(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM model", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	}
	llmClient, err := quizgen.NewLLMClient(model, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create generation client", zap.Error(err))
	}
	appLogger.Info("Generation client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Duration("timeout", cfg.LLM.Timeout))

	var client domain.GenerationClient = llmClient
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Cache)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Cache.Address))

		cached, err := quizgen.NewCachedClient(llmClient, adapter.NewRedisCacheAdapter(redisClient), cfg.LLM.Model, cfg.Cache.TTL)
		if err != nil {
			appLogger.Fatal("Failed to create completion cache", zap.Error(err))
		}
		client = cached
		appLogger.Info("Completion cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	quizService := service.NewQuizService(extractor.NewDocumentExtractor(), client, cfg.Quiz)
	app := newApp(cfg, quizService)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	if quizService.Abandon() {
		appLogger.Info("Abandoned in-flight generation")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
