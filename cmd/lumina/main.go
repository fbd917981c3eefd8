package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lumina/internal/api"
	"lumina/internal/api/handlers"
	"lumina/internal/cache"
	"lumina/internal/llm"
	"lumina/internal/repository"
	"lumina/internal/service"
	"lumina/pkg/auth"
	"lumina/pkg/config"
	"lumina/pkg/logger"
	"lumina/pkg/postgres"

	"go.uber.org/zap"
)

// @title Lumina API
// @version 1.0
// @description Personal finance tracker with an AI expense assistant

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Lumina service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Optional tips cache
	var tipsCache *cache.TipsCache
	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		tipsCache = cache.NewTipsCache(redisClient, cfg.Redis.TipsTTL, appLogger)
	}

	// Initialize services
	gateway := llm.NewGigaChatGateway(&cfg.GigaChat, appLogger)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	assistantService := service.NewAssistantService(gateway, tipsCache, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	goalService := service.NewGoalService(goalRepo, appLogger)
	balanceService := service.NewBalanceService(userRepo, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	assistantHandler := handlers.NewAssistantHandler(assistantService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)
	goalHandler := handlers.NewGoalHandler(goalService, appLogger)
	balanceHandler := handlers.NewBalanceHandler(balanceService, appLogger)

	// Setup router
	app := api.SetupRouter(&cfg.Server, authHandler, assistantHandler, expenseHandler, goalHandler, balanceHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
