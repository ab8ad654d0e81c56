package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/marcos-nsantos/user-management-backend/docs"
	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/user-management-backend/internal/adapter/repository/postgres"
	rediscache "github.com/marcos-nsantos/user-management-backend/internal/adapter/repository/redis"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/cache"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

//	@title			User Management API
//	@version		1.0
//	@description	Register, authenticate and manage user accounts.
//	@host			localhost:8080
//	@BasePath		/api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPostgresPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	passwordHasher := auth.NewPasswordHasher(cfg.Password.HashCost)
	var userRepo repository.UserRepository = postgres.NewUserRepo(pool, passwordHasher, logger)

	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		userRepo = rediscache.NewCachedUserRepo(userRepo, redisClient, cfg.Cache.UserTTL, logger)
		logger.Info("user cache enabled", zap.String("addr", cfg.Redis.Addr()), zap.Duration("ttl", cfg.Cache.UserTTL))
	}

	// Use cases
	userSvc := user.NewService(userRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userSvc)

	// Router
	router := server.NewRouter(server.RouterConfig{
		UserHandler: userHandler,
		Database:    pool,
		Logger:      logger,
		Environment: cfg.Server.Environment,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	if err := srv.ListenAndRun(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
	}

	logger.Info("server stopped")
}
