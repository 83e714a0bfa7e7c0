package main

import (
	"context"
	"log"
	"time"

	"chatboard/config"
	"chatboard/internal/handler"
	"chatboard/internal/redis"
	"chatboard/internal/repository"
	"chatboard/internal/server"
	"chatboard/internal/services"
	"chatboard/internal/validation"
	"chatboard/pkg/database"
	"chatboard/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	defer l.Sync()

	if err := validation.Register(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		l.Logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	if err := database.ApplyMigrations(ctx, pool, cfg.MigrationsDir, true); err != nil {
		l.Logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redis.HealthCheck(ctx, redisClient); err != nil {
		l.Logger.Fatal("redis connection failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	chatRepo := repository.NewChatRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	sessionStore := redis.NewSessionStore(redisClient)

	chatService := services.NewChatService(chatRepo, messageRepo, userRepo, l)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, sessionStore, chatRepo, cfg)

	cookie := handler.CookieConfig{Name: cfg.CookieName, Secure: cfg.CookieSecure}
	handlers := &server.Handlers{
		Chat: handler.NewChatHandler(chatService),
		User: handler.NewUserHandler(userService),
		Auth: handler.NewAuthHandler(authService, cookie),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, map[string]server.HealthCheck{
		"postgres": func(ctx context.Context) error { return database.HealthCheck(ctx, pool) },
		"redis":    func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) },
	})

	if err := srv.Start(); err != nil {
		l.Logger.Error("server shutdown failed", zap.Error(err))
	}
}
