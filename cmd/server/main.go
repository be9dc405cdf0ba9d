package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/noteduco342/readgroup-backend/internal/cache"
	"github.com/noteduco342/readgroup-backend/internal/config"
	"github.com/noteduco342/readgroup-backend/internal/events"
	"github.com/noteduco342/readgroup-backend/internal/handlers"
	"github.com/noteduco342/readgroup-backend/internal/logging"
	"github.com/noteduco342/readgroup-backend/internal/middleware"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/service"
	"github.com/noteduco342/readgroup-backend/internal/session"
	"github.com/noteduco342/readgroup-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logger := logging.New(cfg.LogLevel)

	// Initialize database connection
	db, err := repository.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	ctx := context.Background()
	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := redisCache.Ping(ctx); err != nil {
		if cfg.SessionBackend == "redis" {
			log.Fatal("Redis is required for SESSION_BACKEND=redis:", err)
		}
		logger.Warn("redis connection failed, running without cache", "error", err)
		redisCache.Close()
		redisCache = nil
	} else {
		logger.Info("redis cache connected", "addr", cfg.RedisAddr)
	}

	var sessions session.Store = session.NewMemoryStore()
	if cfg.SessionBackend == "redis" {
		sessions = session.NewRedisStore(redisCache, session.DefaultRedisKey)
	}

	// Initialize S3/MinIO storage (best-effort; content endpoints return 503 if missing)
	var documents storage.DocumentStore
	if bucket, err := storage.NewDocumentBucket(cfg.S3); err != nil {
		logger.Warn("document storage disabled", "error", err)
	} else if err := bucket.EnsureBucket(ctx); err != nil {
		logger.Warn("failed to ensure S3 bucket", "bucket", bucket.Name(), "error", err)
	} else {
		documents = bucket
		logger.Info("S3 storage initialized", "bucket", bucket.Name())
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		logger.Info("kafka events enabled", "brokers", cfg.KafkaBrokers)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	readRepo := repository.NewReadRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Initialize services
	services := handlers.Services{
		Auth: service.NewAuthService(userRepo, sessions, service.AuthConfig{
			AccessSecret:  cfg.JWTSecret,
			RefreshSecret: cfg.RefreshSecret,
			AccessTTL:     cfg.AccessTokenTTL,
		}),
		Users:    service.NewUserService(userRepo, publisher),
		Groups:   service.NewGroupService(groupRepo, publisher),
		Reads:    service.NewReadService(readRepo, groupRepo, cache.NewReadCache(redisCache), documents, publisher),
		Messages: service.NewMessageService(messageRepo, progressRepo, publisher),
		Progress: service.NewProgressService(progressRepo, publisher),
	}

	app := fiber.New(fiber.Config{
		AppName:   "Reading Group Backend",
		BodyLimit: 8 * 1024 * 1024, // 8MB
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	handlers.Register(app, services)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}

	if err := sessions.Close(); err != nil {
		logger.Error("closing session store", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("closing event publisher", "error", err)
	}
	if redisCache != nil {
		redisCache.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
