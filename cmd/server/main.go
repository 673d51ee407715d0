package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"estatehub/server/config"
	"estatehub/server/internal/api"
	"estatehub/server/internal/cache"
	"estatehub/server/internal/database"
	"estatehub/server/internal/notify"
	"estatehub/server/internal/ratelimit"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	gin.SetMode(cfg.GinMode)

	logger.Infof("Using database at: %s", cfg.DatabasePath)
	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	if err := db.EnsureDefaultAdmin(cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.WithError(err).Fatal("Failed to provision admin account")
	}

	// Redis is optional; without it rate limiting and the featured cache
	// are disabled.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		logger.Infof("Redis configured at %s", cfg.RedisAddr)
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting and caching disabled")
	}

	notifier := notify.NewTelegramNotifier(logger, cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if notifier.Enabled() {
		logger.Info("Telegram lead notifications enabled")
	}

	limiter := ratelimit.NewLimiter(rdb, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute, logger)
	handler := api.NewHandler(db, logger, cfg, cache.New(rdb), notifier)

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, handler, limiter)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
