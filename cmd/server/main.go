package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"seazone/server/config"
	"seazone/server/internal/api"
	"seazone/server/internal/database"
	"seazone/server/internal/notify"
	"seazone/server/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Prices serialize as plain JSON numbers, matching the wire format
	// of the decimal(10,2) columns.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.DatabaseURL)
	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Confirmation notifications are optional; without Telegram
	// credentials the queue stays nil and handlers skip it.
	var notifier *notify.Queue
	telegramConfig := notify.Config{
		BotToken: cfg.Notifications.TelegramBotToken,
		ChatID:   cfg.Notifications.TelegramChatID,
	}
	if telegramConfig.Enabled() {
		notifier = notify.NewQueue(cfg.Notifications.QueueSize, logger)
		sender := notify.NewTelegram(telegramConfig, logger)

		dispatcher := notify.NewDispatcher(notifier, sender, notify.DispatcherOptions{
			Workers:    cfg.Notifications.WorkerCount,
			MaxRetries: cfg.Notifications.MaxRetries,
			RetryDelay: time.Duration(cfg.Notifications.RetryDelay) * time.Second,
		}, logger)
		dispatcher.Start()
		defer dispatcher.Stop()

		digest := scheduler.NewScheduler(db, sender, logger)
		digest.Start()
		defer digest.Stop()

		logger.Info("Reservation notifications enabled")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	if cfg.RateLimit.Enabled {
		router.Use(api.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	api.SetupRoutes(router, db, logger, notifier)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
