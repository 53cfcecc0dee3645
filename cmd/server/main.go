package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/config"
	"github.com/degenpilot404/realyieldagent/internal/api"
	"github.com/degenpilot404/realyieldagent/internal/database"
	"github.com/degenpilot404/realyieldagent/internal/dialogue"
	"github.com/degenpilot404/realyieldagent/internal/gateway"
	"github.com/degenpilot404/realyieldagent/internal/geometry"
	"github.com/degenpilot404/realyieldagent/internal/retry"
	"github.com/degenpilot404/realyieldagent/internal/runtime"
	"github.com/degenpilot404/realyieldagent/internal/scheduler"
	"github.com/degenpilot404/realyieldagent/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// The database lives in a subdirectory on a fresh checkout
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WithError(err).Fatal("Failed to create database directory")
		}
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Initialize the listing API client
	policy := retry.Policy{
		MaxAttempts: cfg.DetailFetch.MaxAttempts,
		BaseDelay:   time.Duration(cfg.DetailFetch.BaseDelayMS) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.DetailFetch.MaxDelayMS) * time.Millisecond,
	}
	client := gateway.NewClient(
		cfg.ListingAPI.SearchURL,
		cfg.ListingAPI.DetailURL,
		time.Duration(cfg.ListingAPI.TimeoutSeconds)*time.Second,
		policy,
		logger,
	)

	// A dead listing API should not block startup; searches report
	// the outage to the user per message instead.
	logger.Info("Checking listing API reachability...")
	if !client.CheckReachable(context.Background()) {
		logger.Warn("Listing API is not reachable, searches will fail until it recovers")
	}

	// Wire the conversation engine and its actions
	locator := geometry.NewAreaLocator(logger)
	engine := dialogue.NewEngine(client, db, locator, logger)

	rt := runtime.New(logger,
		runtime.GreetingAction{},
		runtime.NewAnalyzeListingAction(client, logger),
		runtime.NewSearchAction(engine),
	)

	// The Telegram channel and the saved-search alerts ride on the bot token
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewService(cfg.Telegram.BotToken, cfg.Telegram.PollTimeout, logger)
		go bot.Run(context.Background(), rt)

		alerts := scheduler.NewScheduler(client, db, bot,
			time.Duration(cfg.Alerts.IntervalHours)*time.Hour, logger)
		alerts.Start()
		defer alerts.Stop()

		logger.Info("Telegram channel and saved-search alerts enabled")
	}

	// Initialize router
	router := gin.Default()

	// Apply CORS middleware
	router.Use(cors.Default())

	// Define routes
	api.SetupRoutes(router, rt, db, logger)

	logger.Infof("Starting server on port %d", cfg.Server.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
