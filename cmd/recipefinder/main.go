package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fabienpiette/recipe_finder/internal/config"
	"github.com/fabienpiette/recipe_finder/internal/database"
	"github.com/fabienpiette/recipe_finder/internal/redis"
	"github.com/fabienpiette/recipe_finder/internal/server"
	"github.com/fabienpiette/recipe_finder/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Log.Level)

	logrus.Info("Starting Recipe Finder server...")

	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Redis only backs the browse cache, so the server runs without it
	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache, err = redis.Initialize(cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, browse listings will not be cached")
		} else {
			defer cache.Close()
		}
	}

	serviceContainer := services.NewContainer(db.DB, cache, cfg, logrus.StandardLogger())

	httpServer := server.NewHTTPServer(cfg, serviceContainer)

	go func() {
		if err := httpServer.Start(); err != nil {
			logrus.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down Recipe Finder server...")

	if err := httpServer.Shutdown(); err != nil {
		logrus.Errorf("Error during HTTP server shutdown: %v", err)
	}

	logrus.Info("Recipe Finder server stopped")
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.Info("Logging initialized")
}
