package cli

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/config"
	"github.com/mantonx/cinevault/internal/database"
	"github.com/mantonx/cinevault/internal/logger"
)

// initConfig loads .env files, then the config file and environment, and
// configures logging from the result.
func initConfig(path, logLevel string) error {
	if err := config.LoadDotEnv(".env", ".env.local"); err != nil {
		return err
	}

	if path == "" {
		path = os.Getenv("CINEVAULT_CONFIG")
	}
	if err := config.Load(path); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := config.Get()
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger.Configure(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	config.AddWatcher(func(oldConfig, newConfig *config.Config) {
		if logLevel == "" && oldConfig.Logging.Level != newConfig.Logging.Level {
			logger.SetLevel(newConfig.Logging.Level)
			logger.Info("log level changed", "level", newConfig.Logging.Level)
		}
	})

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

// openDatabase connects to the configured store and migrates it
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDatabase(db)
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
