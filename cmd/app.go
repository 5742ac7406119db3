package cmd

import (
	"fmt"

	"mango-sync/core/config"
	"mango-sync/core/database"
	"mango-sync/core/lock"
	"mango-sync/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds what one run needs. Everything it opens is released by Close.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	locker lock.Locker
	runID  string
}

// newApp loads configuration, builds the logger and, when withDB is set,
// connects to the database. Any error here means the run cannot start.
func newApp(path string, withDB bool) (*app, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	runID := uuid.NewString()
	a := &app{
		cfg:    cfg,
		logger: logger.WithRunID(l, runID),
		locker: lock.New(cfg.Lock),
		runID:  runID,
	}

	if withDB {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.db = db
		a.logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	return a, nil
}

// Close releases the database pool and the lock connection.
func (a *app) Close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("Failed to close database", zap.Error(err))
		} else {
			a.logger.Info("Database connection closed")
		}
	}
	if err := a.locker.Close(); err != nil {
		a.logger.Warn("Failed to close lock client", zap.Error(err))
	}
	_ = a.logger.Sync()
}
