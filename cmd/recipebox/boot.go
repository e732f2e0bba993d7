package main

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/config"
	"github.com/shashiranjanraj/recipebox/internal/kernel"
	"github.com/shashiranjanraj/recipebox/pkg/cache"
	"github.com/shashiranjanraj/recipebox/pkg/database"
	"github.com/shashiranjanraj/recipebox/pkg/logger"
	"github.com/shashiranjanraj/recipebox/pkg/metrics"
	"github.com/shashiranjanraj/recipebox/pkg/storage"
)

// app is everything a command may need, released by close.
type app struct {
	db     *gorm.DB
	kernel *kernel.HTTPKernel
	close  func()
}

// bootDB loads config and the logger, then opens the database.
func bootDB(ctx context.Context) (*gorm.DB, func(), error) {
	if err := config.Load(); err != nil {
		return nil, nil, err
	}
	flush, err := logger.Boot(ctx)
	if err != nil {
		logger.Warn("mongo log sink disabled", "error", err.Error())
	}

	db, err := database.Connect()
	if err != nil {
		flush()
		return nil, nil, err
	}
	return db, func() {
		_ = database.Close(db)
		flush()
	}, nil
}

// boot opens every dependency and builds the HTTP kernel. Redis is optional:
// when it cannot be reached the cache is disabled and a warning is logged.
func boot(ctx context.Context) (*app, error) {
	db, closeDB, err := bootDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := metrics.InstrumentGorm(db); err != nil {
		closeDB()
		return nil, err
	}

	store, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("cache disabled", "error", err.Error())
	}

	disks, err := storage.Connect(ctx)
	if err != nil {
		_ = store.Close()
		closeDB()
		return nil, err
	}

	k, err := kernel.NewHTTPKernel(kernel.Deps{DB: db, Cache: store, Disks: disks})
	if err != nil {
		_ = store.Close()
		closeDB()
		return nil, err
	}

	return &app{
		db:     db,
		kernel: k,
		close: func() {
			_ = store.Close()
			closeDB()
		},
	}, nil
}
