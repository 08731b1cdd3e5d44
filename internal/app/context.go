package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/Mikheydazz/starmatch-bot/internal/cache"
	"github.com/Mikheydazz/starmatch-bot/internal/config"
)

// AppContext holds shared dependencies (config, DB, Redis, logger).
type AppContext struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Cache  *cache.RedisCache
	Logger *slog.Logger
}

// New creates a new AppContext.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Cfg:    cfg,
		DB:     db,
		Cache:  rdb,
		Logger: logger,
	}
}
