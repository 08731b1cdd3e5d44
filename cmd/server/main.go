package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/Mikheydazz/starmatch-bot/internal/app"
	"github.com/Mikheydazz/starmatch-bot/internal/cache"
	"github.com/Mikheydazz/starmatch-bot/internal/config"
	"github.com/Mikheydazz/starmatch-bot/internal/db"
	"github.com/Mikheydazz/starmatch-bot/internal/logger"
	"github.com/Mikheydazz/starmatch-bot/internal/server"
	"github.com/Mikheydazz/starmatch-bot/internal/service/match"
	"github.com/Mikheydazz/starmatch-bot/internal/service/moderation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.New()

	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log)

	if cfg.App.Env == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	registrars := []server.Registrar{
		match.NewRegistrar(appCtx, nil),
		moderation.NewRegistrar(appCtx, nil),
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
