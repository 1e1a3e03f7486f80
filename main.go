package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"dublinbikes/config"
	"dublinbikes/db"
	httpserver "dublinbikes/http"
	"dublinbikes/logging"
	"dublinbikes/refresh"
	"dublinbikes/service"
	"dublinbikes/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	memory := store.NewMemory()
	seed, err := store.LoadSeed(cfg.SeedPath)
	if err != nil {
		logger.Error("seed load failed, starting with an empty store",
			zap.String("path", cfg.SeedPath), zap.Error(err))
	} else {
		memory.ReplaceAll(seed)
		logger.Info("loaded stations from seed file",
			zap.Int("count", memory.Count()), zap.String("path", cfg.SeedPath))
	}

	cache := store.NewSnapshotCache(cfg.CacheTTL)
	stations := service.New(memory, cache)

	var repo *db.Repository
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, /api/v2 routes disabled")
	} else {
		repo, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("document store unavailable, /api/v2 routes disabled", zap.Error(err))
			repo = nil
		} else {
			defer repo.Close()
			if n, err := repo.SeedIfEmpty(ctx, seed); err != nil {
				logger.Error("document store seeding failed", zap.Error(err))
			} else if n > 0 {
				logger.Info("seeded document store", zap.Int("count", n))
			}
		}
	}

	refresher := refresh.New(memory, cfg.RefreshInterval, logger)
	go refresher.Run(ctx)

	srv := httpserver.New(cfg, stations, repo, logger)
	logger.Info("stations API listening", zap.String("addr", cfg.ListenAddr()))

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
