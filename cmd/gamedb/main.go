package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/GameDB_Go/internal/cache"
	"github.com/osse101/GameDB_Go/internal/config"
	"github.com/osse101/GameDB_Go/internal/database"
	"github.com/osse101/GameDB_Go/internal/database/postgres"
	"github.com/osse101/GameDB_Go/internal/domain"
	"github.com/osse101/GameDB_Go/internal/inventory"
	"github.com/osse101/GameDB_Go/internal/item"
	"github.com/osse101/GameDB_Go/internal/logger"
	"github.com/osse101/GameDB_Go/internal/player"
	"github.com/osse101/GameDB_Go/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	logCfg := logger.ProductionConfig()
	if cfg.Env == "dev" {
		logCfg = logger.DevelopmentConfig()
	}
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logger.Setup(logCfg)

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return 1
	}
	defer dbPool.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, dbPool); err != nil {
		slog.Error("Failed to apply schema", "error", err)
		return 1
	}

	inventoryCache, err := cache.New[*domain.Inventory](cfg.CacheSize)
	if err != nil {
		slog.Error("Failed to create inventory cache", "error", err)
		return 1
	}
	itemCache, err := cache.New[*domain.Item](cfg.CacheSize)
	if err != nil {
		slog.Error("Failed to create item cache", "error", err)
		return 1
	}
	playerCache, err := cache.New[*domain.Player](cfg.CacheSize)
	if err != nil {
		slog.Error("Failed to create player cache", "error", err)
		return 1
	}

	itemStore := postgres.NewItemStore(dbPool)
	inventoryService := inventory.NewService(postgres.NewInventoryStore(dbPool), itemStore, inventoryCache)
	itemService := item.NewService(itemStore, itemCache)
	playerService := player.NewService(postgres.NewPlayerStore(dbPool), playerCache)

	srv := server.NewServer(cfg.Host, cfg.Port, dbPool, inventoryService, itemService, playerService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		return 1
	case sig := <-sc:
		slog.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return 1
	}

	slog.Info("Server stopped")
	return 0
}
