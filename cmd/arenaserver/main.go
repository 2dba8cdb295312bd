// Package main provides the arena server binary: the combat engine, the
// location system, and the operational HTTP and gRPC health endpoints.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/dice"
	"github.com/cory-johannsen/arena/internal/game/engine"
	"github.com/cory-johannsen/arena/internal/game/item"
	"github.com/cory-johannsen/arena/internal/game/location"
	"github.com/cory-johannsen/arena/internal/game/opponent"
	"github.com/cory-johannsen/arena/internal/observability"
	"github.com/cory-johannsen/arena/internal/server"
	"github.com/cory-johannsen/arena/internal/storage/memory"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	inactiveDays := flag.Int("inactive-days", 30, "days without any action before a player is purged")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	src := dice.NewLoggedSource(dice.NewCryptoSource(), logger)

	logger.Info("starting arena server",
		zap.String("http_addr", cfg.Ops.HTTPAddr()),
		zap.String("grpc_addr", cfg.Ops.GRPCAddr()),
		zap.String("store", cfg.Server.Store),
	)

	// Opponent roster: built-ins unless a template directory is configured.
	templates := opponent.DefaultTemplates()
	if cfg.Game.OpponentsDir != "" {
		templates, err = opponent.LoadTemplates(cfg.Game.OpponentsDir)
		if err != nil {
			logger.Fatal("loading opponent templates", zap.Error(err))
		}
	}
	roster, err := opponent.NewRoster(templates)
	if err != nil {
		logger.Fatal("building opponent roster", zap.Error(err))
	}
	logger.Info("opponent roster ready", zap.Int("templates", len(templates)))

	// Item catalog: built-ins unless a definitions directory is configured.
	catalog := item.DefaultCatalog()
	if cfg.Game.ItemsDir != "" {
		items, err := item.LoadItems(cfg.Game.ItemsDir)
		if err != nil {
			logger.Fatal("loading item definitions", zap.Error(err))
		}
		catalog, err = item.NewCatalog(items)
		if err != nil {
			logger.Fatal("building item catalog", zap.Error(err))
		}
	}
	logger.Info("item catalog ready", zap.Int("items", len(catalog.All())))

	// Player store and durable battle log.
	var (
		store      engine.PlayerStore
		pool       *postgres.Pool
		battleRepo *postgres.BattleRecordRepository
	)
	switch cfg.Server.Store {
	case "postgres":
		dbStart := time.Now()
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		store = postgres.NewPlayerRepository(pool.DB())
		battleRepo = postgres.NewBattleRecordRepository(pool.DB())
	case "memory":
		store = memory.NewPlayerStore()
	default:
		logger.Fatal("unknown store backend", zap.String("store", cfg.Server.Store))
	}

	systemOpts := []combat.SystemOption{combat.WithRoundCap(cfg.Game.RoundCap)}
	if battleRepo != nil {
		systemOpts = append(systemOpts, combat.WithRecordHook(func(rec combat.BattleRecord) {
			if err := battleRepo.Insert(ctx, rec); err != nil {
				logger.Warn("persisting battle record",
					zap.String("player_id", rec.PlayerID),
					zap.Error(err),
				)
			}
		}))
	}
	battles := combat.NewSystem(roster, combat.NewHistory(cfg.Game.HistoryLimit), src, logger, systemOpts...)
	locations := location.NewManager(location.DefaultLocations(), catalog, src, logger)

	metrics := observability.NewGameMetrics()
	eng := engine.New(store, battles, locations, logger,
		engine.WithMetrics(metrics),
		engine.WithCooldowns(cfg.Game.CombatCooldown, cfg.Game.SearchCooldown),
	)

	// Daily reset and inactive-player cleanup on the configured schedule.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Game.DailyResetCron, func() {
		if err := eng.DailyReset(ctx); err != nil {
			logger.Error("daily reset failed", zap.Error(err))
		}
		removed, err := eng.CleanupInactive(ctx, *inactiveDays)
		if err != nil {
			logger.Error("inactive cleanup failed", zap.Error(err))
			return
		}
		if removed > 0 {
			logger.Info("inactive players removed", zap.Int("count", removed))
		}
	})
	if err != nil {
		logger.Fatal("scheduling daily reset", zap.Error(err))
	}

	opsSrv := server.NewOpsServer(cfg.Ops.HTTPAddr(), eng, metrics.Handler(), logger)
	healthSrv := server.NewHealthServer(cfg.Ops.GRPCAddr(), logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("ops", opsSrv)
	lifecycle.Add("health", healthSrv)
	lifecycle.Add("scheduler", &server.FuncService{
		StartFn: func() error {
			scheduler.Run()
			return nil
		},
		StopFn: func() {
			scheduler.Stop()
		},
	})

	if pool != nil {
		lifecycle.Add("postgres", &server.FuncService{
			StartFn: func() error {
				for {
					time.Sleep(30 * time.Second)
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			},
			StopFn: func() {
				pool.Close()
			},
		})
	}

	healthSrv.MarkServing()
	logger.Info("arena server initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
