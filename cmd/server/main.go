package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ionutrobert/WebScape/internal/config"
	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine"
	"github.com/ionutrobert/WebScape/internal/infrastructure/storage"
	"github.com/ionutrobert/WebScape/internal/network"
	"github.com/ionutrobert/WebScape/internal/server"
	"github.com/ionutrobert/WebScape/internal/version"
	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Flags and config
	var (
		configPath   string
		seed         int64
		snapshotPath string
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.Int64Var(&seed, "seed", 0, "World seed (0 keeps the configured or a random seed)")
	flag.StringVar(&snapshotPath, "snapshot", "", "Restore object statuses from a snapshot file at boot")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)

	logger.Log.Info("Starting WebScape...")
	logger.Log.Info(version.String())

	if err := api.CompileSchemas(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to compile inbound schemas")
	}

	engCfg := cfg.Engine()
	if seed != 0 {
		engCfg.Seed = seed
		logger.Log.Infof("Using explicit seed: %d", seed)
	} else {
		logger.Log.Infof("Using seed: %d", engCfg.Seed)
	}

	// 2. Storage and world
	store, closeStore := openStore(cfg.Storage.DatabasePath)
	defer closeStore()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	world, err := engine.LoadWorld(bootCtx, store, engCfg)
	cancelBoot()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build the world")
	}
	if snapshotPath != "" {
		restoreSnapshot(world, snapshotPath)
	}

	// 3. Simulation and gateway
	hub := network.NewBroadcaster()
	sim := engine.NewSimulation(engCfg, world, hub, store)
	snapshots := storage.NewSnapshotService(engCfg.SnapshotPath, func() (uint64, []domain.WorldObject) {
		return sim.Tick(), sim.World.All()
	})
	sim.SetSnapshotter(snapshots)
	svc := engine.NewService(sim, hub, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		sim.Run(ctx)
	}()

	srv := server.New(svc, cfg.Server.Port)
	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Run()
	}()

	select {
	case <-ctx.Done():
	case err := <-srvErr:
		if err != nil {
			logger.Log.WithError(err).Error("Server stopped")
		}
		stop()
	}
	logger.Log.Info("Shutting down...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown")
	}
	<-simDone

	saveOnline(shutdownCtx, sim, store)
	sim.Inspect(func(*engine.Simulation) {
		if _, err := snapshots.WriteSnapshot(); err != nil {
			logger.Log.WithError(err).Warn("Final snapshot failed")
		}
	})

	logger.Log.Info("Done.")
}

// openStore picks SQLite when a path is configured and falls back to memory.
func openStore(path string) (engine.Store, func()) {
	if path == "" {
		logger.Log.Warn("No database path configured, players are kept in memory")
		return engine.NewMemoryStore(), func() {}
	}
	db, err := storage.OpenSQLite(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open database")
	}
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Log.WithError(err).Error("Failed to close database")
		}
	}
}

func restoreSnapshot(world *domain.WorldState, path string) {
	log := logger.Log.WithField("path", path)
	snap, err := storage.LoadSnapshot(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn("Snapshot not found, starting fresh")
		return
	case err != nil:
		log.WithError(err).Warn("Failed to read snapshot, keeping the loaded world")
		return
	}
	applied := world.Restore(snap.Objects)
	log.WithFields(logrus.Fields{
		"tick":    snap.Tick,
		"objects": len(snap.Objects),
		"applied": applied,
	}).Info("Snapshot restored")
}

// saveOnline persists everyone still connected when the loop stopped.
func saveOnline(ctx context.Context, sim *engine.Simulation, store engine.Store) {
	var online []domain.PlayerData
	sim.Inspect(func(s *engine.Simulation) {
		for _, p := range s.Players.All() {
			online = append(online, p.Snapshot())
		}
	})
	for _, data := range online {
		if err := store.SavePlayer(ctx, data.Username, data); err != nil {
			logger.Log.WithError(err).WithField("username", data.Username).Error("Failed to save player")
		}
	}
	logger.Log.WithField("players", len(online)).Info("Online players saved")
}
