package engine

import (
	"context"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"
	"github.com/ionutrobert/WebScape/pkg/worldgen"

	"github.com/sirupsen/logrus"
)

// BuildWorld assembles a WorldState from tiles and objects. Water tiles are
// the static obstacles.
func BuildWorld(cfg domain.WorldConfig, tiles []domain.Tile, objects []domain.WorldObject) (*domain.WorldState, error) {
	var obstacles []domain.Position
	for _, t := range tiles {
		if t.IsObstacle() {
			obstacles = append(obstacles, domain.Position{X: t.X, Y: t.Y})
		}
	}
	grid := domain.NewCollisionGrid(cfg.Width, cfg.Height, obstacles)
	return domain.NewWorldState(grid, tiles, objects)
}

// LoadWorld reads the world from the store. An empty or unreadable store gets
// a freshly generated world, which is written back when the store can seed.
func LoadWorld(ctx context.Context, store Store, cfg Config) (*domain.WorldState, error) {
	cfg = cfg.withDefaults()
	log := logger.Log.WithField("component", "simulation")

	if store != nil {
		w, found, err := loadStoredWorld(ctx, store)
		switch {
		case err != nil:
			log.WithError(err).Warn("Failed to load world, generating a new one")
		case found:
			log.WithFields(logrus.Fields{
				"width":   w.Width(),
				"height":  w.Height(),
				"objects": len(w.All()),
			}).Info("World loaded from store")
			return w, nil
		}
	}

	gen := worldgen.Generate(cfg.WorldSize, cfg.Seed)
	w, err := BuildWorld(gen.Config, gen.Tiles, gen.Objects)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"size":    cfg.WorldSize,
		"seed":    cfg.Seed,
		"objects": len(gen.Objects),
	}).Info("World generated")

	if seeder, ok := store.(WorldSeeder); ok {
		if err := seeder.SaveWorld(ctx, gen.Config, gen.Tiles, gen.Objects); err != nil {
			log.WithError(err).Warn("Failed to seed world tables")
		}
	}
	return w, nil
}

func loadStoredWorld(ctx context.Context, store Store) (*domain.WorldState, bool, error) {
	wc, found, err := store.LoadWorldConfig(ctx)
	if err != nil || !found {
		return nil, false, err
	}
	tiles, err := store.LoadTiles(ctx)
	if err != nil {
		return nil, false, err
	}
	objects, err := store.LoadWorldObjects(ctx)
	if err != nil {
		return nil, false, err
	}
	w, err := BuildWorld(wc, tiles, objects)
	if err != nil {
		return nil, false, err
	}
	return w, true, nil
}
