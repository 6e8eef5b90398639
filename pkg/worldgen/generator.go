// Package worldgen builds fresh worlds when the store has none.
package worldgen

import (
	"math/rand"

	"github.com/ionutrobert/WebScape/internal/domain"
)

// World is a generated world ready to be stored or loaded.
type World struct {
	Config  domain.WorldConfig
	Tiles   []domain.Tile
	Objects []domain.WorldObject
}

// Obstacles lists every static obstacle tile.
func (w World) Obstacles() []domain.Position {
	var out []domain.Position
	for _, t := range w.Tiles {
		if t.IsObstacle() {
			out = append(out, domain.Position{X: t.X, Y: t.Y})
		}
	}
	return out
}

// Generate creates a size x size world. The same seed gives the same world.
func Generate(size int, seed int64) World {
	if size < 1 {
		size = domain.DefaultWorldSize
	}
	rng := rand.New(rand.NewSource(seed))

	scatter := 0
	if size > domain.DefaultWorldSize {
		scatter = (size*size - domain.DefaultWorldSize*domain.DefaultWorldSize) / 40
	}

	return New(size, size, rng).
		WithTerrain().
		KeepClear(size/2, size/2, 1).
		WithLayout(StarterLayout).
		WithLake(max(1, size/10)).
		Scatter(scatter).
		Build()
}
