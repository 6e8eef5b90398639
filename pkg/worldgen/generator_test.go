package worldgen

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
)

func TestGenerate(t *testing.T) {
	w := Generate(20, 42)

	if w.Config.Width != 20 || w.Config.Height != 20 {
		t.Errorf("Expected 20x20, got %dx%d", w.Config.Width, w.Config.Height)
	}
	if len(w.Tiles) != 400 {
		t.Fatalf("Expected 400 tiles, got %d", len(w.Tiles))
	}

	water := make(map[domain.Position]bool)
	for _, tile := range w.Tiles {
		if tile.Type == domain.TileWater {
			water[domain.Position{X: tile.X, Y: tile.Y}] = true
		}
	}

	seen := make(map[domain.Position]bool)
	for _, o := range w.Objects {
		if seen[o.Position] {
			t.Errorf("Two objects at %v", o.Position)
		}
		seen[o.Position] = true
		if water[o.Position] {
			t.Errorf("%s placed on water at %v", o.DefinitionID, o.Position)
		}
		if _, ok := domain.LookupObject(o.DefinitionID); !ok {
			t.Errorf("Unknown definition %q", o.DefinitionID)
		}
	}

	// the spawn centre stays walkable
	centre := domain.Position{X: 10, Y: 10}
	if water[centre] || seen[centre] {
		t.Errorf("Spawn centre %v is not clear", centre)
	}

	for _, pl := range StarterLayout {
		p := domain.Position{X: pl.X, Y: pl.Y}
		if !seen[p] {
			t.Errorf("Starter %s missing at %v", pl.DefinitionID, p)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(24, 7)
	b := Generate(24, 7)
	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed produced different worlds")
	}
}

func TestWithLayout_SkipsOutOfBounds(t *testing.T) {
	w := New(4, 4, rand.New(rand.NewSource(1))).
		WithLayout([]Placement{{1, 1, "copper_rock"}, {9, 9, "tin_rock"}, {1, 1, "tin_rock"}}).
		Build()

	if len(w.Objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(w.Objects))
	}
	if w.Objects[0].DefinitionID != "copper_rock" {
		t.Errorf("Expected copper_rock, got %s", w.Objects[0].DefinitionID)
	}
}

func TestObstacles(t *testing.T) {
	w := New(3, 3, rand.New(rand.NewSource(1))).Build()
	w.Tiles[4].Type = domain.TileWater

	obs := w.Obstacles()
	if len(obs) != 1 || obs[0] != (domain.Position{X: 1, Y: 1}) {
		t.Errorf("Obstacles() = %v, want [(1,1)]", obs)
	}
}
