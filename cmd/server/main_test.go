package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine"
	"github.com/ionutrobert/WebScape/internal/infrastructure/storage"
)

func rockWorld(t *testing.T) *domain.WorldState {
	t.Helper()
	var tiles []domain.Tile
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			tiles = append(tiles, domain.Tile{X: x, Y: y, Type: domain.TileGrass})
		}
	}
	objects := []domain.WorldObject{{Position: domain.Position{X: 2, Y: 2}, DefinitionID: "copper_rock"}}
	w, err := engine.BuildWorld(domain.WorldConfig{Width: 4, Height: 4}, tiles, objects)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestRestoreSnapshot(t *testing.T) {
	dir := t.TempDir()

	saved := []domain.WorldObject{{
		Position:          domain.Position{X: 2, Y: 2},
		DefinitionID:      "copper_rock",
		Status:            domain.StatusDepleted,
		TicksUntilRespawn: 4,
	}}
	good, err := storage.NewSnapshotService(filepath.Join(dir, "good.snap"), func() (uint64, []domain.WorldObject) {
		return 7, saved
	}).WriteSnapshot()
	if err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	corrupt := filepath.Join(dir, "corrupt.snap")
	if err := os.WriteFile(corrupt, []byte("not a snapshot at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want domain.ObjectStatus
	}{
		{"applies a valid snapshot", good, domain.StatusDepleted},
		{"corrupt file keeps the world", corrupt, domain.StatusActive},
		{"missing file keeps the world", filepath.Join(dir, "missing.snap"), domain.StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := rockWorld(t)
			restoreSnapshot(w, tt.path)
			obj, _ := w.At(2, 2)
			if obj.Status != tt.want {
				t.Errorf("status = %s, want %s", obj.Status, tt.want)
			}
			if blocked := w.Grid.IsBlocked(2, 2); blocked != (tt.want == domain.StatusActive) {
				t.Errorf("blocked = %v for status %s", blocked, obj.Status)
			}
		})
	}
}
