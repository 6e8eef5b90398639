package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	os.Exit(m.Run())
}

func openMemory(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_PlayerRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	if _, found, err := s.LoadPlayer(ctx, "alice"); err != nil || found {
		t.Fatalf("LoadPlayer on empty db: found=%v err=%v", found, err)
	}

	created, err := s.CreatePlayer(ctx, "Alice")
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	got, found, err := s.LoadPlayer(ctx, "alice")
	if err != nil || !found {
		t.Fatalf("LoadPlayer after create: found=%v err=%v", found, err)
	}
	if got.Username != "Alice" || got.HasPos {
		t.Errorf("created = %+v, want username Alice and no position", got)
	}
	if got.Inventory["bronze_pickaxe"] != created.Inventory["bronze_pickaxe"] {
		t.Errorf("inventory = %v, want %v", got.Inventory, created.Inventory)
	}

	saved := created
	saved.X, saved.Y = 7, 3
	saved.Facing = domain.FacingNorth.String()
	saved.Skills = map[string]float64{"mining": 52.5, "cooking": 30}
	saved.Inventory = map[string]int{"copper_ore": 3, "raw_shrimp": 0}
	saved.Equipment = map[string]string{"mainHand": "bronze_pickaxe"}
	saved.IsAdmin = true
	if err := s.SavePlayer(ctx, "Alice", saved); err != nil {
		t.Fatalf("SavePlayer: %v", err)
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got, _, err = s.LoadPlayer(ctx, "ALICE")
	if err != nil {
		t.Fatal(err)
	}
	if got.X != 7 || got.Y != 3 || !got.HasPos || !got.IsAdmin || got.Facing != saved.Facing {
		t.Errorf("loaded = %+v", got)
	}
	if got.Skills["mining"] != 52.5 || got.Skills["cooking"] != 30 {
		t.Errorf("skills = %v", got.Skills)
	}
	if len(got.Inventory) != 1 || got.Inventory["copper_ore"] != 3 {
		t.Errorf("inventory = %v, want only copper_ore x3", got.Inventory)
	}
	if got.Equipment["mainHand"] != "bronze_pickaxe" {
		t.Errorf("equipment = %v", got.Equipment)
	}
}

func TestSQLiteStore_LoadSeesQueuedSave(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	data := domain.NewPlayerData("carol")
	data.Inventory = map[string]int{"copper_ore": 5}
	for i := 0; i < 20; i++ {
		data.X = i
		if err := s.SavePlayer(ctx, "carol", data); err != nil {
			t.Fatalf("SavePlayer: %v", err)
		}
	}

	got, found, err := s.LoadPlayer(ctx, "carol")
	if err != nil || !found {
		t.Fatalf("LoadPlayer: found=%v err=%v", found, err)
	}
	if got.X != 19 || got.Inventory["copper_ore"] != 5 {
		t.Errorf("loaded = %+v, want the last queued save", got)
	}
}

func TestSQLiteStore_WorldSeed(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	if _, found, err := s.LoadWorldConfig(ctx); err != nil || found {
		t.Fatalf("LoadWorldConfig on empty db: found=%v err=%v", found, err)
	}

	cfg := domain.WorldConfig{Width: 2, Height: 2}
	tiles := []domain.Tile{
		{X: 0, Y: 0, Type: domain.TileGrass, Height: 0.5},
		{X: 1, Y: 0, Type: domain.TileWater},
		{X: 0, Y: 1, Type: domain.TileSand, Height: 0.1},
		{X: 1, Y: 1, Type: domain.TileStone, Height: 0.8},
	}
	objects := []domain.WorldObject{
		{Position: domain.Position{X: 1, Y: 1}, DefinitionID: "copper_rock"},
		{Position: domain.Position{X: 0, Y: 1}, DefinitionID: "oak_tree", Status: domain.StatusDepleted, TicksUntilRespawn: 4},
	}
	if err := s.SaveWorld(ctx, cfg, tiles, objects); err != nil {
		t.Fatalf("SaveWorld: %v", err)
	}

	gotCfg, found, err := s.LoadWorldConfig(ctx)
	if err != nil || !found || gotCfg != cfg {
		t.Fatalf("LoadWorldConfig = %+v found=%v err=%v", gotCfg, found, err)
	}
	gotTiles, err := s.LoadTiles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotTiles) != 4 || gotTiles[1].Type != domain.TileWater || gotTiles[3].Height != 0.8 {
		t.Errorf("tiles = %+v", gotTiles)
	}
	gotObjects, err := s.LoadWorldObjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotObjects) != 2 {
		t.Fatalf("objects = %+v", gotObjects)
	}
	// ordered by y, x
	if gotObjects[0].DefinitionID != "oak_tree" || gotObjects[0].TicksUntilRespawn != 4 || gotObjects[0].Status != domain.StatusDepleted {
		t.Errorf("objects[0] = %+v", gotObjects[0])
	}
	if gotObjects[1].Status != domain.StatusActive {
		t.Errorf("objects[1].Status = %q, want active", gotObjects[1].Status)
	}

	// seeding twice replaces
	if err := s.SaveWorld(ctx, cfg, tiles, objects[:1]); err != nil {
		t.Fatal(err)
	}
	if gotObjects, _ = s.LoadWorldObjects(ctx); len(gotObjects) != 1 {
		t.Errorf("objects after reseed = %d, want 1", len(gotObjects))
	}
}

func TestSQLiteStore_Close(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SavePlayer(context.Background(), "bob", domain.NewPlayerData("bob")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.SavePlayer(context.Background(), "bob", domain.NewPlayerData("bob")); !errors.Is(err, ErrClosed) {
		t.Errorf("SavePlayer after Close err = %v, want ErrClosed", err)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Error("OpenSQLite(\"\") succeeded")
	}
}
