package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/ionutrobert/WebScape/internal/domain"
)

// Store is the persistence contract of the server.
type Store interface {
	LoadPlayer(ctx context.Context, username string) (domain.PlayerData, bool, error)
	CreatePlayer(ctx context.Context, username string) (domain.PlayerData, error)
	SavePlayer(ctx context.Context, username string, data domain.PlayerData) error
	LoadWorldConfig(ctx context.Context) (domain.WorldConfig, bool, error)
	LoadWorldObjects(ctx context.Context) ([]domain.WorldObject, error)
	LoadTiles(ctx context.Context) ([]domain.Tile, error)
}

// WorldSeeder is optionally implemented by stores that can persist a generated world.
type WorldSeeder interface {
	SaveWorld(ctx context.Context, cfg domain.WorldConfig, tiles []domain.Tile, objects []domain.WorldObject) error
}

// MemoryStore keeps everything in maps. Used by tests and when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	players map[string]domain.PlayerData

	world   domain.WorldConfig
	hasCfg  bool
	tiles   []domain.Tile
	objects []domain.WorldObject
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{players: make(map[string]domain.PlayerData)}
}

func key(username string) string {
	return strings.ToLower(username)
}

func (m *MemoryStore) LoadPlayer(_ context.Context, username string) (domain.PlayerData, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.players[key(username)]
	return data, ok, nil
}

func (m *MemoryStore) CreatePlayer(_ context.Context, username string) (domain.PlayerData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := domain.NewPlayerData(username)
	m.players[key(username)] = data
	return data, nil
}

func (m *MemoryStore) SavePlayer(_ context.Context, username string, data domain.PlayerData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data.HasPos = true
	m.players[key(username)] = data
	return nil
}

func (m *MemoryStore) LoadWorldConfig(context.Context) (domain.WorldConfig, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.world, m.hasCfg, nil
}

func (m *MemoryStore) LoadWorldObjects(context.Context) ([]domain.WorldObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.WorldObject(nil), m.objects...), nil
}

func (m *MemoryStore) LoadTiles(context.Context) ([]domain.Tile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Tile(nil), m.tiles...), nil
}

// SaveWorld implements WorldSeeder.
func (m *MemoryStore) SaveWorld(_ context.Context, cfg domain.WorldConfig, tiles []domain.Tile, objects []domain.WorldObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.world = cfg
	m.hasCfg = true
	m.tiles = append([]domain.Tile(nil), tiles...)
	m.objects = append([]domain.WorldObject(nil), objects...)
	return nil
}
