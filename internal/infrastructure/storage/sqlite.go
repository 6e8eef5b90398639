package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("storage closed")

// writeQueue is the writer channel depth. A full queue blocks the caller until
// its context expires.
const writeQueue = 256

type job struct {
	name string
	fn   func(ctx context.Context, tx *sql.Tx) error
	done chan error // nil: fire and forget
}

// SQLiteStore persists players and the world. All writes go through one
// goroutine; reads use the pool directly.
type SQLiteStore struct {
	db *sql.DB

	mu     sync.RWMutex // guards closed against sends on a closed channel
	closed bool
	jobs   chan job
	wg     sync.WaitGroup
}

// OpenSQLite opens (or creates) the database and starts the writer.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps :memory: a single database and serialises writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db, path); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, jobs: make(chan job, writeQueue)}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"path":      path,
	}).Info("SQLite store opened")
	return s, nil
}

func initPragmas(db *sql.DB, path string) error {
	pragmas := []string{
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL;", "PRAGMA synchronous=NORMAL;")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			name_key TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			facing TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			has_pos INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS player_skills (
			name_key TEXT NOT NULL REFERENCES players(name_key) ON DELETE CASCADE,
			skill TEXT NOT NULL,
			xp REAL NOT NULL,
			PRIMARY KEY (name_key, skill)
		);`,
		`CREATE TABLE IF NOT EXISTS player_items (
			name_key TEXT NOT NULL REFERENCES players(name_key) ON DELETE CASCADE,
			item_id TEXT NOT NULL,
			qty INTEGER NOT NULL,
			PRIMARY KEY (name_key, item_id)
		);`,
		`CREATE TABLE IF NOT EXISTS player_equipment (
			name_key TEXT NOT NULL REFERENCES players(name_key) ON DELETE CASCADE,
			slot TEXT NOT NULL,
			item_id TEXT NOT NULL,
			PRIMARY KEY (name_key, slot)
		);`,
		`CREATE TABLE IF NOT EXISTS world_config (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			width INTEGER NOT NULL,
			height INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS world_objects (
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			definition_id TEXT NOT NULL,
			status TEXT NOT NULL,
			ticks_until_respawn INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (x, y)
		);`,
		`CREATE TABLE IF NOT EXISTS world_tiles (
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			tile_type TEXT NOT NULL,
			height REAL NOT NULL,
			PRIMARY KEY (x, y)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func nameKey(username string) string {
	return strings.ToLower(username)
}

// --- writer ---

func (s *SQLiteStore) loop() {
	ctx := context.Background()
	log := logger.Log.WithField("component", "storage")

	for j := range s.jobs {
		err := s.runJob(ctx, j)
		if err != nil {
			log.WithError(err).WithField("job", j.name).Error("Write failed")
		}
		if j.done != nil {
			j.done <- err
		}
	}
}

func (s *SQLiteStore) runJob(ctx context.Context, j job) error {
	if j.fn == nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := j.fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// enqueue hands a job to the writer. It blocks while the queue is full.
func (s *SQLiteStore) enqueue(ctx context.Context, j job) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.jobs <- j:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue %s: %w", j.name, ctx.Err())
	}
}

// await enqueues and waits for the writer to finish the job.
func (s *SQLiteStore) await(ctx context.Context, name string, fn func(ctx context.Context, tx *sql.Tx) error) error {
	done := make(chan error, 1)
	if err := s.enqueue(ctx, job{name: name, fn: fn, done: done}); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", name, ctx.Err())
	}
}

// Flush waits until every write queued before it has been applied.
func (s *SQLiteStore) Flush(ctx context.Context) error {
	return s.await(ctx, "flush", nil)
}

// Close drains the writer and closes the database. Safe to call twice.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	s.wg.Wait()
	return s.db.Close()
}

// --- players ---

// LoadPlayer implements engine.Store.
func (s *SQLiteStore) LoadPlayer(ctx context.Context, username string) (domain.PlayerData, bool, error) {
	// queued saves land first so a quick reconnect reads the latest record
	if err := s.Flush(ctx); err != nil && !errors.Is(err, ErrClosed) {
		return domain.PlayerData{}, false, fmt.Errorf("load player %s: %w", username, err)
	}

	key := nameKey(username)
	data := domain.PlayerData{
		Skills:    map[string]float64{},
		Inventory: map[string]int{},
		Equipment: map[string]string{},
	}

	var isAdmin, hasPos int
	err := s.db.QueryRowContext(ctx,
		`SELECT username, x, y, facing, is_admin, has_pos FROM players WHERE name_key = ?`, key,
	).Scan(&data.Username, &data.X, &data.Y, &data.Facing, &isAdmin, &hasPos)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PlayerData{}, false, nil
	}
	if err != nil {
		return domain.PlayerData{}, false, fmt.Errorf("load player %s: %w", username, err)
	}
	data.IsAdmin = isAdmin != 0
	data.HasPos = hasPos != 0

	if err := s.queryPairs(ctx, `SELECT skill, xp FROM player_skills WHERE name_key = ?`, key, func(rows *sql.Rows) error {
		var skill string
		var xp float64
		if err := rows.Scan(&skill, &xp); err != nil {
			return err
		}
		data.Skills[skill] = xp
		return nil
	}); err != nil {
		return domain.PlayerData{}, false, fmt.Errorf("load skills of %s: %w", username, err)
	}

	if err := s.queryPairs(ctx, `SELECT item_id, qty FROM player_items WHERE name_key = ?`, key, func(rows *sql.Rows) error {
		var item string
		var qty int
		if err := rows.Scan(&item, &qty); err != nil {
			return err
		}
		data.Inventory[item] = qty
		return nil
	}); err != nil {
		return domain.PlayerData{}, false, fmt.Errorf("load items of %s: %w", username, err)
	}

	if err := s.queryPairs(ctx, `SELECT slot, item_id FROM player_equipment WHERE name_key = ?`, key, func(rows *sql.Rows) error {
		var slot, item string
		if err := rows.Scan(&slot, &item); err != nil {
			return err
		}
		data.Equipment[slot] = item
		return nil
	}); err != nil {
		return domain.PlayerData{}, false, fmt.Errorf("load equipment of %s: %w", username, err)
	}

	return data, true, nil
}

func (s *SQLiteStore) queryPairs(ctx context.Context, query, key string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, key)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CreatePlayer writes the default record and waits for it to land.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, username string) (domain.PlayerData, error) {
	data := domain.NewPlayerData(username)
	err := s.await(ctx, "create player", func(ctx context.Context, tx *sql.Tx) error {
		return writePlayer(ctx, tx, data)
	})
	if err != nil {
		return domain.PlayerData{}, err
	}
	return data, nil
}

// SavePlayer queues the write. Errors of the write itself are logged by the writer.
func (s *SQLiteStore) SavePlayer(ctx context.Context, username string, data domain.PlayerData) error {
	data.Username = username
	data.HasPos = true
	return s.enqueue(ctx, job{
		name: "save player",
		fn: func(ctx context.Context, tx *sql.Tx) error {
			return writePlayer(ctx, tx, data)
		},
	})
}

func writePlayer(ctx context.Context, tx *sql.Tx, data domain.PlayerData) error {
	key := nameKey(data.Username)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO players(name_key, username, x, y, facing, is_admin, has_pos) VALUES(?,?,?,?,?,?,?)
		 ON CONFLICT(name_key) DO UPDATE SET
			username = excluded.username, x = excluded.x, y = excluded.y, facing = excluded.facing,
			is_admin = excluded.is_admin, has_pos = excluded.has_pos`,
		key, data.Username, data.X, data.Y, data.Facing, boolInt(data.IsAdmin), boolInt(data.HasPos),
	); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	for _, table := range []string{"player_skills", "player_items", "player_equipment"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE name_key = ?`, key); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for skill, xp := range data.Skills {
		if _, err := tx.ExecContext(ctx, `INSERT INTO player_skills(name_key, skill, xp) VALUES(?,?,?)`, key, skill, xp); err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}
	for item, qty := range data.Inventory {
		if qty <= 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO player_items(name_key, item_id, qty) VALUES(?,?,?)`, key, item, qty); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}
	for slot, item := range data.Equipment {
		if item == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO player_equipment(name_key, slot, item_id) VALUES(?,?,?)`, key, slot, item); err != nil {
			return fmt.Errorf("insert equipment: %w", err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// --- world ---

// LoadWorldConfig implements engine.Store.
func (s *SQLiteStore) LoadWorldConfig(ctx context.Context) (domain.WorldConfig, bool, error) {
	var cfg domain.WorldConfig
	err := s.db.QueryRowContext(ctx, `SELECT width, height FROM world_config WHERE id = 1`).Scan(&cfg.Width, &cfg.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WorldConfig{}, false, nil
	}
	if err != nil {
		return domain.WorldConfig{}, false, fmt.Errorf("load world config: %w", err)
	}
	return cfg, true, nil
}

// LoadWorldObjects implements engine.Store.
func (s *SQLiteStore) LoadWorldObjects(ctx context.Context) ([]domain.WorldObject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT x, y, definition_id, status, ticks_until_respawn FROM world_objects ORDER BY y, x`)
	if err != nil {
		return nil, fmt.Errorf("load world objects: %w", err)
	}
	defer rows.Close()

	var out []domain.WorldObject
	for rows.Next() {
		var o domain.WorldObject
		var status string
		if err := rows.Scan(&o.Position.X, &o.Position.Y, &o.DefinitionID, &status, &o.TicksUntilRespawn); err != nil {
			return nil, fmt.Errorf("scan world object: %w", err)
		}
		o.Status = domain.ObjectStatus(status)
		out = append(out, o)
	}
	return out, rows.Err()
}

// LoadTiles implements engine.Store.
func (s *SQLiteStore) LoadTiles(ctx context.Context) ([]domain.Tile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT x, y, tile_type, height FROM world_tiles ORDER BY y, x`)
	if err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}
	defer rows.Close()

	var out []domain.Tile
	for rows.Next() {
		var t domain.Tile
		var tileType string
		if err := rows.Scan(&t.X, &t.Y, &tileType, &t.Height); err != nil {
			return nil, fmt.Errorf("scan tile: %w", err)
		}
		t.Type = domain.TileType(tileType)
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaveWorld replaces the world tables. Implements engine.WorldSeeder.
func (s *SQLiteStore) SaveWorld(ctx context.Context, cfg domain.WorldConfig, tiles []domain.Tile, objects []domain.WorldObject) error {
	err := s.await(ctx, "save world", func(ctx context.Context, tx *sql.Tx) error {
		for _, table := range []string{"world_config", "world_objects", "world_tiles"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO world_config(id, width, height) VALUES(1,?,?)`, cfg.Width, cfg.Height); err != nil {
			return fmt.Errorf("insert world config: %w", err)
		}

		insertTile, err := tx.PrepareContext(ctx, `INSERT INTO world_tiles(x, y, tile_type, height) VALUES(?,?,?,?)`)
		if err != nil {
			return err
		}
		defer insertTile.Close()
		for _, t := range tiles {
			if _, err := insertTile.ExecContext(ctx, t.X, t.Y, string(t.Type), t.Height); err != nil {
				return fmt.Errorf("insert tile (%d,%d): %w", t.X, t.Y, err)
			}
		}

		insertObject, err := tx.PrepareContext(ctx,
			`INSERT INTO world_objects(x, y, definition_id, status, ticks_until_respawn) VALUES(?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer insertObject.Close()
		for _, o := range objects {
			status := o.Status
			if status == "" {
				status = domain.StatusActive
			}
			if _, err := insertObject.ExecContext(ctx, o.Position.X, o.Position.Y, o.DefinitionID, string(status), o.TicksUntilRespawn); err != nil {
				return fmt.Errorf("insert object (%d,%d): %w", o.Position.X, o.Position.Y, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"width":     cfg.Width,
		"height":    cfg.Height,
		"tiles":     len(tiles),
		"objects":   len(objects),
	}).Info("World tables seeded")
	return nil
}
