package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webscape.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "3001" || cfg.Simulation.TickInterval != 600*time.Millisecond || cfg.Simulation.QueueCapacity != 256 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Storage.DatabasePath != "webscape.db" {
		t.Errorf("DatabasePath = %q", cfg.Storage.DatabasePath)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  port: "9000"
simulation:
  tick_interval: 300ms
  seed: 7
  admins: [alice]
log:
  level: debug
`)
	t.Setenv("WEBSCAPE_PORT", "9100")
	t.Setenv("WEBSCAPE_ADMINS", "bob,carol")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("Port = %q, want env override 9100", cfg.Server.Port)
	}
	if cfg.Simulation.TickInterval != 300*time.Millisecond {
		t.Errorf("TickInterval = %s, want 300ms", cfg.Simulation.TickInterval)
	}
	if cfg.Simulation.Seed != 7 || cfg.Log.Level != "debug" {
		t.Errorf("seed=%d level=%q", cfg.Simulation.Seed, cfg.Log.Level)
	}
	if len(cfg.Simulation.Admins) != 2 || cfg.Simulation.Admins[0] != "bob" {
		t.Errorf("Admins = %v, want [bob carol]", cfg.Simulation.Admins)
	}
	// untouched keys keep their defaults
	if cfg.Simulation.QueueCapacity != 256 {
		t.Errorf("QueueCapacity = %d, want 256", cfg.Simulation.QueueCapacity)
	}

	ec := cfg.Engine()
	if ec.Seed != 7 || !ec.IsAdmin("CAROL") || ec.TickInterval != 300*time.Millisecond {
		t.Errorf("engine config = %+v", ec)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"tick too fast", "simulation:\n  tick_interval: 1ms\n"},
		{"zero queue", "simulation:\n  queue_capacity: -1\n"},
		{"tiny world", "simulation:\n  world_size: 2\n"},
		{"not yaml", "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Error("Load succeeded")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestEngine_ZeroSeedIsTimeBased(t *testing.T) {
	if got := Default().Engine().Seed; got == 0 {
		t.Error("Seed = 0, want a time-based seed")
	}
}
