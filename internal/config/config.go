package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "WEBSCAPE_"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Simulation SimulationConfig `yaml:"simulation"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT"`
}

type SimulationConfig struct {
	TickInterval  time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	QueueCapacity int           `yaml:"queue_capacity" env:"QUEUE_CAPACITY"`
	// Seed 0 picks a time-based seed at startup.
	Seed      int64    `yaml:"seed" env:"SEED"`
	WorldSize int      `yaml:"world_size" env:"WORLD_SIZE"`
	Admins    []string `yaml:"admins" env:"ADMINS" envSeparator:","`
}

type StorageConfig struct {
	// DatabasePath empty keeps everything in memory.
	DatabasePath string `yaml:"database_path" env:"DATABASE_PATH"`
	SnapshotPath string `yaml:"snapshot_path" env:"SNAPSHOT_PATH"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Default is the configuration without a file or environment.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: "3001"},
		Simulation: SimulationConfig{
			TickInterval:  domain.TickDuration,
			QueueCapacity: 256,
			WorldSize:     domain.DefaultWorldSize,
		},
		Storage: StorageConfig{
			DatabasePath: "webscape.db",
			SnapshotPath: "webscape.snap",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load starts from Default, applies the YAML file when path is set, then the
// WEBSCAPE_* environment, then validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("server.port is empty"))
	}
	if c.Simulation.TickInterval < 10*time.Millisecond {
		errs = append(errs, fmt.Errorf("simulation.tick_interval %s is below 10ms", c.Simulation.TickInterval))
	}
	if c.Simulation.QueueCapacity <= 0 {
		errs = append(errs, fmt.Errorf("simulation.queue_capacity must be positive, got %d", c.Simulation.QueueCapacity))
	}
	if c.Simulation.WorldSize < 4 {
		errs = append(errs, fmt.Errorf("simulation.world_size %d is below 4", c.Simulation.WorldSize))
	}
	return errors.Join(errs...)
}

// Engine maps the simulation section onto the engine config.
func (c Config) Engine() engine.Config {
	cfg := engine.NewConfig()
	cfg.TickInterval = c.Simulation.TickInterval
	cfg.QueueCapacity = c.Simulation.QueueCapacity
	cfg.WorldSize = c.Simulation.WorldSize
	cfg.Admins = append([]string(nil), c.Simulation.Admins...)
	cfg.SnapshotPath = c.Storage.SnapshotPath
	if c.Simulation.Seed != 0 {
		cfg.Seed = c.Simulation.Seed
	}
	return cfg
}
