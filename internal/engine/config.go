package engine

import (
	"strings"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
)

// Config holds the engine startup parameters.
type Config struct {
	// Seed feeds the simulation RNG. The same seed and the same intent
	// stream give the same ticks.
	Seed int64

	TickInterval  time.Duration
	QueueCapacity int

	// WorldSize is the edge of a generated world when the store has none.
	WorldSize int

	// Admins are usernames granted admin commands on join.
	Admins []string

	// SnapshotPath is where the admin "snapshot" command writes.
	SnapshotPath string
}

// NewConfig returns the default config (time-based seed).
func NewConfig() Config {
	return Config{
		Seed:          time.Now().UnixNano(),
		TickInterval:  domain.TickDuration,
		QueueCapacity: 256,
		WorldSize:     domain.DefaultWorldSize,
		SnapshotPath:  "webscape.snap",
	}
}

// IsAdmin matches usernames case-insensitively.
func (c Config) IsAdmin(username string) bool {
	for _, a := range c.Admins {
		if strings.EqualFold(a, username) {
			return true
		}
	}
	return false
}

func (c Config) withDefaults() Config {
	def := NewConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = def.QueueCapacity
	}
	if c.WorldSize <= 0 {
		c.WorldSize = def.WorldSize
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	return c
}
