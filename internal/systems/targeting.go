package systems

import (
	"github.com/ionutrobert/WebScape/internal/domain"
)

// Roster resolves players by session id, so systems do not depend on the engine.
type Roster interface {
	Get(id string) (*domain.Player, bool)
	// All returns players in a stable order (sorted by id).
	All() []*domain.Player
}

// Rng is the subset of *rand.Rand the systems roll with.
type Rng interface {
	Float64() float64
	Intn(n int) int
}

// ValidationResult is the outcome of an intent check.
type ValidationResult struct {
	Valid   bool
	Message string // user-facing reason when Valid == false
}

// Ok is a passing validation.
func Ok() ValidationResult {
	return ValidationResult{Valid: true}
}

// Reject builds a failed validation with a user-facing reason.
func Reject(msg string) ValidationResult {
	return ValidationResult{Message: msg}
}
