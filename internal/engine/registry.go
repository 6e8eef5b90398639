package engine

import (
	"sort"
	"strings"

	"github.com/ionutrobert/WebScape/internal/domain"
)

// Registry is the player session registry, keyed by session id.
// Only the tick goroutine mutates it.
type Registry struct {
	players map[string]*domain.Player
	order   []*domain.Player // sorted by id, rebuilt on Add/Remove
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*domain.Player)}
}

// Add registers (or replaces) a player.
func (r *Registry) Add(p *domain.Player) {
	r.players[p.ID] = p
	r.rebuild()
}

// Remove drops a session and returns the removed player.
func (r *Registry) Remove(id string) (*domain.Player, bool) {
	p, ok := r.players[id]
	if !ok {
		return nil, false
	}
	delete(r.players, id)
	r.rebuild()
	return p, true
}

// Get finds a player by session id.
func (r *Registry) Get(id string) (*domain.Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// All returns players sorted by session id. The slice is replaced, never
// mutated, on Add/Remove; callers must not modify it.
func (r *Registry) All() []*domain.Player {
	return r.order
}

// ByUsername finds a session by username, case-insensitively.
func (r *Registry) ByUsername(username string) (*domain.Player, bool) {
	for _, p := range r.order {
		if strings.EqualFold(p.Username, username) {
			return p, true
		}
	}
	return nil, false
}

// OccupiedBy reports whether a player other than exceptID stands on pos.
func (r *Registry) OccupiedBy(pos domain.Position, exceptID string) bool {
	for _, p := range r.order {
		if p.ID != exceptID && p.Pos == pos {
			return true
		}
	}
	return false
}

// Len is the number of connected players.
func (r *Registry) Len() int {
	return len(r.players)
}

func (r *Registry) rebuild() {
	order := make([]*domain.Player, 0, len(r.players))
	for _, p := range r.players {
		order = append(order, p)
	}
	sort.Slice(order, func(i, j int) bool { return order[i].ID < order[j].ID })
	r.order = order
}
