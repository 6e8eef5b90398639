package domain

import (
	"fmt"
	"sort"
)

// ObjectStatus is the lifecycle state of a world object.
type ObjectStatus string

const (
	StatusActive   ObjectStatus = "active"
	StatusDepleted ObjectStatus = "depleted"
)

// WorldObject is a resource or station on a tile. Identity is the position.
type WorldObject struct {
	Position          Position     `json:"position"`
	DefinitionID      string       `json:"definitionId"`
	Status            ObjectStatus `json:"status"`
	TicksUntilRespawn int          `json:"ticksUntilRespawn"`
}

// WorldState is the object registry. It owns the dynamic collision layer.
type WorldState struct {
	Grid    *CollisionGrid
	Tiles   []Tile
	objects map[Position]*WorldObject
}

// NewWorldState builds the world over a grid, blocking every active blocking object.
func NewWorldState(grid *CollisionGrid, tiles []Tile, objects []WorldObject) (*WorldState, error) {
	w := &WorldState{
		Grid:    grid,
		Tiles:   tiles,
		objects: make(map[Position]*WorldObject, len(objects)),
	}
	for _, o := range objects {
		if err := w.Add(o); err != nil {
			return nil, fmt.Errorf("object %s at (%d,%d): %w", o.DefinitionID, o.Position.X, o.Position.Y, err)
		}
	}
	return w, nil
}

// Width of the underlying grid.
func (w *WorldState) Width() int { return w.Grid.Width }

// Height of the underlying grid.
func (w *WorldState) Height() int { return w.Grid.Height }

// Add registers an object. One object per tile.
func (w *WorldState) Add(o WorldObject) error {
	if !w.Grid.InBounds(o.Position.X, o.Position.Y) {
		return ErrOutOfBounds
	}
	if _, exists := w.objects[o.Position]; exists {
		return ErrTileOccupied
	}
	if o.Status == "" {
		o.Status = StatusActive
	}
	obj := o
	w.objects[o.Position] = &obj
	w.syncCollision(&obj)
	return nil
}

// At returns a copy of the object on a tile.
func (w *WorldState) At(x, y int) (WorldObject, bool) {
	o, ok := w.objects[Position{X: x, Y: y}]
	if !ok {
		return WorldObject{}, false
	}
	return *o, true
}

// All returns copies sorted by y then x.
func (w *WorldState) All() []WorldObject {
	out := make([]WorldObject, 0, len(w.objects))
	for _, o := range w.objects {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position.Y != out[j].Position.Y {
			return out[i].Position.Y < out[j].Position.Y
		}
		return out[i].Position.X < out[j].Position.X
	})
	return out
}

// Deplete flips an object to depleted and frees its tile.
func (w *WorldState) Deplete(x, y int) (WorldObject, bool) {
	o, ok := w.objects[Position{X: x, Y: y}]
	if !ok {
		return WorldObject{}, false
	}
	respawn := 0
	if def, ok := Objects[o.DefinitionID]; ok {
		respawn = def.RespawnTicks
	}
	o.Status = StatusDepleted
	o.TicksUntilRespawn = respawn
	w.syncCollision(o)
	return *o, true
}

// Tick advances every depleted countdown and respawns what reached zero.
// A blocking object whose tile is occupied stays depleted at zero and is
// retried on the next tick. occupied may be nil.
// Returns true if any object changed status.
func (w *WorldState) Tick(occupied func(Position) bool) bool {
	changed := false
	for _, o := range w.objects {
		if o.Status != StatusDepleted {
			continue
		}
		if o.TicksUntilRespawn > 0 {
			o.TicksUntilRespawn--
		}
		if o.TicksUntilRespawn > 0 {
			continue
		}
		if occupied != nil && w.blocks(o) && occupied(o.Position) {
			continue
		}
		o.Status = StatusActive
		w.syncCollision(o)
		changed = true
	}
	return changed
}

// Restore applies persisted statuses onto objects at the same positions.
// Unknown positions are skipped; the count of applied entries is returned.
func (w *WorldState) Restore(saved []WorldObject) int {
	applied := 0
	for _, s := range saved {
		o, ok := w.objects[s.Position]
		if !ok || o.DefinitionID != s.DefinitionID {
			continue
		}
		o.Status = s.Status
		o.TicksUntilRespawn = s.TicksUntilRespawn
		w.syncCollision(o)
		applied++
	}
	return applied
}

func (w *WorldState) blocks(o *WorldObject) bool {
	if def, ok := Objects[o.DefinitionID]; ok {
		return def.Blocks
	}
	return true
}

func (w *WorldState) syncCollision(o *WorldObject) {
	w.Grid.SetBlocked(o.Position.X, o.Position.Y, w.blocks(o) && o.Status == StatusActive)
}
