package domain

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ManhattanTo is |dx|+|dy|. The pathfinder heuristic uses it as well.
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// ChebyshevTo is max(|dx|,|dy|).
func (p Position) ChebyshevTo(other Position) int {
	dx, dy := abs(p.X-other.X), abs(p.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// IsOrthAdjacent is true when exactly one axis differs by one.
// Diagonal neighbours are NOT adjacent for harvesting or melee.
func (p Position) IsOrthAdjacent(other Position) bool {
	dx, dy := abs(p.X-other.X), abs(p.Y-other.Y)
	return (dx == 1 && dy == 0) || (dx == 0 && dy == 1)
}

// Shift returns a new position offset by (dx, dy).
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
