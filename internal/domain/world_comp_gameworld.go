package domain

// CollisionGrid is the per-tile walkability bitmap.
// blocked = static OR dynamic; static obstacles are never cleared.
type CollisionGrid struct {
	Width  int
	Height int

	blocked []bool
	static  []bool
}

// NewCollisionGrid builds a grid with the given static obstacles.
// Out-of-bounds obstacles are ignored.
func NewCollisionGrid(width, height int, obstacles []Position) *CollisionGrid {
	g := &CollisionGrid{
		Width:   width,
		Height:  height,
		blocked: make([]bool, width*height),
		static:  make([]bool, width*height),
	}
	for _, o := range obstacles {
		if g.InBounds(o.X, o.Y) {
			idx := g.index(o.X, o.Y)
			g.static[idx] = true
			g.blocked[idx] = true
		}
	}
	return g
}

func (g *CollisionGrid) index(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x,y) is on the grid.
func (g *CollisionGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsBlocked is true for impassable tiles. Out of bounds counts as blocked.
func (g *CollisionGrid) IsBlocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.blocked[g.index(x, y)]
}

// IsStatic reports a terrain obstacle.
func (g *CollisionGrid) IsStatic(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.static[g.index(x, y)]
}

// SetBlocked updates the dynamic layer. Static tiles stay blocked.
func (g *CollisionGrid) SetBlocked(x, y int, blocked bool) {
	if !g.InBounds(x, y) {
		return
	}
	idx := g.index(x, y)
	g.blocked[idx] = blocked || g.static[idx]
}

// neighbour offsets: N, E, S, W then NE, SE, SW, NW
var (
	orthOffsets = [4]Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	diagOffsets = [4]Position{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)

// NeighborOffsets returns the scan order used by Neighbors.
func NeighborOffsets(allowDiagonal bool) []Position {
	out := make([]Position, 0, 8)
	out = append(out, orthOffsets[:]...)
	if allowDiagonal {
		out = append(out, diagOffsets[:]...)
	}
	return out
}

// Neighbors returns the walkable tiles around (x,y). A diagonal step needs both
// orthogonal intermediates open, so corners are never cut.
func (g *CollisionGrid) Neighbors(x, y int, allowDiagonal bool) []Position {
	out := make([]Position, 0, 8)
	for _, d := range orthOffsets {
		if !g.IsBlocked(x+d.X, y+d.Y) {
			out = append(out, Position{X: x + d.X, Y: y + d.Y})
		}
	}
	if !allowDiagonal {
		return out
	}
	for _, d := range diagOffsets {
		if g.IsBlocked(x+d.X, y) || g.IsBlocked(x, y+d.Y) {
			continue
		}
		if !g.IsBlocked(x+d.X, y+d.Y) {
			out = append(out, Position{X: x + d.X, Y: y + d.Y})
		}
	}
	return out
}

// Blocked returns a row-major copy of the bitmap (blocked[y][x]).
func (g *CollisionGrid) Blocked() [][]bool {
	rows := make([][]bool, g.Height)
	for y := 0; y < g.Height; y++ {
		row := make([]bool, g.Width)
		copy(row, g.blocked[y*g.Width:(y+1)*g.Width])
		rows[y] = row
	}
	return rows
}
