package systems

import (
	"sort"

	"github.com/ionutrobert/WebScape/internal/domain"
)

const (
	orthogonalCost = 1.0
	diagonalCost   = 1.4
)

// Pathfinder runs grid A* over the collision grid.
type Pathfinder struct {
	grid *domain.CollisionGrid
}

// NewPathfinder binds a pathfinder to a grid.
func NewPathfinder(grid *domain.CollisionGrid) *Pathfinder {
	return &Pathfinder{grid: grid}
}

type pathNode struct {
	pos    domain.Position
	g, h   float64
	f      float64
	parent *pathNode
}

func heuristic(a, b domain.Position) float64 {
	return float64(a.ManhattanTo(b))
}

// FindPath returns the steps from start to end, excluding start, capped at maxSteps.
// The result is empty when end is out of bounds, start is blocked, start == end
// or no path is found within maxSteps*10 expansions.
//
// The open list keeps insertion order and is stable-sorted by f on every
// iteration, so equal-f ties always resolve to the earliest inserted node.
func (pf *Pathfinder) FindPath(start, end domain.Position, allowDiagonal bool, maxSteps int) []domain.Position {
	if !pf.grid.InBounds(end.X, end.Y) {
		return nil
	}
	if pf.grid.IsBlocked(start.X, start.Y) {
		return nil
	}
	if start == end {
		return nil
	}
	if maxSteps <= 0 {
		maxSteps = domain.PathMaxSteps
	}

	startNode := &pathNode{pos: start, h: heuristic(start, end)}
	startNode.f = startNode.h

	open := []*pathNode{startNode}
	inOpen := map[domain.Position]*pathNode{start: startNode}
	closed := make(map[domain.Position]struct{})

	for iterations := 0; len(open) > 0 && iterations < maxSteps*10; iterations++ {
		sort.SliceStable(open, func(i, j int) bool { return open[i].f < open[j].f })
		current := open[0]
		open = open[1:]
		delete(inOpen, current.pos)

		if current.pos == end {
			return reconstructPath(current, maxSteps)
		}
		closed[current.pos] = struct{}{}

		for _, n := range pf.grid.Neighbors(current.pos.X, current.pos.Y, allowDiagonal) {
			if _, done := closed[n]; done {
				continue
			}
			cost := orthogonalCost
			if current.pos.ManhattanTo(n) == 2 {
				cost = diagonalCost
			}
			tentativeG := current.g + cost

			if node, ok := inOpen[n]; ok {
				if tentativeG < node.g {
					node.g = tentativeG
					node.f = node.g + node.h
					node.parent = current
				}
				continue
			}

			node := &pathNode{pos: n, g: tentativeG, h: heuristic(n, end), parent: current}
			node.f = node.g + node.h
			open = append(open, node)
			inOpen[n] = node
		}
	}
	return nil
}

func reconstructPath(end *pathNode, maxSteps int) []domain.Position {
	var path []domain.Position
	for node := end; node != nil; node = node.parent {
		path = append(path, node.pos)
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	// drop the start tile
	path = path[1:]
	if len(path) > maxSteps {
		path = path[:maxSteps]
	}
	return path
}

// FindNearestAccessibleTile scans the neighbours of every candidate and returns
// the open one closest to start by Manhattan distance. The first tile found
// wins ties. The blocked callback lets callers treat extra tiles (other players)
// as blocked; nil means the collision grid alone decides.
func (pf *Pathfinder) FindNearestAccessibleTile(start domain.Position, candidates []domain.Position, allowDiagonal bool, blocked func(domain.Position) bool) (domain.Position, bool) {
	var (
		nearest domain.Position
		found   bool
		best    int
	)
	for _, c := range candidates {
		for _, off := range domain.NeighborOffsets(allowDiagonal) {
			adj := c.Shift(off.X, off.Y)
			if !pf.grid.InBounds(adj.X, adj.Y) || pf.grid.IsBlocked(adj.X, adj.Y) {
				continue
			}
			if blocked != nil && blocked(adj) {
				continue
			}
			dist := start.ManhattanTo(adj)
			if !found || dist < best {
				nearest, best, found = adj, dist, true
			}
		}
	}
	return nearest, found
}
