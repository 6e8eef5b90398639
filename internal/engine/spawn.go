package engine

import (
	"github.com/ionutrobert/WebScape/internal/domain"
)

// findSpawn picks where a joining player appears. The persisted position wins
// if it is free; otherwise rings around the world centre are scanned row by row.
func findSpawn(grid *domain.CollisionGrid, data domain.PlayerData, occupied func(domain.Position) bool) domain.Position {
	free := func(x, y int) bool {
		if !grid.InBounds(x, y) || grid.IsBlocked(x, y) {
			return false
		}
		return occupied == nil || !occupied(domain.Position{X: x, Y: y})
	}

	if data.HasPos && free(data.X, data.Y) {
		return domain.Position{X: data.X, Y: data.Y}
	}

	cx, cy := grid.Width/2, grid.Height/2
	limit := max(grid.Width, grid.Height)
	for r := 0; r < limit; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				if free(cx+dx, cy+dy) {
					return domain.Position{X: cx + dx, Y: cy + dy}
				}
			}
		}
	}
	return domain.Position{}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
