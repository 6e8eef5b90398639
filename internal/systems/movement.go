package systems

import (
	"github.com/ionutrobert/WebScape/internal/domain"
)

// MovementResult is what happened to one player during the movement phase.
type MovementResult struct {
	PlayerID string
	From     domain.Position
	To       domain.Position
	Steps    int
	Running  bool
	Blocked  bool // next tile closed; target was cleared
	Arrived  bool
}

// HasMoved reports a position change.
func (r MovementResult) HasMoved() bool {
	return r.Steps > 0
}

// Movement advances players along cached paths.
type Movement struct {
	grid       *domain.CollisionGrid
	pathfinder *Pathfinder
}

// NewMovement creates the movement system.
func NewMovement(grid *domain.CollisionGrid, pf *Pathfinder) *Movement {
	return &Movement{grid: grid, pathfinder: pf}
}

// Pathfinder exposes the shared pathfinder.
func (m *Movement) Pathfinder() *Pathfinder {
	return m.pathfinder
}

// SetTarget validates a move-to intent and stores the target.
// occupied marks extra tiles (other players) a destination may not land on.
func (m *Movement) SetTarget(p *domain.Player, x, y int, occupied func(domain.Position) bool) ValidationResult {
	if !m.grid.InBounds(x, y) {
		return Reject("Cannot move outside the world.")
	}

	target := domain.Position{X: x, Y: y}
	taken := m.grid.IsBlocked(x, y) || (occupied != nil && occupied(target))
	if taken {
		sub, ok := m.pathfinder.FindNearestAccessibleTile(p.Pos, []domain.Position{target}, true, occupied)
		if !ok {
			return Reject("unreachable")
		}
		target = sub
	}

	p.Move.Clear()
	if target == p.Pos {
		return Ok()
	}
	p.Move.HasTarget = true
	p.Move.Target = target
	return Ok()
}

// Process runs the movement phase for all players in roster order.
func (m *Movement) Process(players []*domain.Player) []MovementResult {
	var results []MovementResult
	for _, p := range players {
		p.PrevPos = p.Pos
		if !p.Move.HasTarget {
			p.RestoreRunEnergy(domain.RunEnergyRegen)
			continue
		}
		res := m.step(p)
		if res.HasMoved() || res.Blocked {
			results = append(results, res)
		}
	}
	return results
}

func (m *Movement) step(p *domain.Player) MovementResult {
	res := MovementResult{PlayerID: p.ID, From: p.Pos, To: p.Pos}

	if p.Pos == p.Move.Target {
		p.Move.Clear()
		res.Arrived = true
		return res
	}

	// energy at 0 forces walking
	if p.IsRunning && p.RunEnergy < 1 {
		p.IsRunning = false
	}
	steps := 1
	if p.IsRunning {
		steps = 2
	}
	res.Running = p.IsRunning

	for s := 0; s < steps; s++ {
		if s > 0 && !p.IsRunning {
			break
		}
		if len(p.Move.Path) == 0 {
			p.Move.Path = m.pathfinder.FindPath(p.Pos, p.Move.Target, true, domain.PathMaxSteps)
			if len(p.Move.Path) == 0 {
				p.Move.Clear()
				break
			}
		}

		next := p.Move.Path[0]
		if m.grid.IsBlocked(next.X, next.Y) {
			p.Move.Clear()
			res.Blocked = true
			break
		}

		if p.IsRunning {
			p.SpendRunEnergy(1)
		}
		p.Facing = domain.FacingFromDelta(next.X-p.Pos.X, next.Y-p.Pos.Y)
		p.Pos = next
		p.Move.Path = p.Move.Path[1:]
		res.Steps++

		if p.Pos == p.Move.Target {
			p.Move.Clear()
			res.Arrived = true
			break
		}
	}

	res.To = p.Pos
	return res
}
