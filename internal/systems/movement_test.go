package systems

import (
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
)

func newTestMovement(w, h int, obstacles ...domain.Position) (*Movement, *domain.CollisionGrid) {
	grid := domain.NewCollisionGrid(w, h, obstacles)
	return NewMovement(grid, NewPathfinder(grid)), grid
}

func TestMovement_WalkAndRun(t *testing.T) {
	tests := []struct {
		name       string
		running    bool
		energy     float64
		wantPos    domain.Position
		wantEnergy float64
		wantRun    bool
	}{
		{"walking", false, 100, pos(0, 1), 100, false},
		{"running", true, 100, pos(0, 2), 98, true},
		{"running out of energy", true, 0.5, pos(0, 1), 0.5, false},
		{"last point of energy", true, 1, pos(0, 1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMovement(10, 10)
			roster := testRoster{}
			p := roster.add("p1", 0, 0)
			p.IsRunning = tt.running
			p.RunEnergy = tt.energy

			if res := m.SetTarget(p, 0, 5, nil); !res.Valid {
				t.Fatalf("SetTarget rejected: %s", res.Message)
			}
			m.Process(roster.All())

			if p.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", p.Pos, tt.wantPos)
			}
			if p.RunEnergy != tt.wantEnergy {
				t.Errorf("RunEnergy = %v, want %v", p.RunEnergy, tt.wantEnergy)
			}
			if p.IsRunning != tt.wantRun {
				t.Errorf("IsRunning = %v, want %v", p.IsRunning, tt.wantRun)
			}
			if p.PrevPos != pos(0, 0) {
				t.Errorf("PrevPos = %v, want (0,0)", p.PrevPos)
			}
			if p.Facing != domain.FacingSouth {
				t.Errorf("Facing = %s, want south", p.Facing)
			}
		})
	}
}

func TestMovement_ArrivalClearsTarget(t *testing.T) {
	m, _ := newTestMovement(10, 10)
	roster := testRoster{}
	p := roster.add("p1", 0, 0)
	p.IsRunning = true

	m.SetTarget(p, 3, 0, nil)
	for i := 0; i < 2; i++ {
		m.Process(roster.All())
	}
	if p.Pos != pos(3, 0) {
		t.Fatalf("Pos = %v, want (3,0)", p.Pos)
	}
	if p.Move.HasTarget || len(p.Move.Path) != 0 {
		t.Error("target not cleared on arrival")
	}
	if p.Facing != domain.FacingEast {
		t.Errorf("Facing = %s, want east", p.Facing)
	}
}

func TestMovement_IdleRegeneratesEnergy(t *testing.T) {
	m, _ := newTestMovement(5, 5)
	roster := testRoster{}
	p := roster.add("p1", 2, 2)
	p.RunEnergy = 99.8

	m.Process(roster.All())
	if p.RunEnergy != domain.MaxRunEnergy {
		t.Errorf("RunEnergy = %v, want capped at %v", p.RunEnergy, domain.MaxRunEnergy)
	}

	p.RunEnergy = 10
	m.Process(roster.All())
	if p.RunEnergy != 10.5 {
		t.Errorf("RunEnergy = %v, want 10.5", p.RunEnergy)
	}
}

func TestMovement_SetTargetValidation(t *testing.T) {
	m, _ := newTestMovement(10, 10, pos(5, 5))
	roster := testRoster{}
	p := roster.add("p1", 0, 0)
	other := roster.add("p2", 3, 0)

	if res := m.SetTarget(p, 10, 0, nil); res.Valid || res.Message != "Cannot move outside the world." {
		t.Errorf("out of bounds = %+v", res)
	}

	// blocked target is substituted
	if res := m.SetTarget(p, 5, 5, nil); !res.Valid {
		t.Fatalf("blocked target rejected: %s", res.Message)
	}
	if p.Move.Target != pos(4, 4) {
		t.Errorf("substitute = %v, want (4,4)", p.Move.Target)
	}

	// another player's tile reroutes next to them
	occupied := func(q domain.Position) bool { return q == other.Pos }
	if res := m.SetTarget(p, 3, 0, occupied); !res.Valid {
		t.Fatalf("occupied target rejected: %s", res.Message)
	}
	if p.Move.Target != pos(2, 0) {
		t.Errorf("reroute = %v, want (2,0)", p.Move.Target)
	}

	sealed, _ := newTestMovement(1, 1, pos(0, 0))
	if res := sealed.SetTarget(p, 0, 0, nil); res.Valid || res.Message != "unreachable" {
		t.Errorf("sealed = %+v, want unreachable", res)
	}
}

func TestMovement_BlockedNextTileClearsTarget(t *testing.T) {
	m, grid := newTestMovement(10, 10)
	roster := testRoster{}
	p := roster.add("p1", 0, 0)

	m.SetTarget(p, 0, 5, nil)
	m.Process(roster.All())
	if p.Pos != pos(0, 1) {
		t.Fatalf("Pos = %v, want (0,1)", p.Pos)
	}

	// the cached path now runs into a respawned rock
	grid.SetBlocked(0, 2, true)
	results := m.Process(roster.All())
	if len(results) != 1 || !results[0].Blocked {
		t.Fatalf("results = %+v, want one blocked result", results)
	}
	if p.Move.HasTarget {
		t.Error("target kept after a blocked step")
	}
	if p.Pos != pos(0, 1) {
		t.Errorf("Pos = %v, moved through a blocked tile", p.Pos)
	}
}
