package systems

import (
	"os"
	"sort"
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// testRoster is a map-backed Roster.
type testRoster map[string]*domain.Player

func (r testRoster) Get(id string) (*domain.Player, bool) {
	p, ok := r[id]
	return p, ok
}

func (r testRoster) All() []*domain.Player {
	out := make([]*domain.Player, 0, len(r))
	for _, p := range r {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r testRoster) add(id string, x, y int) *domain.Player {
	p := domain.NewPlayer(id, domain.NewPlayerData(id), domain.Position{X: x, Y: y})
	r[id] = p
	return p
}

// fixedRng returns the same roll every time.
type fixedRng struct {
	f float64
	n int
}

func (r fixedRng) Float64() float64 { return r.f }

func (r fixedRng) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func newTestWorld(t *testing.T, w, h int, objects ...domain.WorldObject) *domain.WorldState {
	t.Helper()
	world, err := domain.NewWorldState(domain.NewCollisionGrid(w, h, nil), nil, objects)
	if err != nil {
		t.Fatalf("NewWorldState: %v", err)
	}
	return world
}

func object(id string, x, y int) domain.WorldObject {
	return domain.WorldObject{Position: domain.Position{X: x, Y: y}, DefinitionID: id}
}
