package engine

import (
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

type sentEnvelope struct {
	to        string
	except    string
	broadcast bool
	env       api.Envelope
}

// recordingHub is a Publisher that keeps everything it was asked to send.
type recordingHub struct {
	mu           sync.Mutex
	sent         []sentEnvelope
	unregistered []string
}

func (h *recordingHub) SendTo(id string, env api.Envelope) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, sentEnvelope{to: id, env: env})
	return true
}

func (h *recordingHub) Broadcast(env api.Envelope) {
	h.BroadcastExcept(env, "")
}

func (h *recordingHub) BroadcastExcept(env api.Envelope, exceptID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, sentEnvelope{except: exceptID, broadcast: true, env: env})
}

func (h *recordingHub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregistered = append(h.unregistered, id)
}

func (h *recordingHub) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = nil
}

// received returns what session id would have seen, in order.
func (h *recordingHub) received(id string, eventType domain.EventType) []api.Envelope {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []api.Envelope
	for _, s := range h.sent {
		if s.env.Type != eventType.String() {
			continue
		}
		if s.to == id || (s.broadcast && s.except != id) {
			out = append(out, s.env)
		}
	}
	return out
}

func (h *recordingHub) chats(t *testing.T, id string) []api.ChatMessagePayload {
	t.Helper()
	var out []api.ChatMessagePayload
	for _, env := range h.received(id, domain.EventChat) {
		var c api.ChatMessagePayload
		if err := json.Unmarshal(env.Payload, &c); err != nil {
			t.Fatalf("decode chat: %v", err)
		}
		out = append(out, c)
	}
	return out
}

func (h *recordingHub) hasChat(t *testing.T, id, msg string) bool {
	t.Helper()
	for _, c := range h.chats(t, id) {
		if c.Message == msg {
			return true
		}
	}
	return false
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

func grassWorld(t *testing.T, w, h int, objects ...domain.WorldObject) *domain.WorldState {
	t.Helper()
	tiles := make([]domain.Tile, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tiles = append(tiles, domain.Tile{X: x, Y: y, Type: domain.TileGrass})
		}
	}
	world, err := BuildWorld(domain.WorldConfig{Width: w, Height: h}, tiles, objects)
	if err != nil {
		t.Fatalf("BuildWorld: %v", err)
	}
	return world
}

func object(id string, x, y int) domain.WorldObject {
	return domain.WorldObject{Position: domain.Position{X: x, Y: y}, DefinitionID: id}
}

func newTestSim(t *testing.T, world *domain.WorldState, rng fixedRng) (*Simulation, *recordingHub, *MemoryStore) {
	t.Helper()
	hub := &recordingHub{}
	store := NewMemoryStore()
	cfg := Config{
		Seed:          1,
		TickInterval:  600 * time.Millisecond,
		QueueCapacity: 16,
		WorldSize:     world.Width(),
	}
	return newSimulation(cfg.withDefaults(), world, hub, store, rng), hub, store
}

func joinAt(sim *Simulation, id, username string, x, y int) {
	data := domain.NewPlayerData(username)
	data.X, data.Y, data.HasPos = x, y, true
	sim.Queue.PushLifecycle(domain.Intent{Type: domain.IntentJoin, SessionID: id, Join: &data})
}

func push(t *testing.T, sim *Simulation, id string, intent domain.IntentType, payload string) {
	t.Helper()
	if !sim.Queue.Push(domain.Intent{Type: intent, SessionID: id, Payload: json.RawMessage(payload)}) {
		t.Fatalf("queue refused %s", intent)
	}
}

func mustPlayer(t *testing.T, sim *Simulation, id string) *domain.Player {
	t.Helper()
	p, ok := sim.Players.Get(id)
	if !ok {
		t.Fatalf("player %s not registered", id)
	}
	return p
}
