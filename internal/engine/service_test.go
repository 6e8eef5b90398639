package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/network"
	"github.com/ionutrobert/WebScape/pkg/api"
)

func TestParseJoin(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"join", `{"type":"join","payload":{"username":" alice "}}`, "alice", false},
		{"first frame is not join", `{"type":"chat","payload":{"message":"hi"}}`, "", true},
		{"blank username", `{"type":"join","payload":{"username":"   "}}`, "", true},
		{"garbage", `hello`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJoin([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJoin err = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Username != tt.want {
				t.Errorf("Username = %q, want %q", got.Username, tt.want)
			}
		})
	}
}

func newTestService(t *testing.T, queueCap int) *Service {
	t.Helper()
	hub := network.NewBroadcaster()
	store := NewMemoryStore()
	cfg := Config{Seed: 1, QueueCapacity: queueCap}
	sim := newSimulation(cfg.withDefaults(), grassWorld(t, 5, 5), hub, store, fixedRng{})
	return NewService(sim, hub, store)
}

// lastChat drains ch and returns the newest chat line.
func lastChat(t *testing.T, ch <-chan api.Envelope) string {
	t.Helper()
	var msg string
	for {
		select {
		case env := <-ch:
			if env.Type != domain.EventChat.String() {
				continue
			}
			var c api.ChatMessagePayload
			if err := json.Unmarshal(env.Payload, &c); err != nil {
				t.Fatal(err)
			}
			msg = c.Message
		default:
			return msg
		}
	}
}

func TestService_JoinQueuesLifecycle(t *testing.T) {
	svc := newTestService(t, 4)
	ch := svc.Join(context.Background(), "s1", "alice")
	if ch == nil {
		t.Fatal("Join returned nil channel")
	}

	r := svc.Sim.Step()
	if r.Joined != 1 {
		t.Fatalf("Joined = %d, want 1", r.Joined)
	}
	select {
	case env := <-ch:
		if env.Type != domain.EventInit.String() {
			t.Errorf("first event = %s, want init", env.Type)
		}
	default:
		t.Fatal("no init delivered")
	}

	if _, found, _ := svc.store.LoadPlayer(context.Background(), "alice"); !found {
		t.Error("new player not created in the store")
	}
}

func TestService_Submit(t *testing.T) {
	svc := newTestService(t, 1)
	if err := svc.Submit("ghost", []byte(`{"type":"chat","payload":{"message":"hi"}}`)); !errors.Is(err, ErrSessionUnknown) {
		t.Fatalf("err = %v, want ErrSessionUnknown", err)
	}

	ch := svc.Join(context.Background(), "s1", "alice")

	if err := svc.Submit("s1", []byte(`{"type":"move-to","payload":{"x":1}}`)); err == nil {
		t.Error("schema violation accepted")
	}
	if got := lastChat(t, ch); got != msgInvalidCommand {
		t.Errorf("reply = %q, want %q", got, msgInvalidCommand)
	}

	if err := svc.Submit("s1", []byte(`{"type":"leave","payload":{}}`)); err == nil {
		t.Error("lifecycle intent accepted from the client")
	}
	if got := lastChat(t, ch); got != msgInvalidCommand {
		t.Errorf("reply = %q, want %q", got, msgInvalidCommand)
	}

	if err := svc.Submit("s1", []byte(`{"type":"chat","payload":{"message":"one"}}`)); err != nil {
		t.Fatalf("first chat: %v", err)
	}
	err := svc.Submit("s1", []byte(`{"type":"chat","payload":{"message":"two"}}`))
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	if got := lastChat(t, ch); got != msgServerBusy {
		t.Errorf("reply = %q, want %q", got, msgServerBusy)
	}
}

func TestService_Leave(t *testing.T) {
	svc := newTestService(t, 4)
	ch := svc.Join(context.Background(), "s1", "alice")
	svc.Sim.Step()

	svc.Leave("s1")
	if svc.Hub.HasSubscriber("s1") {
		t.Error("subscriber still registered after Leave")
	}
	for range ch {
		// closed by Unregister
	}
	if r := svc.Sim.Step(); r.Left != 1 {
		t.Errorf("Left = %d, want 1", r.Left)
	}
	if svc.Sim.Players.Len() != 0 {
		t.Errorf("players = %d, want 0", svc.Sim.Players.Len())
	}
}

func TestService_QuickReconnectKeepsProgress(t *testing.T) {
	svc := newTestService(t, 4)
	svc.Join(context.Background(), "s1", "alice")
	svc.Sim.Step()

	svc.Sim.Inspect(func(s *Simulation) {
		p := mustPlayer(t, s, "s1")
		if err := p.Inventory.Add("copper_ore", 5); err != nil {
			t.Fatal(err)
		}
		p.Pos = domain.Position{X: 3, Y: 1}
	})

	// the second join is loaded before the leave has been drained
	svc.Leave("s1")
	svc.Join(context.Background(), "s2", "Alice")
	r := svc.Sim.Step()
	if r.Left != 1 || r.Joined != 1 {
		t.Fatalf("Left = %d, Joined = %d, want 1 and 1", r.Left, r.Joined)
	}

	p := mustPlayer(t, svc.Sim, "s2")
	if got := p.Inventory.Count("copper_ore"); got != 5 {
		t.Errorf("copper_ore after reconnect = %d, want 5", got)
	}
	if p.Pos != (domain.Position{X: 3, Y: 1}) {
		t.Errorf("Pos after reconnect = %+v, want (3,1)", p.Pos)
	}
	if len(svc.Sim.departed) != 0 {
		t.Errorf("departed = %d entries, want the rejoin to consume it", len(svc.Sim.departed))
	}
}

func TestService_DepartedStateExpires(t *testing.T) {
	svc := newTestService(t, 4)
	svc.Join(context.Background(), "s1", "alice")
	svc.Sim.Step()
	svc.Leave("s1")
	svc.Sim.Step()

	if _, ok := svc.Sim.departed["alice"]; !ok {
		t.Fatal("departed state not kept after leave")
	}
	for i := 0; i < departedTTL; i++ {
		svc.Sim.Step()
	}
	if _, ok := svc.Sim.departed["alice"]; ok {
		t.Error("departed state kept past its ttl")
	}
}
