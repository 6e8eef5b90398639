package network

import (
	"os"
	"testing"

	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcaster_DropOnFull(t *testing.T) {
	b := NewBroadcaster()
	slow := b.Register("slow")
	fast := b.Register("fast")

	for i := 0; i < SendBuffer; i++ {
		if !b.SendTo("slow", api.Envelope{Type: "chat"}) {
			t.Fatalf("send %d refused before buffer was full", i)
		}
	}
	if b.SendTo("slow", api.Envelope{Type: "chat"}) {
		t.Error("Expected send to a full buffer to be dropped")
	}

	// a full client never blocks the others
	b.Broadcast(api.Envelope{Type: "players-update"})
	if len(fast) != 1 {
		t.Errorf("fast client got %d messages, want 1", len(fast))
	}
	if len(slow) != SendBuffer {
		t.Errorf("slow client buffer = %d, want %d", len(slow), SendBuffer)
	}
	if b.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", b.Dropped())
	}
}

func TestBroadcaster_Except(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")

	b.BroadcastExcept(api.Envelope{Type: "player-joined"}, "a")
	if len(a) != 0 || len(c) != 1 {
		t.Errorf("got a=%d c=%d, want a=0 c=1", len(a), len(c))
	}
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("x")
	b.Unregister("x")
	b.Unregister("x")

	if _, open := <-ch; open {
		t.Error("Expected channel to be closed")
	}
	if b.HasSubscriber("x") || b.SubscriberCount() != 0 {
		t.Error("Subscriber still registered")
	}
	if b.SendTo("x", api.Envelope{Type: "chat"}) {
		t.Error("SendTo unknown session should report false")
	}
}

func TestBroadcaster_RegisterReplaces(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("x")
	_ = b.Register("x")

	if _, open := <-old; open {
		t.Error("Expected the replaced channel to be closed")
	}
	if b.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", b.SubscriberCount())
	}
}
