package engine

import (
	"sync"
	"testing"

	"github.com/ionutrobert/WebScape/internal/domain"
)

func TestIntentQueueFIFO(t *testing.T) {
	q := NewIntentQueue(3)
	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		if !q.Push(domain.Intent{Type: domain.IntentMoveTo, SessionID: id}) {
			t.Fatalf("expected push to succeed for %s", id)
		}
	}
	if q.Push(domain.Intent{Type: domain.IntentChat, SessionID: "overflow"}) {
		t.Fatalf("expected push to fail when queue full")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", q.Dropped())
	}

	_, gameplay := q.Drain()
	if len(gameplay) != len(ids) {
		t.Fatalf("expected %d intents, got %d", len(ids), len(gameplay))
	}
	for i, in := range gameplay {
		if in.SessionID != ids[i] {
			t.Fatalf("drain order: expected %s, got %s", ids[i], in.SessionID)
		}
	}

	for _, id := range []string{"d", "e"} {
		if !q.Push(domain.Intent{Type: domain.IntentMoveTo, SessionID: id}) {
			t.Fatalf("expected push to succeed after drain for %s", id)
		}
	}
	_, again := q.Drain()
	if len(again) != 2 || again[0].SessionID != "d" || again[1].SessionID != "e" {
		t.Fatalf("unexpected order after refill: %+v", again)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after drain", q.Len())
	}
}

func TestIntentQueueLifecycleNeverDropped(t *testing.T) {
	q := NewIntentQueue(1)
	if !q.Push(domain.Intent{Type: domain.IntentChat, SessionID: "x"}) {
		t.Fatal("expected first push to succeed")
	}
	for i := 0; i < 10; i++ {
		if !q.Push(domain.Intent{Type: domain.IntentLeave, SessionID: "x"}) {
			t.Fatal("lifecycle push refused")
		}
	}
	lifecycle, gameplay := q.Drain()
	if len(lifecycle) != 10 {
		t.Errorf("lifecycle = %d, want 10", len(lifecycle))
	}
	if len(gameplay) != 1 {
		t.Errorf("gameplay = %d, want 1", len(gameplay))
	}
	if q.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", q.Cap())
	}
}

func TestIntentQueueConcurrentPush(t *testing.T) {
	q := NewIntentQueue(64)
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 16; j++ {
				if q.Push(domain.Intent{Type: domain.IntentMoveTo}) {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if accepted != 64 {
		t.Errorf("accepted = %d, want 64", accepted)
	}
	if int(q.Dropped()) != 128-64 {
		t.Errorf("Dropped() = %d, want %d", q.Dropped(), 128-64)
	}
}
