package network

import (
	"sync"
	"sync/atomic"

	"github.com/ionutrobert/WebScape/pkg/api"
	"github.com/ionutrobert/WebScape/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SendBuffer is the per-connection outbound queue length.
const SendBuffer = 100

// Broadcaster only fans messages out to subscribers. It never blocks the caller.
type Broadcaster struct {
	mu sync.RWMutex
	// session id -> personal channel
	subscribers map[string]chan api.Envelope
	dropped     atomic.Uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.Envelope),
	}
}

// Register creates the personal channel of a session. A previous channel
// under the same id is closed.
func (b *Broadcaster) Register(sessionID string) chan api.Envelope {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.Envelope, SendBuffer)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister removes a subscriber and closes its channel. Safe to call twice.
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo unicasts. Returns false if the session is unknown or its buffer is full.
func (b *Broadcaster) SendTo(sessionID string, msg api.Envelope) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[sessionID]
	if !ok {
		return false
	}
	return b.offer(sessionID, ch, msg)
}

// Broadcast sends to everyone.
func (b *Broadcaster) Broadcast(msg api.Envelope) {
	b.BroadcastExcept(msg, "")
}

// BroadcastExcept sends to everyone but one session.
func (b *Broadcaster) BroadcastExcept(msg api.Envelope, exceptID string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		if id == exceptID {
			continue
		}
		b.offer(id, ch, msg)
	}
}

func (b *Broadcaster) offer(id string, ch chan api.Envelope, msg api.Envelope) bool {
	select {
	case ch <- msg:
		return true
	default:
		b.dropped.Add(1)
		logger.Log.WithFields(logrus.Fields{
			"component": "gateway",
			"session":   id,
			"type":      msg.Type,
		}).Debug("Send buffer full, message dropped")
		return false
	}
}

// HasSubscriber reports whether a session has a live channel.
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount returns the number of live subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped counts messages lost to full buffers.
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}
