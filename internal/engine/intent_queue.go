package engine

import (
	"sync"

	"github.com/ionutrobert/WebScape/internal/domain"
)

// IntentQueue stages client intents between ticks. Gameplay intents live in
// a fixed-size ring; join and leave go to an unbounded lane so a disconnect
// is never dropped. Safe for concurrent producers and a single consumer.
type IntentQueue struct {
	mu        sync.Mutex
	data      []domain.Intent
	head      int
	tail      int
	count     int
	lifecycle []domain.Intent
	dropped   uint64
}

// NewIntentQueue constructs a queue with the given gameplay capacity.
func NewIntentQueue(capacity int) *IntentQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &IntentQueue{data: make([]domain.Intent, capacity)}
}

// Push stages a gameplay intent, returning false if the ring is full.
// Lifecycle intents are routed to their own lane and always accepted.
func (q *IntentQueue) Push(in domain.Intent) bool {
	if in.Type.IsLifecycle() {
		q.PushLifecycle(in)
		return true
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == len(q.data) {
		q.dropped++
		return false
	}
	q.data[q.tail] = in
	q.tail = (q.tail + 1) % len(q.data)
	q.count++
	return true
}

// PushLifecycle appends a join or leave.
func (q *IntentQueue) PushLifecycle(in domain.Intent) {
	q.mu.Lock()
	q.lifecycle = append(q.lifecycle, in)
	q.mu.Unlock()
}

// Drain returns everything staged, both lanes in FIFO order, and clears the queue.
func (q *IntentQueue) Drain() (lifecycle, gameplay []domain.Intent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	lifecycle = q.lifecycle
	q.lifecycle = nil

	if q.count == 0 {
		return lifecycle, nil
	}
	gameplay = make([]domain.Intent, q.count)
	for i := 0; i < q.count; i++ {
		idx := (q.head + i) % len(q.data)
		gameplay[i] = q.data[idx]
		q.data[idx] = domain.Intent{}
	}
	q.head = 0
	q.tail = 0
	q.count = 0
	return lifecycle, gameplay
}

// Len reports staged gameplay intents.
func (q *IntentQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// LifecycleLen is the number of queued joins and leaves.
func (q *IntentQueue) LifecycleLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lifecycle)
}

// Cap is the gameplay capacity.
func (q *IntentQueue) Cap() int {
	return len(q.data)
}

// Dropped counts pushes refused because the ring was full.
func (q *IntentQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
