package queue

import (
	"errors"
	"sync"
)

// ErrStopped is returned by WaitPop once Stop has been called and every
// pending item has been drained. It is the expected end-of-stream signal
// for consumers, not a failure.
var ErrStopped = errors.New("handoff queue stopped")

// HandoffQueue is an unbounded thread-safe FIFO between a producing
// goroutine and a consuming goroutine. Pushes never block. A one-way
// stop signal tells blocked consumers to give up once the queue is
// empty; items already pushed (or pushed after the stop) are still
// delivered in order before ErrStopped is observed.
type HandoffQueue[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []T
	stopped bool
}

func New[T any]() *HandoffQueue[T] {
	q := &HandoffQueue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a value to the tail and wakes one waiting consumer.
// It never blocks and is allowed in any state: stopping the queue does
// not discard pending or future pushes.
func (q *HandoffQueue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.cond.Signal()
}

// TryPop removes and returns the head item without blocking.
// The second return value reports whether an item was available;
// an empty queue is a normal outcome, not an error.
func (q *HandoffQueue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}

// WaitPop blocks until an item is available and returns it, or returns
// ErrStopped once Stop has been called and the queue is empty. An item
// pushed concurrently with Stop is still delivered before any waiter
// sees ErrStopped: the condition is re-checked under the lock after
// every wakeup.
func (q *HandoffQueue[T]) WaitPop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.stopped {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		var zero T
		return zero, ErrStopped
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, nil
}

// Stop marks the queue as stopped and wakes all blocked consumers so
// they can re-evaluate. Idempotent; there is no way back to the open
// state.
func (q *HandoffQueue[T]) Stop() {
	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Len reports the number of pending items. Intended for logging and
// tests; the value may be stale by the time the caller looks at it.
func (q *HandoffQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
