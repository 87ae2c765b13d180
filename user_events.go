package speedy

import (
	"errors"
	"fmt"
	"sync"
)

// ErrEventLoopStopped is returned when sending a user event to a window
// whose event loop has stopped.
var ErrEventLoopStopped = errors.New("speedy: event loop stopped")

// EventLoopSendError is returned by UserEventSender.SendEvent when the
// event loop has stopped. It carries the undelivered event.
type EventLoopSendError[U any] struct {
	Event U
}

func (e *EventLoopSendError[U]) Error() string {
	return fmt.Sprintf("speedy: user event not delivered: %v", ErrEventLoopStopped)
}

func (e *EventLoopSendError[U]) Unwrap() error {
	return ErrEventLoopStopped
}

// userEventQueue is an unbounded multi-producer single-consumer queue.
// Producers append under the lock; the consumer swaps the pending slice
// out, so a drain only sees the events present when it started.
type userEventQueue[U any] struct {
	mu      sync.Mutex
	pending []U
	spare   []U
	closed  bool

	// wake interrupts a blocking platform poll.
	wake func()
}

func newUserEventQueue[U any]() *userEventQueue[U] {
	return &userEventQueue[U]{}
}

func (q *userEventQueue[U]) send(ev U) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return &EventLoopSendError[U]{Event: ev}
	}
	q.pending = append(q.pending, ev)
	wake := q.wake
	q.mu.Unlock()

	if wake != nil {
		wake()
	}
	return nil
}

// drain calls fn for each event queued before the call, in order. Events
// sent while fn runs are delivered by the next drain. It returns the
// number of events delivered.
func (q *userEventQueue[U]) drain(fn func(U)) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = q.spare[:0]
	q.mu.Unlock()

	for _, ev := range batch {
		fn(ev)
	}

	var zero U
	for i := range batch {
		batch[i] = zero
	}
	q.mu.Lock()
	q.spare = batch[:0]
	q.mu.Unlock()
	return len(batch)
}

func (q *userEventQueue[U]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *userEventQueue[U]) setWake(fn func()) {
	q.mu.Lock()
	q.wake = fn
	q.mu.Unlock()
}

// close rejects further sends and drops undelivered events.
func (q *userEventQueue[U]) close() {
	q.mu.Lock()
	q.closed = true
	q.pending = nil
	q.spare = nil
	q.mu.Unlock()
}

// UserEventSender posts user events to a window's event loop. It is safe
// for concurrent use by multiple goroutines, and may be copied freely.
//
// Events from one sender are delivered in send order. There is no
// ordering between senders. The queue is unbounded: a producer that
// outpaces the loop grows memory without limit, so callers must throttle.
type UserEventSender[U any] struct {
	q *userEventQueue[U]
}

// SendEvent queues ev for delivery to Handler.OnUserEvent on the next
// tick. It fails with an *EventLoopSendError once the loop has stopped.
func (s UserEventSender[U]) SendEvent(ev U) error {
	if s.q == nil {
		return &EventLoopSendError[U]{Event: ev}
	}
	return s.q.send(ev)
}
