package notify

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"seazone/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Event is a reservation confirmation waiting to be delivered.
type Event struct {
	Reservation models.Reservation
}

// Queue is the in-memory buffer between request handlers and the
// notification dispatcher. Handlers push without blocking; delivery
// happens on the dispatcher's goroutines.
type Queue struct {
	items  chan *Event
	done   chan struct{}
	closed bool
	mu     sync.RWMutex
	logger *logrus.Logger
}

// NewQueue creates a queue with the specified buffer size.
func NewQueue(bufferSize int, logger *logrus.Logger) *Queue {
	return &Queue{
		items:  make(chan *Event, bufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Push adds an event to the queue. The send is non-blocking: a full
// queue returns ErrQueueFull instead of stalling the request path.
func (q *Queue) Push(event *Event) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	select {
	case q.items <- event:
		q.logger.WithField("reservation_id", event.Reservation.ID).Debug("Queued notification")
		return nil
	default:
		return ErrQueueFull
	}
}

// Events exposes the receive side for dispatcher workers.
func (q *Queue) Events() <-chan *Event {
	return q.items
}

// Len returns the current number of pending events.
func (q *Queue) Len() int {
	return len(q.items)
}

// Close stops the queue and prevents new events from being added.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// IsClosed returns whether the queue has been closed.
func (q *Queue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
