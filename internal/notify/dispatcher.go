package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DispatcherOptions tunes the worker pool and its retry behavior.
type DispatcherOptions struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// Dispatcher drains the queue and delivers notifications with bounded
// retries. Delivery failures are logged and dropped; they never reach
// the request path.
type Dispatcher struct {
	queue     *Queue
	sender    Sender
	opts      DispatcherOptions
	logger    *logrus.Logger
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewDispatcher(queue *Queue, sender Sender, opts DispatcherOptions, logger *logrus.Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		queue:  queue,
		sender: sender,
		opts:   opts,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.opts.Workers; i++ {
		d.waitGroup.Add(1)
		go d.processLoop()
	}
}

// Stop gracefully shuts down the workers.
func (d *Dispatcher) Stop() {
	d.cancel()
	d.waitGroup.Wait()
}

func (d *Dispatcher) processLoop() {
	defer d.waitGroup.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case event, ok := <-d.queue.Events():
			if !ok {
				return
			}
			d.deliver(event)
		}
	}
}

// deliver sends a single confirmation, retrying transient failures.
func (d *Dispatcher) deliver(event *Event) {
	message := ConfirmationMessage(&event.Reservation)

	var err error
	for attempt := 0; attempt <= d.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			d.logger.Infof("Retrying notification delivery, attempt %d of %d", attempt, d.opts.MaxRetries)
			select {
			case <-d.ctx.Done():
				return
			case <-time.After(d.opts.RetryDelay):
			}
		}

		if err = d.sender.SendMessage(message); err == nil {
			d.logger.WithField("reservation_id", event.Reservation.ID).Info("Notification delivered")
			return
		}

		d.logger.Errorf("Notification delivery failed: %v", err)
	}

	d.logger.WithField("reservation_id", event.Reservation.ID).
		Errorf("Dropping notification after %d retries: %v", d.opts.MaxRetries, err)
}
