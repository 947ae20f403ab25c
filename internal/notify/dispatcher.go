package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	queueSize       = 256
	deliveryTimeout = 15 * time.Second
)

// Channel delivers one notification to one recipient. A channel may decline
// a recipient it cannot reach by returning nil.
type Channel interface {
	Deliver(ctx context.Context, rcpt Recipient, kind Kind, payload Payload) error
}

type envelope struct {
	recipients []Recipient
	kind       Kind
	payload    Payload
}

// Dispatcher fans notifications out to its channels from a worker goroutine.
// Enqueueing never blocks the caller: when the queue is full the message is
// dropped and counted.
type Dispatcher struct {
	channels []Channel
	queue    chan envelope
	log      zerolog.Logger
	done     chan struct{}
	dropped  atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(log zerolog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		queue:    make(chan envelope, queueSize),
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	go d.loop()
}

// Stop drains the queue and waits for the worker to finish. Notifications
// arriving after Stop are dropped, not panicked on: the queue is closed
// under the same lock Notify sends under.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

// Notify enqueues the notification for asynchronous delivery.
func (d *Dispatcher) Notify(_ context.Context, recipients []Recipient, kind Kind, payload Payload) {
	if len(recipients) == 0 {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.dropped.Add(1)
		d.log.Warn().Str("kind", string(kind)).Msg("dispatcher stopped, message dropped")
		return
	}
	select {
	case d.queue <- envelope{recipients: recipients, kind: kind, payload: payload}:
	default:
		d.dropped.Add(1)
		d.log.Warn().Str("kind", string(kind)).Msg("notification queue full, message dropped")
	}
}

// Dropped reports how many notifications were discarded due to backpressure.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for env := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		for _, rcpt := range env.recipients {
			for _, ch := range d.channels {
				if err := ch.Deliver(ctx, rcpt, env.kind, env.payload); err != nil {
					d.log.Error().Err(err).
						Str("kind", string(env.kind)).
						Str("email", rcpt.Email).
						Msg("notification delivery failed")
				}
			}
		}
		cancel()
	}
}
