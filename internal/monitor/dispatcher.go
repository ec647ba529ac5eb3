package monitor

import (
	"context"
	"errors"
	"sync"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/vitalwatch/internal/vitals"
)

var (
	// ErrQueueFull is returned when the alert queue has no free slot.
	ErrQueueFull = errors.New("alert queue full")

	// ErrClosed is returned for alerts submitted after Close.
	ErrClosed = errors.New("alert dispatcher closed")
)

type request struct {
	ctx     context.Context
	message string
	seconds int
}

// Dispatcher is a vitals.Alerter that queues alerts and renders them one at a
// time on a single worker goroutine.
type Dispatcher struct {
	alerter vitals.Alerter
	logger  log.Logger
	hooks   DispatchHooks

	mu     sync.RWMutex
	closed bool
	queue  chan request
	done   chan struct{}
}

// DispatchHooks observes queue activity. All fields are optional.
type DispatchHooks struct {
	OnEnqueue  func(depth int)
	OnReject   func(reason string)
	OnRendered func(depth int, err error)
}

// NewDispatcher starts a worker that renders queued alerts through alerter.
// size is the queue capacity and must be positive.
func NewDispatcher(alerter vitals.Alerter, size int, logger log.Logger, hooks DispatchHooks) *Dispatcher {
	if alerter == nil {
		panic(xerrors.New("alerter is required"))
	}
	if size <= 0 {
		panic(xerrors.New("queue size must be positive"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	d := &Dispatcher{
		alerter: alerter,
		logger:  logger,
		hooks:   hooks,
		queue:   make(chan request, size),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Alert queues message for rendering and returns without waiting for it.
func (d *Dispatcher) Alert(ctx context.Context, message string, seconds int) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.reject("closed")
		return ErrClosed
	}

	select {
	case d.queue <- request{ctx: context.WithoutCancel(ctx), message: message, seconds: seconds}:
		if d.hooks.OnEnqueue != nil {
			d.hooks.OnEnqueue(len(d.queue))
		}
		return nil
	default:
		d.reject("full")
		return ErrQueueFull
	}
}

// pending returns the number of alerts waiting to be rendered.
func (d *Dispatcher) pending() int {
	return len(d.queue)
}

// Close stops accepting alerts and waits for queued ones to finish rendering
// or for ctx to end, whichever comes first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for req := range d.queue {
		err := d.alerter.Alert(req.ctx, req.message, req.seconds)
		if err != nil {
			d.logger.Error(req.ctx, err, "alert render failed", "message", req.message)
		}
		if d.hooks.OnRendered != nil {
			d.hooks.OnRendered(len(d.queue), err)
		}
	}
}

func (d *Dispatcher) reject(reason string) {
	if d.hooks.OnReject != nil {
		d.hooks.OnReject(reason)
	}
}
