package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFlushTimeout bounds Close when Config.FlushTimeout is zero.
const DefaultFlushTimeout = 2 * time.Second

// Config controls dispatcher buffering behavior.
type Config struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
	// FlushTimeout bounds how long Close waits for the sink to take buffered
	// events. Events still queued when it expires are counted as dropped.
	FlushTimeout time.Duration
}

// Dispatcher forwards audit events to a sink from a single worker.
//
// A nil *Dispatcher is valid and drops everything, so callers need not check
// whether auditing is enabled.
type Dispatcher struct {
	cfg     Config
	sink    Sink
	queue   chan Event
	closing chan struct{}
	stopped chan struct{}

	// flushCtx is handed to the sink and cancelled once Close gives up.
	flushCtx    context.Context
	cancelFlush context.CancelFunc

	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewDispatcher starts a dispatcher, or returns nil when cfg is disabled.
func NewDispatcher(cfg Config, sink Sink) *Dispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = DefaultFlushTimeout
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	flushCtx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		cfg:         cfg,
		sink:        sink,
		queue:       make(chan Event, cfg.BufferSize),
		closing:     make(chan struct{}),
		stopped:     make(chan struct{}),
		flushCtx:    flushCtx,
		cancelFlush: cancel,
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.stopped)
	for {
		select {
		case event := <-d.queue:
			d.deliver(event)
		case <-d.closing:
			for {
				select {
				case event := <-d.queue:
					d.deliver(event)
				default:
					return
				}
			}
		}
	}
}

// deliver hands event to the sink unless Close has already given up.
func (d *Dispatcher) deliver(event Event) {
	if d.flushCtx.Err() != nil {
		d.dropped.Add(1)
		return
	}
	d.sink.Emit(d.flushCtx, event)
}

// Emit queues event. With DropIfFull a full buffer drops the event and counts
// it; otherwise Emit blocks until there is room, ctx ends, or Close.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.cfg.DropIfFull {
		select {
		case d.queue <- event:
		case <-d.closing:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.queue <- event:
	case <-ctx.Done():
	case <-d.closing:
	}
}

// Close delivers buffered events and stops the worker. It returns after the
// queue is flushed or FlushTimeout passes, whichever is first; a sink that
// ignores its context may still be finishing one event then. Close is safe to
// call more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.closing)

		timer := time.NewTimer(d.cfg.FlushTimeout)
		defer timer.Stop()
		select {
		case <-d.stopped:
			d.cancelFlush()
			return
		case <-timer.C:
		}

		d.cancelFlush()
		for {
			select {
			case <-d.queue:
				d.dropped.Add(1)
			default:
				return
			}
		}
	})
}

// Dropped returns how many events were discarded on a full buffer or left
// undelivered when Close timed out.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
