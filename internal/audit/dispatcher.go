package audit

import (
	"context"
	"sync"
	"sync/atomic"
)

// Dispatcher decouples session lifecycle operations from sink I/O. Login,
// refresh, and logout paths hand their events to Emit and return immediately;
// a single goroutine forwards them to the sink in emission order. Slow sinks
// therefore cost buffered memory, never request latency — except when the
// caller opts into blocking delivery, where a full buffer stalls the emitting
// operation until the sink catches up or its context ends.
type Dispatcher struct {
	sink       Sink
	events     chan Event
	quit       chan struct{}
	dropIfFull bool

	dropped  atomic.Uint64
	closing  atomic.Bool
	stopOnce sync.Once
	stopped  sync.WaitGroup
}

// NewDispatcher starts a dispatcher forwarding to sink. A nil sink discards
// events but still exercises the pipeline, so sinkless deployments behave
// identically under load. When dropIfFull is set, events beyond the buffer are
// counted and discarded instead of blocking the session operation that
// produced them.
func NewDispatcher(sink Sink, buffer int, dropIfFull bool) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	if sink == nil {
		sink = NoOpSink{}
	}

	d := &Dispatcher{
		sink:       sink,
		events:     make(chan Event, buffer),
		quit:       make(chan struct{}),
		dropIfFull: dropIfFull,
	}

	d.stopped.Add(1)
	go d.forward()

	return d
}

func (d *Dispatcher) forward() {
	defer d.stopped.Done()

	for {
		select {
		case event := <-d.events:
			d.sink.Emit(context.Background(), event)
		case <-d.quit:
			d.drain()
			return
		}
	}
}

// drain flushes whatever the lifecycle paths managed to enqueue before Close,
// so a logout-all followed by shutdown still reaches the sink.
func (d *Dispatcher) drain() {
	for {
		select {
		case event := <-d.events:
			d.sink.Emit(context.Background(), event)
		default:
			return
		}
	}
}

// Emit enqueues one lifecycle event. It never blocks in drop mode; in
// blocking mode it waits for buffer space, the caller's context, or shutdown,
// whichever comes first. Events emitted after Close are discarded.
func (d *Dispatcher) Emit(ctx context.Context, event Event) {
	if d == nil || d.closing.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if d.dropIfFull {
		select {
		case d.events <- event:
		case <-d.quit:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.events <- event:
	case <-ctx.Done():
	case <-d.quit:
	}
}

// Close stops the dispatcher after flushing buffered events. Safe to call
// more than once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.stopOnce.Do(func() {
		d.closing.Store(true)
		close(d.quit)
		d.stopped.Wait()
	})
}

// Dropped reports how many events were discarded under backpressure. A
// steadily growing count means the sink is too slow for the configured
// buffer, not that sessions misbehaved.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
