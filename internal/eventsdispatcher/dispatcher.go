// Package eventsdispatcher implements the auxiliary, fire-and-forget
// events pipeline: a worker pool that fans a raw Events API body out to
// every subscribed handler, independent of (and in addition to) the
// primary HandlerRegistry dispatch.
package eventsdispatcher

import (
	"context"
	"sync"

	"github.com/ffaiyaz23/boltgo/handler"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/ffaiyaz23/boltgo/internal/eventsdispatcher")

// Dispatcher owns a bounded work channel and a pool of goroutines that
// drain it, invoking every subscribed handler for each published event.
type Dispatcher struct {
	poolSize int
	workCh   chan []byte

	mu          sync.RWMutex
	subscribers []handler.RawEventHandler

	wg      sync.WaitGroup
	started bool
}

// New builds a Dispatcher with the given worker pool size (at least 1).
func New(poolSize int) *Dispatcher {
	if poolSize < 1 {
		poolSize = 1
	}
	return &Dispatcher{
		poolSize: poolSize,
		workCh:   make(chan []byte, poolSize*4),
	}
}

// Subscribe registers h to be invoked for every future Publish call.
// Safe to call before or after Start.
func (d *Dispatcher) Subscribe(h handler.RawEventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, h)
}

// Start spins up the worker pool. Idempotent.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	for i := 0; i < d.poolSize; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the work channel and waits for in-flight events to drain.
// A Dispatcher that's been Stopped cannot be restarted.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	d.mu.Unlock()

	close(d.workCh)
	d.wg.Wait()
}

// Publish enqueues rawBody for fan-out. It never blocks the caller
// indefinitely: if the work channel is full, the event is dropped and a
// warning is logged, since this pipeline is explicitly fire-and-forget,
// unlike the primary at-most-once handler dispatch the HandlerRegistry
// guarantees.
func (d *Dispatcher) Publish(rawBody []byte) {
	d.mu.RLock()
	started := d.started
	d.mu.RUnlock()
	if !started {
		return
	}

	select {
	case d.workCh <- rawBody:
	default:
		zap.L().Warn("eventsdispatcher: work channel full, dropping event")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for body := range d.workCh {
		d.dispatch(body)
	}
}

func (d *Dispatcher) dispatch(body []byte) {
	_, span := tracer.Start(context.Background(), "eventsdispatcher.dispatch",
		trace.WithAttributes(attribute.Int("body.size", len(body))))
	defer span.End()

	d.mu.RLock()
	subscribers := make([]handler.RawEventHandler, len(d.subscribers))
	copy(subscribers, d.subscribers)
	d.mu.RUnlock()

	for _, h := range subscribers {
		d.invokeSafely(h, body)
	}
}

func (d *Dispatcher) invokeSafely(h handler.RawEventHandler, body []byte) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("eventsdispatcher: subscriber panicked", zap.Any("recover", r))
		}
	}()
	h(body)
}
