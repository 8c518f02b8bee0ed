package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"
	effectmodel "github.com/on-the-ground/closure_ive_go/effects/model"
)

// effectScope owns a dispatcher and the teardown of whatever the handler wraps.
// Close is idempotent; effects performed after Close are rejected.
type effectScope[T any] struct {
	EffectId   string
	dispatcher WorkerDispatcher[T]
	teardown   func()

	// mu is held shared across every send and exclusively while closing,
	// so no message can land in a queue whose workers already left.
	mu     sync.RWMutex
	closed bool
}

func (es *effectScope[T]) Close() {
	es.mu.Lock()
	if es.closed {
		es.mu.Unlock()
		return
	}
	es.closed = true
	es.mu.Unlock()

	es.dispatcher.Stop()
	es.teardown()
}

func (es *effectScope[T]) Closed() bool {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.closed
}

// send queues msg on its worker. It fails with ErrHandlerClosed after Close
// and with ctx's error if ctx ends while the queue is full.
func (es *effectScope[T]) send(ctx context.Context, msg T) error {
	es.mu.RLock()
	defer es.mu.RUnlock()
	if es.closed {
		return effectmodel.ErrHandlerClosed
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case es.dispatcher.GetChannelOf(msg) <- msg:
		return nil
	}
}

func newEffectScope[T any](
	dispatcher WorkerDispatcher[T],
	teardown func(),
) *effectScope[T] {
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		dispatcher: dispatcher,
		teardown:   teardown,
	}
}
