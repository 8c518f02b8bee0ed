package handlers

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	effectmodel "github.com/on-the-ground/closure_ive_go/effects/model"
)

// WorkerDispatcher routes messages to the channel of the worker that handles them.
type WorkerDispatcher[T any] interface {
	GetChannelOf(msg T) chan T
	// Stop waits for the workers to drain what is already queued.
	Stop()
}

type workers struct {
	done   chan struct{}
	once   sync.Once
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newWorkers(ctx context.Context) (context.Context, *workers) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &workers{done: make(chan struct{}), cancel: cancel}
}

// Stop signals the workers, waits for them to drain and only then cancels
// the context handlers run with.
func (w *workers) Stop() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
	w.cancel()
}

// spawn starts one worker reading ch. Once stopped, or once the parent ctx
// ends, the worker handles whatever is still buffered and exits. Stop leaves
// ctx live until the drain is over. Channels are never closed by the worker;
// late senders are turned away by the scope.
func spawn[T any](ctx context.Context, w *workers, ch chan T, handleFn func(context.Context, T)) {
	w.wg.Add(1)
	ready := make(chan struct{})
	go func() {
		defer w.wg.Done()
		close(ready)
		for {
			select {
			case msg := <-ch:
				handleFn(ctx, msg)
			case <-w.done:
				drain(ctx, ch, handleFn)
				return
			case <-ctx.Done():
				drain(ctx, ch, handleFn)
				return
			}
		}
	}()
	<-ready
}

func drain[T any](ctx context.Context, ch chan T, handleFn func(context.Context, T)) {
	for {
		select {
		case msg := <-ch:
			handleFn(ctx, msg)
		default:
			return
		}
	}
}

// --- single queue ---

type singleQueue[T any] struct {
	*workers
	effectCh chan T
}

func (q singleQueue[T]) GetChannelOf(_ T) chan T {
	return q.effectCh
}

func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	ctx, w := newWorkers(ctx)
	ch := make(chan T, bufferSize)
	spawn(ctx, w, ch, handleFn)
	return singleQueue[T]{workers: w, effectCh: ch}
}

// --- partitioned queue ---

type partitionedQueue[T effectmodel.Partitionable] struct {
	*workers
	effectChs []chan T
}

func (pq partitionedQueue[T]) GetChannelOf(msg T) chan T {
	return pq.effectChs[getIndexByHash(msg, len(pq.effectChs))]
}

func NewPartitionedQueue[T effectmodel.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	ctx, w := newWorkers(ctx)
	channels := make([]chan T, numWorkers)
	for i := range channels {
		channels[i] = make(chan T, bufferSize)
		spawn(ctx, w, channels[i], handleFn)
	}
	return partitionedQueue[T]{workers: w, effectChs: channels}
}

func getIndexByHash(payload effectmodel.Partitionable, numChs int) int {
	switch numChs {
	case 0:
		panic("number of channels cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(payload.PartitionKey()) % uint64(numChs))
	}
}
