package effectmodel

import "errors"

type EffectEnum string

const (
	EffectLog   EffectEnum = "closure_ive_go_effect_enum_log"
	EffectTable EffectEnum = "closure_ive_go_effect_enum_table"
)

// ErrNoEffectHandler is returned (or raised) when no handler is registered for an effect.
var ErrNoEffectHandler = errors.New("no effect handler registered for this effect")

// ErrHandlerClosed is reported to effects performed after their handler was torn down.
var ErrHandlerClosed = errors.New("effect handler closed")

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable payloads are routed to a worker by PartitionKey, so payloads
// sharing a key are handled in order.
type Partitionable interface {
	PartitionKey() string
}

// ResumableResult is the outcome of a resumable effect.
type ResumableResult[T any] struct {
	Value T
	Err   error
}

func ResumableResultFrom[R any](res R, err error) ResumableResult[R] {
	return ResumableResult[R]{Value: res, Err: err}
}
