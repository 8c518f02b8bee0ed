package closures

import (
	"errors"
	"fmt"
	"math"

	"github.com/on-the-ground/closure_ive_go/callable"
)

// ErrOutOfRange is raised when a no-argument result does not fit in uint32.
var ErrOutOfRange = errors.New("value out of uint32 range")

// Accumulator captures a single integer and supports mutate and consume in
// two arities, exposed as separate views over the same instance:
//
//	WithArg: CallMut(a) = { value += a; return value }   CallOnce(a) = value + a
//	NoArg:   CallMut()  = { value *= 2; return value }   CallOnce()  = value * 10
//
// Mutate accumulates in place; consume computes a one-shot value from the
// current state without accumulating. No-argument results are uint32 and
// panic with ErrOutOfRange when negative or too large.
type Accumulator struct {
	life  callable.Lifecycle
	value int
}

func NewAccumulator(value int) *Accumulator {
	return &Accumulator{value: value}
}

func (a *Accumulator) CallableName() string           { return "Accumulator" }
func (a *Accumulator) Lifecycle() *callable.Lifecycle { return &a.life }

// Value returns the captured value.
func (a *Accumulator) Value() int {
	return callable.Reading(&a.life, a.CallableName(), func() int { return a.value })
}

// SetValue overwrites the captured value.
func (a *Accumulator) SetValue(v int) {
	callable.Mutating(&a.life, a.CallableName(), func() struct{} {
		a.value = v
		return struct{}{}
	})
}

func (a *Accumulator) Clone() *Accumulator {
	return callable.Reading(&a.life, a.CallableName(), func() *Accumulator {
		return NewAccumulator(a.value)
	})
}

// WithArg returns the argument-taking view of a.
func (a *Accumulator) WithArg() callable.FnMut[int, int] {
	return accumulatorWithArg{a}
}

// NoArg returns the argument-less view of a.
func (a *Accumulator) NoArg() callable.FnMut[callable.Unit, uint32] {
	return accumulatorNoArg{a}
}

// AddMut adds arg to the captured value and returns the new value.
func (a *Accumulator) AddMut(arg int) int {
	return callable.Mutating(&a.life, a.CallableName(), func() int {
		a.value += arg
		return a.value
	})
}

// AddOnce consumes a and returns value + arg.
func (a *Accumulator) AddOnce(arg int) int {
	return callable.Consuming(&a.life, a.CallableName(), func() int {
		return a.value + arg
	})
}

// DoubleMut doubles the captured value and returns it.
func (a *Accumulator) DoubleMut() uint32 {
	return callable.Mutating(&a.life, a.CallableName(), func() uint32 {
		a.value *= 2
		return toUint32(a.value)
	})
}

// TimesTenOnce consumes a and returns value * 10.
func (a *Accumulator) TimesTenOnce() uint32 {
	return callable.Consuming(&a.life, a.CallableName(), func() uint32 {
		return toUint32(a.value * 10)
	})
}

func toUint32(v int) uint32 {
	if v < 0 || uint64(v) > math.MaxUint32 {
		panic(fmt.Errorf("%w: %d", ErrOutOfRange, v))
	}
	return uint32(v)
}

type accumulatorWithArg struct{ *Accumulator }

func (v accumulatorWithArg) CallMut(arg int) int  { return v.AddMut(arg) }
func (v accumulatorWithArg) CallOnce(arg int) int { return v.AddOnce(arg) }

type accumulatorNoArg struct{ *Accumulator }

func (v accumulatorNoArg) CallMut(callable.Unit) uint32  { return v.DoubleMut() }
func (v accumulatorNoArg) CallOnce(callable.Unit) uint32 { return v.TimesTenOnce() }
