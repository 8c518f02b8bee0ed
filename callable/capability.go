package callable

import "strings"

// Unit is the argument of entry points that take nothing.
type Unit = struct{}

// Capability names one invocation entry point.
type Capability uint8

const (
	// CapabilityConsume is CallOnce: the instance is moved into the call.
	CapabilityConsume Capability = 1 << iota

	// CapabilityMutate is CallMut: the instance is borrowed exclusively.
	CapabilityMutate

	// CapabilityRead is Call: the instance is borrowed shared.
	CapabilityRead
)

func (c Capability) String() string {
	switch c {
	case CapabilityConsume:
		return "consume"
	case CapabilityMutate:
		return "mutate"
	case CapabilityRead:
		return "read"
	default:
		return "unknown"
	}
}

// FnOnce is implemented by callables that can be invoked by value.
type FnOnce[A, R any] interface {
	CallOnce(arg A) R
}

// FnMut is implemented by callables that can be invoked repeatedly
// through an exclusive borrow. Every FnMut is a FnOnce.
type FnMut[A, R any] interface {
	FnOnce[A, R]
	CallMut(arg A) R
}

// Fn is implemented by callables that can be invoked through a shared
// borrow. Every Fn is a FnMut.
type Fn[A, R any] interface {
	FnMut[A, R]
	Call(arg A) R
}

// CapabilitySet is the set of entry points an instance supports.
type CapabilitySet uint8

// SetOf builds a CapabilitySet from the given capabilities.
// The result is not closed under implication; see Valid and Closure.
func SetOf(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= CapabilitySet(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

// Valid reports whether the set respects the hierarchy:
// read implies mutate, mutate implies consume.
func (s CapabilitySet) Valid() bool {
	if s.Has(CapabilityRead) && !s.Has(CapabilityMutate) {
		return false
	}
	if s.Has(CapabilityMutate) && !s.Has(CapabilityConsume) {
		return false
	}
	return true
}

// Closure returns the smallest valid set containing s.
func (s CapabilitySet) Closure() CapabilitySet {
	if s.Has(CapabilityRead) {
		s |= CapabilitySet(CapabilityMutate)
	}
	if s.Has(CapabilityMutate) {
		s |= CapabilitySet(CapabilityConsume)
	}
	return s
}

// Strongest returns the strongest capability in the set, or 0 when empty.
func (s CapabilitySet) Strongest() Capability {
	for _, c := range []Capability{CapabilityRead, CapabilityMutate, CapabilityConsume} {
		if s.Has(c) {
			return c
		}
	}
	return 0
}

func (s CapabilitySet) String() string {
	names := make([]string, 0, 3)
	for _, c := range []Capability{CapabilityConsume, CapabilityMutate, CapabilityRead} {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// CapabilitiesOf derives the capability set of f from the interfaces it implements.
// The result is always Valid.
func CapabilitiesOf[A, R any](f FnOnce[A, R]) CapabilitySet {
	s := SetOf(CapabilityConsume)
	if _, ok := f.(FnMut[A, R]); ok {
		s |= CapabilitySet(CapabilityMutate)
	}
	if _, ok := f.(Fn[A, R]); ok {
		s |= CapabilitySet(CapabilityRead)
	}
	return s
}

// AsMut returns f as a FnMut.
// It panics with ErrEscalation when f only supports consumption.
func AsMut[A, R any](f FnOnce[A, R]) FnMut[A, R] {
	m, ok := f.(FnMut[A, R])
	if !ok {
		violate(Escalation, nameOf(f), CapabilityMutate, "callable only supports "+CapabilitiesOf(f).String())
	}
	return m
}

// AsFn returns f as a Fn.
// It panics with ErrEscalation when f does not support shared calls.
func AsFn[A, R any](f FnOnce[A, R]) Fn[A, R] {
	r, ok := f.(Fn[A, R])
	if !ok {
		violate(Escalation, nameOf(f), CapabilityRead, "callable only supports "+CapabilitiesOf(f).String())
	}
	return r
}
