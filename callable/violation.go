package callable

import (
	"errors"
	"fmt"
)

// ErrCapabilityViolation is the root of every violation raised by this package.
var ErrCapabilityViolation = errors.New("capability violation")

var (
	// ErrUseAfterConsume is raised when a consumed instance is used again.
	ErrUseAfterConsume = fmt.Errorf("%w: use after consume", ErrCapabilityViolation)

	// ErrAliasing is raised when an exclusive borrow overlaps another borrow.
	ErrAliasing = fmt.Errorf("%w: aliasing", ErrCapabilityViolation)

	// ErrEscalation is raised when a capability stronger than the one offered is requested.
	ErrEscalation = fmt.Errorf("%w: escalation", ErrCapabilityViolation)
)

// ViolationKind classifies a capability violation.
type ViolationKind uint8

const (
	UseAfterConsume ViolationKind = iota + 1
	Aliasing
	Escalation
)

func (k ViolationKind) sentinel() error {
	switch k {
	case UseAfterConsume:
		return ErrUseAfterConsume
	case Aliasing:
		return ErrAliasing
	case Escalation:
		return ErrEscalation
	default:
		panic(fmt.Errorf("invalid violation kind: %d", k))
	}
}

func (k ViolationKind) String() string {
	switch k {
	case UseAfterConsume:
		return "use after consume"
	case Aliasing:
		return "aliasing"
	case Escalation:
		return "escalation"
	default:
		return "unknown"
	}
}

// ViolationError describes a rejected invocation.
type ViolationError struct {
	Kind       ViolationKind
	Callable   string
	Capability Capability
	Detail     string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%v: %s.%s: %s", e.Kind.sentinel(), e.Callable, e.Capability, e.Detail)
}

func (e *ViolationError) Unwrap() error {
	return e.Kind.sentinel()
}

func violate(kind ViolationKind, callable string, c Capability, detail string) {
	panic(&ViolationError{
		Kind:       kind,
		Callable:   callable,
		Capability: c,
		Detail:     detail,
	})
}

// Catch runs fn and returns the violation it raised, or nil.
// Panics that are not capability violations are re-raised.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			v, ok := r.(*ViolationError)
			if !ok {
				panic(r)
			}
			err = v
		}
	}()
	fn()
	return nil
}

func nameOf(v any) string {
	if n, ok := v.(interface{ CallableName() string }); ok {
		return n.CallableName()
	}
	return fmt.Sprintf("%T", v)
}
