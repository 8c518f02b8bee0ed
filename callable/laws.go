package callable

import "fmt"

// CallMutN invokes f.CallMut n times with arg and returns each result in order.
func CallMutN[A, R any](f FnMut[A, R], n int, arg A) []R {
	if n < 0 {
		panic(fmt.Errorf("callable: negative repeat count %d", n))
	}
	results := make([]R, 0, n)
	for range n {
		results = append(results, f.CallMut(arg))
	}
	return results
}

// Step is one invocation in a sequence run by Replay.
type Step[A any] struct {
	Mode Capability
	Arg  A
}

// ReadStep, MutStep and OnceStep build Steps.
func ReadStep[A any](arg A) Step[A] { return Step[A]{Mode: CapabilityRead, Arg: arg} }
func MutStep[A any](arg A) Step[A]  { return Step[A]{Mode: CapabilityMutate, Arg: arg} }
func OnceStep[A any](arg A) Step[A] { return Step[A]{Mode: CapabilityConsume, Arg: arg} }

// Replay applies steps to f in order and returns every result.
//
// A step that needs a capability f lacks raises ErrEscalation; a step after
// a consume step raises ErrUseAfterConsume.
func Replay[A, R any](f FnOnce[A, R], steps ...Step[A]) []R {
	results := make([]R, 0, len(steps))
	for _, s := range steps {
		switch s.Mode {
		case CapabilityRead:
			results = append(results, AsFn(f).Call(s.Arg))
		case CapabilityMutate:
			results = append(results, AsMut(f).CallMut(s.Arg))
		case CapabilityConsume:
			results = append(results, f.CallOnce(s.Arg))
		default:
			panic(fmt.Errorf("callable: invalid step mode %d", s.Mode))
		}
	}
	return results
}
