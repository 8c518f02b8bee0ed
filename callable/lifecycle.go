package callable

import "fmt"

// State is the ownership state of an instance.
type State uint8

const (
	Live State = iota
	Consumed
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Consumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Lifecycle is embedded (as a field) in every callable instance. The zero
// value is a Live instance with no borrows.
//
// Lifecycle is NOT thread-safe. Instances are meant to be driven by one
// goroutine, strictly sequentially; the counters below detect overlapping
// borrows within that goroutine, not data races across goroutines.
type Lifecycle struct {
	state   State
	readers int
	writer  bool
}

// State returns the current ownership state.
func (l *Lifecycle) State() State {
	return l.state
}

// Borrowed reports whether any borrow is outstanding.
func (l *Lifecycle) Borrowed() bool {
	return l.writer || l.readers > 0
}

// Tracked is implemented by instances that expose their Lifecycle, so that
// borrow views and Drop can take part in ownership checks.
type Tracked interface {
	Lifecycle() *Lifecycle
}

func (l *Lifecycle) ensureLive(owner string, c Capability) {
	if l.state == Consumed {
		violate(UseAfterConsume, owner, c, "instance was already consumed")
	}
}

func (l *Lifecycle) acquire(owner string, c Capability) {
	l.ensureLive(owner, c)
	switch c {
	case CapabilityRead:
		if l.writer {
			violate(Aliasing, owner, c, "shared borrow while exclusively borrowed")
		}
		l.readers++
	case CapabilityMutate:
		if l.writer {
			violate(Aliasing, owner, c, "second exclusive borrow")
		}
		if l.readers > 0 {
			violate(Aliasing, owner, c, fmt.Sprintf("exclusive borrow while %d shared borrows are held", l.readers))
		}
		l.writer = true
	case CapabilityConsume:
		if l.Borrowed() {
			violate(Aliasing, owner, c, "moved while borrowed")
		}
		l.state = Consumed
	default:
		panic(fmt.Errorf("invalid capability: %d", c))
	}
}

func (l *Lifecycle) release(c Capability) {
	switch c {
	case CapabilityRead:
		l.readers--
	case CapabilityMutate:
		l.writer = false
	}
}

// Consuming moves the instance owning l and then computes fn.
// The instance is Consumed even if fn panics.
func Consuming[R any](l *Lifecycle, owner string, fn func() R) R {
	l.acquire(owner, CapabilityConsume)
	return fn()
}

// Mutating runs fn under an exclusive borrow of the instance owning l.
func Mutating[R any](l *Lifecycle, owner string, fn func() R) R {
	l.acquire(owner, CapabilityMutate)
	defer l.release(CapabilityMutate)
	return fn()
}

// Reading runs fn under a shared borrow of the instance owning l.
func Reading[R any](l *Lifecycle, owner string, fn func() R) R {
	l.acquire(owner, CapabilityRead)
	defer l.release(CapabilityRead)
	return fn()
}

// Drop consumes t without invoking it. Views release their lease first.
func Drop(t Tracked) {
	t.Lifecycle().acquire(nameOf(t), CapabilityConsume)
	if r, ok := t.(interface{ Release() }); ok {
		r.Release()
	}
}

// Lease is a borrow that outlives a single call, held by a borrow view.
type Lease struct {
	life  *Lifecycle
	owner string
	mode  Capability
	held  bool
}

// Lend starts a borrow of t in the given mode (CapabilityRead or CapabilityMutate).
func Lend(t Tracked, mode Capability) *Lease {
	if mode != CapabilityRead && mode != CapabilityMutate {
		violate(Escalation, nameOf(t), mode, "only read and mutate can be lent")
	}
	l := &Lease{life: t.Lifecycle(), owner: nameOf(t), mode: mode}
	l.life.acquire(l.owner, mode)
	l.held = true
	return l
}

// Release ends the borrow. Releasing twice is a no-op.
func (l *Lease) Release() {
	if l == nil || !l.held {
		return
	}
	l.life.release(l.mode)
	l.held = false
}

// reborrow hands the lease back to the owner for the duration of fn, so the
// owner's own entry points can take the borrow they need.
func reborrow[R any](l *Lease, fn func() R) R {
	if l == nil || !l.held {
		return fn()
	}
	l.life.release(l.mode)
	defer l.life.acquire(l.owner, l.mode)
	return fn()
}
