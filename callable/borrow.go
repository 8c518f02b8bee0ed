package callable

// SharedView is a shared borrow of a Fn, usable wherever a Fn is expected.
// Every entry point routes to the target's Call, so consuming the view never
// consumes the target. Views are cheap to copy with Clone.
type SharedView[A, R any] struct {
	life   Lifecycle
	target Fn[A, R]
	lease  *Lease
}

var _ Fn[int, int] = (*SharedView[int, int])(nil)

// ByRef borrows f shared. When f is Tracked the borrow is registered with
// its Lifecycle until the view is released or consumed, so an exclusive
// borrow or a move of f in the meantime is rejected.
func ByRef[A, R any](f Fn[A, R]) *SharedView[A, R] {
	v := &SharedView[A, R]{target: f}
	if t, ok := f.(Tracked); ok {
		v.lease = Lend(t, CapabilityRead)
	}
	return v
}

func (v *SharedView[A, R]) CallableName() string {
	return "&" + nameOf(v.target)
}

func (v *SharedView[A, R]) Lifecycle() *Lifecycle {
	return &v.life
}

func (v *SharedView[A, R]) Call(arg A) R {
	return Reading(&v.life, v.CallableName(), func() R {
		return reborrow(v.lease, func() R { return v.target.Call(arg) })
	})
}

func (v *SharedView[A, R]) CallMut(arg A) R {
	return Mutating(&v.life, v.CallableName(), func() R {
		return reborrow(v.lease, func() R { return v.target.Call(arg) })
	})
}

// CallOnce consumes the view, not the target, and releases the borrow.
func (v *SharedView[A, R]) CallOnce(arg A) R {
	return Consuming(&v.life, v.CallableName(), func() R {
		defer v.lease.Release()
		return reborrow(v.lease, func() R { return v.target.Call(arg) })
	})
}

// Clone returns another shared borrow of the same target.
func (v *SharedView[A, R]) Clone() *SharedView[A, R] {
	return Reading(&v.life, v.CallableName(), func() *SharedView[A, R] {
		return ByRef(v.target)
	})
}

// Release ends the borrow without consuming the view's target.
// The view cannot be used afterwards.
func (v *SharedView[A, R]) Release() {
	v.lease.Release()
	v.life.state = Consumed
}

// ExclusiveView is an exclusive borrow of a FnMut, usable wherever a FnMut
// is expected. CallOnce consumes the view and runs the target's CallMut.
// There is no Clone: two exclusive borrows may not coexist.
type ExclusiveView[A, R any] struct {
	life   Lifecycle
	target FnMut[A, R]
	lease  *Lease
}

var _ FnMut[int, int] = (*ExclusiveView[int, int])(nil)

// ByMut borrows f exclusively. When f is Tracked, any other use of f is
// rejected until the view is released or consumed.
func ByMut[A, R any](f FnMut[A, R]) *ExclusiveView[A, R] {
	v := &ExclusiveView[A, R]{target: f}
	if t, ok := f.(Tracked); ok {
		v.lease = Lend(t, CapabilityMutate)
	}
	return v
}

func (v *ExclusiveView[A, R]) CallableName() string {
	return "&mut " + nameOf(v.target)
}

func (v *ExclusiveView[A, R]) Lifecycle() *Lifecycle {
	return &v.life
}

func (v *ExclusiveView[A, R]) CallMut(arg A) R {
	return Mutating(&v.life, v.CallableName(), func() R {
		return reborrow(v.lease, func() R { return v.target.CallMut(arg) })
	})
}

// CallOnce consumes the view, not the target, and releases the borrow.
func (v *ExclusiveView[A, R]) CallOnce(arg A) R {
	return Consuming(&v.life, v.CallableName(), func() R {
		defer v.lease.Release()
		return reborrow(v.lease, func() R { return v.target.CallMut(arg) })
	})
}

// Release ends the borrow. The view cannot be used afterwards.
func (v *ExclusiveView[A, R]) Release() {
	v.lease.Release()
	v.life.state = Consumed
}

// View is a borrow taken with ByRef or ByMut.
type View interface {
	Tracked
	CallableName() string
	Release()
}

var (
	_ View = (*SharedView[int, int])(nil)
	_ View = (*ExclusiveView[int, int])(nil)
)

// Escalate asks for the owner a view was borrowed from. A borrow never
// yields its owner, so Escalate always panics with ErrEscalation; a view
// that was already consumed or released reports ErrUseAfterConsume first.
// The view stays usable.
func Escalate(v View) Tracked {
	v.Lifecycle().ensureLive(v.CallableName(), CapabilityConsume)
	violate(Escalation, v.CallableName(), CapabilityConsume, "a borrow cannot be turned back into its owner")
	return nil
}
