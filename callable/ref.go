package callable

// Ref is a handle to state owned outside any callable instance.
//
// An instance holding a *Ref does not own the referenced value: cloning the
// instance shares the Ref, and consuming the instance leaves the value in
// place for its owner. Read entry points may write through a Ref; that is
// state reachable from the instance, not a field of it.
type Ref[T any] struct {
	p *T
}

// NewRef allocates v and returns a handle to it.
func NewRef[T any](v T) *Ref[T] {
	return &Ref[T]{p: &v}
}

// RefTo returns a handle to the variable p points at, so that the owner keeps
// observing every change made through the handle.
func RefTo[T any](p *T) *Ref[T] {
	if p == nil {
		panic("callable: RefTo of nil pointer")
	}
	return &Ref[T]{p: p}
}

// Get returns a copy of the referenced value.
func (r *Ref[T]) Get() T {
	return *r.p
}

// Set replaces the referenced value.
func (r *Ref[T]) Set(v T) {
	*r.p = v
}

// Update applies fn to the referenced value in place.
func (r *Ref[T]) Update(fn func(*T)) {
	fn(r.p)
}

// Same reports whether r and other refer to the same variable.
func (r *Ref[T]) Same(other *Ref[T]) bool {
	return r != nil && other != nil && r.p == other.p
}
