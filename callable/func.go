package callable

// Func adapts a function literal. A literal's captured variables are not
// fields of the adapter, so it supports every entry point; CallOnce still
// consumes the adapter.
type Func[A, R any] struct {
	life Lifecycle
	fn   func(A) R
}

var _ Fn[int, int] = (*Func[int, int])(nil)

// FuncOf wraps fn.
func FuncOf[A, R any](fn func(A) R) *Func[A, R] {
	return &Func[A, R]{fn: fn}
}

func (f *Func[A, R]) CallableName() string  { return "Func" }
func (f *Func[A, R]) Lifecycle() *Lifecycle { return &f.life }

func (f *Func[A, R]) Call(arg A) R {
	return Reading(&f.life, f.CallableName(), func() R { return f.fn(arg) })
}

func (f *Func[A, R]) CallMut(arg A) R {
	return Mutating(&f.life, f.CallableName(), func() R { return f.fn(arg) })
}

func (f *Func[A, R]) CallOnce(arg A) R {
	return Consuming(&f.life, f.CallableName(), func() R { return f.fn(arg) })
}

// Clone returns an independent adapter over the same function.
func (f *Func[A, R]) Clone() *Func[A, R] {
	return Reading(&f.life, f.CallableName(), func() *Func[A, R] { return FuncOf(f.fn) })
}

// FuncMut owns its captured state S and hands fn a pointer to it on every call.
type FuncMut[S, A, R any] struct {
	life  Lifecycle
	state S
	fn    func(*S, A) R
}

var _ FnMut[int, int] = (*FuncMut[int, int, int])(nil)

// FuncMutOf captures state by value.
func FuncMutOf[S, A, R any](state S, fn func(*S, A) R) *FuncMut[S, A, R] {
	return &FuncMut[S, A, R]{state: state, fn: fn}
}

func (f *FuncMut[S, A, R]) CallableName() string  { return "FuncMut" }
func (f *FuncMut[S, A, R]) Lifecycle() *Lifecycle { return &f.life }

func (f *FuncMut[S, A, R]) CallMut(arg A) R {
	return Mutating(&f.life, f.CallableName(), func() R { return f.fn(&f.state, arg) })
}

func (f *FuncMut[S, A, R]) CallOnce(arg A) R {
	return Consuming(&f.life, f.CallableName(), func() R { return f.fn(&f.state, arg) })
}

// State returns a copy of the captured state.
func (f *FuncMut[S, A, R]) State() S {
	return Reading(&f.life, f.CallableName(), func() S { return f.state })
}

// Clone copies the captured state. S is copied shallowly.
func (f *FuncMut[S, A, R]) Clone() *FuncMut[S, A, R] {
	return Reading(&f.life, f.CallableName(), func() *FuncMut[S, A, R] {
		return FuncMutOf(f.state, f.fn)
	})
}

// FuncOnce wraps a function that may only run once.
type FuncOnce[A, R any] struct {
	life Lifecycle
	fn   func(A) R
}

var _ FnOnce[int, int] = (*FuncOnce[int, int])(nil)

// FuncOnceOf wraps fn.
func FuncOnceOf[A, R any](fn func(A) R) *FuncOnce[A, R] {
	return &FuncOnce[A, R]{fn: fn}
}

func (f *FuncOnce[A, R]) CallableName() string  { return "FuncOnce" }
func (f *FuncOnce[A, R]) Lifecycle() *Lifecycle { return &f.life }

func (f *FuncOnce[A, R]) CallOnce(arg A) R {
	return Consuming(&f.life, f.CallableName(), func() R {
		fn := f.fn
		f.fn = nil
		return fn(arg)
	})
}
