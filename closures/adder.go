package closures

import "github.com/on-the-ground/closure_ive_go/callable"

// Adder captures an offset and can only be consumed: CallOnce(a) = offset + a.
// Clone before calling to keep a usable copy.
type Adder struct {
	life   callable.Lifecycle
	offset int
}

var _ callable.FnOnce[int, int] = (*Adder)(nil)

func NewAdder(offset int) *Adder {
	return &Adder{offset: offset}
}

func (a *Adder) CallableName() string           { return "Adder" }
func (a *Adder) Lifecycle() *callable.Lifecycle { return &a.life }

// Offset returns the captured offset.
func (a *Adder) Offset() int {
	return callable.Reading(&a.life, a.CallableName(), func() int { return a.offset })
}

func (a *Adder) CallOnce(arg int) int {
	return callable.Consuming(&a.life, a.CallableName(), func() int {
		return a.offset + arg
	})
}

func (a *Adder) Clone() *Adder {
	return callable.Reading(&a.life, a.CallableName(), func() *Adder {
		return NewAdder(a.offset)
	})
}
