package closures

import (
	"slices"
	"strconv"
	"strings"

	"github.com/on-the-ground/closure_ive_go/callable"
)

// Rearranger supports every entry point. It owns a repeat count and an
// original phrase, and refers to an external text buffer it does not own.
//
//	Call()     returns the buffer's whitespace-separated tokens, sorted and
//	           joined by single spaces.
//	CallMut()  appends repeat copies of the phrase to the buffer, each
//	           preceded by a space, and returns the new buffer. A repeat
//	           count below one leaves the buffer as it is.
//	CallOnce() returns the decimal repeat count followed by the buffer.
//
// Call never writes the Rearranger's own fields. Clones share the buffer.
type Rearranger struct {
	life   callable.Lifecycle
	repeat int
	phrase string
	buf    *callable.Ref[string]
}

var _ callable.Fn[callable.Unit, string] = (*Rearranger)(nil)

func NewRearranger(repeat int, buf *callable.Ref[string], phrase string) *Rearranger {
	if buf == nil {
		panic("closures: Rearranger needs a buffer")
	}
	return &Rearranger{repeat: repeat, phrase: phrase, buf: buf}
}

func (r *Rearranger) CallableName() string           { return "Rearranger" }
func (r *Rearranger) Lifecycle() *callable.Lifecycle { return &r.life }

// Buffer returns the shared buffer handle.
func (r *Rearranger) Buffer() *callable.Ref[string] {
	return callable.Reading(&r.life, r.CallableName(), func() *callable.Ref[string] { return r.buf })
}

func (r *Rearranger) Call(callable.Unit) string {
	return callable.Reading(&r.life, r.CallableName(), func() string {
		return SortWords(r.buf.Get())
	})
}

func (r *Rearranger) CallMut(callable.Unit) string {
	return callable.Mutating(&r.life, r.CallableName(), func() string {
		n := max(r.repeat, 0)
		r.buf.Update(func(s *string) {
			var b strings.Builder
			b.Grow(len(*s) + n*(len(r.phrase)+1))
			b.WriteString(*s)
			for range n {
				b.WriteByte(' ')
				b.WriteString(r.phrase)
			}
			*s = b.String()
		})
		return r.buf.Get()
	})
}

// CallOnce consumes r. The buffer keeps its contents; r drops its handle.
func (r *Rearranger) CallOnce(callable.Unit) string {
	return callable.Consuming(&r.life, r.CallableName(), func() string {
		res := strconv.Itoa(r.repeat) + r.buf.Get()
		r.buf = nil
		r.phrase = ""
		return res
	})
}

// Clone copies the repeat count and phrase and shares the buffer.
func (r *Rearranger) Clone() *Rearranger {
	return callable.Reading(&r.life, r.CallableName(), func() *Rearranger {
		return NewRearranger(r.repeat, r.buf, r.phrase)
	})
}

// SortWords splits s on whitespace, sorts the tokens and joins them with single spaces.
func SortWords(s string) string {
	words := strings.Fields(s)
	slices.Sort(words)
	return strings.Join(words, " ")
}

// RepeatPhrase joins n copies of phrase with single spaces.
func RepeatPhrase(phrase string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat(phrase+" ", n), " ")
}
