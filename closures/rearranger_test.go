package closures_test

import (
	"fmt"
	"testing"

	"github.com/on-the-ground/closure_ive_go/callable"
	"github.com/on-the-ground/closure_ive_go/closures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phrase = "closure opens up further possibilities to a program"

func TestRearranger_Iterations(t *testing.T) {
	for i := range 10 {
		buf := phrase
		r := closures.NewRearranger(i, callable.RefTo(&buf), phrase)

		assert.Equal(t, "a closure further opens possibilities program to up", r.Call(unit))
		assert.Equal(t, closures.RepeatPhrase(phrase, i+1), r.CallMut(unit))
		assert.Equal(t, fmt.Sprintf("%d%s", i, closures.RepeatPhrase(phrase, i+1)), r.CallOnce(unit))
	}
}

func TestRearranger_OuterBufferOutlivesInstance(t *testing.T) {
	s := phrase
	r := closures.NewRearranger(2, callable.RefTo(&s), phrase)

	mutated := r.CallMut(unit)
	want := phrase + " " + phrase + " " + phrase
	assert.Equal(t, want, mutated)
	assert.Equal(t, closures.RepeatPhrase(phrase, 3), mutated)
	assert.Equal(t, "2"+want, r.CallOnce(unit))

	// consumed: no further use, but the buffer's owner sees every change
	require.ErrorIs(t, callable.Catch(func() { r.Call(unit) }), callable.ErrUseAfterConsume)
	assert.Equal(t, want, s)
}

func TestRearranger_ReadLeavesFieldsAlone(t *testing.T) {
	buf := callable.NewRef("b a c")
	r := closures.NewRearranger(1, buf, "z")

	for range 3 {
		assert.Equal(t, "a b c", r.Call(unit))
	}
	assert.Equal(t, "b a c", buf.Get())
	assert.Equal(t, "b a c z", r.CallMut(unit))
	assert.Equal(t, "a b c z", r.Call(unit))
}

func TestRearranger_ClonesShareBuffer(t *testing.T) {
	buf := callable.NewRef("x")
	r := closures.NewRearranger(1, buf, "y")
	clone := r.Clone()

	assert.True(t, r.Buffer().Same(clone.Buffer()))
	assert.Equal(t, "x y", r.CallMut(unit))
	assert.Equal(t, "x y y", clone.CallMut(unit))
	assert.Equal(t, "x y y", clone.Call(unit))

	assert.Equal(t, "1x y y", clone.CallOnce(unit))
	assert.Equal(t, "x y y y", r.CallMut(unit))
}

func TestRearranger_FreshInstancesAgree(t *testing.T) {
	run := func() []string {
		buf := phrase
		r := closures.NewRearranger(2, callable.RefTo(&buf), phrase)
		return callable.Replay[callable.Unit, string](r,
			callable.ReadStep(unit),
			callable.MutStep(unit),
			callable.OnceStep(unit),
		)
	}
	first, second := run(), run()
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestRearranger_NegativeRepeatLeavesBuffer(t *testing.T) {
	buf := callable.NewRef("x")
	r := closures.NewRearranger(-100, buf, phrase)

	assert.Equal(t, "x", r.CallMut(unit))
	assert.Equal(t, "x", buf.Get())
	assert.Equal(t, "-100x", r.CallOnce(unit))
}

func TestRearranger_Borrows(t *testing.T) {
	r := closures.NewRearranger(1, callable.NewRef("b a"), "c")
	assert.Equal(t, callable.SetOf(callable.CapabilityConsume, callable.CapabilityMutate, callable.CapabilityRead),
		callable.CapabilitiesOf[callable.Unit, string](r))

	shared := callable.ByRef[callable.Unit, string](r)
	assert.Equal(t, "a b", shared.Call(unit))
	assert.Equal(t, "a b", r.Call(unit))
	require.ErrorIs(t, callable.Catch(func() { r.CallMut(unit) }), callable.ErrAliasing)

	// consuming the shared view reads; it never moves r
	assert.Equal(t, "a b", shared.CallOnce(unit))
	assert.Equal(t, "b a c", r.CallMut(unit))
}

func TestSortWords(t *testing.T) {
	assert.Equal(t, "", closures.SortWords("   "))
	assert.Equal(t, "a b", closures.SortWords("\tb\n a "))
	assert.Equal(t, "", closures.RepeatPhrase("x", 0))
	assert.Equal(t, "x x", closures.RepeatPhrase("x", 2))
}
