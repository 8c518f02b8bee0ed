package closures_test

import (
	"testing"

	"github.com/on-the-ground/closure_ive_go/callable"
	"github.com/on-the-ground/closure_ive_go/closures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unit = callable.Unit{}

func TestAccumulator_OuterAcrossIterations(t *testing.T) {
	store := 0
	outer := closures.NewAccumulator(store)

	for i := range 10 {
		assert.Equal(t, store+i, outer.WithArg().CallMut(i))
		assert.Equal(t, store+i*2, outer.Clone().WithArg().CallOnce(i))
		assert.Equal(t, uint32((store+i)*2), outer.NoArg().CallMut(unit))
		store = outer.Clone().WithArg().CallOnce(0)
	}
	assert.Equal(t, store, outer.Value())
}

func TestAccumulator_InnerSequence(t *testing.T) {
	for i := range 10 {
		acc := closures.NewAccumulator(i)
		withArg := acc.WithArg()

		assert.Equal(t, i+i, withArg.CallMut(i))
		assert.Equal(t, i*3, acc.Clone().AddOnce(i))
		assert.Equal(t, i*3, withArg.CallMut(i))
		assert.Equal(t, i*4, acc.Clone().AddMut(i))
		assert.Equal(t, i*4, withArg.CallMut(i))

		want := acc.Value() + i
		assert.Equal(t, want, withArg.CallMut(i))
		got := withArg.CallMut(i)
		assert.Equal(t, got, acc.Value())
		assert.Equal(t, i*6, got)

		assert.Equal(t, uint32(i*6*2), acc.NoArg().CallMut(unit))
		assert.Equal(t, uint32(acc.Value()*2), acc.Clone().NoArg().CallMut(unit))
		assert.Equal(t, uint32(acc.Value()*2), acc.Clone().DoubleMut())
		assert.Equal(t, uint32(i*6*2*10), acc.Clone().NoArg().CallOnce(unit))

		acc2 := acc.Clone()
		acc2.SetValue(666)
		assert.Equal(t, uint32(1332), acc2.NoArg().CallMut(unit))
		assert.Equal(t, uint32(13320), acc2.NoArg().CallOnce(unit))

		wontMut := closures.NewAccumulator(withArg.CallMut(i))
		assert.Equal(t, i*(6*2+1), wontMut.Value())
		assert.Equal(t, i*(6*2+1+1), wontMut.Clone().AddOnce(i))
		assert.Equal(t, i*(6*2+1), wontMut.Value())
	}
}

func TestAccumulator_666(t *testing.T) {
	acc := closures.NewAccumulator(666)
	fresh := acc.Clone()

	assert.Equal(t, uint32(1332), acc.NoArg().CallMut(unit))
	assert.Equal(t, uint32(6660), fresh.NoArg().CallOnce(unit))

	require.ErrorIs(t, callable.Catch(func() { fresh.NoArg().CallMut(unit) }), callable.ErrUseAfterConsume)
	assert.Equal(t, 1332, acc.Value())
}

func TestAccumulator_DoubleNTimes(t *testing.T) {
	for _, v := range []int{1, 5, 666} {
		for n := 0; n <= 12; n++ {
			acc := closures.NewAccumulator(v)
			results := callable.CallMutN(acc.NoArg(), n, unit)
			for k, r := range results {
				assert.Equal(t, uint32(v<<(k+1)), r)
			}
			assert.Equal(t, v<<n, acc.Value())
		}
	}
}

func TestAccumulator_ConsumeDoesNotAccumulate(t *testing.T) {
	acc := closures.NewAccumulator(10)
	clone := acc.Clone()

	// mutate then discard yields the same final value as consume for arg mode
	mutated := acc.WithArg().CallMut(5)
	consumed := clone.WithArg().CallOnce(5)
	assert.Equal(t, mutated, consumed)

	// no-arg mode uses a different one-shot formula
	a, b := closures.NewAccumulator(10), closures.NewAccumulator(10)
	assert.Equal(t, uint32(20), a.NoArg().CallMut(unit))
	assert.Equal(t, uint32(100), b.NoArg().CallOnce(unit))
}

func TestAccumulator_CloneIndependence(t *testing.T) {
	acc := closures.NewAccumulator(3)
	clone := acc.Clone()

	acc.WithArg().CallMut(4)
	acc.NoArg().CallMut(unit)

	assert.Equal(t, 14, acc.Value())
	assert.Equal(t, 3, clone.Value())
}

func TestAccumulator_ReplayMatchesUntouchedClone(t *testing.T) {
	acc := closures.NewAccumulator(666)
	clone := acc.Clone()
	withArg := []callable.Step[int]{callable.MutStep(1), callable.MutStep(2), callable.OnceStep(3)}

	got := callable.Replay[int, int](acc.WithArg(), withArg...)
	assert.Equal(t, []int{667, 669, 672}, got)
	assert.Equal(t, 666, clone.Value())
	assert.Equal(t, got, callable.Replay[int, int](clone.WithArg(), withArg...))

	acc = closures.NewAccumulator(666)
	clone = acc.Clone()
	noArg := []callable.Step[callable.Unit]{callable.MutStep(unit), callable.MutStep(unit), callable.OnceStep(unit)}

	gotNoArg := callable.Replay[callable.Unit, uint32](acc.NoArg(), noArg...)
	assert.Equal(t, []uint32{1332, 2664, 26640}, gotNoArg)
	assert.Equal(t, gotNoArg, callable.Replay[callable.Unit, uint32](clone.NoArg(), noArg...))
}

func TestAccumulator_ViewsShareOneInstance(t *testing.T) {
	acc := closures.NewAccumulator(1)
	withArg, noArg := acc.WithArg(), acc.NoArg()

	assert.Equal(t, 3, withArg.CallMut(2))
	assert.Equal(t, uint32(6), noArg.CallMut(unit))
	assert.Equal(t, 7, withArg.CallOnce(1))

	require.ErrorIs(t, callable.Catch(func() { noArg.CallOnce(unit) }), callable.ErrUseAfterConsume)
	assert.Equal(t, callable.SetOf(callable.CapabilityConsume, callable.CapabilityMutate), callable.CapabilitiesOf[int, int](withArg))
}

func TestAccumulator_NegativeNoArgResultPanics(t *testing.T) {
	acc := closures.NewAccumulator(-1)
	assert.PanicsWithError(t, "value out of uint32 range: -2", func() {
		acc.NoArg().CallMut(unit)
	})
	// the borrow was released despite the panic
	assert.Equal(t, -2, acc.Value())
}

func TestAccumulator_BorrowedExclusively(t *testing.T) {
	acc := closures.NewAccumulator(0)
	view := callable.ByMut(acc.WithArg())

	require.ErrorIs(t, callable.Catch(func() { acc.Value() }), callable.ErrAliasing)
	assert.Equal(t, 2, view.CallMut(2))
	view.Release()
	assert.Equal(t, 2, acc.Value())
}
