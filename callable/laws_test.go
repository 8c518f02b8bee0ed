package callable_test

import (
	"testing"

	"github.com/on-the-ground/closure_ive_go/callable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doubler(v int) *callable.FuncMut[int, callable.Unit, int] {
	return callable.FuncMutOf(v, func(s *int, _ callable.Unit) int {
		*s *= 2
		return *s
	})
}

func TestCallMutN_DoubleComposesToPowersOfTwo(t *testing.T) {
	for _, v := range []int{1, 3, 666} {
		for n := 0; n <= 10; n++ {
			f := doubler(v)
			results := callable.CallMutN[callable.Unit, int](f, n, callable.Unit{})
			require.Len(t, results, n)
			if n > 0 {
				assert.Equal(t, v<<n, results[n-1])
			}
			assert.Equal(t, v<<n, f.State())
		}
	}

	// double twice is quadruple
	a, b := doubler(7), doubler(7)
	callable.CallMutN[callable.Unit, int](a, 2, callable.Unit{})
	assert.Equal(t, 28, a.State())
	assert.Equal(t, 7*4, callable.CallMutN[callable.Unit, int](b, 2, callable.Unit{})[1])
}

func TestCallMutN_NegativeCountPanics(t *testing.T) {
	assert.Panics(t, func() {
		callable.CallMutN[callable.Unit, int](doubler(1), -1, callable.Unit{})
	})
}

func TestReplay_DeterministicAgainstClone(t *testing.T) {
	offset := 10
	f := callable.FuncOf(func(i int) int { return i + offset })
	clone := f.Clone()

	steps := []callable.Step[int]{
		callable.ReadStep(1),
		callable.MutStep(2),
		callable.OnceStep(3),
	}
	got := callable.Replay[int, int](f, steps...)
	want := callable.Replay[int, int](clone, steps...)

	assert.Equal(t, []int{11, 12, 13}, got)
	assert.Equal(t, want, got)
}

func TestReplay_StatefulCloneStartsFromSameState(t *testing.T) {
	f := callable.FuncMutOf(5, func(s *int, i int) int { *s += i; return *s })
	clone := f.Clone()

	steps := []callable.Step[int]{
		callable.MutStep(2),
		callable.MutStep(3),
		callable.OnceStep(4),
	}
	got := callable.Replay[int, int](f, steps...)
	assert.Equal(t, []int{7, 10, 14}, got)
	assert.Equal(t, 5, clone.State())
	assert.Equal(t, got, callable.Replay[int, int](clone, steps...))
}

func TestReplay_RejectsMissingCapabilityAndUseAfterConsume(t *testing.T) {
	once := callable.FuncOnceOf(func(i int) int { return i })
	require.ErrorIs(t, callable.Catch(func() {
		callable.Replay[int, int](once, callable.MutStep(1))
	}), callable.ErrEscalation)

	mut := callable.FuncMutOf(0, func(s *int, i int) int { *s += i; return *s })
	require.ErrorIs(t, callable.Catch(func() {
		callable.Replay[int, int](mut, callable.OnceStep(1), callable.MutStep(1))
	}), callable.ErrUseAfterConsume)
}
