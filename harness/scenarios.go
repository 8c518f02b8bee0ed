package harness

import (
	"context"
	"fmt"

	"github.com/on-the-ground/closure_ive_go/callable"
	"github.com/on-the-ground/closure_ive_go/closures"
	"github.com/on-the-ground/closure_ive_go/tabular"
	"github.com/on-the-ground/closure_ive_go/textlit"
	"github.com/rickb777/date/v2"
)

const rearrangePhrase = "closure opens up further possibilities to a program"

var unit = callable.Unit{}

var (
	mokuBytes = []byte{
		227, 130, 130, 227, 129, 143, 227, 130, 130, 227, 129, 143, 227, 129, 151, 227, 129,
		190, 227, 129, 153,
	}
	favLangBytes = []byte{
		82, 117, 115, 116, 227, 129, 168, 108, 117, 97, 227, 129, 140, 229, 165, 189, 227,
		129, 141, 227, 129, 167, 227, 130, 136, 227, 129, 143, 232, 167, 166, 227, 129,
		163, 227, 129, 166, 227, 129, 132, 227, 129, 190, 227, 129, 153, 32, 229, 184, 131,
		230, 149, 153, 227, 129, 151, 227, 129, 159, 227, 129, 132,
	}
)

// ClosureScenarios exercise the three callable shapes.
func ClosureScenarios() []Scenario {
	return []Scenario{
		{Name: "adder", Run: adderScenario},
		{Name: "accumulator", Run: accumulatorScenario},
		{Name: "rearranger", Run: rearrangerScenario},
		{Name: "capability-lattice", Run: latticeScenario},
	}
}

// LiteralScenario decodes the byte fixtures into their text.
func LiteralScenario() Scenario {
	return Scenario{Name: "literals", Run: literalScenario}
}

// ArticlesScenario inserts today's article through the table effect in ctx.
func ArticlesScenario() Scenario {
	return Scenario{Name: "articles", Run: articlesScenario}
}

func DefaultScenarios() []Scenario {
	return append(ClosureScenarios(), LiteralScenario(), ArticlesScenario())
}

func adderScenario(context.Context) error {
	var c checks
	const x = 666

	for i := range 10 {
		cls := callable.FuncOf(func(arg int) int { return i + arg })
		expectEqual(&c, "func literal", i+x, cls.Call(x))
	}

	outer := closures.NewAdder(x)
	for i := range 10 {
		expectEqual(&c, "outer offset", x, outer.Offset())
		expectEqual(&c, "outer clone", x+i, outer.Clone().CallOnce(i))

		inner := closures.NewAdder(i)
		expectEqual(&c, "inner offset", i, inner.Offset())
		expectEqual(&c, "inner clone", x+i, inner.Clone().CallOnce(x))
		expectEqual(&c, "inner offset after clone", i, inner.Offset())
		expectEqual(&c, "inner consume", x+i, inner.CallOnce(x))
		expectViolation(&c, "inner consumed twice", callable.ErrUseAfterConsume, func() { inner.CallOnce(x) })
	}
	expectViolation(&c, "adder has no mutate entry", callable.ErrEscalation, func() {
		callable.AsMut[int, int](closures.NewAdder(x))
	})
	return c.Err()
}

func accumulatorScenario(context.Context) error {
	var c checks

	store := 0
	outer := closures.NewAccumulator(store)
	for i := range 10 {
		expectEqual(&c, "outer mutate", store+i, outer.WithArg().CallMut(i))
		expectEqual(&c, "outer clone consume", store+i*2, outer.Clone().WithArg().CallOnce(i))
		expectEqual(&c, "outer double", uint32((store+i)*2), outer.NoArg().CallMut(unit))
		store = outer.Clone().WithArg().CallOnce(0)
	}

	for i := range 10 {
		acc := closures.NewAccumulator(i)
		withArg := acc.WithArg()
		expectEqual(&c, "inner mutate", i+i, withArg.CallMut(i))
		expectEqual(&c, "inner clone consume", i*3, acc.Clone().AddOnce(i))
		expectEqual(&c, "inner mutate again", i*3, withArg.CallMut(i))
		expectEqual(&c, "inner double", uint32(i*3*2), acc.NoArg().CallMut(unit))
		expectEqual(&c, "inner times ten", uint32(i*6*10), acc.Clone().NoArg().CallOnce(unit))
	}

	acc := closures.NewAccumulator(666)
	fresh := acc.Clone()
	expectEqual(&c, "666 double", uint32(1332), acc.NoArg().CallMut(unit))
	expectEqual(&c, "666 times ten", uint32(6660), fresh.NoArg().CallOnce(unit))
	expectViolation(&c, "666 consumed twice", callable.ErrUseAfterConsume, func() { fresh.NoArg().CallOnce(unit) })

	for n := range 8 {
		doubled := closures.NewAccumulator(3)
		callable.CallMutN(doubled.NoArg(), n, unit)
		want := 3 << n
		expectEqual(&c, fmt.Sprintf("3 doubled %d times", n), want, doubled.Value())
	}
	return c.Err()
}

func rearrangerScenario(context.Context) error {
	var c checks

	for i := range 10 {
		buf := rearrangePhrase
		r := closures.NewRearranger(i, callable.RefTo(&buf), rearrangePhrase)
		expectEqual(&c, "read", "a closure further opens possibilities program to up", r.Call(unit))
		expectEqual(&c, "mutate", closures.RepeatPhrase(rearrangePhrase, i+1), r.CallMut(unit))
		expectEqual(&c, "consume", fmt.Sprintf("%d%s", i, closures.RepeatPhrase(rearrangePhrase, i+1)), r.CallOnce(unit))
	}

	s := rearrangePhrase
	outer := closures.NewRearranger(2, callable.RefTo(&s), rearrangePhrase)
	mutated := outer.CallMut(unit)
	tripled := closures.RepeatPhrase(rearrangePhrase, 3)
	expectEqual(&c, "outer mutate", tripled, mutated)
	expectEqual(&c, "outer consume", "2"+tripled, outer.CallOnce(unit))
	expectEqual(&c, "buffer after consume", tripled, s)
	return c.Err()
}

func latticeScenario(context.Context) error {
	var c checks

	consume := callable.SetOf(callable.CapabilityConsume)
	mutate := callable.SetOf(callable.CapabilityConsume, callable.CapabilityMutate)
	read := callable.SetOf(callable.CapabilityConsume, callable.CapabilityMutate, callable.CapabilityRead)

	expectEqual(&c, "adder capabilities", consume, callable.CapabilitiesOf[int, int](closures.NewAdder(1)))
	expectEqual(&c, "accumulator capabilities", mutate, callable.CapabilitiesOf[int, int](closures.NewAccumulator(1).WithArg()))
	expectEqual(&c, "rearranger capabilities", read,
		callable.CapabilitiesOf[callable.Unit, string](closures.NewRearranger(1, callable.NewRef(""), "")))

	// a read-capable instance is usable wherever mutate or consume is expected
	r := closures.NewRearranger(1, callable.NewRef("b a"), "c")
	var asMut callable.FnMut[callable.Unit, string] = r
	var asOnce callable.FnOnce[callable.Unit, string] = asMut
	expectEqual(&c, "read through Fn", "a b", r.Call(unit))
	expectEqual(&c, "mutate through FnMut", "b a c", asMut.CallMut(unit))
	expectEqual(&c, "consume through FnOnce", "1b a c", asOnce.CallOnce(unit))

	acc := closures.NewAccumulator(1)
	exclusive := callable.ByMut(acc.WithArg())
	expectViolation(&c, "mutate during exclusive borrow", callable.ErrAliasing, func() {
		acc.WithArg().CallMut(1)
	})
	exclusive.Release()
	expectEqual(&c, "mutate after release", 2, acc.WithArg().CallMut(1))
	return c.Err()
}

func literalScenario(context.Context) error {
	var c checks

	moku, err := textlit.Decode(mokuBytes)
	if err != nil {
		return err
	}
	expectEqual(&c, "checked literal", "もくもくします", moku)
	expectEqual(&c, "unchecked literal", "Rustとluaが好きでよく触っています 布教したい", textlit.DecodeUnchecked(favLangBytes))
	expectEqual(&c, "normalized literal", moku, textlit.Normalize(moku))

	if _, err := textlit.Decode(mokuBytes[:len(mokuBytes)-1]); err == nil {
		c.failf("truncated literal: want error, got none")
	}
	return c.Err()
}

func articlesScenario(ctx context.Context) error {
	if err := tabular.EffectCreateTable(ctx, tabular.ArticlesTable); err != nil {
		return err
	}
	n, err := tabular.EffectInsert(ctx, tabular.ArticlesTable.Name, tabular.ArticleRow(date.Today()))
	if err != nil {
		return err
	}
	var c checks
	expectEqual(&c, "rows affected", int64(1), n)
	return c.Err()
}
