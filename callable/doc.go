// Package callable models values that close over state and can be invoked
// in three modes of increasing strength.
//
// # Capabilities
//
// A callable instance supports a fixed subset of three entry points:
//
//   - CallOnce (consume): takes the instance by value. After the call the
//     instance is gone and any further use of it is rejected.
//   - CallMut (mutate): takes the instance exclusively for the duration of
//     the call. Captured state may change and later calls see the change.
//   - Call (read): takes the instance shared. The instance's own fields are
//     never written, although state reachable through a Ref may be.
//
// The interfaces nest the same way the capabilities do: every Fn is a FnMut,
// every FnMut is a FnOnce. A type cannot claim Call without also providing
// CallMut and CallOnce.
//
// # Ownership
//
// Go neither moves values nor checks borrows, so instances embed a Lifecycle
// which carries a {Live, Consumed} tag and the set of borrows currently held.
// The Consuming, Mutating and Reading helpers check that tag on entry and
// panic with a *ViolationError when the call would be rejected by an
// ownership-checking compiler:
//
//   - use after consume (ErrUseAfterConsume),
//   - an exclusive borrow overlapping any other borrow (ErrAliasing),
//   - invoking a stronger capability than the value offers (ErrEscalation).
//
// Violations are programming errors. Catch converts them into an error for
// code that wants to assert on them.
//
// # Shared state
//
// State owned outside an instance is captured as a *Ref. Clones of an
// instance copy their own fields and share every Ref they hold.
//
// Example:
//
//	unit := callable.Unit{}
//	acc := closures.NewAccumulator(666)
//	fresh := acc.Clone()
//	acc.NoArg().CallMut(unit)               // 1332
//	fresh.NoArg().CallOnce(unit)            // 6660
//	acc.Clone().NoArg().CallOnce(unit)      // 13320
//	callable.CallMutN(acc.NoArg(), 2, unit) // [2664 5328]
package callable
