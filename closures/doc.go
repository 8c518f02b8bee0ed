// Package closures holds representative callables, one per capability tier:
// Adder (consume only), Accumulator (mutate and consume) and Rearranger
// (read, mutate and consume). For stateless function literals see
// callable.Func.
package closures
