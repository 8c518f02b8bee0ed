// Package effects delegates side effects to handlers scoped by context.
//
// A handler is registered with one of the WithXxxEffectHandler functions,
// which returns a derived context carrying the handler and a teardown
// function. Code below that context performs effects through
// PerformResumableEffect, AwaitResumableEffect or FireAndForgetEffect
// without knowing which implementation sits behind them.
//
// Teardown stops the handler's workers after they drain what is already
// queued, runs the handler's own cleanup, and returns the parent context.
// Effects performed after teardown are rejected with ErrHandlerClosed.
//
// Built-in handlers live in subpackages: log for structured logging via zap.
// The tabular package registers its store handler the same way.
//
// Example:
//
//	ctx, end := log.WithZapEffectHandler(ctx, 16, logger)
//	defer end()
//
//	log.Effect(ctx, log.LogInfo, "scenario passed", map[string]any{"name": "closures"})
package effects
