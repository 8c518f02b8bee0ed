package harness

import (
	"context"
	"fmt"

	"github.com/on-the-ground/closure_ive_go/config"
	"github.com/on-the-ground/closure_ive_go/effects/log"
	"github.com/on-the-ground/closure_ive_go/tabular"
	"go.uber.org/zap"
)

// WithSession registers the handlers scenarios rely on: the log effect on
// logger and the table effect on the store cfg selects. The teardown closes
// them in reverse order and returns ctx.
func WithSession(
	ctx context.Context,
	cfg config.Config,
	logger *zap.Logger,
) (context.Context, func() context.Context, error) {
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	ctx, endLog := log.WithZapEffectHandler(ctx, cfg.BufferSize, logger)
	ctx, endTable := tabular.WithEffectHandler(ctx, cfg.BufferSize, cfg.NumWorkers, store)
	return ctx, func() context.Context {
		endTable()
		return endLog()
	}, nil
}
