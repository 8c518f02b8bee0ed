package harness_test

import (
	"context"
	"errors"
	"testing"

	"github.com/on-the-ground/closure_ive_go/callable"
	"github.com/on-the-ground/closure_ive_go/closures"
	"github.com/on-the-ground/closure_ive_go/config"
	"github.com/on-the-ground/closure_ive_go/effects/log"
	"github.com/on-the-ground/closure_ive_go/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestRun_DefaultScenariosPass(t *testing.T) {
	for _, kind := range []config.StoreKind{config.StoreSQLite, config.StoreMemDB} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := config.Default()
			cfg.Store = kind
			ctx, end, err := harness.WithSession(context.Background(), cfg, zap.NewNop())
			require.NoError(t, err)
			defer end()

			report := harness.Run(ctx, 2, harness.DefaultScenarios()...)
			require.NoError(t, report.Err())
			assert.Len(t, report.Results, 2*len(harness.DefaultScenarios()))
			assert.Zero(t, report.Failed())
			assert.NotEmpty(t, report.RunID)
		})
	}
}

var errExpected = errors.New("expectation failed")

func TestRun_FailuresAreOperationFailed(t *testing.T) {
	ctx, end, logs := log.WithObservedEffectHandler(context.Background(), zapcore.DebugLevel)

	report := harness.Run(ctx, 1,
		harness.Scenario{Name: "ok", Run: func(context.Context) error { return nil }},
		harness.Scenario{Name: "returns error", Run: func(context.Context) error { return errExpected }},
		harness.Scenario{Name: "consumes twice", Run: func(context.Context) error {
			a := closures.NewAdder(1)
			a.CallOnce(1)
			a.CallOnce(1)
			return nil
		}},
		harness.Scenario{Name: "panics", Run: func(context.Context) error {
			closures.NewAccumulator(-1).NoArg().CallMut(callable.Unit{})
			return nil
		}},
	)
	end()

	assert.Equal(t, 3, report.Failed())
	assert.True(t, report.Results[0].Passed())

	errs := multierr.Errors(report.Err())
	require.Len(t, errs, 3)
	for _, err := range errs {
		assert.ErrorIs(t, err, harness.ErrOperationFailed)
	}
	assert.ErrorIs(t, errs[0], errExpected)
	assert.ErrorIs(t, errs[1], callable.ErrUseAfterConsume)
	assert.ErrorIs(t, errs[2], closures.ErrOutOfRange)

	assert.Equal(t, 1, logs.FilterMessage("scenario passed").Len())
	assert.Equal(t, 3, logs.FilterMessage("scenario failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("run finished").Len())
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, end, logs := log.WithObservedEffectHandler(context.Background(), zapcore.DebugLevel)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	ran := false
	report := harness.Run(ctx, 2, harness.Scenario{Name: "never", Run: func(context.Context) error {
		ran = true
		return nil
	}})
	end()

	assert.False(t, ran)
	assert.Equal(t, 2, report.Failed())
	assert.ErrorIs(t, report.Err(), context.Canceled)
	assert.ErrorIs(t, report.Err(), harness.ErrOperationFailed)

	// skipped runs are logged like any other outcome
	assert.Equal(t, 2, logs.FilterMessage("scenario failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("run finished").Len())
}

func TestRun_ArticlesNeedsTableHandler(t *testing.T) {
	ctx, end := log.WithTestEffectHandler(context.Background())
	defer end()

	report := harness.Run(ctx, 1, harness.ArticlesScenario())
	assert.ErrorIs(t, report.Err(), harness.ErrOperationFailed)
}

func TestWithSession_BadStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store = "postgres"
	_, _, err := harness.WithSession(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
