// Package harness runs named verification scenarios against the callable
// shapes and their collaborators, logging each outcome through the log
// effect and folding failures into one error.
package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/closure_ive_go/callable"
	"github.com/on-the-ground/closure_ive_go/effects/log"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/multierr"
)

// ErrOperationFailed wraps every scenario failure.
var ErrOperationFailed = errors.New("operation failed")

// Scenario is a named check. Run returns nil when every expectation held.
// Capability violations and other panics raised by Run count as failures.
type Scenario struct {
	Name string
	Run  func(ctx context.Context) error
}

type Result struct {
	Scenario  string
	Iteration int
	Span      timespan.TimeSpan
	Err       error
}

func (r Result) Passed() bool {
	return r.Err == nil
}

type Report struct {
	RunID   string
	Results []Result
}

// Err combines the errors of every failed result, or returns nil.
func (r Report) Err() error {
	var err error
	for _, res := range r.Results {
		err = multierr.Append(err, res.Err)
	}
	return err
}

func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

// Run executes every scenario repeat times, in order. It needs a log
// effect handler in ctx. A cancelled ctx stops the run before the next
// scenario starts; the skipped runs are reported and logged as failures.
func Run(ctx context.Context, repeat int, scenarios ...Scenario) Report {
	report := Report{RunID: uuid.NewString()}
	logCtx := context.WithoutCancel(ctx)
	log.Effect(logCtx, log.LogInfo, "run started", map[string]any{
		"run":       report.RunID,
		"scenarios": len(scenarios),
		"repeat":    repeat,
	})

	for iteration := range repeat {
		for _, s := range scenarios {
			var res Result
			if err := ctx.Err(); err != nil {
				res = Result{
					Scenario:  s.Name,
					Iteration: iteration,
					Err:       fmt.Errorf("%w: %s: %w", ErrOperationFailed, s.Name, err),
				}
			} else {
				res = runOne(ctx, s, iteration)
			}
			report.Results = append(report.Results, res)
			logResult(logCtx, report.RunID, res)
		}
	}

	log.Effect(logCtx, log.LogInfo, "run finished", map[string]any{
		"run":    report.RunID,
		"total":  len(report.Results),
		"failed": report.Failed(),
	})
	return report
}

func runOne(ctx context.Context, s Scenario, iteration int) Result {
	start := time.Now()
	err := guard(ctx, s)
	res := Result{
		Scenario:  s.Name,
		Iteration: iteration,
		Span:      timespan.BetweenTimes(start, time.Now()),
	}
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", ErrOperationFailed, s.Name, err)
	}
	return res
}

func guard(ctx context.Context, s Scenario) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	if violation := callable.Catch(func() { err = s.Run(ctx) }); violation != nil {
		return violation
	}
	return err
}

func logResult(ctx context.Context, runID string, res Result) {
	fields := map[string]any{
		"run":       runID,
		"scenario":  res.Scenario,
		"iteration": res.Iteration,
		"elapsed":   res.Span.Duration(),
	}
	if res.Passed() {
		log.Effect(ctx, log.LogInfo, "scenario passed", fields)
		return
	}
	fields["error"] = res.Err.Error()
	log.Effect(ctx, log.LogError, "scenario failed", fields)
}
