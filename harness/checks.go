package harness

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/closure_ive_go/callable"
	"go.uber.org/multierr"
)

// checks collects failed expectations so one scenario reports all of them.
type checks struct {
	err error
}

func (c *checks) failf(format string, args ...any) {
	c.err = multierr.Append(c.err, fmt.Errorf(format, args...))
}

func expectEqual[T comparable](c *checks, what string, want, got T) {
	if want != got {
		c.failf("%s: want %v, got %v", what, want, got)
	}
}

// expectViolation runs fn and records a failure unless it raises a violation matching target.
func expectViolation(c *checks, what string, target error, fn func()) {
	err := callable.Catch(fn)
	if !errors.Is(err, target) {
		c.failf("%s: want %v, got %v", what, target, err)
	}
}

func (c *checks) Err() error {
	return c.err
}
