// Package main runs the closurecheck verification scenarios and exits
// non-zero when any of them fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/on-the-ground/closure_ive_go/config"
	"github.com/on-the-ground/closure_ive_go/harness"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		only       string
		list       bool
	)
	flag.StringVar(&configPath, "config", "", "path to a TOML config file (optional)")
	flag.StringVar(&only, "scenario", "", "run one scenario by name (default: all)")
	flag.BoolVar(&list, "list", false, "list available scenarios")
	flag.Parse()

	scenarios := harness.DefaultScenarios()
	if list {
		for _, s := range scenarios {
			fmt.Println(s.Name)
		}
		return
	}
	if only != "" {
		i := slices.IndexFunc(scenarios, func(s harness.Scenario) bool { return s.Name == only })
		if i < 0 {
			fmt.Fprintf(os.Stderr, "closurecheck: unknown scenario %q\n", only)
			os.Exit(2)
		}
		scenarios = scenarios[i : i+1]
	}

	if err := run(configPath, scenarios); err != nil {
		fmt.Fprintf(os.Stderr, "closurecheck: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, scenarios []harness.Scenario) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, end, err := harness.WithSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	report := harness.Run(ctx, cfg.Repeat, scenarios...)
	end()

	if err := report.Err(); err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("%d of %d scenario runs failed", report.Failed(), len(report.Results))
	}
	fmt.Printf("%d scenario runs passed (run %s)\n", len(report.Results), report.RunID)
	return nil
}
