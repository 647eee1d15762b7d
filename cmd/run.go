package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/renderer"
	"github.com/etnz/longshort/strategy"
	"github.com/google/subcommands"
)

type runCmd struct {
	config string
	split  float64
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a backtest over the quote history" }
func (*runCmd) Usage() string {
	return `lsb run [-c <config>] [-split <ratio>]

  Runs the configured strategy over the quote history. Signals are prepared
  on the training slice of the calendar while the simulation walks the full
  table. The run is persisted to the result file and its summary printed.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "YAML configuration file, defaults apply when empty")
	f.Float64Var(&c.split, "split", 0.7, "fraction of the calendar to train on, 1 trains on everything")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := longshort.LoadConfig(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitUsageError
	}

	prices, sectors, err := DecodeQuotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	strat, err := strategy.New(cfg.Strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting strategy: %v\n", err)
		return subcommands.ExitUsageError
	}

	train, _, err := prices.Split(c.split)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error splitting quotes: %v\n", err)
		return subcommands.ExitUsageError
	}

	bt, err := longshort.NewBacktest(cfg, prices, sectors, strat.Signals(train))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing backtest: %v\n", err)
		return subcommands.ExitFailure
	}
	res := bt.Run()

	if err := EncodeRun(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Run written to %s\n", *resultFile)

	perf := longshort.Measure(res.Returns, cfg.RiskFree)
	printMarkdown(renderer.SummaryMarkdown(res, perf))

	return subcommands.ExitSuccess
}
