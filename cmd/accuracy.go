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

type accuracyCmd struct {
	config string
	split  float64
}

func (*accuracyCmd) Name() string     { return "accuracy" }
func (*accuracyCmd) Synopsis() string { return "score the signals against next day closes" }
func (*accuracyCmd) Usage() string {
	return `lsb accuracy [-c <config>] [-split <ratio>]

  Prepares the configured strategy on the training slice and scores every
  signal against the next quoted close over the full history, overall and
  per year.
`
}

func (c *accuracyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "YAML configuration file, defaults apply when empty")
	f.Float64Var(&c.split, "split", 0.7, "fraction of the calendar to train on, 1 trains on everything")
}

func (c *accuracyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := longshort.LoadConfig(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitUsageError
	}

	prices, _, err := DecodeQuotes()
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

	acc := longshort.MeasureAccuracy(strat.Signals(train), prices)
	printMarkdown(renderer.AccuracyMarkdown(acc))

	return subcommands.ExitSuccess
}
