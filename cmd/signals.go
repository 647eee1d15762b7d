package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/renderer"
	"github.com/etnz/longshort/strategy"
	"github.com/google/subcommands"
)

type signalsCmd struct {
	config string
	split  float64
	last   int
}

func (*signalsCmd) Name() string     { return "signals" }
func (*signalsCmd) Synopsis() string { return "display the strategy's signals" }
func (*signalsCmd) Usage() string {
	return `lsb signals [-c <config>] [-split <ratio>] [-last <n>]

  Prepares the configured strategy on the training slice of the quote
  history and displays the dated long and short lists it emits.
`
}

func (c *signalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "c", "", "YAML configuration file, defaults apply when empty")
	f.Float64Var(&c.split, "split", 0.7, "fraction of the calendar to train on, 1 trains on everything")
	f.IntVar(&c.last, "last", 10, "only the last n signal days, 0 for all")
}

func (c *signalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	signals := strat.Signals(train)

	var b strings.Builder
	fmt.Fprintf(&b, "# Signals, %s\n\n", renderer.StrategyLabel(cfg.Strategy))
	if signals.Len() == 0 {
		fmt.Fprintln(&b, "No signals.")
	} else {
		days := slices.Collect(signals.Days())
		if c.last > 0 && len(days) > c.last {
			fmt.Fprintf(&b, "%d earlier signal days elided.\n\n", len(days)-c.last)
			days = days[len(days)-c.last:]
		}
		fmt.Fprintln(&b, "| Date | Longs | Shorts |")
		fmt.Fprintln(&b, "|:---|:---|:---|")
		for _, on := range days {
			longs, shorts := signals.SignalsOn(on)
			fmt.Fprintf(&b, "| %s | %s | %s |\n", on, strings.Join(longs, " "), strings.Join(shorts, " "))
		}
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
