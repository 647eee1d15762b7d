package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/date"
	"github.com/etnz/longshort/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	market string
	charts string
	tail   int
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render the full report of a persisted run" }
func (*reportCmd) Usage() string {
	return `lsb report [-market <file>] [-charts <dir>] [-tail <n>] [-o <file>]

  Reads the result file back and renders the summary, sector allocations
  and trade blotter. With -market, the run returns regress against the
  market series. With -charts, the return and drawdown curves are written
  as PNG files.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.market, "market", "", "market return series (CSV) to regress against")
	f.StringVar(&c.charts, "charts", "", "directory for returns.png and drawdown.png")
	f.IntVar(&c.tail, "tail", 20, "trailing trades to list, 0 for all")
	f.StringVar(&c.output, "o", "", "write the raw markdown to this file instead of the terminal")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := DecodeRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading result: %v\n", err)
		return subcommands.ExitFailure
	}
	perf := longshort.Measure(res.Returns, res.Config.RiskFree)

	sections := []string{
		renderer.SummaryMarkdown(res, perf),
		renderer.AllocationsMarkdown(res.Allocations),
	}

	if c.market != "" {
		market, err := readMarket(c.market)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading market series: %v\n", err)
			return subcommands.ExitFailure
		}
		model, err := longshort.Regress(res.Returns, market)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error regressing returns: %v\n", err)
			return subcommands.ExitFailure
		}
		sections = append(sections, renderer.FactorMarkdown(model, perf))
	}

	sections = append(sections, renderer.ExecutionsMarkdown(res.Executions, c.tail))

	report := strings.Join(sections, "\n")
	if c.output != "" {
		if err := os.WriteFile(c.output, []byte(report), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", c.output)
	} else {
		printMarkdown(report)
	}

	if c.charts != "" {
		if err := writeCharts(c.charts, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing charts: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

func readMarket(path string) (*date.History[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open market file %q: %w", path, err)
	}
	defer f.Close()
	return longshort.ImportMarketCSV(f)
}

func writeCharts(dir string, res *longshort.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for name, render := range map[string]func(*date.History[float64]) ([]byte, error){
		"returns.png":  renderer.ReturnChart,
		"drawdown.png": renderer.DrawdownChart,
	} {
		img, err := render(res.Returns)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, img, 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", target)
	}
	return nil
}
