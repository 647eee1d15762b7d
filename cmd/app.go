// Package cmd implements the CLI application to run and inspect long/short
// equity backtests.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/longshort"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&runCmd{},
	&signalsCmd{},
	&accuracyCmd{},
	&reportCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var quotesFile = flag.String("quotes", "quotes.csv", "Path to the quote history, CSV or JSONL by extension")
var resultFile = flag.String("result", "result.jsonl", "Path to the run result file (JSONL format)")

// DecodeQuotes reads the app quote file. By extension, .jsonl and .json
// hold one symbol history per line, anything else is row-per-quote CSV.
func DecodeQuotes() (*longshort.PriceTable, longshort.SectorMap, error) {
	f, err := os.Open(*quotesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open quote file %q: %w", *quotesFile, err)
	}
	defer f.Close()

	switch filepath.Ext(*quotesFile) {
	case ".jsonl", ".json":
		return longshort.ImportQuotesJSON(f)
	default:
		return longshort.ImportQuotesCSV(f)
	}
}

// DecodeRun reads the app result file back into a Result.
func DecodeRun() (*longshort.Result, error) {
	f, err := os.Open(*resultFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open result file %q: %w", *resultFile, err)
	}
	defer f.Close()
	return longshort.DecodeResult(f)
}

// EncodeRun persists a run to the app result file.
func EncodeRun(res *longshort.Result) error {
	f, err := os.Create(*resultFile)
	if err != nil {
		return fmt.Errorf("cannot create result file %q: %w", *resultFile, err)
	}
	defer f.Close()
	return longshort.EncodeResult(f, res)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
