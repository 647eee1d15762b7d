package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/longshort/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion. It exits the process when the shell
// invokes it for suggestions.
func completion() {
	yaml := predict.Files("*.yaml")
	lsb := &complete.Command{
		Sub: map[string]*complete.Command{
			"run":      {Flags: map[string]complete.Predictor{"c": yaml, "split": predict.Nothing}},
			"signals":  {Flags: map[string]complete.Predictor{"c": yaml, "split": predict.Nothing, "last": predict.Nothing}},
			"accuracy": {Flags: map[string]complete.Predictor{"c": yaml, "split": predict.Nothing}},
			"report": {Flags: map[string]complete.Predictor{
				"market": predict.Files("*.csv"),
				"charts": predict.Dirs("*"),
				"tail":   predict.Nothing,
				"o":      predict.Files("*.md"),
			}},
			"topic":  {Args: predict.Set{"readme", "config", "backtest", "strategies", "reports", "formats", "*"}},
			"assist": {},
		},
		Flags: map[string]complete.Predictor{
			"quotes": predict.Files("*"),
			"result": predict.Files("*.jsonl"),
		},
	}
	lsb.Complete("lsb")
}
