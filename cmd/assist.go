package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the research assistant"
}
func (*assistCmd) Usage() string {
	return `lsb assist [question...]

  Starts an interactive session over the persisted run. The Quant expert
  holds the decoded result, the Researcher grounds answers in web search.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	res, err := DecodeRun()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading result: %v\n", err)
		return subcommands.ExitFailure
	}
	perf := longshort.Measure(res.Returns, res.Config.RiskFree)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	quant := agent.NewQuant(res, perf)
	researcher := agent.NewResearcher()
	a := agent.New(os.Stdout, os.Stdin, quant, researcher)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
