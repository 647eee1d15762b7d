package agent

import (
	"context"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator leads the session and delegates to the experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You facilitate a conversation about a long/short equity backtest.

			Learn each expert's skill from the Tools and put questions to them,
			they are at your service and keep the context of your previous
			questions.

			The user ran the backtest and wants to understand its behavior and
			results. Ask the Quant for any figure from the run before answering,
			and the Researcher for anything about markets in general.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the expert grounding answers in web search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `An expert on markets, companies and trading practice.
		Ask the Researcher whenever recent or grounding information is needed.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert on markets, companies and funds. Leverage Google
			Search to ground your assertions and relate the latest news to the
			user's questions.
		`}}},
		},
	}
}

// NewQuant returns the expert holding the decoded run, with function tools
// over its result.
func NewQuant(res *longshort.Result, perf longshort.Performance) *Expert {
	lib := []Function{
		summaryFunc(res, perf),
		allocationsFunc(res),
		executionsFunc(res),
	}
	return &Expert{
		Name: "Quant",
		Description: `The Quant ran the backtest and holds its full result,
		configuration, performance measures, sector allocations and the trade
		blotter. Ask the Quant for any figure about the run.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the quant who ran a long/short equity backtest. Use the
			available tools to read the run's summary, sector allocations and
			trade blotter, and answer with exact figures from them.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements Function over a declaration and a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func output(id, name, text string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": text,
		},
	}
}

func summaryFunc(res *longshort.Result, perf longshort.Performance) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Summary",
			Description: "The run configuration, final value and performance measures.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the run.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			return output(id, "Summary", renderer.SummaryMarkdown(res, perf))
		},
	}
}

func allocationsFunc(res *longshort.Result) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Allocations",
			Description: "The sector allocation snapshot of every rebalanced month.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table per month.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			return output(id, "Allocations", renderer.AllocationsMarkdown(res.Allocations))
		},
	}
}

func executionsFunc(res *longshort.Result) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Executions",
			Description: "The trade blotter of the run, every filled and rejected trade.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"tail": {
						Type:        genai.TypeNumber,
						Description: "Keep only that many trailing trades. 0 keeps everything.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of trades.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			tail := 0
			if v, ok := args["tail"].(float64); ok {
				tail = int(v)
			}
			return output(id, "Executions", renderer.ExecutionsMarkdown(res.Executions, tail))
		},
	}
}
