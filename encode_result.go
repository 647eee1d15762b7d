package longshort

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/etnz/longshort/date"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains code to persist a run result as a single JSONL stream,
// human readable and git friendly so runs can live next to their universe.
//
// Each line is a JSON object whose property 'kind' names what the rest of
// the line carries: the run parameters, one execution, one daily return,
// one monthly sector breakdown or one position left open.

const (
	kindMeta       = "meta"
	kindExecution  = "execution"
	kindReturn     = "return"
	kindAllocation = "allocation"
	kindPosition   = "position"
)

// the readable version of the format can be summarized by a few types.

type jstrategy struct {
	Name       string  `json:"name"`
	Percentile float64 `json:"percentile,omitempty"`
	Short      int     `json:"short,omitempty"`
	Long       int     `json:"long,omitempty"`
}

type jmeta struct {
	Kind         string    `json:"kind"`
	Capital      float64   `json:"capital"`
	Currency     string    `json:"currency"`
	Cost         float64   `json:"cost"`
	SizeFraction float64   `json:"size"`
	RiskFree     float64   `json:"risk_free,omitempty"`
	Strategy     jstrategy `json:"strategy"`
	Final        Money     `json:"final"`
}

type jexecution struct {
	Kind string `json:"kind"`
	Execution
}

type jreturn struct {
	Kind  string    `json:"kind"`
	On    date.Date `json:"on"`
	Value float64   `json:"value"`
}

type jallocation struct {
	Kind    string             `json:"kind"`
	Month   date.Month         `json:"month"`
	Sectors map[string]Percent `json:"sectors"`
}

type jposition struct {
	Kind   string `json:"kind"`
	Side   string `json:"side"`
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot marshal result line: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write result line: %w", err)
	}
	return nil
}

// EncodeResult persists a run result to 'w' in the result format, the meta
// line first so a reader knows the parameters before the series.
func EncodeResult(w io.Writer, res *Result) error {
	meta := jmeta{
		Kind:         kindMeta,
		Capital:      res.Config.Capital,
		Currency:     res.Config.Currency,
		Cost:         res.Config.Cost,
		SizeFraction: res.Config.SizeFraction,
		RiskFree:     res.Config.RiskFree,
		Strategy: jstrategy{
			Name:       res.Config.Strategy.Name,
			Percentile: res.Config.Strategy.Percentile,
			Short:      res.Config.Strategy.Short,
			Long:       res.Config.Strategy.Long,
		},
		Final: res.Final,
	}
	if err := encodeLine(w, meta); err != nil {
		return err
	}

	for _, e := range res.Executions {
		if err := encodeLine(w, jexecution{Kind: kindExecution, Execution: e}); err != nil {
			return err
		}
	}
	for on, r := range res.Returns.Values() {
		if err := encodeLine(w, jreturn{Kind: kindReturn, On: on, Value: r}); err != nil {
			return err
		}
	}
	for month, sectors := range res.Allocations.Months() {
		if err := encodeLine(w, jallocation{Kind: kindAllocation, Month: month, Sectors: sectors}); err != nil {
			return err
		}
	}
	for _, symbol := range slices.Sorted(maps.Keys(res.Longs)) {
		if err := encodeLine(w, jposition{Kind: kindPosition, Side: "long", Symbol: symbol, Shares: res.Longs[symbol]}); err != nil {
			return err
		}
	}
	for _, symbol := range slices.Sorted(maps.Keys(res.Shorts)) {
		if err := encodeLine(w, jposition{Kind: kindPosition, Side: "short", Symbol: symbol, Shares: res.Shorts[symbol]}); err != nil {
			return err
		}
	}
	return nil
}

// DecodeResult reads a result stream from 'r', decodes each line by its
// kind, and returns the reassembled result.
func DecodeResult(r io.Reader) (*Result, error) {
	res := &Result{
		Returns:     new(date.History[float64]),
		Allocations: new(Allocations),
		Longs:       make(map[string]int64),
		Shorts:      make(map[string]int64),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var identifier struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify kind in line %q: %w", string(line), err)
		}

		switch identifier.Kind {
		case kindMeta:
			var jm jmeta
			if err := json.Unmarshal(line, &jm); err != nil {
				return nil, fmt.Errorf("cannot parse meta line: %w", err)
			}
			res.Config = Config{
				Capital:      jm.Capital,
				Currency:     jm.Currency,
				Cost:         jm.Cost,
				SizeFraction: jm.SizeFraction,
				RiskFree:     jm.RiskFree,
				Strategy: StrategyConfig{
					Name:       jm.Strategy.Name,
					Percentile: jm.Strategy.Percentile,
					Short:      jm.Strategy.Short,
					Long:       jm.Strategy.Long,
				},
			}
			res.Final = jm.Final
		case kindExecution:
			var je jexecution
			if err := json.Unmarshal(line, &je); err != nil {
				return nil, fmt.Errorf("cannot parse execution line %q: %w", string(line), err)
			}
			res.Executions = append(res.Executions, je.Execution)
		case kindReturn:
			var jr jreturn
			if err := json.Unmarshal(line, &jr); err != nil {
				return nil, fmt.Errorf("cannot parse return line %q: %w", string(line), err)
			}
			res.Returns.Append(jr.On, jr.Value)
		case kindAllocation:
			var ja jallocation
			if err := json.Unmarshal(line, &ja); err != nil {
				return nil, fmt.Errorf("cannot parse allocation line %q: %w", string(line), err)
			}
			res.Allocations.set(ja.Month, ja.Sectors)
		case kindPosition:
			var jp jposition
			if err := json.Unmarshal(line, &jp); err != nil {
				return nil, fmt.Errorf("cannot parse position line %q: %w", string(line), err)
			}
			switch jp.Side {
			case "long":
				res.Longs[jp.Symbol] = jp.Shares
			case "short":
				res.Shorts[jp.Symbol] = jp.Shares
			default:
				return nil, fmt.Errorf("unknown position side: %q", jp.Side)
			}
		default:
			return nil, fmt.Errorf("unknown result line kind: %q", identifier.Kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return res, nil
}
