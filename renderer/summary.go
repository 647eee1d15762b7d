package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/etnz/longshort"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the run configuration, the final value and the
// performance measures of a backtest result.
func SummaryMarkdown(res *longshort.Result, perf longshort.Performance) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Backtest Summary, %s", StrategyLabel(res.Config.Strategy)))
	doc.PlainText(fmt.Sprintf("Final Value: %s after %d trading days", res.Final, perf.Days))

	var filled, rejected int
	for _, e := range res.Executions {
		if e.Status == longshort.Rejected {
			rejected++
		} else {
			filled++
		}
	}
	doc.PlainText(fmt.Sprintf("Trades: %d filled, %d rejected", filled, rejected))

	doc.H2("Configuration")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Setting", "Value"},
		Rows: [][]string{
			{"Capital", fmt.Sprintf("%.2f %s", res.Config.Capital, res.Config.Currency)},
			{"Trade Cost", fmt.Sprintf("%.4f", res.Config.Cost)},
			{"Position Size", longshort.Percent(res.Config.SizeFraction * 100).String()},
			{"Risk Free Rate", longshort.Percent(res.Config.RiskFree * 100).String()},
		},
	})

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Measure", "Value"},
		Rows: [][]string{
			{"Annual Return", perf.AnnualReturn.SignedString()},
			{"Volatility", perf.Volatility.String()},
			{"Sharpe", fmt.Sprintf("%.2f", perf.Sharpe)},
			{"Sortino", fmt.Sprintf("%.2f", perf.Sortino)},
			{"Max Drawdown", perf.MaxDrawdown.String()},
			{"Calmar", fmt.Sprintf("%.2f", perf.Calmar)},
		},
	})

	if len(perf.Yearly) > 0 {
		doc.H2("Yearly Returns")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Year", "Return"},
		}
		for _, year := range slices.Sorted(maps.Keys(perf.Yearly)) {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(year),
				perf.Yearly[year].SignedString(),
			})
		}
		doc.Table(table)
	}

	if len(res.Longs)+len(res.Shorts) > 0 {
		doc.H2("Open Positions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Side", "Symbol", "Shares"},
		}
		for _, symbol := range slices.Sorted(maps.Keys(res.Longs)) {
			table.Rows = append(table.Rows, []string{"long", symbol, strconv.FormatInt(res.Longs[symbol], 10)})
		}
		for _, symbol := range slices.Sorted(maps.Keys(res.Shorts)) {
			table.Rows = append(table.Rows, []string{"short", symbol, strconv.FormatInt(res.Shorts[symbol], 10)})
		}
		doc.Table(table)
	}

	return doc.String()
}

// StrategyLabel formats the strategy configuration as a short headline.
func StrategyLabel(s longshort.StrategyConfig) string {
	switch s.Name {
	case "", "fundamental":
		return fmt.Sprintf("fundamental p%g", s.Percentile)
	case "ema", "sma":
		return fmt.Sprintf("%s %d/%d", s.Name, s.Short, s.Long)
	}
	return s.Name
}
