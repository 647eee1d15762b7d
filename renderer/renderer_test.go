package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/date"
)

var jan2 = date.New(2025, 1, 2)

// testRun drives a two-day backtest, one long and one short, liquidated on
// the final date.
func testRun(t *testing.T) (*longshort.Result, longshort.Performance) {
	t.Helper()
	prices := longshort.NewPriceTable()
	prices.Add("AAA", jan2, 100)
	prices.Add("AAA", jan2.Add(14), 110)
	prices.Add("BBB", jan2, 50)
	prices.Add("BBB", jan2.Add(14), 48)

	signals := longshort.NewSignalSet()
	signals.AddLong(jan2, "AAA")
	signals.AddShort(jan2, "BBB")

	sectors := longshort.SectorMap{"AAA": "Tech", "BBB": "Finance"}
	bt, err := longshort.NewBacktest(longshort.DefaultConfig(), prices, sectors, signals)
	if err != nil {
		t.Fatalf("NewBacktest() error = %v", err)
	}
	res := bt.Run()
	return res, longshort.Measure(res.Returns, res.Config.RiskFree)
}

func TestSummaryMarkdown(t *testing.T) {
	res, perf := testRun(t)
	got := SummaryMarkdown(res, perf)

	for _, want := range []string{
		"# Backtest Summary, fundamental p10",
		res.Final.String(),
		"Trades: 4 filled, 0 rejected",
		"## Configuration",
		"## Performance",
		"Annual Return",
		"Max Drawdown",
		"## Yearly Returns",
		"2025",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SummaryMarkdown() misses %q in:\n%s", want, got)
		}
	}
	// The final date liquidation leaves no open position to list.
	if strings.Contains(got, "Open Positions") {
		t.Errorf("SummaryMarkdown() lists open positions on a flat book:\n%s", got)
	}
}

func TestSummaryMarkdownOpenPositions(t *testing.T) {
	res, perf := testRun(t)
	res.Longs = map[string]int64{"AAA": 200}
	got := SummaryMarkdown(res, perf)
	if !strings.Contains(got, "## Open Positions") || !strings.Contains(got, "| long | AAA | 200 |") {
		t.Errorf("SummaryMarkdown() misses the open position row in:\n%s", got)
	}
}

func TestStrategyLabel(t *testing.T) {
	tests := []struct {
		cfg  longshort.StrategyConfig
		want string
	}{
		{longshort.StrategyConfig{Name: "fundamental", Percentile: 10}, "fundamental p10"},
		{longshort.StrategyConfig{Percentile: 25}, "fundamental p25"},
		{longshort.StrategyConfig{Name: "ema", Short: 5, Long: 20}, "ema 5/20"},
		{longshort.StrategyConfig{Name: "sma", Short: 10, Long: 30}, "sma 10/30"},
		{longshort.StrategyConfig{Name: "custom"}, "custom"},
	}
	for _, tc := range tests {
		if got := StrategyLabel(tc.cfg); got != tc.want {
			t.Errorf("StrategyLabel(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestAllocationsMarkdown(t *testing.T) {
	res, _ := testRun(t)
	got := AllocationsMarkdown(res.Allocations)

	for _, want := range []string{
		"# Sector Allocations",
		"## 2025-01",
		"| Tech",
		"50.00%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("AllocationsMarkdown() misses %q in:\n%s", want, got)
		}
	}
}

func TestAllocationsMarkdownEmpty(t *testing.T) {
	got := AllocationsMarkdown(nil)
	if !strings.Contains(got, "No snapshots recorded.") {
		t.Errorf("AllocationsMarkdown(nil) = %q, want the empty notice", got)
	}
}

func TestFactorMarkdown(t *testing.T) {
	model := longshort.FactorModel{Alpha: 0.001, Beta: 2, AlphaErr: 0.0005, BetaErr: 0.25, R2: 0.9, N: 10}
	perf := longshort.Performance{AnnualReturn: 10}
	got := FactorMarkdown(model, perf)

	for _, want := range []string{
		"# Factor Regression",
		"10 aligned days",
		"| Beta | 2.0000 | 0.2500 |",
		"R-squared: 0.9000",
		"Treynor: 0.0500",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FactorMarkdown() misses %q in:\n%s", want, got)
		}
	}
}

func TestAccuracyMarkdown(t *testing.T) {
	acc := longshort.Accuracy{
		Overall: longshort.Tally{Correct: 2, Total: 4},
		Yearly:  map[int]longshort.Tally{2025: {Correct: 2, Total: 4}},
	}
	got := AccuracyMarkdown(acc)
	for _, want := range []string{
		"# Signal Accuracy",
		"2 of 4 signals pointed the right way (50.00%).",
		"| 2025 | 2 | 4 | 50.00% |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("AccuracyMarkdown() misses %q in:\n%s", want, got)
		}
	}

	if got := AccuracyMarkdown(longshort.Accuracy{}); !strings.Contains(got, "No scored signals.") {
		t.Errorf("AccuracyMarkdown(zero) = %q, want the empty notice", got)
	}
}

func TestExecutionLine(t *testing.T) {
	base := longshort.Execution{
		Date:   jan2,
		Symbol: "AAA",
		Shares: 200,
		Price:  100,
		Amount: longshort.M(20_020, "USD"),
		Status: longshort.Filled,
	}
	tests := []struct {
		action longshort.Action
		want   string
	}{
		{longshort.OpenLong, "bought 200 AAA at 100.00"},
		{longshort.CloseLong, "sold 200 AAA at 100.00"},
		{longshort.OpenShort, "shorted 200 AAA at 100.00"},
		{longshort.CloseShort, "covered 200 AAA at 100.00"},
	}
	for _, tc := range tests {
		e := base
		e.Action = tc.action
		if got := ExecutionLine(e); !strings.Contains(got, tc.want) {
			t.Errorf("ExecutionLine(%s) = %q, want it to contain %q", tc.action, got, tc.want)
		}
	}

	e := base
	e.Action = longshort.OpenLong
	e.Status = longshort.Rejected
	e.Reason = "insufficient funds"
	if got := ExecutionLine(e); !strings.Contains(got, "rejected") || !strings.Contains(got, "insufficient funds") {
		t.Errorf("ExecutionLine(rejected) = %q, want the rejection reason", got)
	}
}

func TestExecutionsMarkdownTail(t *testing.T) {
	var executions []longshort.Execution
	for _, symbol := range []string{"T1", "T2", "T3", "T4", "T5"} {
		executions = append(executions, longshort.Execution{
			Date:   jan2,
			Action: longshort.OpenLong,
			Symbol: symbol,
			Shares: 10,
			Price:  5,
			Amount: longshort.M(50, "USD"),
			Status: longshort.Filled,
		})
	}
	got := ExecutionsMarkdown(executions, 2)
	if !strings.Contains(got, "3 earlier trades elided.") {
		t.Errorf("ExecutionsMarkdown() misses the elision notice in:\n%s", got)
	}
	if strings.Contains(got, "T1") || !strings.Contains(got, "T4") || !strings.Contains(got, "T5") {
		t.Errorf("ExecutionsMarkdown() kept the wrong tail in:\n%s", got)
	}

	if got := ExecutionsMarkdown(nil, 0); !strings.Contains(got, "No trades.") {
		t.Errorf("ExecutionsMarkdown(nil) = %q, want the empty notice", got)
	}
}

func TestChartsRenderPNG(t *testing.T) {
	returns := new(date.History[float64])
	returns.Append(jan2, 0.01)
	returns.Append(jan2.Add(1), -0.02)
	returns.Append(jan2.Add(2), 0.03)

	magic := []byte{0x89, 'P', 'N', 'G'}
	for name, render := range map[string]func(*date.History[float64]) ([]byte, error){
		"ReturnChart":   ReturnChart,
		"DrawdownChart": DrawdownChart,
	} {
		img, err := render(returns)
		if err != nil {
			t.Fatalf("%s() error = %v", name, err)
		}
		if !bytes.HasPrefix(img, magic) {
			t.Errorf("%s() output does not start with the PNG magic", name)
		}
	}
}

func TestChartsNeedTwoPoints(t *testing.T) {
	returns := new(date.History[float64])
	returns.Append(jan2, 0.01)
	if _, err := ReturnChart(returns); err == nil {
		t.Error("ReturnChart() on a single point expected an error, got nil")
	}
}
