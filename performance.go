package longshort

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/etnz/longshort/date"
)

// tradingDays is the day count used to annualize daily figures.
const tradingDays = 252

// Performance summarizes a daily return series with the usual annualized
// measures. Ratios are plain numbers, everything else is a percentage.
type Performance struct {
	Days         int             // number of daily returns measured
	AnnualReturn Percent         // geometric return at the annual horizon
	Volatility   Percent         // annualized sample deviation of daily returns
	MaxDrawdown  Percent         // worst peak to trough move, negative or zero
	Sharpe       float64
	Sortino      float64
	Calmar       float64
	Yearly       map[int]Percent // compound return per calendar year
}

// Treynor returns the annual return per unit of market exposure, or 0 for a
// flat beta.
func (p Performance) Treynor(beta float64) float64 {
	if beta == 0 {
		return 0
	}
	return float64(p.AnnualReturn) / 100 / beta
}

// Measure computes the performance of a daily return series. The risk free
// rate is annual and only shifts the Sharpe and Sortino numerators. Series
// shorter than two days get zero deviation based measures.
func Measure(returns *date.History[float64], riskFree float64) Performance {
	perf := Performance{Yearly: make(map[int]Percent)}
	n := returns.Len()
	perf.Days = n
	if n == 0 {
		return perf
	}

	xs := make([]float64, 0, n)
	compound := make(map[int]float64)
	total := 1.0
	cumulative, peak, maxDD := 1.0, math.Inf(-1), 0.0
	for on, r := range returns.Values() {
		xs = append(xs, r)
		total *= 1 + r

		year := on.Year()
		if _, ok := compound[year]; !ok {
			compound[year] = 1
		}
		compound[year] *= 1 + r

		cumulative *= 1 + r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := (cumulative - peak) / peak; dd < maxDD {
			maxDD = dd
		}
	}

	annual := math.Pow(total, tradingDays/float64(n)) - 1
	perf.AnnualReturn = Percent(100 * annual)
	perf.MaxDrawdown = Percent(100 * maxDD)
	if maxDD != 0 {
		perf.Calmar = annual / math.Abs(maxDD)
	}
	for year, c := range compound {
		perf.Yearly[year] = Percent(100 * (c - 1))
	}

	if n < 2 {
		return perf
	}
	mean := stat.Mean(xs, nil)
	stdev := stat.StdDev(xs, nil)
	perf.Volatility = Percent(100 * stdev * math.Sqrt(tradingDays))

	excess := mean - riskFree/tradingDays
	if stdev > 0 {
		perf.Sharpe = excess / stdev * math.Sqrt(tradingDays)
	}
	// Downside deviation keeps the full series in its denominator, only the
	// losing days enter the sum.
	var downside float64
	for _, r := range xs {
		if r < 0 {
			downside += (r - mean) * (r - mean)
		}
	}
	downside = math.Sqrt(downside / float64(n-1))
	if downside > 0 {
		perf.Sortino = excess / downside * math.Sqrt(tradingDays)
	}
	return perf
}
