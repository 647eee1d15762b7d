package longshort

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/etnz/longshort/date"
)

// FactorModel is the single factor OLS fit of a strategy's daily returns
// against a market benchmark.
type FactorModel struct {
	Alpha    float64 // daily return unexplained by the market
	Beta     float64 // exposure to the market factor
	AlphaErr float64 // standard error of Alpha
	BetaErr  float64 // standard error of Beta
	R2       float64
	N        int // aligned days entering the fit
}

func (m FactorModel) String() string {
	return fmt.Sprintf("alpha=%.6f beta=%.6f r2=%.4f n=%d", m.Alpha, m.Beta, m.R2, m.N)
}

// Regress fits strategy returns on market returns over their common dates.
// It needs at least three aligned days for the error terms, and a market
// series that actually moves.
func Regress(strategy, market *date.History[float64]) (FactorModel, error) {
	var xs, ys []float64
	for on, r := range strategy.Values() {
		m, ok := market.Get(on)
		if !ok {
			continue
		}
		xs = append(xs, m)
		ys = append(ys, r)
	}
	n := len(xs)
	if n < 3 {
		return FactorModel{}, fmt.Errorf("regression needs at least 3 aligned days, got %d", n)
	}

	mean := stat.Mean(xs, nil)
	var sxx float64
	for _, x := range xs {
		sxx += (x - mean) * (x - mean)
	}
	if sxx == 0 {
		return FactorModel{}, fmt.Errorf("market returns are constant over the %d aligned days", n)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	var ssr float64
	for i, x := range xs {
		e := ys[i] - alpha - beta*x
		ssr += e * e
	}
	s2 := ssr / float64(n-2)

	return FactorModel{
		Alpha:    alpha,
		Beta:     beta,
		AlphaErr: math.Sqrt(s2 * (1/float64(n) + mean*mean/sxx)),
		BetaErr:  math.Sqrt(s2 / sxx),
		R2:       stat.RSquared(xs, ys, nil, alpha, beta),
		N:        n,
	}, nil
}
