package strategy

import (
	"fmt"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/date"
)

// EMACross signals when a symbol's fast exponential average crosses its
// slow one, long on the way up and short on the way down.
type EMACross struct {
	short, long int
}

// NewEMACross returns a crossover strategy over the two window sizes in
// days. The short window must stay below the long one.
func NewEMACross(short, long int) (*EMACross, error) {
	if short < 1 || short >= long {
		return nil, fmt.Errorf("windows must satisfy 0 < short < long, got %d and %d", short, long)
	}
	return &EMACross{short: short, long: long}, nil
}

// Signals walks every symbol with at least a slow window of closes and
// emits a signal the day a cross completes, judged against the last day
// both averages existed.
func (e *EMACross) Signals(prices *longshort.PriceTable) *longshort.SignalSet {
	set := longshort.NewSignalSet()
	for symbol := range prices.Symbols() {
		series := prices.Series(symbol)
		if series.Len() < e.long {
			continue
		}
		fast := ema(series, e.short)
		slow := ema(series, e.long)

		var prevFast, prevSlow float64
		havePrev := false
		for on := range series.Values() {
			f, okFast := fast.Get(on)
			s, okSlow := slow.Get(on)
			if !okFast || !okSlow {
				continue
			}
			if !havePrev {
				prevFast, prevSlow, havePrev = f, s, true
				continue
			}
			if prevFast <= prevSlow && f > s {
				set.AddLong(on, symbol)
			}
			if prevFast >= prevSlow && f < s {
				set.AddShort(on, symbol)
			}
			prevFast, prevSlow = f, s
		}
	}
	return set
}

// ema computes the exponential moving average of a close series, seeded
// with the simple average of the first window closes.
func ema(series *date.History[float64], window int) *date.History[float64] {
	out := new(date.History[float64])
	k := 2 / float64(window+1)
	var avg float64
	count := 0
	for on, price := range series.Values() {
		if count < window {
			avg += price
			count++
			if count == window {
				avg /= float64(window)
				out.Append(on, avg)
			}
			continue
		}
		avg += (price - avg) * k
		out.Append(on, avg)
	}
	return out
}
