package strategy

import (
	"fmt"

	"github.com/etnz/longshort"
	"github.com/etnz/longshort/date"
)

// SMACross signals on simple moving average crossovers, the golden cross
// long and the death cross short.
type SMACross struct {
	short, long int
}

// NewSMACross returns a crossover strategy over the two window sizes in
// days. The short window must stay below the long one.
func NewSMACross(short, long int) (*SMACross, error) {
	if short < 1 || short >= long {
		return nil, fmt.Errorf("windows must satisfy 0 < short < long, got %d and %d", short, long)
	}
	return &SMACross{short: short, long: long}, nil
}

// Signals walks every symbol with at least a slow window of closes. A
// cross is judged against the previous day both averages were defined, so
// the earliest possible signal needs one day more than the slow window.
func (s *SMACross) Signals(prices *longshort.PriceTable) *longshort.SignalSet {
	set := longshort.NewSignalSet()
	for symbol := range prices.Symbols() {
		series := prices.Series(symbol)
		if series.Len() < s.long {
			continue
		}

		closes := make([]float64, 0, series.Len())
		days := make([]date.Date, 0, series.Len())
		for on, price := range series.Values() {
			days = append(days, on)
			closes = append(closes, price)
		}

		var prevFast, prevSlow float64
		havePrev := false
		fastSum, slowSum := 0.0, 0.0
		for i, price := range closes {
			fastSum += price
			if i >= s.short {
				fastSum -= closes[i-s.short]
			}
			slowSum += price
			if i >= s.long {
				slowSum -= closes[i-s.long]
			}
			if i < s.long-1 {
				continue
			}
			fast := fastSum / float64(s.short)
			slow := slowSum / float64(s.long)
			if havePrev {
				if prevFast <= prevSlow && fast > slow {
					set.AddLong(days[i], symbol)
				} else if prevFast >= prevSlow && fast < slow {
					set.AddShort(days[i], symbol)
				}
			}
			prevFast, prevSlow, havePrev = fast, slow, true
		}
	}
	return set
}
