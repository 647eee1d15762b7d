package longshort

import "github.com/etnz/longshort/date"

// Tally counts correct calls out of scored ones.
type Tally struct {
	Correct int
	Total   int
}

// Rate returns the hit rate, 0 when nothing was scored.
func (t Tally) Rate() Percent {
	if t.Total == 0 {
		return 0
	}
	return Percent(100 * float64(t.Correct) / float64(t.Total))
}

// Accuracy reports how often signals called the next day's direction,
// overall and per signal year.
type Accuracy struct {
	Overall Tally
	Yearly  map[int]Tally
}

// MeasureAccuracy scores every registered signal against the next close of
// its symbol. A long is correct when the next close is strictly above the
// signal day's, a short when strictly below, so a flat close scores a miss
// on both sides. Signals missing either close are not scored.
func MeasureAccuracy(signals *SignalSet, prices *PriceTable) Accuracy {
	acc := Accuracy{Yearly: make(map[int]Tally)}

	score := func(on date.Date, symbols []string, up bool) {
		for _, symbol := range symbols {
			today, err := prices.On(symbol, on)
			if err != nil {
				continue
			}
			next, err := prices.After(symbol, on)
			if err != nil {
				continue
			}
			hit := next > today
			if !up {
				hit = next < today
			}

			acc.Overall.Total++
			tally := acc.Yearly[on.Year()]
			tally.Total++
			if hit {
				acc.Overall.Correct++
				tally.Correct++
			}
			acc.Yearly[on.Year()] = tally
		}
	}

	for on := range signals.Days() {
		longs, shorts := signals.SignalsOn(on)
		score(on, longs, true)
		score(on, shorts, false)
	}
	return acc
}
