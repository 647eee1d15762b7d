package strategy

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/etnz/longshort"
)

// Fundamental ranks the universe by close every day and pairs the cheap
// tail short against the expensive tail long. Real desks rank on richer
// metrics, the close stands in for whatever fundamental feeds them.
type Fundamental struct {
	percentile float64
}

// NewFundamental returns a ranking strategy selecting the given percentile
// of the universe on each side. The percentile is strictly between 0 and
// 50, above that the two tails would meet by construction.
func NewFundamental(percentile float64) (*Fundamental, error) {
	if percentile <= 0 || percentile >= 50 {
		return nil, fmt.Errorf("percentile must be between 0 and 50, got %g", percentile)
	}
	return &Fundamental{percentile: percentile}, nil
}

// Signals ranks every quoted day of the table. The tail size rounds up, so
// a tiny universe can land its single symbol in both lists. Ties rank by
// symbol to keep runs reproducible.
func (f *Fundamental) Signals(prices *longshort.PriceTable) *longshort.SignalSet {
	set := longshort.NewSignalSet()
	type quote struct {
		symbol string
		close  float64
	}
	for on := range prices.Days() {
		snapshot := prices.SnapshotOn(on)
		quotes := make([]quote, 0, len(snapshot))
		for symbol, close := range snapshot {
			quotes = append(quotes, quote{symbol, close})
		}
		slices.SortFunc(quotes, func(a, b quote) int {
			if c := cmp.Compare(a.close, b.close); c != 0 {
				return c
			}
			return strings.Compare(a.symbol, b.symbol)
		})

		n := int(math.Ceil(f.percentile / 100 * float64(len(quotes))))
		shorts := make([]string, 0, n)
		for _, q := range quotes[:n] {
			shorts = append(shorts, q.symbol)
		}
		longs := make([]string, 0, n)
		for _, q := range quotes[len(quotes)-n:] {
			longs = append(longs, q.symbol)
		}
		set.AddShort(on, shorts...)
		set.AddLong(on, longs...)
	}
	return set
}
