package longshort

import (
	"errors"

	"github.com/etnz/longshort/date"
)

// ErrDegenerateValue reports a return requested on a worthless portfolio.
var ErrDegenerateValue = errors.New("degenerate portfolio value")

// DailyReturn computes the portfolio return for one day from the price
// moves of the held positions, each weighted by its previous-price exposure
// over the current portfolio value. Short positions contribute the inverted
// move.
//
// A holding contributes only when its symbol has both a price on the day
// and a price strictly before it; sparse series contribute nothing. The
// weights use the current value rather than the previous day's, so they do
// not sum to one under leverage.
func DailyReturn(l *Ledger, prices *PriceTable, on date.Date) (float64, error) {
	if l.Value().IsZero() {
		return 0, ErrDegenerateValue
	}
	value := l.Value().AsFloat()

	var total float64
	for symbol, shares := range l.Longs() {
		price, prev, ok := pricePair(prices, symbol, on)
		if !ok {
			continue
		}
		total += (price - prev) / prev * float64(shares) * prev / value
	}
	for symbol, shares := range l.Shorts() {
		price, prev, ok := pricePair(prices, symbol, on)
		if !ok {
			continue
		}
		total += (prev - price) / prev * float64(shares) * prev / value
	}
	return total, nil
}

// pricePair returns the day's close and the latest close strictly before
// it, or ok=false when either is missing or unusable.
func pricePair(prices *PriceTable, symbol string, on date.Date) (price, prev float64, ok bool) {
	price, err := prices.On(symbol, on)
	if err != nil {
		return 0, 0, false
	}
	prev, err = prices.Before(symbol, on)
	if err != nil || prev <= 0 {
		return 0, 0, false
	}
	return price, prev, true
}
