package longshort

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/longshort/date"
)

// ErrMissingPrice is returned when a symbol has no usable quote for a date.
var ErrMissingPrice = errors.New("missing price")

// PriceTable holds the closing price history for a universe of symbols.
//
// Series are sparse by nature: a symbol quoted on one day needs no quote the
// next. The table is read-only to the simulation, which only ever asks for a
// day's price, the latest price strictly before a day, or the merged trading
// calendar.
type PriceTable struct {
	series map[string]*date.History[float64]
}

// NewPriceTable returns an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{series: make(map[string]*date.History[float64])}
}

// Add records the closing price of symbol on the given day, overwriting any
// previous quote for that day.
func (t *PriceTable) Add(symbol string, on date.Date, close float64) {
	h, ok := t.series[symbol]
	if !ok {
		h = new(date.History[float64])
		t.series[symbol] = h
	}
	h.Append(on, close)
}

// Has reports whether the table holds any quote for symbol.
func (t *PriceTable) Has(symbol string) bool {
	_, ok := t.series[symbol]
	return ok
}

// Series returns the symbol's price history, or nil when unknown.
func (t *PriceTable) Series(symbol string) *date.History[float64] { return t.series[symbol] }

// Len returns the number of symbols in the table.
func (t *PriceTable) Len() int { return len(t.series) }

// Symbols iterates over the universe in symbol order.
func (t *PriceTable) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range slices.Sorted(maps.Keys(t.series)) {
			if !yield(s) {
				return
			}
		}
	}
}

// On returns the closing price of symbol on the given day, or
// ErrMissingPrice.
func (t *PriceTable) On(symbol string, on date.Date) (float64, error) {
	h, ok := t.series[symbol]
	if !ok {
		return 0, fmt.Errorf("%s: %w", symbol, ErrMissingPrice)
	}
	p, ok := h.Get(on)
	if !ok {
		return 0, fmt.Errorf("%s on %s: %w", symbol, on, ErrMissingPrice)
	}
	return p, nil
}

// Before returns the latest price of symbol strictly before the given day,
// or ErrMissingPrice.
func (t *PriceTable) Before(symbol string, on date.Date) (float64, error) {
	h, ok := t.series[symbol]
	if !ok {
		return 0, fmt.Errorf("%s: %w", symbol, ErrMissingPrice)
	}
	p, ok := h.ValueBefore(on)
	if !ok {
		return 0, fmt.Errorf("%s before %s: %w", symbol, on, ErrMissingPrice)
	}
	return p, nil
}

// After returns the earliest price of symbol strictly after the given day,
// or ErrMissingPrice.
func (t *PriceTable) After(symbol string, on date.Date) (float64, error) {
	h, ok := t.series[symbol]
	if !ok {
		return 0, fmt.Errorf("%s: %w", symbol, ErrMissingPrice)
	}
	p, ok := h.ValueAfter(on)
	if !ok {
		return 0, fmt.Errorf("%s after %s: %w", symbol, on, ErrMissingPrice)
	}
	return p, nil
}

// Days iterates over the sorted union of every trading day in the table.
func (t *PriceTable) Days() iter.Seq[date.Date] {
	histories := make([]*date.History[float64], 0, len(t.series))
	for _, h := range t.series {
		histories = append(histories, h)
	}
	return date.Iterate(histories...)
}

// SnapshotOn returns each symbol's closing price on the given day. Symbols
// without a quote that day are absent from the map.
func (t *PriceTable) SnapshotOn(on date.Date) map[string]float64 {
	prices := make(map[string]float64)
	for symbol, h := range t.series {
		if p, ok := h.Get(on); ok {
			prices[symbol] = p
		}
	}
	return prices
}

// Split partitions the table chronologically: quotes strictly before the
// cut-off day go to train, the rest to test. The cut-off is the day at the
// given fraction of the merged calendar, and a ratio of 1 keeps every
// quote in train.
func (t *PriceTable) Split(ratio float64) (train, test *PriceTable, err error) {
	if ratio <= 0 || ratio > 1 {
		return nil, nil, fmt.Errorf("split ratio must be in (0,1], got %v", ratio)
	}
	var days []date.Date
	for on := range t.Days() {
		days = append(days, on)
	}
	train, test = NewPriceTable(), NewPriceTable()
	if len(days) == 0 {
		return train, test, nil
	}

	i := int(float64(len(days)) * ratio)
	if i >= len(days) {
		for symbol, h := range t.series {
			for on, p := range h.Values() {
				train.Add(symbol, on, p)
			}
		}
		return train, test, nil
	}
	cut := days[i]
	for symbol, h := range t.series {
		for on, p := range h.Values() {
			if on.Before(cut) {
				train.Add(symbol, on, p)
			} else {
				test.Add(symbol, on, p)
			}
		}
	}
	return train, test, nil
}
