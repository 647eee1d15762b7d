package longshort

import (
	"iter"
	"slices"

	"github.com/etnz/longshort/date"
)

// SignalSource produces the target long and short symbol lists for a date.
// Any producer satisfying this shape plugs into the backtest unchanged.
type SignalSource interface {
	// SignalsOn returns the symbols to be long and short of on that exact
	// day. Both lists are empty on days without a signal.
	SignalsOn(on date.Date) (longs, shorts []string)
}

// SignalSet is a SignalSource backed by lists registered per exact date.
// It is the output container of the strategy generators.
type SignalSet struct {
	longs  map[date.Date][]string
	shorts map[date.Date][]string
}

// NewSignalSet returns an empty signal set.
func NewSignalSet() *SignalSet {
	return &SignalSet{
		longs:  make(map[date.Date][]string),
		shorts: make(map[date.Date][]string),
	}
}

// AddLong registers symbols to go long of on the given day.
func (s *SignalSet) AddLong(on date.Date, symbols ...string) {
	s.longs[on] = append(s.longs[on], symbols...)
}

// AddShort registers symbols to go short of on the given day.
func (s *SignalSet) AddShort(on date.Date, symbols ...string) {
	s.shorts[on] = append(s.shorts[on], symbols...)
}

// SignalsOn implements SignalSource.
func (s *SignalSet) SignalsOn(on date.Date) (longs, shorts []string) {
	return s.longs[on], s.shorts[on]
}

// Days iterates over the days carrying at least one signal, in order.
func (s *SignalSet) Days() iter.Seq[date.Date] {
	var days []date.Date
	for on := range s.longs {
		days = append(days, on)
	}
	for on := range s.shorts {
		if _, dup := s.longs[on]; !dup {
			days = append(days, on)
		}
	}
	slices.SortFunc(days, func(a, b date.Date) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		default:
			return 0
		}
	})
	return slices.Values(days)
}

// Len returns the number of days carrying at least one signal.
func (s *SignalSet) Len() int {
	n := len(s.longs)
	for on := range s.shorts {
		if _, dup := s.longs[on]; !dup {
			n++
		}
	}
	return n
}

var _ SignalSource = (*SignalSet)(nil)
