package longshort

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/longshort/date"
)

var (
	// ErrInsufficientFunds is returned when a buy or cover would push the
	// portfolio value below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientShares is returned when a close exceeds the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Ledger is the authoritative record of open long and short positions and of
// the portfolio value.
//
// Positions are held as whole share counts, strictly positive; an entry that
// reaches zero is removed. A symbol is never long and short at the same time.
// The value is a single non-negative amount: it is NOT the sum of position
// market values, it moves discretely with trade cash flows and
// multiplicatively with daily returns (see Revalue).
//
// Every trade attempt, filled or rejected, is appended to the blotter.
// Rejections are non-fatal: the operation returns the sentinel-wrapped error
// and leaves the ledger untouched, and the caller decides whether to surface
// or skip it.
type Ledger struct {
	value   Money
	longs   map[string]int64
	shorts  map[string]int64
	blotter []Execution
}

// NewLedger returns a ledger funded with the given initial capital.
// Non-positive capital is a configuration error.
func NewLedger(capital float64, currency string) (*Ledger, error) {
	if capital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive, got %v", capital)
	}
	return &Ledger{
		value:  M(capital, currency),
		longs:  make(map[string]int64),
		shorts: make(map[string]int64),
	}, nil
}

// Value returns the current portfolio value.
func (l *Ledger) Value() Money { return l.value }

// Currency returns the ledger's currency code.
func (l *Ledger) Currency() string { return l.value.Currency() }

// Long returns the long position held on symbol, 0 when none.
func (l *Ledger) Long(symbol string) int64 { return l.longs[symbol] }

// Short returns the short position held on symbol, 0 when none.
func (l *Ledger) Short(symbol string) int64 { return l.shorts[symbol] }

// Longs iterates over long positions in symbol order.
func (l *Ledger) Longs() iter.Seq2[string, int64] { return sortedShares(l.longs) }

// Shorts iterates over short positions in symbol order.
func (l *Ledger) Shorts() iter.Seq2[string, int64] { return sortedShares(l.shorts) }

// Positions returns the combined number of open long and short positions.
func (l *Ledger) Positions() int { return len(l.longs) + len(l.shorts) }

// Executions iterates over the blotter in execution order.
func (l *Ledger) Executions() iter.Seq[Execution] {
	return func(yield func(Execution) bool) {
		for _, e := range l.blotter {
			if !yield(e) {
				return
			}
		}
	}
}

// Trades returns how many executions the blotter holds with the given status.
func (l *Ledger) Trades(status Status) int {
	n := 0
	for _, e := range l.blotter {
		if e.Status == status {
			n++
		}
	}
	return n
}

func sortedShares(m map[string]int64) iter.Seq2[string, int64] {
	return func(yield func(string, int64) bool) {
		for _, s := range slices.Sorted(maps.Keys(m)) {
			if !yield(s, m[s]) {
				return
			}
		}
	}
}

// OpenLong buys shares at price, debiting shares*price*(1+cost).
// It is rejected with ErrInsufficientFunds when the total cost exceeds the
// current value.
func (l *Ledger) OpenLong(on date.Date, symbol string, shares int64, price, cost float64) (Execution, error) {
	total := l.notional(shares, price, 1+cost)
	e := newExecution(on, OpenLong, symbol, shares, price, total)
	if err := validTrade(symbol, shares, price); err != nil {
		return l.reject(e, err)
	}
	if l.shorts[symbol] > 0 {
		return l.reject(e, fmt.Errorf("cannot open long %s while short", symbol))
	}
	if total.GreaterThan(l.value) {
		return l.reject(e, fmt.Errorf("open long %d %s @ %v costs %s with only %s available: %w",
			shares, symbol, price, total, l.value, ErrInsufficientFunds))
	}
	l.value = l.value.Sub(total)
	l.longs[symbol] += shares
	return l.fill(e)
}

// CloseLong sells shares at price, crediting shares*price*(1-cost).
// It is rejected with ErrInsufficientShares when selling more than held.
func (l *Ledger) CloseLong(on date.Date, symbol string, shares int64, price, cost float64) (Execution, error) {
	proceeds := l.notional(shares, price, 1-cost)
	e := newExecution(on, CloseLong, symbol, shares, price, proceeds)
	if err := validTrade(symbol, shares, price); err != nil {
		return l.reject(e, err)
	}
	held := l.longs[symbol]
	if shares > held {
		return l.reject(e, fmt.Errorf("close long %d %s with only %d held: %w",
			shares, symbol, held, ErrInsufficientShares))
	}
	l.value = l.value.Add(proceeds)
	if held == shares {
		delete(l.longs, symbol)
	} else {
		l.longs[symbol] = held - shares
	}
	return l.fill(e)
}

// OpenShort sells borrowed shares at price, crediting shares*price*(1-cost)
// immediately. There is no funds or borrow cap on shorting: proceeds always
// increase value.
func (l *Ledger) OpenShort(on date.Date, symbol string, shares int64, price, cost float64) (Execution, error) {
	proceeds := l.notional(shares, price, 1-cost)
	e := newExecution(on, OpenShort, symbol, shares, price, proceeds)
	if err := validTrade(symbol, shares, price); err != nil {
		return l.reject(e, err)
	}
	if l.longs[symbol] > 0 {
		return l.reject(e, fmt.Errorf("cannot open short %s while long", symbol))
	}
	l.value = l.value.Add(proceeds)
	l.shorts[symbol] += shares
	return l.fill(e)
}

// CloseShort buys back shares at price to cover, debiting
// shares*price*(1+cost). It is rejected with ErrInsufficientShares when
// covering more than the short held, and with ErrInsufficientFunds when the
// buyback exceeds the current value.
func (l *Ledger) CloseShort(on date.Date, symbol string, shares int64, price, cost float64) (Execution, error) {
	total := l.notional(shares, price, 1+cost)
	e := newExecution(on, CloseShort, symbol, shares, price, total)
	if err := validTrade(symbol, shares, price); err != nil {
		return l.reject(e, err)
	}
	held := l.shorts[symbol]
	if shares > held {
		return l.reject(e, fmt.Errorf("cover %d %s with only %d shorted: %w",
			shares, symbol, held, ErrInsufficientShares))
	}
	if total.GreaterThan(l.value) {
		return l.reject(e, fmt.Errorf("cover %d %s @ %v costs %s with only %s available: %w",
			shares, symbol, price, total, l.value, ErrInsufficientFunds))
	}
	l.value = l.value.Sub(total)
	if held == shares {
		delete(l.shorts, symbol)
	} else {
		l.shorts[symbol] = held - shares
	}
	return l.fill(e)
}

// Revalue applies a daily return to the portfolio value, rounding to the
// currency's minor unit. The value is floored at zero: it can only be
// reached when a single day's weighted loss exceeds 100%.
func (l *Ledger) Revalue(r float64) (before, after Money) {
	before = l.value
	after = l.value.Scale(1 + r).Round()
	if after.IsNegative() {
		after = M(0, l.Currency())
	}
	l.value = after
	return before, after
}

// notional computes shares*price*factor in the ledger currency, rounded to
// the minor unit.
func (l *Ledger) notional(shares int64, price, factor float64) Money {
	return M(price, l.Currency()).Times(shares).Scale(factor).Round()
}

func validTrade(symbol string, shares int64, price float64) error {
	if symbol == "" {
		return errors.New("empty symbol")
	}
	if shares <= 0 {
		return fmt.Errorf("share count must be positive, got %d", shares)
	}
	if price <= 0 {
		return fmt.Errorf("price must be positive, got %v", price)
	}
	return nil
}

func (l *Ledger) fill(e Execution) (Execution, error) {
	l.blotter = append(l.blotter, e)
	return e, nil
}

func (l *Ledger) reject(e Execution, err error) (Execution, error) {
	e = e.rejected(err)
	l.blotter = append(l.blotter, e)
	return e, err
}
