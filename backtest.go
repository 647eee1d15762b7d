package longshort

import (
	"fmt"
	"log"

	"github.com/etnz/longshort/date"
)

// Backtest walks the trading calendar of a price table, retargets the book
// on every month change from a signal source, and compounds the daily
// weighted return into the portfolio value.
type Backtest struct {
	cfg     Config
	prices  *PriceTable
	sectors SectorMap
	signals SignalSource
	ledger  *Ledger
	reb     Rebalancer
}

// Result gathers everything a run produces.
type Result struct {
	Config      Config
	Returns     *date.History[float64]
	Allocations *Allocations
	Final       Money
	Executions  []Execution
	// Positions left open after the terminal liquidation, symbols that had
	// no close on the final date.
	Longs  map[string]int64
	Shorts map[string]int64
}

// NewBacktest prepares a run over the given universe. The sector map may be
// nil, unknown symbols then fall under the empty sector.
func NewBacktest(cfg Config, prices *PriceTable, sectors SectorMap, signals SignalSource) (*Backtest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if prices == nil {
		return nil, fmt.Errorf("a price table is required")
	}
	if signals == nil {
		return nil, fmt.Errorf("a signal source is required")
	}
	ledger, err := NewLedger(cfg.Capital, cfg.Currency)
	if err != nil {
		return nil, err
	}
	return &Backtest{
		cfg:     cfg,
		prices:  prices,
		sectors: sectors,
		signals: signals,
		ledger:  ledger,
		reb:     Rebalancer{SizeFraction: cfg.SizeFraction, Cost: cfg.Cost},
	}, nil
}

// Ledger exposes the book the run drives.
func (b *Backtest) Ledger() *Ledger { return b.ledger }

// Run executes the simulation over every quoted day in order and liquidates
// the book on the final date. The first quoted day counts as a month change.
//
// The recorded daily return is re-derived from the rounded value move, so
// compounding the series reproduces the final value exactly.
func (b *Backtest) Run() *Result {
	returns := new(date.History[float64])
	allocations := new(Allocations)

	var month date.Month
	var last date.Date
	for on := range b.prices.Days() {
		last = on

		if m := date.MonthOf(on); m != month {
			month = m
			longs, shorts := b.signals.SignalsOn(on)
			b.reb.Execute(on, b.ledger, longs, shorts, b.prices.SnapshotOn(on))
			allocations.Record(month, b.ledger, b.sectors)
		}

		r, err := DailyReturn(b.ledger, b.prices, on)
		if err != nil {
			log.Printf("no return on %s: %v", on, err)
			r = 0
		}
		before, after := b.ledger.Revalue(r)
		returns.Append(on, growth(before, after))
	}

	if !last.IsZero() {
		b.liquidate(last, returns)
	}

	longs := make(map[string]int64)
	for symbol, shares := range b.ledger.Longs() {
		longs[symbol] = shares
	}
	shorts := make(map[string]int64)
	for symbol, shares := range b.ledger.Shorts() {
		shorts[symbol] = shares
	}
	var executions []Execution
	for e := range b.ledger.Executions() {
		executions = append(executions, e)
	}

	return &Result{
		Config:      b.cfg,
		Returns:     returns,
		Allocations: allocations,
		Final:       b.ledger.Value(),
		Executions:  executions,
		Longs:       longs,
		Shorts:      shorts,
	}
}

// growth re-derives a day's return from the rounded value move.
func growth(before, after Money) float64 {
	if before.IsZero() {
		return 0
	}
	return after.Sub(before).AsFloat() / before.AsFloat()
}

// liquidate closes every position still open after the walk at the final
// date's closes. Positions without a close that day stay open. Each closure
// attempted with a price overwrites the final return with the cost drag of
// the exit.
func (b *Backtest) liquidate(on date.Date, returns *date.History[float64]) {
	for symbol, shares := range b.ledger.Longs() {
		price, err := b.prices.On(symbol, on)
		if err != nil {
			continue
		}
		b.ledger.CloseLong(on, symbol, shares, price, b.cfg.Cost)
		returns.Append(on, -b.cfg.Cost)
	}
	for symbol, shares := range b.ledger.Shorts() {
		price, err := b.prices.On(symbol, on)
		if err != nil {
			continue
		}
		b.ledger.CloseShort(on, symbol, shares, price, b.cfg.Cost)
		returns.Append(on, -b.cfg.Cost)
	}
}
