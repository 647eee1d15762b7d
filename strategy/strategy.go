// Package strategy provides the signal generators a backtest is fed with.
//
// A strategy reads a price table and emits dated long and short lists. It
// never touches the book, sizing and execution belong to the engine.
package strategy

import (
	"fmt"

	"github.com/etnz/longshort"
)

// Strategy turns a price history into dated long and short signals.
type Strategy interface {
	Signals(prices *longshort.PriceTable) *longshort.SignalSet
}

// New builds the strategy a configuration selects. An empty name selects
// the fundamental ranking.
func New(cfg longshort.StrategyConfig) (Strategy, error) {
	switch cfg.Name {
	case "", "fundamental":
		return NewFundamental(cfg.Percentile)
	case "ema":
		return NewEMACross(cfg.Short, cfg.Long)
	case "sma":
		return NewSMACross(cfg.Short, cfg.Long)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Name)
	}
}
