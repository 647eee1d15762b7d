package longshort

import (
	"slices"

	"github.com/etnz/longshort/date"
)

// Rebalancer moves the ledger's holdings toward a target long/short book
// with the minimal set of closes and opens.
//
// The order is load-bearing: stale longs are closed first and stale shorts
// covered second, so that the freed capital funds the new positions. The
// per-position allocation is a fixed fraction of the portfolio value read
// once per opening batch, longs before shorts, so the shorts batch sizes
// against the value left by the longs batch.
type Rebalancer struct {
	SizeFraction float64 // fraction of portfolio value allocated per new position
	Cost         float64 // transaction cost fraction per trade
}

// Execute rebalances the ledger toward the target lists using the day's
// prices.
//
// Symbols without a price that day are skipped wherever they occur: a stale
// position without a quote stays open, a target without a quote is not
// entered. Symbols already positioned on the target side are left untouched,
// so repeating an identical rebalance trades nothing. Trade rejections land
// on the ledger's blotter and do not stop the batch.
func (r Rebalancer) Execute(on date.Date, l *Ledger, targetLongs, targetShorts []string, prices map[string]float64) {
	// Close longs that fell out of the target book.
	for symbol, shares := range l.Longs() {
		if slices.Contains(targetLongs, symbol) {
			continue
		}
		price, ok := prices[symbol]
		if !ok {
			continue
		}
		l.CloseLong(on, symbol, shares, price, r.Cost)
	}

	// Cover shorts that fell out.
	for symbol, shares := range l.Shorts() {
		if slices.Contains(targetShorts, symbol) {
			continue
		}
		price, ok := prices[symbol]
		if !ok {
			continue
		}
		l.CloseShort(on, symbol, shares, price, r.Cost)
	}

	// Open the new longs.
	if len(targetLongs) > 0 {
		allocation := l.Value().Scale(r.SizeFraction)
		for _, symbol := range targetLongs {
			if l.Long(symbol) > 0 || l.Short(symbol) > 0 {
				continue
			}
			price, ok := prices[symbol]
			if !ok {
				continue
			}
			shares := allocation.SharesAt(price)
			if shares < 1 {
				continue
			}
			l.OpenLong(on, symbol, shares, price, r.Cost)
		}
	}

	// Open the new shorts against what the longs batch left.
	if len(targetShorts) > 0 {
		allocation := l.Value().Scale(r.SizeFraction)
		for _, symbol := range targetShorts {
			if l.Short(symbol) > 0 || l.Long(symbol) > 0 {
				continue
			}
			price, ok := prices[symbol]
			if !ok {
				continue
			}
			shares := allocation.SharesAt(price)
			if shares < 1 {
				continue
			}
			l.OpenShort(on, symbol, shares, price, r.Cost)
		}
	}
}
