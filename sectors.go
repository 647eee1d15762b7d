package longshort

import (
	"iter"
	"slices"

	"github.com/etnz/longshort/date"
)

// SectorMap assigns each symbol of the universe to a sector name. Symbols
// it does not know fall under the empty sector.
type SectorMap map[string]string

// Allocations records one sector breakdown per calendar month, each sector
// weighted by its share of the position count.
type Allocations struct {
	months    []date.Month
	snapshots []map[string]Percent
}

// Record snapshots the ledger's holdings under the given month, replacing
// any earlier snapshot for that month. A ledger without positions records
// an explicit empty breakdown.
func (a *Allocations) Record(month date.Month, l *Ledger, sectors SectorMap) {
	counts := make(map[string]int)
	for symbol := range l.Longs() {
		counts[sectors[symbol]]++
	}
	for symbol := range l.Shorts() {
		counts[sectors[symbol]]++
	}

	snapshot := make(map[string]Percent, len(counts))
	if total := l.Positions(); total > 0 {
		for sector, count := range counts {
			snapshot[sector] = Percent(100 * float64(count) / float64(total))
		}
	}
	a.set(month, snapshot)
}

func (a *Allocations) set(month date.Month, snapshot map[string]Percent) {
	for i, m := range a.months {
		if m == month {
			a.snapshots[i] = snapshot
			return
		}
		if month.Before(m) {
			a.months = slices.Insert(a.months, i, month)
			a.snapshots = slices.Insert(a.snapshots, i, snapshot)
			return
		}
	}
	a.months = append(a.months, month)
	a.snapshots = append(a.snapshots, snapshot)
}

// On returns the breakdown recorded for the given month.
func (a *Allocations) On(month date.Month) (map[string]Percent, bool) {
	for i, m := range a.months {
		if m == month {
			return a.snapshots[i], true
		}
	}
	return nil, false
}

// Months iterates the recorded breakdowns in month order.
func (a *Allocations) Months() iter.Seq2[date.Month, map[string]Percent] {
	return func(yield func(date.Month, map[string]Percent) bool) {
		for i, m := range a.months {
			if !yield(m, a.snapshots[i]) {
				return
			}
		}
	}
}

// Len returns the number of recorded months.
func (a *Allocations) Len() int { return len(a.months) }
