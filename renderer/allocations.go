package renderer

import (
	"bytes"
	"maps"
	"slices"

	"github.com/etnz/longshort"
	md "github.com/nao1215/markdown"
)

// AllocationsMarkdown renders the sector allocation snapshot of every
// rebalanced month, one table per month.
func AllocationsMarkdown(a *longshort.Allocations) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Sector Allocations")
	if a == nil || a.Len() == 0 {
		doc.PlainText("No snapshots recorded.")
		return doc.String()
	}
	for month, snapshot := range a.Months() {
		doc.H2(month.String())
		if len(snapshot) == 0 {
			doc.PlainText("No open positions.")
			continue
		}
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Sector", "Share"},
		}
		for _, sector := range slices.Sorted(maps.Keys(snapshot)) {
			name := sector
			if name == "" {
				name = "(unclassified)"
			}
			table.Rows = append(table.Rows, []string{name, snapshot[sector].String()})
		}
		doc.Table(table)
	}
	return doc.String()
}
