package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/etnz/longshort"
	md "github.com/nao1215/markdown"
)

// AccuracyMarkdown renders the hit rate of the signals against next-day
// price moves, overall and per signal year.
func AccuracyMarkdown(acc longshort.Accuracy) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Signal Accuracy")
	if acc.Overall.Total == 0 {
		doc.PlainText("No scored signals.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("%d of %d signals pointed the right way (%s).",
		acc.Overall.Correct, acc.Overall.Total, acc.Overall.Rate()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Year", "Correct", "Scored", "Hit Rate"},
	}
	for _, year := range slices.Sorted(maps.Keys(acc.Yearly)) {
		tally := acc.Yearly[year]
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(year),
			strconv.Itoa(tally.Correct),
			strconv.Itoa(tally.Total),
			tally.Rate().String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
