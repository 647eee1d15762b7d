package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/longshort"
	md "github.com/nao1215/markdown"
)

// FactorMarkdown renders the regression of the run returns against the
// market factor, with the Treynor ratio derived from the estimated beta.
func FactorMarkdown(model longshort.FactorModel, perf longshort.Performance) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Factor Regression")
	doc.PlainText(fmt.Sprintf("Daily returns against the market factor over %d aligned days.", model.N))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Coefficient", "Estimate", "Std. Error"},
		Rows: [][]string{
			{"Alpha (daily)", fmt.Sprintf("%.6f", model.Alpha), fmt.Sprintf("%.6f", model.AlphaErr)},
			{"Beta", fmt.Sprintf("%.4f", model.Beta), fmt.Sprintf("%.4f", model.BetaErr)},
		},
	})
	doc.PlainText(fmt.Sprintf("R-squared: %.4f", model.R2))
	doc.PlainText(fmt.Sprintf("Treynor: %.4f", perf.Treynor(model.Beta)))
	return doc.String()
}
