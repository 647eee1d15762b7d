package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/longshort"
	md "github.com/nao1215/markdown"
)

// ExecutionLine renders an execution to a single sentence.
func ExecutionLine(e longshort.Execution) string {
	if e.Status == longshort.Rejected {
		return fmt.Sprintf("%s rejected %s of %d %s at %.2f: %s", e.Date, e.Action, e.Shares, e.Symbol, e.Price, e.Reason)
	}
	switch e.Action {
	case longshort.OpenLong:
		return fmt.Sprintf("%s bought %d %s at %.2f for %s", e.Date, e.Shares, e.Symbol, e.Price, e.Amount)
	case longshort.CloseLong:
		return fmt.Sprintf("%s sold %d %s at %.2f for %s", e.Date, e.Shares, e.Symbol, e.Price, e.Amount)
	case longshort.OpenShort:
		return fmt.Sprintf("%s shorted %d %s at %.2f for %s", e.Date, e.Shares, e.Symbol, e.Price, e.Amount)
	case longshort.CloseShort:
		return fmt.Sprintf("%s covered %d %s at %.2f for %s", e.Date, e.Shares, e.Symbol, e.Price, e.Amount)
	default:
		return e.String()
	}
}

// ExecutionsMarkdown renders the trade blotter. A positive tail keeps only
// that many trailing entries, a long run's early churn rarely matters.
func ExecutionsMarkdown(executions []longshort.Execution, tail int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Executions")
	if len(executions) == 0 {
		doc.PlainText("No trades.")
		return doc.String()
	}
	if tail > 0 && len(executions) > tail {
		doc.PlainText(fmt.Sprintf("%d earlier trades elided.", len(executions)-tail))
		executions = executions[len(executions)-tail:]
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Action", "Symbol", "Shares", "Price", "Amount", "Status"},
	}
	for _, e := range executions {
		status := string(e.Status)
		if e.Status == longshort.Rejected && e.Reason != "" {
			status = fmt.Sprintf("%s (%s)", e.Status, e.Reason)
		}
		table.Rows = append(table.Rows, []string{
			e.Date.String(),
			string(e.Action),
			e.Symbol,
			strconv.FormatInt(e.Shares, 10),
			fmt.Sprintf("%.2f", e.Price),
			e.Amount.String(),
			status,
		})
	}
	doc.Table(table)
	return doc.String()
}
