package longshort

import (
	"fmt"

	"github.com/etnz/longshort/date"
	"github.com/google/uuid"
)

// Action identifies one of the four trade primitives.
type Action string

const (
	OpenLong   Action = "open-long"
	CloseLong  Action = "close-long"
	OpenShort  Action = "open-short"
	CloseShort Action = "close-short"
)

// Status is the outcome of a trade attempt.
type Status string

const (
	Filled   Status = "filled"
	Rejected Status = "rejected"
)

// Execution is the record of a single trade attempt against the ledger,
// filled or rejected. The ledger emits one per operation so that callers
// can surface, count, or discard them; the run's full blotter is the
// reporting trail.
type Execution struct {
	ID     string    `json:"id"`
	Date   date.Date `json:"date"`
	Action Action    `json:"action"`
	Symbol string    `json:"symbol"`
	Shares int64     `json:"shares"`
	Price  float64   `json:"price"`
	Amount Money     `json:"amount"`
	Status Status    `json:"status"`
	Reason string    `json:"reason,omitempty"`
}

// newExecution returns a filled execution for the given trade.
func newExecution(on date.Date, action Action, symbol string, shares int64, price float64, amount Money) Execution {
	return Execution{
		ID:     uuid.NewString(),
		Date:   on,
		Action: action,
		Symbol: symbol,
		Shares: shares,
		Price:  price,
		Amount: amount,
		Status: Filled,
	}
}

// rejected turns the execution into a rejection carrying the reason.
func (e Execution) rejected(err error) Execution {
	e.Status = Rejected
	e.Reason = err.Error()
	return e
}

func (e Execution) String() string {
	if e.Status == Rejected {
		return fmt.Sprintf("%s %s %s %d @ %.2f rejected: %s", e.Date, e.Action, e.Symbol, e.Shares, e.Price, e.Reason)
	}
	return fmt.Sprintf("%s %s %s %d @ %.2f for %s", e.Date, e.Action, e.Symbol, e.Shares, e.Price, e.Amount)
}
