package longshort

import (
	"errors"
	"testing"

	"github.com/etnz/longshort/date"
)

var day1 = date.New(2025, 1, 2)

func newTestLedger(t *testing.T, capital float64) *Ledger {
	t.Helper()
	l, err := NewLedger(capital, "USD")
	if err != nil {
		t.Fatalf("NewLedger(%v) error = %v", capital, err)
	}
	return l
}

func TestNewLedgerRejectsBadCapital(t *testing.T) {
	for _, capital := range []float64{0, -1000} {
		if _, err := NewLedger(capital, "USD"); err == nil {
			t.Errorf("NewLedger(%v) expected an error, got nil", capital)
		}
	}
}

// TestOpenLongSizing checks the exact arithmetic of a 2% allocation:
// 1,000,000 capital, AAA at 100, 0.1% cost buys 200 shares for 20,020.00
// leaving 979,980.00.
func TestOpenLongSizing(t *testing.T) {
	l := newTestLedger(t, 1_000_000)

	shares := l.Value().Scale(0.02).SharesAt(100)
	if shares != 200 {
		t.Fatalf("2%% of %s at 100 = %d shares, want 200", l.Value(), shares)
	}

	e, err := l.OpenLong(day1, "AAA", shares, 100, 0.001)
	if err != nil {
		t.Fatalf("OpenLong(AAA, 200, 100) error = %v", err)
	}
	if want := M(20_020, "USD"); !e.Amount.Equal(want) {
		t.Errorf("OpenLong amount = %s, want %s", e.Amount, want)
	}
	if want := M(979_980, "USD"); !l.Value().Equal(want) {
		t.Errorf("value after open = %s, want %s", l.Value(), want)
	}
	if got := l.Long("AAA"); got != 200 {
		t.Errorf("Long(AAA) = %d, want 200", got)
	}
}

// TestOpenShortProceeds checks that shorting 100 BBB at 50 with 0.1% cost
// credits exactly 4,995.00.
func TestOpenShortProceeds(t *testing.T) {
	l := newTestLedger(t, 10_000)

	e, err := l.OpenShort(day1, "BBB", 100, 50, 0.001)
	if err != nil {
		t.Fatalf("OpenShort(BBB, 100, 50) error = %v", err)
	}
	if want := M(4_995, "USD"); !e.Amount.Equal(want) {
		t.Errorf("OpenShort amount = %s, want %s", e.Amount, want)
	}
	if want := M(14_995, "USD"); !l.Value().Equal(want) {
		t.Errorf("value after short = %s, want %s", l.Value(), want)
	}
	if got := l.Short("BBB"); got != 100 {
		t.Errorf("Short(BBB) = %d, want 100", got)
	}
}

// TestRoundTripCost checks funds conservation: buying then selling the same
// shares at the same price loses exactly both one-way costs.
func TestRoundTripCost(t *testing.T) {
	l := newTestLedger(t, 100_000)

	if _, err := l.OpenLong(day1, "AAA", 100, 100, 0.001); err != nil {
		t.Fatalf("OpenLong error = %v", err)
	}
	if _, err := l.CloseLong(day1, "AAA", 100, 100, 0.001); err != nil {
		t.Fatalf("CloseLong error = %v", err)
	}

	// 100*100*0.001 paid on each side.
	if want := M(100_000-20, "USD"); !l.Value().Equal(want) {
		t.Errorf("value after round trip = %s, want %s", l.Value(), want)
	}
	if got := l.Long("AAA"); got != 0 {
		t.Errorf("Long(AAA) after full close = %d, want 0", got)
	}
	if l.Positions() != 0 {
		t.Errorf("Positions() after full close = %d, want 0", l.Positions())
	}
}

func TestRejections(t *testing.T) {
	tests := []struct {
		name    string
		trade   func(l *Ledger) (Execution, error)
		wantErr error
	}{
		{
			name: "open long beyond funds",
			trade: func(l *Ledger) (Execution, error) {
				return l.OpenLong(day1, "AAA", 1000, 100, 0.001)
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name: "close long never held",
			trade: func(l *Ledger) (Execution, error) {
				return l.CloseLong(day1, "AAA", 10, 100, 0.001)
			},
			wantErr: ErrInsufficientShares,
		},
		{
			name: "cover never shorted",
			trade: func(l *Ledger) (Execution, error) {
				return l.CloseShort(day1, "AAA", 10, 100, 0.001)
			},
			wantErr: ErrInsufficientShares,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(t, 10_000)
			before := l.Value()

			e, err := tc.trade(l)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("trade error = %v, want %v", err, tc.wantErr)
			}
			if e.Status != Rejected {
				t.Errorf("execution status = %v, want %v", e.Status, Rejected)
			}
			if e.Reason == "" {
				t.Errorf("rejected execution carries no reason")
			}
			if !l.Value().Equal(before) {
				t.Errorf("rejected trade moved value from %s to %s", before, l.Value())
			}
			if l.Positions() != 0 {
				t.Errorf("rejected trade opened a position")
			}
			if got := l.Trades(Rejected); got != 1 {
				t.Errorf("blotter rejected count = %d, want 1", got)
			}
		})
	}
}

func TestCoverBeyondFunds(t *testing.T) {
	l := newTestLedger(t, 1_000)
	if _, err := l.OpenShort(day1, "BBB", 100, 50, 0.001); err != nil {
		t.Fatalf("OpenShort error = %v", err)
	}

	// Price doubled: covering costs 100*100*1.001 = 10,010 > 5,995 held.
	_, err := l.CloseShort(day1.Add(1), "BBB", 100, 100, 0.001)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("CloseShort error = %v, want %v", err, ErrInsufficientFunds)
	}
	if got := l.Short("BBB"); got != 100 {
		t.Errorf("Short(BBB) after rejected cover = %d, want 100", got)
	}
}

func TestNoTwoSidedPosition(t *testing.T) {
	l := newTestLedger(t, 100_000)

	if _, err := l.OpenLong(day1, "AAA", 10, 100, 0.001); err != nil {
		t.Fatalf("OpenLong error = %v", err)
	}
	if _, err := l.OpenShort(day1, "AAA", 10, 100, 0.001); err == nil {
		t.Errorf("OpenShort on a long symbol expected an error, got nil")
	}

	if _, err := l.OpenShort(day1, "BBB", 10, 100, 0.001); err != nil {
		t.Fatalf("OpenShort error = %v", err)
	}
	if _, err := l.OpenLong(day1, "BBB", 10, 100, 0.001); err == nil {
		t.Errorf("OpenLong on a short symbol expected an error, got nil")
	}
}

func TestPartialClose(t *testing.T) {
	l := newTestLedger(t, 100_000)
	if _, err := l.OpenLong(day1, "AAA", 100, 50, 0); err != nil {
		t.Fatalf("OpenLong error = %v", err)
	}
	if _, err := l.CloseLong(day1, "AAA", 40, 50, 0); err != nil {
		t.Fatalf("CloseLong error = %v", err)
	}
	if got := l.Long("AAA"); got != 60 {
		t.Errorf("Long(AAA) after partial close = %d, want 60", got)
	}
}

func TestValidTrade(t *testing.T) {
	l := newTestLedger(t, 100_000)
	tests := []struct {
		name   string
		symbol string
		shares int64
		price  float64
	}{
		{"empty symbol", "", 10, 100},
		{"zero shares", "AAA", 0, 100},
		{"negative shares", "AAA", -5, 100},
		{"zero price", "AAA", 10, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.OpenLong(day1, tc.symbol, tc.shares, tc.price, 0.001); err == nil {
				t.Errorf("OpenLong(%q, %d, %v) expected an error, got nil", tc.symbol, tc.shares, tc.price)
			}
		})
	}
}

func TestRevalue(t *testing.T) {
	l := newTestLedger(t, 1_000)

	before, after := l.Revalue(0.1)
	if !before.Equal(M(1_000, "USD")) || !after.Equal(M(1_100, "USD")) {
		t.Errorf("Revalue(0.1) = %s, %s want $1,000.00, $1,100.00", before, after)
	}

	// A loss beyond 100% floors at zero instead of going negative.
	_, after = l.Revalue(-1.5)
	if !after.IsZero() {
		t.Errorf("Revalue(-1.5) = %s, want zero", after)
	}
	if l.Value().IsNegative() {
		t.Errorf("value went negative: %s", l.Value())
	}
}

func TestBlotterOrder(t *testing.T) {
	l := newTestLedger(t, 100_000)
	l.OpenLong(day1, "AAA", 10, 100, 0.001)
	l.OpenShort(day1, "BBB", 10, 100, 0.001)
	l.CloseLong(day1.Add(1), "AAA", 10, 110, 0.001)

	var actions []Action
	for e := range l.Executions() {
		actions = append(actions, e.Action)
	}
	want := []Action{OpenLong, OpenShort, CloseLong}
	if len(actions) != len(want) {
		t.Fatalf("blotter holds %d executions, want %d", len(actions), len(want))
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Errorf("blotter[%d] = %v, want %v", i, actions[i], want[i])
		}
	}
}
