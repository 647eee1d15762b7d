package longshort

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/longshort/date"
)

// newTestPrices builds a sparse two-symbol table: AAA quoted every day for
// ten days, BBB only on the second and ninth.
func newTestPrices() *PriceTable {
	prices := NewPriceTable()
	for i := range 10 {
		prices.Add("AAA", day1.Add(i), 100+float64(i))
	}
	prices.Add("BBB", day1.Add(1), 50)
	prices.Add("BBB", day1.Add(8), 55)
	return prices
}

func TestPriceTableOn(t *testing.T) {
	prices := NewPriceTable()
	prices.Add("AAA", day1, 100)
	prices.Add("AAA", day1.Add(2), 110)

	if p, err := prices.On("AAA", day1); err != nil || p != 100 {
		t.Errorf("On(AAA, %s) = %v, %v, want 100", day1, p, err)
	}
	if _, err := prices.On("AAA", day1.Add(1)); !errors.Is(err, ErrMissingPrice) {
		t.Errorf("On(AAA, %s) error = %v, want ErrMissingPrice", day1.Add(1), err)
	}
	if _, err := prices.On("ZZZ", day1); !errors.Is(err, ErrMissingPrice) {
		t.Errorf("On(ZZZ, %s) error = %v, want ErrMissingPrice", day1, err)
	}

	// A second quote for the same day replaces the first.
	prices.Add("AAA", day1, 101)
	if p, _ := prices.On("AAA", day1); p != 101 {
		t.Errorf("On(AAA, %s) after overwrite = %v, want 101", day1, p)
	}
}

func TestPriceTableBeforeAfter(t *testing.T) {
	prices := NewPriceTable()
	prices.Add("AAA", day1, 100)
	prices.Add("AAA", day1.Add(2), 110)

	if p, err := prices.Before("AAA", day1.Add(2)); err != nil || p != 100 {
		t.Errorf("Before(AAA, %s) = %v, %v, want 100", day1.Add(2), p, err)
	}
	// Strictly before: the day's own quote does not count.
	if _, err := prices.Before("AAA", day1); !errors.Is(err, ErrMissingPrice) {
		t.Errorf("Before(AAA, %s) error = %v, want ErrMissingPrice", day1, err)
	}
	if p, err := prices.After("AAA", day1); err != nil || p != 110 {
		t.Errorf("After(AAA, %s) = %v, %v, want 110", day1, p, err)
	}
	if _, err := prices.After("AAA", day1.Add(2)); !errors.Is(err, ErrMissingPrice) {
		t.Errorf("After(AAA, %s) error = %v, want ErrMissingPrice", day1.Add(2), err)
	}
}

func TestPriceTableDaysMergeCalendars(t *testing.T) {
	prices := NewPriceTable()
	prices.Add("AAA", day1.Add(4), 104)
	prices.Add("AAA", day1, 100)
	prices.Add("BBB", day1.Add(2), 50)
	prices.Add("BBB", day1.Add(4), 52)

	var got []date.Date
	for on := range prices.Days() {
		got = append(got, on)
	}
	want := []date.Date{day1, day1.Add(2), day1.Add(4)}
	if !slices.Equal(got, want) {
		t.Errorf("Days() = %v, want %v", got, want)
	}
}

func TestPriceTableSnapshotOn(t *testing.T) {
	prices := newTestPrices()

	snap := prices.SnapshotOn(day1.Add(1))
	if len(snap) != 2 || snap["AAA"] != 101 || snap["BBB"] != 50 {
		t.Errorf("SnapshotOn(%s) = %v, want AAA:101 BBB:50", day1.Add(1), snap)
	}
	snap = prices.SnapshotOn(day1.Add(2))
	if len(snap) != 1 || snap["AAA"] != 102 {
		t.Errorf("SnapshotOn(%s) = %v, want AAA:102 only", day1.Add(2), snap)
	}
}

func TestPriceTableSymbols(t *testing.T) {
	prices := newTestPrices()
	got := slices.Collect(prices.Symbols())
	if want := []string{"AAA", "BBB"}; !slices.Equal(got, want) {
		t.Errorf("Symbols() = %v, want %v", got, want)
	}
}

func TestSplitPartitionsByCalendar(t *testing.T) {
	// Ten trading days, ratio 0.7: the cut-off is the eighth day, so seven
	// days of quotes train and three test.
	train, test, err := newTestPrices().Split(0.7)
	if err != nil {
		t.Fatalf("Split(0.7) error = %v", err)
	}
	if got := train.Series("AAA").Len(); got != 7 {
		t.Errorf("train AAA quotes = %d, want 7", got)
	}
	if got := test.Series("AAA").Len(); got != 3 {
		t.Errorf("test AAA quotes = %d, want 3", got)
	}
	if got := train.Series("BBB").Len(); got != 1 {
		t.Errorf("train BBB quotes = %d, want 1", got)
	}
	if got := test.Series("BBB").Len(); got != 1 {
		t.Errorf("test BBB quotes = %d, want 1", got)
	}
	// The cut-off day itself belongs to test.
	if _, err := test.On("AAA", day1.Add(7)); err != nil {
		t.Errorf("test.On(AAA, %s) error = %v, want the cut-off day in test", day1.Add(7), err)
	}
	if _, err := train.On("AAA", day1.Add(6)); err != nil {
		t.Errorf("train.On(AAA, %s) error = %v, want the prior day in train", day1.Add(6), err)
	}
}

func TestSplitRatioOneTrainsOnEverything(t *testing.T) {
	train, test, err := newTestPrices().Split(1)
	if err != nil {
		t.Fatalf("Split(1) error = %v", err)
	}
	if got := train.Series("AAA").Len(); got != 10 {
		t.Errorf("train AAA quotes = %d, want 10", got)
	}
	if got := train.Series("BBB").Len(); got != 2 {
		t.Errorf("train BBB quotes = %d, want 2", got)
	}
	if test.Len() != 0 {
		t.Errorf("test symbols = %d, want 0", test.Len())
	}
}

func TestSplitRejectsBadRatio(t *testing.T) {
	prices := newTestPrices()
	for _, ratio := range []float64{0, -0.5, 1.5} {
		if _, _, err := prices.Split(ratio); err == nil {
			t.Errorf("Split(%v) expected an error, got nil", ratio)
		}
	}
}

func TestSplitEmptyTable(t *testing.T) {
	train, test, err := NewPriceTable().Split(0.7)
	if err != nil {
		t.Fatalf("Split on empty table error = %v", err)
	}
	if train.Len() != 0 || test.Len() != 0 {
		t.Errorf("Split on empty table = %d train, %d test symbols, want 0, 0", train.Len(), test.Len())
	}
}
