package longshort

import (
	"testing"

	"github.com/etnz/longshort/date"
)

var techFin = SectorMap{"AAA": "Technology", "BBB": "Technology", "CCC": "Finance"}

func TestRecordCountsBothSides(t *testing.T) {
	l := newTestLedger(t, 1_000_000)
	for _, symbol := range []string{"AAA", "BBB"} {
		if _, err := l.OpenLong(day1, symbol, 10, 100, 0.001); err != nil {
			t.Fatalf("OpenLong(%s): %v", symbol, err)
		}
	}
	if _, err := l.OpenShort(day1, "CCC", 10, 100, 0.001); err != nil {
		t.Fatalf("OpenShort(CCC): %v", err)
	}

	a := new(Allocations)
	month := date.MonthOf(day1)
	a.Record(month, l, techFin)

	snapshot, ok := a.On(month)
	if !ok {
		t.Fatalf("On(%s) missing", month)
	}
	if got := snapshot["Technology"]; !got.Equal(Percent(100 * 2.0 / 3.0)) {
		t.Errorf("Technology = %s, want 66.67%%", got)
	}
	if got := snapshot["Finance"]; !got.Equal(Percent(100 / 3.0)) {
		t.Errorf("Finance = %s, want 33.33%%", got)
	}
}

func TestRecordEmptyBook(t *testing.T) {
	a := new(Allocations)
	month := date.MonthOf(day1)
	a.Record(month, newTestLedger(t, 1_000), SectorMap{})

	snapshot, ok := a.On(month)
	if !ok {
		t.Fatalf("On(%s) missing", month)
	}
	if snapshot == nil || len(snapshot) != 0 {
		t.Errorf("snapshot = %v, want recorded empty breakdown", snapshot)
	}
}

func TestRecordUnknownSector(t *testing.T) {
	l := newTestLedger(t, 1_000_000)
	if _, err := l.OpenLong(day1, "ZZZ", 10, 100, 0.001); err != nil {
		t.Fatalf("OpenLong(ZZZ): %v", err)
	}
	a := new(Allocations)
	month := date.MonthOf(day1)
	a.Record(month, l, techFin)

	snapshot, _ := a.On(month)
	if got := snapshot[""]; !got.Equal(Percent(100)) {
		t.Errorf("unmapped sector = %s, want 100.00%%", got)
	}
}

func TestRecordReplacesMonth(t *testing.T) {
	l := newTestLedger(t, 1_000_000)
	a := new(Allocations)
	month := date.MonthOf(day1)

	a.Record(month, l, techFin)
	if _, err := l.OpenLong(day1, "AAA", 10, 100, 0.001); err != nil {
		t.Fatalf("OpenLong(AAA): %v", err)
	}
	a.Record(month, l, techFin)

	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after re-recording", a.Len())
	}
	snapshot, _ := a.On(month)
	if got := snapshot["Technology"]; !got.Equal(Percent(100)) {
		t.Errorf("Technology = %s, want 100.00%% from the later record", got)
	}
}

func TestMonthsSorted(t *testing.T) {
	l := newTestLedger(t, 1_000)
	a := new(Allocations)
	a.Record(date.NewMonth(2025, 3), l, nil)
	a.Record(date.NewMonth(2025, 1), l, nil)
	a.Record(date.NewMonth(2025, 2), l, nil)

	var got []string
	for m := range a.Months() {
		got = append(got, m.String())
	}
	want := []string{"2025-01", "2025-02", "2025-03"}
	if len(got) != len(want) {
		t.Fatalf("Months() yielded %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("month %d = %s, want %s", i, got[i], want[i])
		}
	}
}
