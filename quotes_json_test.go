package longshort

import (
	"strings"
	"testing"

	"github.com/etnz/longshort/date"
)

func TestImportQuotesJSON(t *testing.T) {
	sample := `
{"code":"AAA","sector":"Technology","quotes":[{"date":"2025-01-02","close":100},{"date":"2025-01-03","close":101.5}]}
{"code":"CCC","sector":"Finance","quotes":[{"date":"2025-01-02","close":"50,25"}]}
`
	prices, sectors, err := ImportQuotesJSON(strings.NewReader(strings.TrimSpace(sample)))
	if err != nil {
		t.Fatalf("cannot import sample: %v", err)
	}

	if close, err := prices.On("AAA", date.New(2025, 1, 3)); err != nil || close != 101.5 {
		t.Errorf("On(AAA, 2025-01-03) = %g, %v, want 101.5", close, err)
	}
	// string number with a comma decimal mark
	if close, err := prices.On("CCC", date.New(2025, 1, 2)); err != nil || close != 50.25 {
		t.Errorf("On(CCC, 2025-01-02) = %g, %v, want 50.25", close, err)
	}
	if got := sectors["AAA"]; got != "Technology" {
		t.Errorf("sectors[AAA] = %q, want Technology", got)
	}
}

func TestImportQuotesJSONSkipsBadQuotes(t *testing.T) {
	sample := `{"code":"AAA","sector":"Technology","quotes":[{"date":"2025-01-02","close":100},{"date":"bad","close":101},{"date":"2025-01-03","close":-1},{"date":"2025-01-06","close":102}]}`

	prices, _, err := ImportQuotesJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("cannot import sample: %v", err)
	}
	if got := prices.Series("AAA").Len(); got != 2 {
		t.Errorf("kept %d closes, want the 2 valid ones", got)
	}
}

func TestImportQuotesJSONRejectsBadLine(t *testing.T) {
	if _, _, err := ImportQuotesJSON(strings.NewReader("{not json}")); err == nil {
		t.Error("ImportQuotesJSON accepted a corrupt feed")
	}
	if _, _, err := ImportQuotesJSON(strings.NewReader(`{"sector":"x","quotes":[]}`)); err == nil {
		t.Error("ImportQuotesJSON accepted a line without a code")
	}
}
