package longshort

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/longshort/date"
)

// this file contains functions to handle the quote ingestion formats.
// Both are plain CSV so a universe can be assembled in a spreadsheet.

// marketLayout is the day-first layout of market benchmark files.
const marketLayout = "02-01-2006"

// ImportQuotesCSV imports a stock universe from 'r'.
//
// Each record carries sector, symbol, date and close in that order. A
// header line is tolerated. Records that do not parse, or carry a non
// positive close, are skipped with a log line so one bad row cannot sink a
// whole universe.
func ImportQuotesCSV(r io.Reader) (*PriceTable, SectorMap, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	prices := NewPriceTable()
	sectors := make(SectorMap)

	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("skipping quote line %d: %v", n, err)
			continue
		}
		sector, symbol, on, close, err := parseQuote(rec)
		if err != nil {
			if n > 1 {
				log.Printf("skipping quote line %d: %v", n, err)
			}
			continue
		}
		prices.Add(symbol, on, close)
		sectors[symbol] = sector
	}
	return prices, sectors, nil
}

func parseQuote(rec []string) (sector, symbol string, on date.Date, close float64, err error) {
	if len(rec) < 4 {
		return "", "", date.Date{}, 0, fmt.Errorf("want 4 fields, got %d", len(rec))
	}
	sector = strings.TrimSpace(rec[0])
	symbol = strings.TrimSpace(rec[1])
	if symbol == "" {
		return "", "", date.Date{}, 0, fmt.Errorf("empty symbol")
	}
	on, err = date.Parse(strings.TrimSpace(rec[2]))
	if err != nil {
		return "", "", date.Date{}, 0, err
	}
	close, err = strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil {
		return "", "", date.Date{}, 0, err
	}
	if close <= 0 {
		return "", "", date.Date{}, 0, fmt.Errorf("close %g is not positive", close)
	}
	return sector, symbol, on, close, nil
}

// ImportMarketCSV imports a market benchmark return series from 'r'.
//
// Each record carries a day first date and the day's return in percent,
// stored as its fraction. A header line is tolerated and bad records are
// skipped with a log line.
func ImportMarketCSV(r io.Reader) (*date.History[float64], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	series := new(date.History[float64])
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("skipping market line %d: %v", n, err)
			continue
		}
		on, pct, err := parseMarket(rec)
		if err != nil {
			if n > 1 {
				log.Printf("skipping market line %d: %v", n, err)
			}
			continue
		}
		series.Append(on, pct/100)
	}
	return series, nil
}

func parseMarket(rec []string) (on date.Date, pct float64, err error) {
	if len(rec) < 2 {
		return date.Date{}, 0, fmt.Errorf("want 2 fields, got %d", len(rec))
	}
	t, err := time.Parse(marketLayout, strings.TrimSpace(rec[0]))
	if err != nil {
		return date.Date{}, 0, err
	}
	pct, err = strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return date.Date{}, 0, err
	}
	return date.New(t.Year(), t.Month(), t.Day()), pct, nil
}

// ExportQuotesCSV exports a universe to 'w' in the quote CSV format, sorted
// by symbol then date so the output is diffable.
func ExportQuotesCSV(w io.Writer, prices *PriceTable, sectors SectorMap) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sector", "symbol", "date", "close"}); err != nil {
		return fmt.Errorf("cannot write quote header: %w", err)
	}
	for symbol := range prices.Symbols() {
		for on, close := range prices.Series(symbol).Values() {
			rec := []string{sectors[symbol], symbol, on.String(), strconv.FormatFloat(close, 'f', -1, 64)}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("cannot write quote for %q: %w", symbol, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
