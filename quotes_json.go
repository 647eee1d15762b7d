package longshort

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/etnz/longshort/date"
)

// ImportQuotesJSON imports a stock universe from 'r' in the feed dump
// format.
//
// The format is a JSONL file, one symbol per line. Each line is a JSON
// object whose property 'code' is the symbol, 'sector' its sector name,
// and 'quotes' a list of objects each carrying a 'date' and a 'close'.
// Quotes that do not parse, or carry a non positive close, are skipped
// with a log line.
func ImportQuotesJSON(r io.Reader) (*PriceTable, SectorMap, error) {
	prices := NewPriceTable()
	sectors := make(SectorMap)

	scanner := bufio.NewScanner(r)
	// a line holds a symbol's whole history
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jobj any
		if err := json.Unmarshal(line, &jobj); err != nil {
			return nil, nil, fmt.Errorf("cannot parse line %d of quote feed: %w", n, err)
		}

		symbol, err := jsonString(jobj, "$.code")
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", n, err)
		}
		// feed lines without a sector fall under the empty one
		if sector, err := jsonString(jobj, "$.sector"); err == nil {
			sectors[symbol] = sector
		} else {
			sectors[symbol] = ""
		}

		jval, err := jsonpath.Get("$.quotes[*]", jobj)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: error parsing %q: %w", n, "$.quotes", err)
		}
		jquotes, ok := jval.([]any)
		if !ok {
			return nil, nil, fmt.Errorf("line %d: %q is not a list", n, "$.quotes")
		}
		for i, jq := range jquotes {
			day, err := jsonString(jq, "$.date")
			if err != nil {
				log.Printf("skipping quote %d of %s: %v", i, symbol, err)
				continue
			}
			on, err := date.Parse(day)
			if err != nil {
				log.Printf("skipping quote %d of %s: %v", i, symbol, err)
				continue
			}
			close, err := jsonFloat(jq, "$.close")
			if err != nil || close <= 0 {
				log.Printf("skipping quote of %s on %s: close %g %v", symbol, on, close, err)
				continue
			}
			prices.Add(symbol, on, close)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("cannot read quote feed: %w", err)
	}
	return prices, sectors, nil
}

// jsonString evaluates a jsonpath that must yield a string.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return s, nil
}

// jsonFloat evaluates a jsonpath that must yield a number. Some feeds
// serve their numbers as strings, with a comma decimal mark at that, so
// those are converted.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	if sval, ok := jval.(string); ok {
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err := strconv.ParseFloat(sval, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("%q is an invalid number string %q: %w", path, sval, err)
		}
		return val, nil
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%q is not a number: %v", path, jval)
	}
	return val, nil
}
