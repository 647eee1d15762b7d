package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the format used to represent months as strings.
const MonthFormat = "2006-01"

// Month identifies a calendar month, the granularity at which rebalancing
// and allocation snapshots happen.
type Month struct {
	y int
	m time.Month
}

// MonthOf returns the calendar month the date belongs to.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	return MonthOf(New(year, month, 1))
}

// Year returns the month's year.
func (m Month) Year() int { return m.y }

// Before reports whether the month m is before x.
func (m Month) Before(x Month) bool {
	return m.y < x.y || (m.y == x.y && m.m < x.m)
}

// IsZero reports whether the month is the zero value, used as "no month yet".
func (m Month) IsZero() bool { return m == Month{} }

// First returns the first date of the month.
func (m Month) First() Date { return New(m.y, m.m, 1) }

// String formats the month in its standard format.
func (m Month) String() string {
	return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// ParseMonth parses a Month from a string like "2025-07".
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(MonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	y, mo, _ := on.Date()
	return Month{y, mo}, nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseMonth(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
