package numeric

import (
	"fmt"
	"time"

	"github.com/babbaginator/pyDatasetGen/internal/dice"
)

// DateLayout is the format dates are parsed from and rendered in.
const DateLayout = time.DateOnly

const secondsPerDay = 24 * 60 * 60

// default date range when a schema gives none
var (
	DefaultStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	DefaultEnd   = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
)

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date returns a day in [start, end], both inclusive. Reversed bounds are
// swapped.
func Date(d *dice.Dice, start, end time.Time) time.Time {
	start = day(start)
	end = day(end)
	if end.Before(start) {
		start, end = end, start
	}

	// time.Duration tops out near 292 years
	days := int((end.Unix() - start.Unix()) / secondsPerDay)
	return start.AddDate(0, 0, d.Between(0, days))
}

func day(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
