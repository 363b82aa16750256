package timelog

import (
	"fmt"
	"time"
)

// dateLayout is the canonical calendar-date format used throughout.
const dateLayout = "2006-01-02"

// timestampLayouts covers the upstream timestamp shapes: RFC3339 from
// GitLab's spentAt, and Jira's started (millisecond precision, numeric
// offset without a colon).
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// WorkDate converts an upstream timestamp to the YYYY-MM-DD calendar
// date it falls on in loc. Bucketing follows the clock of loc: two
// processes configured with different zones will bucket the same
// timelog into different days.
func WorkDate(ts string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.In(loc).Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized timestamp %q", ts)
}

// PreviousDay returns the date before now as YYYY-MM-DD.
func PreviousDay(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(dateLayout)
}

// DatesToFetch picks the default reporting dates: the previous Friday
// through Sunday when now falls on a Monday, otherwise just yesterday.
func DatesToFetch(now time.Time) []string {
	if now.Weekday() != time.Monday {
		return []string{PreviousDay(now)}
	}
	dates := make([]string, 0, 3)
	for i := 3; i >= 1; i-- {
		dates = append(dates, now.AddDate(0, 0, -i).Format(dateLayout))
	}
	return dates
}

// FormatDateRange renders a span like "2024-01-10 to 2024-01-12".
func FormatDateRange(dates []string) string {
	switch len(dates) {
	case 0:
		return ""
	case 1:
		return dates[0]
	}
	return fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1])
}
