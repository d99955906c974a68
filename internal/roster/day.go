package roster

import (
	"strconv"
	"strings"
	"time"
)

// dayLayouts are the layouts excelize renders date-typed header cells with,
// depending on the cell style the workbook author picked. All of them carry a
// midnight time component because the header cell holds a pure date.
var dayLayouts = []string{
	"2006-01-02 15:04:05",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"02/01/2006 15:04",
	"2006-01-02T15:04:05Z07:00",
}

// ExtractDay decides whether a raw column label denotes a day of month and
// returns the normalized day number. Recognized forms, in priority order:
//
//  1. date-time renders of a date-typed cell ("2026-02-23 00:00:00")
//  2. compound labels with "/" or "." separators ("22/2", "23.0")
//  3. bare digit strings ("23")
//
// The value is accepted only when it lands in [1,31]. Anything else means
// "not a day column"; the function never fails on junk input.
func ExtractDay(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if strings.HasSuffix(s, "00:00") || strings.HasSuffix(s, "00:00:00") {
		for _, layout := range dayLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return checkDay(t.Day())
			}
		}
	}

	// "22/2" and "23.0" keep the day in the first segment.
	if i := strings.IndexAny(s, "/."); i >= 0 {
		s = s[:i]
	}

	day, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return checkDay(day)
}

func checkDay(day int) (int, bool) {
	if day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}
