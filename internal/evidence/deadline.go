package evidence

import (
	"fmt"
	"strings"
	"time"
)

// Issuing decisions carry dates in the dd/mm/yyyy convention; ISO dates
// appear in records written by newer admin tooling.
var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006"}

// ParseDate parses a reference date from an assigned document or declared
// provincial plan.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// AddBusinessDays advances a date by n working days, skipping Saturdays and
// Sundays. Deadline requirements such as "7 ngày làm việc" count working
// days, not calendar days.
func AddBusinessDays(start time.Time, n int) time.Time {
	t := start
	for added := 0; added < n; {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return t
}
