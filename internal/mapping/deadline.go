package mapping

import (
	"strings"
	"time"
)

// Deadline layouts tried in order. The year-less layout picks up the
// current calendar year.
var deadlineLayouts = []struct {
	layout  string
	hasYear bool
}{
	{"2006-01-02", true},
	{"01/02/2006", true},
	{"January 2, 2006", true},
	{"January 2", false},
}

// ParseDeadline converts a free-text deadline into a calendar date.
// Empty or unrecognized input yields the current time, so the result is
// never zero but is not stable across calls for bad input.
func ParseDeadline(s string) time.Time {
	t, _ := parseDeadline(s)
	return t
}

func parseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), false
	}

	for _, dl := range deadlineLayouts {
		t, err := time.Parse(dl.layout, s)
		if err != nil {
			continue
		}
		year := t.Year()
		if !dl.hasYear {
			year = time.Now().Year()
		}
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.Local), true
	}

	return time.Now(), false
}
