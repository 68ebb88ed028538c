package parser

import (
	"regexp"
	"strconv"
	"time"
)

var (
	dayMonthRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)
	monthRe    = regexp.MustCompile(`tháng\s*(\d{1,2})\b`)
	dayRe      = regexp.MustCompile(`ngày\s*(\d{1,2})\b`)
)

// resolveDate extracts an explicit day/month reference from the
// lowercased input and resolves it against now. A dd/mm reference wins
// over the tháng/ngày forms. Partial references that would land in the
// past roll forward: a bare month to next year, a bare day to next
// month. With no reference at all the result is now itself.
func resolveDate(input string, now time.Time) time.Time {
	if m := dayMonthRe.FindStringSubmatch(input); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if validDay(day) && validMonth(month) {
			return time.Date(now.Year(), time.Month(month), day,
				now.Hour(), now.Minute(), now.Second(), 0, now.Location())
		}
	}

	t := now
	matched := false

	if m := monthRe.FindStringSubmatch(input); m != nil {
		if month, _ := strconv.Atoi(m[1]); validMonth(month) {
			t = time.Date(t.Year(), time.Month(month), t.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, t.Location())
			if t.Before(now) {
				t = t.AddDate(1, 0, 0)
			}
			matched = true
		}
	}

	if m := dayRe.FindStringSubmatch(input); m != nil {
		if day, _ := strconv.Atoi(m[1]); validDay(day) {
			t = time.Date(t.Year(), t.Month(), day,
				t.Hour(), t.Minute(), t.Second(), 0, t.Location())
			if t.Before(now) {
				t = t.AddDate(0, 1, 0)
			}
			matched = true
		}
	}

	if !matched {
		return now
	}
	return t
}

func validDay(d int) bool {
	return d >= 1 && d <= 31
}

func validMonth(m int) bool {
	return m >= 1 && m <= 12
}
