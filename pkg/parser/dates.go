package parser

import (
	"regexp"
	"strconv"
	"time"
)

var compactDatePattern = regexp.MustCompile(`^\d{8}$`)

// Statement dates are rendered in the bank's local calendar regardless of
// where the service runs.
var reportLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}()

// IsValidCompactDate reports whether s is an 8-digit YYYYMMDD date string.
// Anything else, including already-formatted dates, is rejected.
func IsValidCompactDate(s string) bool {
	return compactDatePattern.MatchString(s)
}

// FormatCompactDate rewrites YYYYMMDD as YYYY-MM-DD. Input that is not eight
// characters long is returned unchanged.
func FormatCompactDate(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8]
}

// FromEpochMillis converts a milliseconds-since-epoch value to a YYYY-MM-DD
// date in the report timezone. The bool is false for unparsable input.
func FromEpochMillis(s string) (string, bool) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "", false
	}
	return time.UnixMilli(ms).In(reportLocation).Format("2006-01-02"), true
}

// FromDayMonthYear converts a DD/MM/YYYY date to YYYY-MM-DD. The bool is
// false for unparsable input.
func FromDayMonthYear(s string) (string, bool) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
