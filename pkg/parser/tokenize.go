package parser

import (
	"encoding/csv"
	"strings"
)

// splitQuoted splits a whole document on the literal `","` sequence and
// strips the outermost quotes, yielding the flat token stream the
// daily-balance scanner walks. Unterminated quoting simply leaves the stray
// quote character inside the affected token.
func splitQuoted(content string) []string {
	fields := strings.Split(content, `","`)
	if len(fields) > 0 {
		fields[0] = strings.TrimPrefix(fields[0], `"`)
		fields[len(fields)-1] = strings.TrimSuffix(fields[len(fields)-1], `"`)
	}
	return fields
}

// readRows parses text as CSV-quoted rows with a variable field count.
// LazyQuotes keeps malformed quoting a best-effort token instead of an error.
func readRows(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}
