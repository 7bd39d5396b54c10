package export

import (
	"bytes"
	"encoding/csv"
)

// Row is any normalized record that can project itself onto a CSV line.
type Row interface {
	CSVHeader() []string
	CSVRow() []string
}

type FilterFunc[T Row] func(T) bool

// Create renders records as a CSV document, header included. A nil filter
// keeps everything.
func Create[T Row](records []T, filter FilterFunc[T]) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	var zero T
	_ = w.Write(zero.CSVHeader())
	for _, r := range records {
		if filter == nil || filter(r) {
			_ = w.Write(r.CSVRow())
		}
	}
	w.Flush()
	return buf.Bytes()
}
