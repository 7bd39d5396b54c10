package models

// SkipReason explains why a single row or token-stream record was left out of
// a parse result. Row is the line/row index in the source where that is
// meaningful, or the token cursor position for marker-scanned formats.
type SkipReason struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Result is the partial outcome of one parse invocation: the records that
// normalized cleanly plus every row that had to be skipped or defaulted.
// Document-level failures are returned as errors instead, never here.
type Result[T any] struct {
	Records []T
	Skipped []SkipReason
}

// Skip appends a skip entry.
func (r *Result[T]) Skip(row int, reason, detail string) {
	r.Skipped = append(r.Skipped, SkipReason{Row: row, Reason: reason, Detail: detail})
}

// Empty reports whether parsing completed without a single qualifying record.
func (r *Result[T]) Empty() bool {
	return len(r.Records) == 0
}
