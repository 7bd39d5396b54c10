package parser

import (
	"bytes"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
)

// Format identifies one of the supported report families.
type Format string

const (
	CitiMonthlyCSV      Format = "citi_monthly_csv"
	CitiMonthlyXLS      Format = "citi_monthly_xls"
	CitiDailyBalance    Format = "citi_daily_balance"
	HSBCMonthlyCSV      Format = "hsbc_monthly_csv"
	BrokerStatementXLSX Format = "broker_statement_xlsx"
)

// Document-level failures. Row-level problems never surface as errors; they
// are collected in the result's Skipped list.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingMarker     = errors.New("required structural marker not found")
)

// Parser converts raw bank export bytes into normalized record sets. It holds
// no per-document state; one Parser may be shared across goroutines.
type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// DetectFormat guesses the report family from the file name. Returns "" when
// nothing matches; callers must then pass an explicit format.
func DetectFormat(filename string) Format {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "balance"):
		return CitiDailyBalance
	case strings.Contains(name, "hsbc"):
		return HSBCMonthlyCSV
	case strings.HasSuffix(name, ".xlsx"):
		return BrokerStatementXLSX
	case strings.HasSuffix(name, ".xls"):
		return CitiMonthlyXLS
	case strings.HasSuffix(name, ".csv"):
		return CitiMonthlyCSV
	}
	return ""
}

// RefineCSVFormat settles the ambiguity a plain .csv filename leaves behind:
// the labelled HSBC header row in the content overrides the generic guess.
func RefineCSVFormat(format Format, data []byte) Format {
	if format != CitiMonthlyCSV {
		return format
	}
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	if bytes.Contains(head, []byte(hsbcColAccountNumber)) {
		return HSBCMonthlyCSV
	}
	return format
}
