package parser

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ledgerpipe/bankfeed/pkg/models"
)

// Marker tokens of the daily balance summary dump. The document is one flat
// quote-delimited token stream; field positions are relative to these
// markers, not to line or column numbers.
const (
	customerMarker    = "Customer Number / Name"
	accountMarker     = "Account Number / Name"
	currencyMarker    = "Account Currency / Type"
	balanceDateMarker = "="
)

// ParseCitiDailyBalance parses the daily balance summary report. The bank
// exports it as UTF-16BE text. A malformed account record is skipped and the
// scan continues; only an undecodable document is an error.
func (p *Parser) ParseCitiDailyBalance(data []byte) (*models.Result[models.BalanceRecord], error) {
	content, err := decodeUTF16BE(data)
	if err != nil {
		return nil, err
	}

	s := balanceScanner{
		fields: splitQuoted(content),
		result: &models.Result[models.BalanceRecord]{},
		logger: p.logger,
	}
	s.run()

	p.logger.Info("daily balance scan complete",
		"records", len(s.result.Records), "skipped", len(s.result.Skipped))
	return s.result, nil
}

// balanceScanner walks the token stream once, left to right. The customer
// name set by the last customer marker stays in effect for every following
// account record until the next customer marker overwrites it.
type balanceScanner struct {
	fields       []string
	pos          int
	customerName string
	result       *models.Result[models.BalanceRecord]
	logger       *log.Logger
}

func (s *balanceScanner) run() {
	for s.pos < len(s.fields) {
		switch strings.TrimSpace(s.fields[s.pos]) {
		case customerMarker:
			if s.pos+2 < len(s.fields) {
				s.customerName = strings.TrimSpace(s.fields[s.pos+2])
			}
			s.pos++
		case accountMarker:
			s.extractRecord()
		default:
			s.pos++
		}
	}
}

// extractRecord reads one account record at fixed offsets around the balance
// date marker. Lookups stop at the next account or customer marker so a
// malformed record can never consume tokens that belong to the following
// account; any failed lookup abandons this record and advances a single token.
func (s *balanceScanner) extractRecord() {
	i := s.pos
	end := s.recordEnd(i)

	eq := indexOfToken(s.fields, balanceDateMarker, i+3, end)
	if i+2 >= end || eq < 0 || eq+4 >= end {
		s.logger.Debug("incomplete account record, skipping", "pos", i)
		s.result.Skip(i, "account_record_incomplete", "balance marker not found")
		s.pos++
		return
	}

	c := indexOfToken(s.fields, currencyMarker, i+3, end)
	if c < 0 || c+1 >= end {
		s.logger.Debug("incomplete account record, skipping", "pos", i)
		s.result.Skip(i, "account_record_incomplete", "currency marker not found")
		s.pos++
		return
	}

	balanceIdx := eq + 4
	s.result.Records = append(s.result.Records, models.BalanceRecord{
		CustomerName:         s.customerName,
		AccountNumber:        strings.TrimSpace(s.fields[i+1]),
		AccountName:          strings.TrimSpace(s.fields[i+2]),
		Currency:             strings.TrimSpace(s.fields[c+1]),
		StatementDate:        strings.TrimSpace(s.fields[eq+1]),
		ClosingLedgerBalance: ParseAmount(s.fields[balanceIdx]),
	})
	s.pos = balanceIdx + 1
}

// recordEnd returns the index of the next structural marker after pos, or the
// stream length when the current account record is the last one.
func (s *balanceScanner) recordEnd(pos int) int {
	for j := pos + 1; j < len(s.fields); j++ {
		switch strings.TrimSpace(s.fields[j]) {
		case accountMarker, customerMarker:
			return j
		}
	}
	return len(s.fields)
}

func indexOfToken(fields []string, token string, from, to int) int {
	for i := from; i < to; i++ {
		if fields[i] == token {
			return i
		}
	}
	return -1
}
