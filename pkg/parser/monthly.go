package parser

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerpipe/bankfeed/pkg/models"
)

// Structural markers of the multi-account monthly export. Each account block
// runs from blockStartMarker to the indicative-rates disclaimer and splits
// into header, transaction and summary sub-regions on the two labels below.
const (
	blockStartMarker  = "Bank Name,"
	blockEndMarker    = "Cross-currency calculations are at indicative rates"
	transactionsLabel = "Entry Date"
	summaryLabel      = "Credit Count"
	chequeLabel       = "Cheque Count"

	// Substituted when a block's header carries no account number.
	unknownAccountNumber = "未知账号"

	// A transaction row maps exactly these many positional fields.
	transactionFieldCount = 10
)

// ParseCitiMonthlyCSV parses the multi-account monthly transaction export.
// A document without a single block start marker yields an empty result, not
// an error; blocks without transaction rows are dropped.
func (p *Parser) ParseCitiMonthlyCSV(data []byte) (*models.Result[models.StatementRecord], error) {
	return p.parseCitiMonthly(string(data))
}

func (p *Parser) parseCitiMonthly(content string) (*models.Result[models.StatementRecord], error) {
	result := &models.Result[models.StatementRecord]{}

	blocks := segmentBlocks(content)
	p.logger.Info("segmented monthly statement", "blocks", len(blocks))

	for i, block := range blocks {
		headerPart, txnPart, summaryPart := splitBlock(block)

		header := p.extractHeader(headerPart)
		txns := p.extractTransactions(txnPart, result)
		summary := p.extractSummary(summaryPart, result)

		if len(txns) == 0 {
			p.logger.Debug("block has no transaction rows, dropping", "block", i+1)
			continue
		}

		for _, txn := range txns {
			result.Records = append(result.Records, assembleRecord(header, txn, summary))
		}
	}

	return result, nil
}

// segmentBlocks splits the document on the block start marker, re-prefixing
// the marker onto each fragment and truncating at the disclaimer. Content
// before the first marker is discarded.
func segmentBlocks(content string) []string {
	parts := strings.Split(content, blockStartMarker)
	if len(parts) <= 1 {
		return nil
	}

	blocks := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		block := blockStartMarker + part
		if idx := strings.Index(block, blockEndMarker); idx >= 0 {
			block = block[:idx]
		}
		blocks = append(blocks, strings.TrimSpace(block))
	}
	return blocks
}

// splitBlock cuts a block into its header, transaction and summary
// sub-regions. A missing label leaves the later regions empty.
func splitBlock(block string) (headerPart, txnPart, summaryPart string) {
	headerPart = block
	idx := strings.Index(block, transactionsLabel)
	if idx < 0 {
		return
	}
	headerPart = block[:idx]
	rest := block[idx:]
	if j := strings.Index(rest, summaryLabel); j >= 0 {
		txnPart = rest[:j]
		summaryPart = rest[j:]
	} else {
		txnPart = rest
	}
	return
}

// extractHeader scans the labelled rows above the transaction table. Rows
// with unrecognized labels are ignored so new header lines don't break older
// files.
func (p *Parser) extractHeader(text string) models.HeaderInfo {
	var info models.HeaderInfo

	rows, err := readRows(text)
	if err != nil {
		p.logger.Warn("unreadable header region", "error", err)
		return info
	}

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		switch row[0] {
		case "Bank Name":
			if len(row) > 1 {
				info.BankName = row[1]
			}
		case "Customer Number / Name":
			if len(row) > 3 {
				info.CustomerNumber = row[1]
				info.CustomerName = row[3]
			}
		case "Branch Number / Name":
			if len(row) > 3 {
				info.BranchNumber = row[1]
				info.BranchName = row[3]
			}
		case "Account Number / Name":
			if len(row) > 3 {
				info.AccountNumber = row[1]
				info.AccountName = row[3]
			}
		case "Account Currency / Type":
			if len(row) > 1 {
				info.AccountCurrency = row[1]
			}
			if len(row) > 3 {
				info.AccountType = row[3]
			}
		}
	}

	return info
}

// extractTransactions maps every row after the column header onto the ten
// positional transaction fields. Rows shorter than the expected field count
// are skipped silently; they are separators and page furniture, not data.
func (p *Parser) extractTransactions(text string, result *models.Result[models.StatementRecord]) []models.TransactionRecord {
	rows, err := readRows(text)
	if err != nil {
		p.logger.Warn("unreadable transaction region", "error", err)
		return nil
	}

	var txns []models.TransactionRecord
	headerFound := false

	for i, row := range rows {
		if len(row) < transactionFieldCount {
			continue
		}
		if row[0] == transactionsLabel {
			headerFound = true
			continue
		}
		if !headerFound {
			continue
		}

		txns = append(txns, models.TransactionRecord{
			EntryDate:             row[0],
			ProductType:           row[1],
			Description:           row[2],
			ValueDate:             row[3],
			BankReference:         row[4],
			CustomerReference:     row[5],
			ConfirmationReference: row[6],
			Beneficiary:           row[7],
			Amount:                amountOrZero(row[8], i, result),
			Currency:              row[9],
		})
	}

	return txns
}

// extractSummary consumes the first data row after the summary header. The
// presence of the cheque label at offset 6 of the header row selects between
// the short and long summary schemas. Each block carries exactly one summary,
// so extraction stops after the first data row.
func (p *Parser) extractSummary(text string, result *models.Result[models.StatementRecord]) models.SummaryInfo {
	var info models.SummaryInfo

	rows, err := readRows(text)
	if err != nil {
		p.logger.Warn("unreadable summary region", "error", err)
		return info
	}

	headerFound := false
	hasCheque := false

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if row[0] == summaryLabel {
			headerFound = true
			hasCheque = len(row) > 6 && row[6] == chequeLabel
			continue
		}
		if !headerFound || len(row) < 6 {
			continue
		}

		info.CreditCount = countOrZero(row[0], i, result)
		info.TotalCreditAmount = amountOrZero(row[1], i, result)
		info.CreditCurrency = row[2]
		info.DebitCount = countOrZero(row[3], i, result)
		info.TotalDebitAmount = amountOrZero(row[4], i, result)
		info.DebitCurrency = row[5]

		switch {
		case hasCheque && len(row) > 9:
			chequeCount := countOrZero(row[6], i, result)
			info.ChequeCount = &chequeCount
			info.ChequeAmount = ParseAmount(row[7])
			info.ChequeCurrency = row[8]
			info.NetAmount = amountOrZero(row[9], i, result)
			if len(row) > 10 {
				info.NetCurrency = row[10]
			}
		case !hasCheque && len(row) > 6:
			info.NetAmount = amountOrZero(row[6], i, result)
			if len(row) > 7 {
				info.NetCurrency = row[7]
			}
		default:
			// Data row too short for its schema: keep the credit/debit
			// columns already captured and record the truncation.
			result.Skip(i, "summary_row_incomplete", strings.Join(row, ","))
		}
		break
	}

	return info
}

// assembleRecord merges the block's header and summary into one transaction.
// The three fragments carry disjoint field sets, so the merge cannot collide.
func assembleRecord(header models.HeaderInfo, txn models.TransactionRecord, summary models.SummaryInfo) models.StatementRecord {
	if header.AccountNumber == "" {
		header.AccountNumber = unknownAccountNumber
	}
	return models.StatementRecord{
		HeaderInfo:        header,
		TransactionRecord: txn,
		SummaryInfo:       summary,
	}
}

// amountOrZero normalizes a monetary field, defaulting to 0.00 and recording
// the coercion failure when a non-empty value cannot be parsed.
func amountOrZero[T any](s string, row int, result *models.Result[T]) decimal.Decimal {
	d := ParseAmount(s)
	if !d.Valid && strings.TrimSpace(s) != "" {
		result.Skip(row, "amount_coercion_failed", s)
	}
	return d.Decimal
}

func countOrZero[T any](s string, row int, result *models.Result[T]) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		result.Skip(row, "count_coercion_failed", s)
		return 0
	}
	return n
}
