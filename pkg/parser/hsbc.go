package parser

import (
	"fmt"
	"strings"

	"github.com/ledgerpipe/bankfeed/pkg/models"
)

// Source column labels of the labelled-column monthly export. The file needs
// no block segmentation; every data row is one transaction.
const (
	hsbcColAccountName   = "Account name"
	hsbcColAccountNumber = "Account number (preferred / formatted)"
	hsbcColCountry       = "Country/Territory"
	hsbcColValueDate     = "Value date"
	hsbcColTxnType       = "Transaction type"
	hsbcColCurrency      = "Account currency"
	hsbcColAmount        = "Transaction amount"
	hsbcColNarrative     = "Transaction narrative"
	hsbcColBankRef       = "Bank reference"
	hsbcColCustomerRef   = "Customer reference"
	hsbcColSupplementary = "Supplementary detail"
)

// ParseHSBCMonthlyCSV parses the labelled-column monthly export. Rows whose
// value date or amount cannot be normalized are kept with an empty date or a
// zero amount, and the coercion failure is recorded as skipped.
func (p *Parser) ParseHSBCMonthlyCSV(data []byte) (*models.Result[models.HSBCTransaction], error) {
	rows, err := readRows(string(data))
	if err != nil {
		return nil, fmt.Errorf("reading csv content: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	colIdx := make(map[string]int, len(rows[0]))
	for i, label := range rows[0] {
		colIdx[strings.TrimSpace(label)] = i
	}
	field := func(row []string, label string) string {
		i, ok := colIdx[label]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &models.Result[models.HSBCTransaction]{}
	for i, row := range rows[1:] {
		rowNum := i + 1

		rawDate := field(row, hsbcColValueDate)
		valueDate, ok := FromDayMonthYear(rawDate)
		if !ok && rawDate != "" {
			result.Skip(rowNum, "invalid_value_date", rawDate)
		}

		rawAmount := field(row, hsbcColAmount)
		amount := ParseAmount(rawAmount)
		if !amount.Valid && rawAmount != "" {
			result.Skip(rowNum, "amount_coercion_failed", rawAmount)
		}

		// Account type rides inside the account number field after a slash.
		accountNumber := field(row, hsbcColAccountNumber)
		accountType := ""
		if idx := strings.Index(accountNumber, "/"); idx >= 0 {
			accountType = accountNumber[strings.LastIndex(accountNumber, "/")+1:]
			accountNumber = accountNumber[:idx]
		}

		result.Records = append(result.Records, models.HSBCTransaction{
			AccountName:         field(row, hsbcColAccountName),
			AccountNumber:       accountNumber,
			AccountType:         accountType,
			CountryTerritory:    field(row, hsbcColCountry),
			ValueDate:           valueDate,
			TransactionType:     field(row, hsbcColTxnType),
			Currency:            field(row, hsbcColCurrency),
			Amount:              amount.Decimal,
			Description:         field(row, hsbcColNarrative),
			BankReference:       field(row, hsbcColBankRef),
			CustomerReference:   field(row, hsbcColCustomerRef),
			SupplementaryDetail: field(row, hsbcColSupplementary),
		})
	}

	p.logger.Info("hsbc monthly parse complete",
		"records", len(result.Records), "skipped", len(result.Skipped))
	return result, nil
}
