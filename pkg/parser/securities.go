package parser

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerpipe/bankfeed/pkg/models"
)

// The broker ships the reconciliation statement as an xlsx workbook whose
// tabular section sits below a title area. The table is located by the
// statement marker in the first column and the transaction date label in one
// of the following rows.
const (
	statementMarker       = "对账单"
	transactionDateHeader = "发生日期"
	securitiesKeyword     = "证券"
	defaultBrokerCurrency = "CNY"

	// Rows scanned past the statement marker when looking for the header.
	headerSearchWindow = 10
)

// Fixed column order of the statement table.
const (
	colTransactionDate = iota
	colSummary
	colAccount
	colSecurityCode
	colSecurityName
	colQuantity
	colShareBalance
	colPrice
	colAmount
	colFee
	colStampTax
	colTransferFee
	colCommissionFee
	colOtherFee
	colFundBalance
)

// ParseBrokerStatementXLSX reads the reconciliation statement, filters it to
// securities fills and groups them by (date, nature, code, name) with summed
// amount/quantity and a quantity-weighted average price. Failure to locate
// the statement table is a document-level error; rows that are not valid
// fills are simply not part of the table and are dropped.
func (p *Parser) ParseBrokerStatementXLSX(data []byte) (*models.Result[models.SecurityTransferRecord], error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	headerRow, err := locateStatementHeader(rows)
	if err != nil {
		return nil, err
	}
	currency := detectBrokerCurrency(rows)
	p.logger.Info("located statement table", "header_row", headerRow, "currency", currency)

	result := &models.Result[models.SecurityTransferRecord]{}
	fills := collectFills(rows[headerRow+1:])
	result.Records = groupFills(fills, currency)

	p.logger.Info("broker statement parse complete",
		"fills", len(fills), "groups", len(result.Records))
	return result, nil
}

// locateStatementHeader finds the row carrying the table's column labels:
// first the row whose leading cell contains the statement marker, then the
// transaction date label within the next few rows.
func locateStatementHeader(rows [][]string) (int, error) {
	for i, row := range rows {
		if len(row) == 0 || !strings.Contains(row[0], statementMarker) {
			continue
		}
		limit := i + headerSearchWindow
		if limit > len(rows) {
			limit = len(rows)
		}
		for j := i + 1; j < limit; j++ {
			for _, c := range rows[j] {
				if strings.Contains(c, transactionDateHeader) {
					return j, nil
				}
			}
		}
		break
	}
	return 0, fmt.Errorf("%w: statement table header", ErrMissingMarker)
}

// detectBrokerCurrency sniffs the statement currency from the title row.
func detectBrokerCurrency(rows [][]string) string {
	if len(rows) == 0 {
		return defaultBrokerCurrency
	}
	for _, c := range rows[0] {
		if !strings.Contains(c, statementMarker) {
			continue
		}
		switch {
		case strings.Contains(c, "港币"), strings.Contains(c, "HKD"):
			return "HKD"
		case strings.Contains(c, "美元"), strings.Contains(c, "USD"):
			return "USD"
		}
		break
	}
	return defaultBrokerCurrency
}

// fill is one securities transaction row before grouping.
type fill struct {
	date    string
	summary string
	code    string
	name    string
	qty     decimal.Decimal
	price   decimal.Decimal
	amount  decimal.Decimal
}

// collectFills keeps rows with a valid compact transaction date, a securities
// nature and a non-empty security code. Everything else in the tail of the
// sheet (totals, footers, cash movements) is not a fill.
func collectFills(rows [][]string) []fill {
	var fills []fill
	for _, row := range rows {
		date := strings.TrimSpace(cell(row, colTransactionDate))
		if !IsValidCompactDate(date) {
			continue
		}
		summary := strings.TrimSpace(cell(row, colSummary))
		if !strings.Contains(summary, securitiesKeyword) {
			continue
		}
		code := strings.TrimSpace(cell(row, colSecurityCode))
		if code == "" {
			continue
		}

		fills = append(fills, fill{
			date:    date,
			summary: summary,
			code:    code,
			name:    strings.TrimSpace(cell(row, colSecurityName)),
			qty:     numericOrZero(cell(row, colQuantity)),
			price:   numericOrZero(cell(row, colPrice)),
			amount:  numericOrZero(cell(row, colAmount)),
		})
	}
	return fills
}

type groupKey struct {
	date    string
	summary string
	code    string
	name    string
}

type groupTotals struct {
	amount   decimal.Decimal
	qty      decimal.Decimal
	priceQty decimal.Decimal
}

// groupFills aggregates fills per composite key. The weighted average price
// is Σ(price·qty)/Σ(qty), zero when the summed quantity is zero. Output is
// ordered by key so results are deterministic.
func groupFills(fills []fill, currency string) []models.SecurityTransferRecord {
	totals := make(map[groupKey]*groupTotals)
	for _, fl := range fills {
		k := groupKey{date: fl.date, summary: fl.summary, code: fl.code, name: fl.name}
		g, ok := totals[k]
		if !ok {
			g = &groupTotals{}
			totals[k] = g
		}
		g.amount = g.amount.Add(fl.amount)
		g.qty = g.qty.Add(fl.qty)
		g.priceQty = g.priceQty.Add(fl.price.Mul(fl.qty))
	}

	keys := make([]groupKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.date != b.date {
			return a.date < b.date
		}
		if a.summary != b.summary {
			return a.summary < b.summary
		}
		if a.code != b.code {
			return a.code < b.code
		}
		return a.name < b.name
	})

	records := make([]models.SecurityTransferRecord, 0, len(keys))
	for _, k := range keys {
		g := totals[k]
		price := decimal.Zero
		if !g.qty.IsZero() {
			price = g.priceQty.Div(g.qty).Round(4)
		}
		date := FormatCompactDate(k.date)
		records = append(records, models.SecurityTransferRecord{
			TransactionDate: date,
			SettlementDate:  date,
			Currency:        currency,
			Amount:          g.amount,
			Nature:          k.summary,
			SecurityCode:    k.code,
			SecurityName:    k.name,
			Quantity:        g.qty.IntPart(),
			MarketPrice:     price,
			Description:     k.summary,
		})
	}
	return records
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func numericOrZero(s string) decimal.Decimal {
	return ParseAmount(s).Decimal
}
