package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/extrame/xls"

	"github.com/ledgerpipe/bankfeed/pkg/models"
)

const maxXLSRows = 10000

// ParseCitiMonthlyXLS handles the legacy XLS variant of the monthly export.
// The sheet is flattened back to CSV text and fed through the same block
// parser as the CSV variant.
func (p *Parser) ParseCitiMonthlyXLS(data []byte) (*models.Result[models.StatementRecord], error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening xls workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("flattening xls rows: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flattening xls rows: %w", err)
	}

	return p.parseCitiMonthly(buf.String())
}
