package parser

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildBrokerWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i := range rows {
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var brokerHeaderRow = []any{
	"发生日期", "摘要", "资金账户", "证券代码", "证券名称", "成交数量", "股份余额",
	"成交价格", "发生金额", "手续费", "印花税", "过户费", "佣金", "其他费", "资金余额",
}

func brokerFillRow(date, summary, code, name, qty, price, amount string) []any {
	return []any{date, summary, "A100200300", code, name, qty, "0", price, amount,
		"0", "0", "0", "0", "0", "0"}
}

func TestParseBrokerStatementXLSX(t *testing.T) {
	data := buildBrokerWorkbook(t, [][]any{
		{"某某证券股份有限公司客户对账单(人民币)"},
		{"资金账号: A100200300"},
		brokerHeaderRow,
		brokerFillRow("20260115", "证券买入", "600519", "贵州茅台", "100", "10", "1000"),
		brokerFillRow("20260115", "证券买入", "600519", "贵州茅台", "200", "11", "2200"),
		brokerFillRow("20260115", "证券买入", "600519", "贵州茅台", "300", "12", "3600"),
		brokerFillRow("20260115", "证券卖出", "000001", "平安银行", "0", "5", "0"),
		brokerFillRow("20260116", "银行转存", "", "", "0", "0", "10000"),
		{"合计", "", "", "", "", "600", "", "", "6800"},
	})

	result, err := testParser().ParseBrokerStatementXLSX(data)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	// Three fills of the same security collapse into one record with summed
	// quantity/amount and the quantity-weighted average price.
	buy := result.Records[0]
	assert.Equal(t, "2026-01-15", buy.TransactionDate)
	assert.Equal(t, "2026-01-15", buy.SettlementDate)
	assert.Equal(t, "CNY", buy.Currency)
	assert.Equal(t, "证券买入", buy.Nature)
	assert.Equal(t, "600519", buy.SecurityCode)
	assert.Equal(t, "贵州茅台", buy.SecurityName)
	assert.EqualValues(t, 600, buy.Quantity)
	assert.True(t, buy.Amount.Equal(decimal.NewFromInt(6800)), "amount %s", buy.Amount)
	assert.True(t, buy.MarketPrice.Equal(decimal.RequireFromString("11.3333")), "price %s", buy.MarketPrice)
	assert.Equal(t, "证券买入", buy.Description)

	sell := result.Records[1]
	assert.Equal(t, "000001", sell.SecurityCode)
	assert.EqualValues(t, 0, sell.Quantity)
	assert.True(t, sell.MarketPrice.IsZero())
}

func TestParseBrokerStatementCurrency(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"某某证券客户对账单(港币)", "HKD"},
		{"某某证券客户对账单(美元)", "USD"},
		{"某某证券客户对账单", "CNY"},
	}
	for _, tt := range tests {
		data := buildBrokerWorkbook(t, [][]any{
			{tt.title},
			brokerHeaderRow,
			brokerFillRow("20260115", "证券买入", "600519", "贵州茅台", "100", "10", "1000"),
		})
		result, err := testParser().ParseBrokerStatementXLSX(data)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, tt.want, result.Records[0].Currency, tt.title)
	}
}

func TestParseBrokerStatementMissingMarker(t *testing.T) {
	data := buildBrokerWorkbook(t, [][]any{
		{"random"},
		{"stuff"},
	})
	_, err := testParser().ParseBrokerStatementXLSX(data)
	require.ErrorIs(t, err, ErrMissingMarker)

	// Statement marker present but no table header within the search window.
	data = buildBrokerWorkbook(t, [][]any{
		{"某某证券客户对账单(人民币)"},
		{"资金账号: A100200300"},
	})
	_, err = testParser().ParseBrokerStatementXLSX(data)
	require.ErrorIs(t, err, ErrMissingMarker)
}

func TestParseBrokerStatementNotAWorkbook(t *testing.T) {
	_, err := testParser().ParseBrokerStatementXLSX([]byte("not an xlsx"))
	require.Error(t, err)
}
