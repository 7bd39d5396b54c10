package parser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func encodeBalanceStream(t *testing.T, tokens []string) []byte {
	t.Helper()
	content := `"` + strings.Join(tokens, `","`) + `"`
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	data, err := enc.Bytes([]byte(content))
	require.NoError(t, err)
	return data
}

func TestParseCitiDailyBalance(t *testing.T) {
	tokens := []string{
		"Daily Balance Summary",
		"Customer Number / Name", "C123", "ACME Trading Ltd",
		"Account Number / Name", "111", "Operating USD",
		"Account Currency / Type", "USD", "Current",
		"=", "2026-01-15", "Opening Ledger", "1,000.00", "100.00",
		"Account Number / Name", "222", "Broken Account",
		"Account Currency / Type", "USD", "Current",
		"no balance marker here",
		"Account Number / Name", "333", "Savings HKD",
		"Account Currency / Type", "HKD", "Savings",
		"=", "2026-01-15", "Opening Ledger", "2,000.00", "250.50-",
	}

	result, err := testParser().ParseCitiDailyBalance(encodeBalanceStream(t, tokens))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	r := result.Records[0]
	assert.Equal(t, "ACME Trading Ltd", r.CustomerName)
	assert.Equal(t, "111", r.AccountNumber)
	assert.Equal(t, "Operating USD", r.AccountName)
	assert.Equal(t, "USD", r.Currency)
	assert.Equal(t, "2026-01-15", r.StatementDate)
	require.True(t, r.ClosingLedgerBalance.Valid)
	assert.True(t, r.ClosingLedgerBalance.Decimal.Equal(decimal.RequireFromString("100.00")))

	// The customer name persists across account records, and the account
	// missing its balance marker does not derail the one after it.
	r = result.Records[1]
	assert.Equal(t, "ACME Trading Ltd", r.CustomerName)
	assert.Equal(t, "333", r.AccountNumber)
	assert.Equal(t, "HKD", r.Currency)
	require.True(t, r.ClosingLedgerBalance.Valid)
	assert.True(t, r.ClosingLedgerBalance.Decimal.Equal(decimal.RequireFromString("-250.50")))

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "account_record_incomplete", result.Skipped[0].Reason)
}

func TestParseCitiDailyBalanceNoAccounts(t *testing.T) {
	result, err := testParser().ParseCitiDailyBalance(encodeBalanceStream(t, []string{
		"Daily Balance Summary", "nothing", "to", "see",
	}))
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.Skipped)
}

func TestDecodeUTF16BEStripsBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	data, err := enc.Bytes([]byte("\ufeffhello"))
	require.NoError(t, err)

	got, err := decodeUTF16BE(data)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestSplitQuoted(t *testing.T) {
	fields := splitQuoted(`"a","b,with,commas","c"`)
	assert.Equal(t, []string{"a", "b,with,commas", "c"}, fields)
}
