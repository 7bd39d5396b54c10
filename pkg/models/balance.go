package models

import "github.com/shopspring/decimal"

// BalanceRecord is one account's closing position from the daily balance
// summary dump. ClosingLedgerBalance is invalid when the exported value could
// not be parsed as a number.
type BalanceRecord struct {
	CustomerName         string              `json:"Customer_Name"`
	AccountNumber        string              `json:"Account_Number"`
	AccountName          string              `json:"Account_Name"`
	Currency             string              `json:"Currency"`
	StatementDate        string              `json:"Statement_Date"`
	ClosingLedgerBalance decimal.NullDecimal `json:"Closing_Ledger_Balance"`
}
