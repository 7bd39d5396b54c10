package models

import "github.com/shopspring/decimal"

// SecurityTransferRecord is one grouped line of the broker reconciliation
// statement: all fills of a security on one day under one transaction nature,
// with summed amount/quantity and the quantity-weighted average price.
//
// The "Descrption" key spelling is what downstream consumers already accept.
type SecurityTransferRecord struct {
	TransactionDate string          `json:"Transaction Date"`
	SettlementDate  string          `json:"Settlement Date"`
	Currency        string          `json:"Currency"`
	Amount          decimal.Decimal `json:"Amount"`
	Nature          string          `json:"Nature"`
	SecurityCode    string          `json:"Security Code"`
	SecurityName    string          `json:"Security Name"`
	Quantity        int64           `json:"Quantity"`
	MarketPrice     decimal.Decimal `json:"Market Price"`
	Description     string          `json:"Descrption"`
}
