package models

import "github.com/shopspring/decimal"

// HSBCTransaction is one row of the labelled-column monthly export. The
// source file carries the account type inside the account number field; the
// parser splits them on "/".
type HSBCTransaction struct {
	AccountName         string          `json:"Account_Name"`
	AccountNumber       string          `json:"Account_Number"`
	AccountType         string          `json:"Account_Type"`
	CountryTerritory    string          `json:"Country_Territory"`
	ValueDate           string          `json:"Value_Date"`
	TransactionType     string          `json:"Transaction_Type"`
	Currency            string          `json:"Currency"`
	Amount              decimal.Decimal `json:"Amount"`
	Description         string          `json:"Transaction_Description"`
	BankReference       string          `json:"Bank_Reference"`
	CustomerReference   string          `json:"Customer_Reference"`
	SupplementaryDetail string          `json:"Supplementary_Detail"`
}
