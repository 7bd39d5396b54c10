package models

import "github.com/shopspring/decimal"

func init() {
	// Downstream consolidation expects amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// HeaderInfo is the bank/account identity captured from the labelled rows at
// the top of a statement block. Fields left empty when the label is absent.
type HeaderInfo struct {
	BankName        string `json:"Bank_Name"`
	CustomerNumber  string `json:"Customer_Number"`
	CustomerName    string `json:"Customer_Name"`
	BranchNumber    string `json:"Branch_Number"`
	BranchName      string `json:"Branch_Name"`
	AccountNumber   string `json:"Account_Number"`
	AccountName     string `json:"Account_Name"`
	AccountCurrency string `json:"Account_Currency"`
	AccountType     string `json:"Account_Type"`
}

// TransactionRecord is one transaction row of a statement block.
type TransactionRecord struct {
	EntryDate             string          `json:"Entry_Date"`
	ProductType           string          `json:"Product_Type"`
	Description           string          `json:"Transaction_Description"`
	ValueDate             string          `json:"Value_Date"`
	BankReference         string          `json:"Bank_Reference"`
	CustomerReference     string          `json:"Customer_Reference"`
	ConfirmationReference string          `json:"Confirmation_Reference"`
	Beneficiary           string          `json:"Beneficiary"`
	Amount                decimal.Decimal `json:"Amount"`
	Currency              string          `json:"Currency"`
}

// SummaryInfo is the single credit/debit totals row of a statement block.
// Cheque fields are only present in the long summary variant; NullDecimal and
// the count pointer distinguish "absent" from zero.
type SummaryInfo struct {
	CreditCount       int                 `json:"Credit_Count"`
	TotalCreditAmount decimal.Decimal     `json:"Total_Credit_Amount"`
	CreditCurrency    string              `json:"Credit_Currency"`
	DebitCount        int                 `json:"Debit_Count"`
	TotalDebitAmount  decimal.Decimal     `json:"Total_Debit_Amount"`
	DebitCurrency     string              `json:"Debit_Currency"`
	ChequeCount       *int                `json:"Cheque_Count"`
	ChequeAmount      decimal.NullDecimal `json:"Cheque_Amount"`
	ChequeCurrency    string              `json:"Cheque_Currency"`
	NetAmount         decimal.Decimal     `json:"Net_Amount"`
	NetCurrency       string              `json:"Net_Currency"`
}

// StatementRecord is the flattened output of the multi-account monthly
// export: one transaction merged with its block's header and summary.
type StatementRecord struct {
	HeaderInfo
	TransactionRecord
	SummaryInfo
}
