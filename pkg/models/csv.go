package models

import "strconv"

// CSV projections used by the export writer. Amounts are fixed to two
// decimals only here, at serialization time; the records themselves keep the
// full decimal value.

func (r StatementRecord) CSVHeader() []string {
	return []string{
		"Bank_Name", "Customer_Number", "Customer_Name", "Branch_Number", "Branch_Name",
		"Account_Number", "Account_Name", "Account_Currency", "Account_Type",
		"Entry_Date", "Product_Type", "Transaction_Description", "Value_Date",
		"Bank_Reference", "Customer_Reference", "Confirmation_Reference", "Beneficiary",
		"Amount", "Currency",
		"Credit_Count", "Total_Credit_Amount", "Credit_Currency",
		"Debit_Count", "Total_Debit_Amount", "Debit_Currency",
		"Cheque_Count", "Cheque_Amount", "Cheque_Currency",
		"Net_Amount", "Net_Currency",
	}
}

func (r StatementRecord) CSVRow() []string {
	chequeCount := ""
	if r.ChequeCount != nil {
		chequeCount = strconv.Itoa(*r.ChequeCount)
	}
	chequeAmount := ""
	if r.ChequeAmount.Valid {
		chequeAmount = r.ChequeAmount.Decimal.StringFixed(2)
	}
	return []string{
		r.BankName, r.CustomerNumber, r.CustomerName, r.BranchNumber, r.BranchName,
		r.AccountNumber, r.AccountName, r.AccountCurrency, r.AccountType,
		r.EntryDate, r.ProductType, r.Description, r.ValueDate,
		r.BankReference, r.CustomerReference, r.ConfirmationReference, r.Beneficiary,
		r.Amount.StringFixed(2), r.Currency,
		strconv.Itoa(r.CreditCount), r.TotalCreditAmount.StringFixed(2), r.CreditCurrency,
		strconv.Itoa(r.DebitCount), r.TotalDebitAmount.StringFixed(2), r.DebitCurrency,
		chequeCount, chequeAmount, r.ChequeCurrency,
		r.NetAmount.StringFixed(2), r.NetCurrency,
	}
}

func (r BalanceRecord) CSVHeader() []string {
	return []string{
		"Customer_Name", "Account_Number", "Account_Name", "Currency",
		"Statement_Date", "Closing_Ledger_Balance",
	}
}

func (r BalanceRecord) CSVRow() []string {
	balance := ""
	if r.ClosingLedgerBalance.Valid {
		balance = r.ClosingLedgerBalance.Decimal.StringFixed(2)
	}
	return []string{
		r.CustomerName, r.AccountNumber, r.AccountName, r.Currency,
		r.StatementDate, balance,
	}
}

func (r SecurityTransferRecord) CSVHeader() []string {
	return []string{
		"Transaction Date", "Settlement Date", "Currency", "Amount", "Nature",
		"Security Code", "Security Name", "Quantity", "Market Price", "Descrption",
	}
}

func (r SecurityTransferRecord) CSVRow() []string {
	return []string{
		r.TransactionDate, r.SettlementDate, r.Currency, r.Amount.StringFixed(2),
		r.Nature, r.SecurityCode, r.SecurityName,
		strconv.FormatInt(r.Quantity, 10), r.MarketPrice.StringFixed(4), r.Description,
	}
}

func (r HSBCTransaction) CSVHeader() []string {
	return []string{
		"Account_Name", "Account_Number", "Account_Type", "Country_Territory",
		"Value_Date", "Transaction_Type", "Currency", "Amount",
		"Transaction_Description", "Bank_Reference", "Customer_Reference",
		"Supplementary_Detail",
	}
}

func (r HSBCTransaction) CSVRow() []string {
	return []string{
		r.AccountName, r.AccountNumber, r.AccountType, r.CountryTerritory,
		r.ValueDate, r.TransactionType, r.Currency, r.Amount.StringFixed(2),
		r.Description, r.BankReference, r.CustomerReference, r.SupplementaryDetail,
	}
}
