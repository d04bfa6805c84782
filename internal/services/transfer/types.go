package transfer

import (
	"opal/internal/models"
	"opal/internal/money"
)

// BankDescriptor identifies the external bank account a bank transfer pays
// out to. Persisted verbatim on the ledger entry.
type BankDescriptor struct {
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	Branch        string `json:"branch,omitempty"`
}

// DepositSource describes where deposited money came from.
type DepositSource struct {
	Method  string
	Details models.JSON
}

// Result is returned for every committed movement.
type Result struct {
	Reference  string       `json:"reference"`
	NewBalance money.Amount `json:"new_balance"`
	Fee        money.Amount `json:"fee"`
}
