package transfer

import (
	"context"

	"opal/internal/models"
	"opal/internal/money"
)

// Cache is the read-cache surface the engine invalidates after a committed
// movement. Implementations must tolerate being called on the hot path.
type Cache interface {
	GetBalance(ctx context.Context, accountID uint) (money.Amount, bool, error)
	SetBalance(ctx context.Context, accountID uint, balance money.Amount) error
	GetStatement(ctx context.Context, accountID uint, limit int) ([]models.LedgerEntry, bool, error)
	SetStatement(ctx context.Context, accountID uint, limit int, entries []models.LedgerEntry) error
	InvalidateAccount(ctx context.Context, accountID uint) error
}

// Service is the balance-mutation and double-entry transaction engine. Every
// movement either commits balance change(s) and matching ledger entries
// atomically or leaves no observable state behind.
type Service interface {
	// Transfer moves amount from sender to the account resolved from
	// recipientIdentifier (wallet number, phone or email), charging the send
	// fee to the sender.
	Transfer(ctx context.Context, senderID uint, recipientIdentifier string, amount money.Amount, note string) (*Result, error)

	// BankTransfer debits amount plus the flat fee and records a single
	// entry carrying the bank descriptor.
	BankTransfer(ctx context.Context, senderID uint, bank BankDescriptor, amount money.Amount) (*Result, error)

	// CashOut debits amount plus the proportional fee and records a single
	// entry carrying the payout method.
	CashOut(ctx context.Context, senderID uint, method string, amount money.Amount) (*Result, error)

	// Deposit credits amount and records a single entry carrying the funding
	// source metadata. Deposits are fee-free.
	Deposit(ctx context.Context, accountID uint, source DepositSource, amount money.Amount) (*Result, error)

	// PreviewFee returns exactly the fee Transfer/BankTransfer/CashOut would
	// charge for the same kind and amount.
	PreviewFee(kind models.MovementKind, amount money.Amount) money.Amount

	// Balance returns the account balance, served from cache when possible.
	Balance(ctx context.Context, accountID uint) (money.Amount, error)

	// RecentTransactions lists ledger entries newest first; limit defaults
	// to 50.
	RecentTransactions(ctx context.Context, accountID uint, limit int) ([]models.LedgerEntry, error)
}
