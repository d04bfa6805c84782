package repositories

import (
	"time"

	"opal/internal/models"
	"opal/internal/money"
)

// DefaultStatementLimit caps ledger listings when the caller does not specify
// a limit.
const DefaultStatementLimit = 50

// LedgerRepository owns the append-only transaction journal. Entries are
// write-once: there is no update or delete.
type LedgerRepository interface {
	Append(entry *models.LedgerEntry) error
	// ListRecent returns up to limit entries for the account, newest first.
	ListRecent(accountID uint, limit int) ([]models.LedgerEntry, error)
	// SumByKindSince returns the signed sum of entry amounts of one kind
	// created at or after since. Debit kinds therefore sum negative.
	SumByKindSince(accountID uint, kind string, since time.Time) (money.Amount, error)
}
