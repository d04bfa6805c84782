package models

import (
	"time"

	"opal/internal/money"
)

// Ledger entry kinds
const (
	EntryKindSent         = "SENT"
	EntryKindReceived     = "RECEIVED"
	EntryKindBankTransfer = "BANK_TRANSFER"
	EntryKindCashOut      = "CASH_OUT"
	EntryKindDeposit      = "DEPOSIT"
)

// LedgerEntry is one immutable row of the transaction journal. Amounts are
// signed: negative for debits, positive for credits. A peer transfer writes
// two entries sharing one Reference whose amounts are additive inverses.
// Entries are append-only: never updated, never deleted.
type LedgerEntry struct {
	ID               uint         `gorm:"primarykey"`
	Reference        string       `gorm:"type:varchar(36);index;not null"`
	AccountID        uint         `gorm:"index;not null"`
	Kind             string       `gorm:"size:32;index;not null"`
	Amount           money.Amount `gorm:"not null"`
	Fee              money.Amount `gorm:"not null;default:0"`
	Note             string       `gorm:"size:255"`
	CounterpartyID   *uint
	CounterpartyName string
	Details          JSON      `gorm:"type:jsonb"`
	CreatedAt        time.Time `gorm:"index"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
