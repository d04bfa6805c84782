package models

// MovementKind classifies a requested money movement. It drives fee and
// limit policy and maps onto the ledger entry kinds a committed movement
// writes (a SEND writes one SENT and one RECEIVED entry).
type MovementKind string

const (
	MovementSend         MovementKind = "SEND"
	MovementBankTransfer MovementKind = "BANK_TRANSFER"
	MovementCashOut      MovementKind = "CASH_OUT"
	MovementDeposit      MovementKind = "DEPOSIT"
)
