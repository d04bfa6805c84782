package repositories

import (
	"gorm.io/gorm"

	appErrors "opal/internal/errors"
)

// Store bundles the account and ledger repositories behind one transactional
// scope. ExecuteInTransaction hands the callback a Store bound to a single
// database transaction, so a two-sided movement can mutate both balances and
// append both ledger rows atomically.
type Store interface {
	Accounts() AccountRepository
	Ledger() LedgerRepository
	ExecuteInTransaction(fn func(Store) error) error
}

type gormStore struct {
	db       *gorm.DB
	accounts AccountRepository
	ledger   LedgerRepository
}

// NewStore creates a Store backed by the given database handle.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		accounts: NewAccountRepository(db),
		ledger:   NewLedgerRepository(db),
	}
}

func (s *gormStore) Accounts() AccountRepository { return s.accounts }
func (s *gormStore) Ledger() LedgerRepository    { return s.ledger }

func (s *gormStore) ExecuteInTransaction(fn func(Store) error) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
	if IsConflict(err) {
		return appErrors.ErrStorageConflict
	}
	return err
}
