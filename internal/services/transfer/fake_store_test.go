package transfer

import (
	"errors"
	"sync"
	"time"

	appErrors "opal/internal/errors"
	"opal/internal/models"
	"opal/internal/money"
	"opal/internal/repositories"
)

var errCreditDown = errors.New("credit unavailable")

// fakeStore is an in-memory Store. ExecuteInTransaction holds one lock for
// the whole callback and restores a snapshot when it fails, so concurrent
// movements serialize and atomicity tests observe the same all-or-nothing
// behavior as the database. Repo methods called outside a transaction take
// the lock per call, mirroring the production conditional decrement.
type fakeStore struct {
	mu       sync.Mutex
	accounts map[uint]*models.Account
	entries  []models.LedgerEntry
	nextID   uint

	creditErr     error
	appendErr     error
	conflictsLeft int
	txAttempts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{accounts: make(map[uint]*models.Account)}
}

func (s *fakeStore) addAccount(id uint, name, phone string, balance money.Amount) *models.Account {
	acc := &models.Account{
		ID:           id,
		WalletNumber: name + "-wallet",
		Name:         name,
		Phone:        phone,
		Balance:      balance,
		Status:       models.AccountStatusActive,
	}
	s.accounts[id] = acc
	return acc
}

func (s *fakeStore) Accounts() repositories.AccountRepository {
	return &fakeAccounts{s: s, locking: true}
}

func (s *fakeStore) Ledger() repositories.LedgerRepository {
	return &fakeLedger{s: s, locking: true}
}

func (s *fakeStore) ExecuteInTransaction(fn func(repositories.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txAttempts++
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		return appErrors.ErrStorageConflict
	}

	snapAccounts := make(map[uint]*models.Account, len(s.accounts))
	for id, acc := range s.accounts {
		copied := *acc
		snapAccounts[id] = &copied
	}
	snapEntries := make([]models.LedgerEntry, len(s.entries))
	copy(snapEntries, s.entries)

	if err := fn(&txFakeStore{s: s}); err != nil {
		s.accounts = snapAccounts
		s.entries = snapEntries
		return err
	}
	return nil
}

// txFakeStore is the view handed to a transaction callback; its repos skip
// locking because ExecuteInTransaction already holds the mutex.
type txFakeStore struct {
	s *fakeStore
}

func (t *txFakeStore) Accounts() repositories.AccountRepository {
	return &fakeAccounts{s: t.s}
}

func (t *txFakeStore) Ledger() repositories.LedgerRepository {
	return &fakeLedger{s: t.s}
}

func (t *txFakeStore) ExecuteInTransaction(fn func(repositories.Store) error) error {
	panic("nested transaction")
}

func (s *fakeStore) balance(id uint) money.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id].Balance
}

func (s *fakeStore) entriesFor(id uint) []models.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LedgerEntry
	for _, e := range s.entries {
		if e.AccountID == id {
			out = append(out, e)
		}
	}
	return out
}

type fakeAccounts struct {
	s       *fakeStore
	locking bool
}

func (f *fakeAccounts) lock() func() {
	if !f.locking {
		return func() {}
	}
	f.s.mu.Lock()
	return f.s.mu.Unlock
}

func (f *fakeAccounts) Create(account *models.Account) error {
	defer f.lock()()
	f.s.nextID++
	account.ID = f.s.nextID
	f.s.accounts[account.ID] = account
	return nil
}

func (f *fakeAccounts) GetByID(id uint) (*models.Account, error) {
	defer f.lock()()
	acc, ok := f.s.accounts[id]
	if !ok {
		return nil, appErrors.ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (f *fakeAccounts) GetByPhone(phone string) (*models.Account, error) {
	defer f.lock()()
	for _, acc := range f.s.accounts {
		if acc.Phone == phone {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, appErrors.ErrAccountNotFound
}

func (f *fakeAccounts) GetByIdentifier(identifier string) (*models.Account, error) {
	defer f.lock()()
	for _, acc := range f.s.accounts {
		if acc.WalletNumber == identifier || acc.Phone == identifier ||
			(acc.Email != nil && *acc.Email == identifier) {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, appErrors.ErrAccountNotFound
}

func (f *fakeAccounts) GetBalance(id uint) (money.Amount, error) {
	acc, err := f.GetByID(id)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (f *fakeAccounts) Debit(id uint, amount money.Amount) error {
	defer f.lock()()
	acc, ok := f.s.accounts[id]
	if !ok {
		return appErrors.ErrAccountNotFound
	}
	if acc.Balance < amount {
		return appErrors.ErrInsufficientFunds
	}
	acc.Balance -= amount
	return nil
}

func (f *fakeAccounts) Credit(id uint, amount money.Amount) error {
	if f.s.creditErr != nil {
		return f.s.creditErr
	}
	defer f.lock()()
	acc, ok := f.s.accounts[id]
	if !ok {
		return appErrors.ErrAccountNotFound
	}
	acc.Balance += amount
	return nil
}

func (f *fakeAccounts) RecordFailedPIN(id uint, lockAfter int, lockFor time.Duration, now time.Time) (int, error) {
	defer f.lock()()
	acc, ok := f.s.accounts[id]
	if !ok {
		return 0, appErrors.ErrAccountNotFound
	}
	acc.FailedPINAttempts++
	if acc.FailedPINAttempts >= lockAfter {
		until := now.Add(lockFor)
		acc.LockedUntil = &until
	}
	return acc.FailedPINAttempts, nil
}

func (f *fakeAccounts) ResetFailedPIN(id uint) error {
	defer f.lock()()
	acc, ok := f.s.accounts[id]
	if !ok {
		return appErrors.ErrAccountNotFound
	}
	acc.FailedPINAttempts = 0
	acc.LockedUntil = nil
	return nil
}

type fakeLedger struct {
	s       *fakeStore
	locking bool
}

func (f *fakeLedger) lock() func() {
	if !f.locking {
		return func() {}
	}
	f.s.mu.Lock()
	return f.s.mu.Unlock
}

func (f *fakeLedger) Append(entry *models.LedgerEntry) error {
	if f.s.appendErr != nil {
		return f.s.appendErr
	}
	defer f.lock()()
	f.s.nextID++
	entry.ID = f.s.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	f.s.entries = append(f.s.entries, *entry)
	return nil
}

func (f *fakeLedger) ListRecent(accountID uint, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		limit = repositories.DefaultStatementLimit
	}
	defer f.lock()()
	var out []models.LedgerEntry
	for i := len(f.s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.s.entries[i].AccountID == accountID {
			out = append(out, f.s.entries[i])
		}
	}
	return out, nil
}

func (f *fakeLedger) SumByKindSince(accountID uint, kind string, since time.Time) (money.Amount, error) {
	defer f.lock()()
	var sum money.Amount
	for _, e := range f.s.entries {
		if e.AccountID == accountID && e.Kind == kind && !e.CreatedAt.Before(since) {
			sum += e.Amount
		}
	}
	return sum, nil
}
