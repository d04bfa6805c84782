package transfer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	appErrors "opal/internal/errors"
	"opal/internal/models"
	"opal/internal/money"
	"opal/internal/repositories"
	"opal/internal/services/fee"
	"opal/internal/services/limits"
)

// maxConflictRetries bounds internal retries of a movement that lost a
// storage-level race. The conflict surfaces to the caller once exhausted.
const maxConflictRetries = 3

type service struct {
	store  repositories.Store
	fees   fee.Policy
	limits limits.Policy
	cache  Cache
}

// NewService creates the movement engine. The engine holds no persistent
// state of its own; it owns only the sequencing and atomicity contract
// between the account store and the ledger.
func NewService(store repositories.Store, fees fee.Policy, limitsPolicy limits.Policy, cache Cache) Service {
	if store == nil {
		panic("store is required")
	}
	if fees == nil {
		panic("fee policy is required")
	}
	if limitsPolicy == nil {
		panic("limit policy is required")
	}
	if cache == nil {
		cache = NoopCache{}
	}
	return &service{
		store:  store,
		fees:   fees,
		limits: limitsPolicy,
		cache:  cache,
	}
}

func (s *service) Transfer(ctx context.Context, senderID uint, recipientIdentifier string, amount money.Amount, note string) (*Result, error) {
	if amount <= 0 {
		return nil, appErrors.ErrInvalidAmount
	}

	sender, err := s.store.Accounts().GetByID(senderID)
	if err != nil {
		return nil, err
	}

	recipient, err := s.store.Accounts().GetByIdentifier(recipientIdentifier)
	if err != nil {
		if errors.Is(err, appErrors.ErrAccountNotFound) {
			return nil, appErrors.ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == sender.ID {
		return nil, appErrors.ErrSelfTransfer
	}

	feeCharged := s.fees.ComputeFee(models.MovementSend, amount)
	total := amount + feeCharged

	if err := s.limits.CheckLimits(sender.ID, models.MovementSend, amount, time.Now()); err != nil {
		return nil, err
	}

	// Nothing above mutates state; a rejected request can be resubmitted
	// freely. From here the debit, credit and both ledger rows commit as one
	// transaction or not at all.
	reference := uuid.NewString()
	var newBalance money.Amount

	err = s.withConflictRetry("transfer", func() error {
		return s.store.ExecuteInTransaction(func(tx repositories.Store) error {
			if err := tx.Accounts().Debit(sender.ID, total); err != nil {
				return err
			}
			if err := tx.Accounts().Credit(recipient.ID, amount); err != nil {
				return err
			}

			if err := tx.Ledger().Append(&models.LedgerEntry{
				Reference:        reference,
				AccountID:        sender.ID,
				Kind:             models.EntryKindSent,
				Amount:           amount.Neg(),
				Fee:              feeCharged.Neg(),
				Note:             note,
				CounterpartyID:   &recipient.ID,
				CounterpartyName: recipient.Name,
			}); err != nil {
				return err
			}
			if err := tx.Ledger().Append(&models.LedgerEntry{
				Reference:        reference,
				AccountID:        recipient.ID,
				Kind:             models.EntryKindReceived,
				Amount:           amount,
				Note:             note,
				CounterpartyID:   &sender.ID,
				CounterpartyName: sender.Name,
			}); err != nil {
				return err
			}

			balance, err := tx.Accounts().GetBalance(sender.ID)
			if err != nil {
				return err
			}
			newBalance = balance
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, sender.ID, recipient.ID)
	return &Result{Reference: reference, NewBalance: newBalance, Fee: feeCharged}, nil
}

func (s *service) BankTransfer(ctx context.Context, senderID uint, bank BankDescriptor, amount money.Amount) (*Result, error) {
	details := models.NewJSON(map[string]interface{}{
		"bank_name":      bank.BankName,
		"account_holder": bank.AccountHolder,
		"account_number": bank.AccountNumber,
		"branch":         bank.Branch,
	})
	note := fmt.Sprintf("Bank transfer to %s", bank.BankName)
	return s.debitMovement(ctx, senderID, models.MovementBankTransfer, models.EntryKindBankTransfer, amount, note, details)
}

func (s *service) CashOut(ctx context.Context, senderID uint, method string, amount money.Amount) (*Result, error) {
	details := models.NewJSON(map[string]interface{}{
		"method": method,
	})
	note := fmt.Sprintf("Cash out via %s", method)
	return s.debitMovement(ctx, senderID, models.MovementCashOut, models.EntryKindCashOut, amount, note, details)
}

// debitMovement is the shared single-account shape of bank transfer and
// cash-out: one debit of amount plus fee, one ledger entry.
func (s *service) debitMovement(ctx context.Context, senderID uint, kind models.MovementKind, entryKind string, amount money.Amount, note string, details models.JSON) (*Result, error) {
	if amount <= 0 {
		return nil, appErrors.ErrInvalidAmount
	}

	sender, err := s.store.Accounts().GetByID(senderID)
	if err != nil {
		return nil, err
	}

	feeCharged := s.fees.ComputeFee(kind, amount)
	total := amount + feeCharged

	if err := s.limits.CheckLimits(sender.ID, kind, amount, time.Now()); err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	var newBalance money.Amount

	err = s.withConflictRetry(string(kind), func() error {
		return s.store.ExecuteInTransaction(func(tx repositories.Store) error {
			if err := tx.Accounts().Debit(sender.ID, total); err != nil {
				return err
			}
			if err := tx.Ledger().Append(&models.LedgerEntry{
				Reference: reference,
				AccountID: sender.ID,
				Kind:      entryKind,
				Amount:    amount.Neg(),
				Fee:       feeCharged.Neg(),
				Note:      note,
				Details:   details,
			}); err != nil {
				return err
			}

			balance, err := tx.Accounts().GetBalance(sender.ID)
			if err != nil {
				return err
			}
			newBalance = balance
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, sender.ID)
	return &Result{Reference: reference, NewBalance: newBalance, Fee: feeCharged}, nil
}

func (s *service) Deposit(ctx context.Context, accountID uint, source DepositSource, amount money.Amount) (*Result, error) {
	if amount <= 0 {
		return nil, appErrors.ErrInvalidAmount
	}

	account, err := s.store.Accounts().GetByID(accountID)
	if err != nil {
		return nil, err
	}

	if err := s.limits.CheckLimits(account.ID, models.MovementDeposit, amount, time.Now()); err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	var newBalance money.Amount

	err = s.withConflictRetry("deposit", func() error {
		return s.store.ExecuteInTransaction(func(tx repositories.Store) error {
			if err := tx.Accounts().Credit(account.ID, amount); err != nil {
				return err
			}
			if err := tx.Ledger().Append(&models.LedgerEntry{
				Reference: reference,
				AccountID: account.ID,
				Kind:      models.EntryKindDeposit,
				Amount:    amount,
				Note:      fmt.Sprintf("Deposit via %s", source.Method),
				Details:   source.Details,
			}); err != nil {
				return err
			}

			balance, err := tx.Accounts().GetBalance(account.ID)
			if err != nil {
				return err
			}
			newBalance = balance
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, account.ID)
	return &Result{Reference: reference, NewBalance: newBalance, Fee: 0}, nil
}

func (s *service) PreviewFee(kind models.MovementKind, amount money.Amount) money.Amount {
	return s.fees.ComputeFee(kind, amount)
}

func (s *service) Balance(ctx context.Context, accountID uint) (money.Amount, error) {
	if balance, ok, err := s.cache.GetBalance(ctx, accountID); err == nil && ok {
		return balance, nil
	}

	balance, err := s.store.Accounts().GetBalance(accountID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.SetBalance(ctx, accountID, balance); err != nil {
		log.Printf("failed to cache balance for account %d: %v", accountID, err)
	}
	return balance, nil
}

func (s *service) RecentTransactions(ctx context.Context, accountID uint, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		limit = repositories.DefaultStatementLimit
	}

	if entries, ok, err := s.cache.GetStatement(ctx, accountID, limit); err == nil && ok {
		return entries, nil
	}

	entries, err := s.store.Ledger().ListRecent(accountID, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetStatement(ctx, accountID, limit, entries); err != nil {
		log.Printf("failed to cache statement for account %d: %v", accountID, err)
	}
	return entries, nil
}

func (s *service) withConflictRetry(op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxConflictRetries; attempt++ {
		err = fn()
		if !errors.Is(err, appErrors.ErrStorageConflict) {
			return err
		}
		log.Printf("%s: storage conflict, retrying (%d/%d)", op, attempt, maxConflictRetries)
	}
	return err
}

func (s *service) invalidate(ctx context.Context, accountIDs ...uint) {
	for _, id := range accountIDs {
		if err := s.cache.InvalidateAccount(ctx, id); err != nil {
			log.Printf("failed to invalidate cache for account %d: %v", id, err)
		}
	}
}
