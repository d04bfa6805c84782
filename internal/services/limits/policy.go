// Package limits evaluates candidate movements against per-kind minimums and
// the rolling daily send cap. The daily window is the current UTC calendar
// day, computed from ledger history rather than a mutable counter.
package limits

import (
	"fmt"
	"time"

	"opal/internal/config"
	appErrors "opal/internal/errors"
	"opal/internal/models"
	"opal/internal/money"
)

// LedgerSummer is the slice of the ledger store the policy needs.
type LedgerSummer interface {
	SumByKindSince(accountID uint, kind string, since time.Time) (money.Amount, error)
}

// Policy checks a candidate movement against configured caps. A nil return
// means the movement is allowed.
type Policy interface {
	CheckLimits(accountID uint, kind models.MovementKind, amount money.Amount, asOf time.Time) error
}

// Config holds limit settings. Zero values are replaced with defaults.
type Config struct {
	Minimums     map[models.MovementKind]money.Amount
	DailySendCap money.Amount
}

type policy struct {
	ledger LedgerSummer
	cfg    Config
}

// ConfigFromEnv builds a Config from environment variables, expressed in
// whole currency units. Unset values keep the defaults NewPolicy applies,
// including per kind: overriding one minimum leaves the others at their
// defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		DailySendCap: money.FromUnits(config.GetInt64Env("DAILY_SEND_CAP_UNITS", 0)),
	}

	envMinimums := map[models.MovementKind]string{
		models.MovementSend:         "MIN_SEND_UNITS",
		models.MovementBankTransfer: "MIN_BANK_TRANSFER_UNITS",
		models.MovementCashOut:      "MIN_CASH_OUT_UNITS",
		models.MovementDeposit:      "MIN_DEPOSIT_UNITS",
	}
	for kind, key := range envMinimums {
		if units := config.GetInt64Env(key, 0); units > 0 {
			if cfg.Minimums == nil {
				cfg.Minimums = make(map[models.MovementKind]money.Amount)
			}
			cfg.Minimums[kind] = money.FromUnits(units)
		}
	}
	return cfg
}

// NewPolicy creates a limit policy. Defaults: send >= 10, bank transfer
// >= 100, cash-out >= 50, deposit >= 10; daily send cap 50,000. Kinds
// missing from cfg.Minimums get their defaults.
func NewPolicy(ledger LedgerSummer, cfg Config) Policy {
	if ledger == nil {
		panic("ledger is required")
	}
	defaults := map[models.MovementKind]money.Amount{
		models.MovementSend:         money.FromUnits(10),
		models.MovementBankTransfer: money.FromUnits(100),
		models.MovementCashOut:      money.FromUnits(50),
		models.MovementDeposit:      money.FromUnits(10),
	}
	if cfg.Minimums == nil {
		cfg.Minimums = defaults
	} else {
		for kind, min := range defaults {
			if _, ok := cfg.Minimums[kind]; !ok {
				cfg.Minimums[kind] = min
			}
		}
	}
	if cfg.DailySendCap == 0 {
		cfg.DailySendCap = money.FromUnits(50000)
	}
	return &policy{ledger: ledger, cfg: cfg}
}

func (p *policy) CheckLimits(accountID uint, kind models.MovementKind, amount money.Amount, asOf time.Time) error {
	if amount < p.cfg.Minimums[kind] {
		return appErrors.ErrBelowMinimum
	}

	if kind != models.MovementSend {
		return nil
	}

	// Sent entries carry negative amounts, so the outbound total is the
	// negated sum.
	sum, err := p.ledger.SumByKindSince(accountID, models.EntryKindSent, startOfUTCDay(asOf))
	if err != nil {
		return fmt.Errorf("failed to compute daily send total: %w", err)
	}
	sentToday := sum.Neg()

	if sentToday+amount > p.cfg.DailySendCap {
		return appErrors.ErrDailyCapExceeded
	}
	return nil
}

func startOfUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
