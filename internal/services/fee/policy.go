// Package fee computes movement fees. The policy is a pure function of
// (kind, amount): it has no side effects and is deterministic, so a client
// fee preview always matches the fee the engine charges a moment later.
package fee

import (
	"log"

	"github.com/shopspring/decimal"

	"opal/internal/config"
	"opal/internal/models"
	"opal/internal/money"
)

// Policy maps (movement kind, amount) to a fee in minor units.
type Policy interface {
	ComputeFee(kind models.MovementKind, amount money.Amount) money.Amount
}

// Config holds the fee schedule. Zero values are replaced with defaults.
type Config struct {
	// SendRate is the proportional fee for sends and cash-outs.
	SendRate decimal.Decimal
	// SendFloor is the minimum fee for sends and cash-outs.
	SendFloor money.Amount
	// BankFlat is the flat fee for bank transfers, independent of amount.
	BankFlat money.Amount
}

type policy struct {
	cfg Config
}

// ConfigFromEnv builds a Config from environment variables. Monetary knobs
// are whole currency units; unset or invalid values keep the defaults
// NewPolicy applies.
func ConfigFromEnv() Config {
	cfg := Config{
		SendFloor: money.FromUnits(config.GetInt64Env("FEE_SEND_FLOOR_UNITS", 0)),
		BankFlat:  money.FromUnits(config.GetInt64Env("FEE_BANK_FLAT_UNITS", 0)),
	}
	if raw := config.GetEnv("FEE_SEND_RATE", ""); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			log.Printf("invalid FEE_SEND_RATE %q, using default", raw)
		} else {
			cfg.SendRate = rate
		}
	}
	return cfg
}

// NewPolicy creates a fee policy. Defaults: 5% with a 5-unit floor for sends
// and cash-outs, 25 flat for bank transfers.
func NewPolicy(cfg Config) Policy {
	if cfg.SendRate.IsZero() {
		cfg.SendRate = decimal.RequireFromString("0.05")
	}
	if cfg.SendFloor == 0 {
		cfg.SendFloor = money.FromUnits(5)
	}
	if cfg.BankFlat == 0 {
		cfg.BankFlat = money.FromUnits(25)
	}
	return &policy{cfg: cfg}
}

func (p *policy) ComputeFee(kind models.MovementKind, amount money.Amount) money.Amount {
	switch kind {
	case models.MovementSend, models.MovementCashOut:
		return money.Max(amount.MulRate(p.cfg.SendRate), p.cfg.SendFloor)
	case models.MovementBankTransfer:
		return p.cfg.BankFlat
	default:
		// Deposits are free.
		return 0
	}
}
