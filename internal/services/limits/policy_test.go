package limits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "opal/internal/errors"
	"opal/internal/models"
	"opal/internal/money"
)

// fakeLedger records the window it was asked about and returns a canned sum.
type fakeLedger struct {
	sum       money.Amount
	lastSince time.Time
	lastKind  string
	calls     int
}

func (f *fakeLedger) SumByKindSince(accountID uint, kind string, since time.Time) (money.Amount, error) {
	f.calls++
	f.lastKind = kind
	f.lastSince = since
	return f.sum, nil
}

func TestCheckLimitsMinimums(t *testing.T) {
	p := NewPolicy(&fakeLedger{}, Config{})
	now := time.Now().UTC()

	tests := []struct {
		name    string
		kind    models.MovementKind
		amount  money.Amount
		wantErr error
	}{
		{name: "send below minimum", kind: models.MovementSend, amount: money.FromUnits(9), wantErr: appErrors.ErrBelowMinimum},
		{name: "send at minimum", kind: models.MovementSend, amount: money.FromUnits(10)},
		{name: "bank transfer of 50 denied", kind: models.MovementBankTransfer, amount: money.FromUnits(50), wantErr: appErrors.ErrBelowMinimum},
		{name: "bank transfer at minimum", kind: models.MovementBankTransfer, amount: money.FromUnits(100)},
		{name: "cash-out below minimum", kind: models.MovementCashOut, amount: money.FromUnits(49), wantErr: appErrors.ErrBelowMinimum},
		{name: "cash-out at minimum", kind: models.MovementCashOut, amount: money.FromUnits(50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckLimits(1, tt.kind, tt.amount, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckLimitsDailyCap(t *testing.T) {
	now := time.Now().UTC()

	t.Run("sum would exceed cap", func(t *testing.T) {
		// 49,995 sent earlier today; 10 more would make 50,005 > 50,000.
		ledger := &fakeLedger{sum: money.FromUnits(49995).Neg()}
		p := NewPolicy(ledger, Config{})

		err := p.CheckLimits(1, models.MovementSend, money.FromUnits(10), now)
		assert.ErrorIs(t, err, appErrors.ErrDailyCapExceeded)
	})

	t.Run("sum exactly at cap allowed", func(t *testing.T) {
		ledger := &fakeLedger{sum: money.FromUnits(49990).Neg()}
		p := NewPolicy(ledger, Config{})

		assert.NoError(t, p.CheckLimits(1, models.MovementSend, money.FromUnits(10), now))
	})

	t.Run("cap only applies to sends", func(t *testing.T) {
		ledger := &fakeLedger{sum: money.FromUnits(49995).Neg()}
		p := NewPolicy(ledger, Config{})

		assert.NoError(t, p.CheckLimits(1, models.MovementCashOut, money.FromUnits(500), now))
		assert.Zero(t, ledger.calls)
	})
}

func TestConfigFromEnv(t *testing.T) {
	now := time.Now().UTC()

	t.Run("environment overrides cap and minimum", func(t *testing.T) {
		t.Setenv("DAILY_SEND_CAP_UNITS", "100")
		t.Setenv("MIN_SEND_UNITS", "20")

		p := NewPolicy(&fakeLedger{}, ConfigFromEnv())
		assert.ErrorIs(t, p.CheckLimits(1, models.MovementSend, money.FromUnits(15), now), appErrors.ErrBelowMinimum)
		assert.ErrorIs(t, p.CheckLimits(1, models.MovementSend, money.FromUnits(150), now), appErrors.ErrDailyCapExceeded)
		assert.NoError(t, p.CheckLimits(1, models.MovementSend, money.FromUnits(50), now))
	})

	t.Run("overriding one minimum leaves the others at defaults", func(t *testing.T) {
		t.Setenv("MIN_SEND_UNITS", "20")

		p := NewPolicy(&fakeLedger{}, ConfigFromEnv())
		assert.ErrorIs(t, p.CheckLimits(1, models.MovementCashOut, money.FromUnits(40), now), appErrors.ErrBelowMinimum)
		assert.NoError(t, p.CheckLimits(1, models.MovementCashOut, money.FromUnits(50), now))
	})

	t.Run("unset environment keeps defaults", func(t *testing.T) {
		p := NewPolicy(&fakeLedger{}, ConfigFromEnv())
		assert.NoError(t, p.CheckLimits(1, models.MovementSend, money.FromUnits(10), now))
		assert.ErrorIs(t, p.CheckLimits(1, models.MovementBankTransfer, money.FromUnits(99), now), appErrors.ErrBelowMinimum)
	})
}

func TestCheckLimitsWindowIsUTCDay(t *testing.T) {
	ledger := &fakeLedger{}
	p := NewPolicy(ledger, Config{})

	// 23:30 in UTC+10 is 13:30 UTC the same day; the window must start at
	// 00:00 UTC, not at the caller's local midnight.
	loc := time.FixedZone("UTC+10", 10*60*60)
	asOf := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)

	require.NoError(t, p.CheckLimits(1, models.MovementSend, money.FromUnits(10), asOf))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ledger.lastSince)
	assert.Equal(t, models.EntryKindSent, ledger.lastKind)
}
