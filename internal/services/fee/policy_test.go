package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"opal/internal/models"
	"opal/internal/money"
)

func TestComputeFee(t *testing.T) {
	p := NewPolicy(Config{})

	tests := []struct {
		name   string
		kind   models.MovementKind
		amount money.Amount
		want   money.Amount
	}{
		{name: "send 5% above floor", kind: models.MovementSend, amount: money.FromUnits(1000), want: money.FromUnits(50)},
		{name: "send hits floor", kind: models.MovementSend, amount: money.FromUnits(100), want: money.FromUnits(5)},
		{name: "send exactly at floor boundary", kind: models.MovementSend, amount: money.FromUnits(10), want: money.FromUnits(5)},
		{name: "cash-out same schedule as send", kind: models.MovementCashOut, amount: money.FromUnits(2000), want: money.FromUnits(100)},
		{name: "bank transfer flat regardless of amount", kind: models.MovementBankTransfer, amount: money.FromUnits(100000), want: money.FromUnits(25)},
		{name: "bank transfer flat at minimum", kind: models.MovementBankTransfer, amount: money.FromUnits(100), want: money.FromUnits(25)},
		{name: "deposit is free", kind: models.MovementDeposit, amount: money.FromUnits(500), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ComputeFee(tt.kind, tt.amount))
		})
	}
}

func TestComputeFeeNeverNegative(t *testing.T) {
	p := NewPolicy(Config{})
	for _, kind := range []models.MovementKind{models.MovementSend, models.MovementBankTransfer, models.MovementCashOut, models.MovementDeposit} {
		for _, amount := range []money.Amount{0, 1, money.FromUnits(10), money.FromUnits(50000)} {
			assert.GreaterOrEqual(t, p.ComputeFee(kind, amount), money.Amount(0))
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("environment overrides the schedule", func(t *testing.T) {
		t.Setenv("FEE_SEND_RATE", "0.10")
		t.Setenv("FEE_SEND_FLOOR_UNITS", "7")
		t.Setenv("FEE_BANK_FLAT_UNITS", "40")

		p := NewPolicy(ConfigFromEnv())
		assert.Equal(t, money.FromUnits(20), p.ComputeFee(models.MovementSend, money.FromUnits(200)))
		assert.Equal(t, money.FromUnits(7), p.ComputeFee(models.MovementSend, money.FromUnits(10)))
		assert.Equal(t, money.FromUnits(40), p.ComputeFee(models.MovementBankTransfer, money.FromUnits(500)))
	})

	t.Run("unset environment keeps defaults", func(t *testing.T) {
		p := NewPolicy(ConfigFromEnv())
		assert.Equal(t, money.FromUnits(50), p.ComputeFee(models.MovementSend, money.FromUnits(1000)))
		assert.Equal(t, money.FromUnits(25), p.ComputeFee(models.MovementBankTransfer, money.FromUnits(500)))
	})

	t.Run("unparseable rate keeps the default", func(t *testing.T) {
		t.Setenv("FEE_SEND_RATE", "ten percent")

		p := NewPolicy(ConfigFromEnv())
		assert.Equal(t, money.FromUnits(50), p.ComputeFee(models.MovementSend, money.FromUnits(1000)))
	})
}

func TestComputeFeeDeterministic(t *testing.T) {
	p := NewPolicy(Config{})
	first := p.ComputeFee(models.MovementSend, 133333)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, first, p.ComputeFee(models.MovementSend, 133333))
	}
}
