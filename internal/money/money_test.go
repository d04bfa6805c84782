package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr error
	}{
		{name: "whole units", input: "100", want: 10000},
		{name: "two decimals", input: "104.99", want: 10499},
		{name: "one decimal", input: "0.5", want: 50},
		{name: "trailing zeros", input: "5.100", want: 510},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-25.50", want: -2550},
		{name: "sub-minor precision", input: "1.005", wantErr: ErrTooPrecise},
		{name: "garbage", input: "ten", wantErr: ErrMalformedAmount},
		{name: "empty", input: "", wantErr: ErrMalformedAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "104.99", Amount(10499).String())
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "-100.00", Amount(-10000).String())
	assert.Equal(t, "0.00", Amount(0).String())
}

func TestFromUnits(t *testing.T) {
	assert.Equal(t, Amount(500), FromUnits(5))
	assert.Equal(t, Amount(5000000), FromUnits(50000))
}

func TestMulRate(t *testing.T) {
	rate := decimal.RequireFromString("0.05")

	// 100.00 * 5% = 5.00
	assert.Equal(t, Amount(500), FromUnits(100).MulRate(rate))
	// 0.10 * 5% = 0.005, rounds half-up to 0.01
	assert.Equal(t, Amount(1), Amount(10).MulRate(rate))

	// Determinism: repeated computation yields identical results.
	first := Amount(133333).MulRate(rate)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Amount(133333).MulRate(rate))
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "12.34", "50000.00"} {
		a, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, a.String())
	}
}
