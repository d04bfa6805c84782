package deposit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeTestCards(t *testing.T) {
	tok := NewTokenizer("")

	tests := []struct {
		name     string
		number   string
		token    string
		cardType string
		lastFour string
	}{
		{"visa", "4242424242424242", "tok_visa", "Visa", "4242"},
		{"visa debit", "4000056655665556", "tok_visa_debit", "Visa Debit", "5556"},
		{"mastercard", "5555555555554444", "tok_mastercard", "Mastercard", "4444"},
		{"amex", "378282246310005", "tok_amex", "American Express", "0005"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tok.TokenizeCard(CardInput{CardNumber: tc.number, ExpiryMonth: "12", ExpiryYear: "2030"})
			require.NoError(t, err)
			assert.Equal(t, tc.token, got.Token)
			assert.Equal(t, tc.cardType, got.CardType)
			assert.Equal(t, tc.lastFour, got.LastFour)
		})
	}
}

func TestTokenizePreTokenized(t *testing.T) {
	tok := NewTokenizer("")

	got, err := tok.TokenizeCard(CardInput{CardNumber: "tok_visa"})
	require.NoError(t, err)
	assert.Equal(t, "tok_visa", got.Token)
}

func TestTokenizeRejectsInvalidNumbers(t *testing.T) {
	tok := NewTokenizer("")

	tests := []struct {
		name   string
		number string
	}{
		{"fails luhn", "4242424242424241"},
		{"too short", "42424242"},
		{"non numeric", "4242-4242-4242-4242"},
		{"empty", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tok.TokenizeCard(CardInput{CardNumber: tc.number})
			assert.ErrorIs(t, err, ErrCardRejected)
		})
	}
}

func TestLuhn(t *testing.T) {
	assert.True(t, validCardNumber("4111111111111111"))
	assert.True(t, validCardNumber("6011111111111117"))
	assert.False(t, validCardNumber("4111111111111112"))
}
