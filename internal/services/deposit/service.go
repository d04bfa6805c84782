package deposit

import (
	"context"
	"fmt"

	"opal/internal/models"
	"opal/internal/money"
	"opal/internal/services/transfer"
)

// Service funds a wallet from a payment card. The card is tokenized first,
// then the amount is credited through the movement engine so the deposit
// appears on the ledger like every other movement.
type Service interface {
	AddMoney(ctx context.Context, accountID uint, amount money.Amount, card CardInput) (*transfer.Result, error)
}

type service struct {
	engine    transfer.Service
	tokenizer Tokenizer
}

func NewService(engine transfer.Service, tokenizer Tokenizer) Service {
	if engine == nil {
		panic("deposit: movement engine is required")
	}
	if tokenizer == nil {
		panic("deposit: tokenizer is required")
	}
	return &service{engine: engine, tokenizer: tokenizer}
}

func (s *service) AddMoney(ctx context.Context, accountID uint, amount money.Amount, card CardInput) (*transfer.Result, error) {
	tokenized, err := s.tokenizer.TokenizeCard(card)
	if err != nil {
		return nil, fmt.Errorf("card validation failed: %w", err)
	}

	source := transfer.DepositSource{
		Method: "card",
		Details: models.JSON{
			"card_token": tokenized.Token,
			"card_type":  tokenized.CardType,
			"last_four":  tokenized.LastFour,
		},
	}
	return s.engine.Deposit(ctx, accountID, source, amount)
}
