package transfer

import (
	"context"

	"opal/internal/models"
	"opal/internal/money"
)

// NoopCache is used when no redis cache is configured; every lookup misses.
type NoopCache struct{}

func (NoopCache) GetBalance(context.Context, uint) (money.Amount, bool, error) { return 0, false, nil }
func (NoopCache) SetBalance(context.Context, uint, money.Amount) error         { return nil }
func (NoopCache) GetStatement(context.Context, uint, int) ([]models.LedgerEntry, bool, error) {
	return nil, false, nil
}
func (NoopCache) SetStatement(context.Context, uint, int, []models.LedgerEntry) error { return nil }
func (NoopCache) InvalidateAccount(context.Context, uint) error                       { return nil }
