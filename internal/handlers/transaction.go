package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"opal/internal/middleware"
	"opal/internal/models"
	"opal/internal/services/transfer"
	"opal/internal/utils"
)

type TransactionHandler struct {
	engine transfer.Service
}

func NewTransactionHandler(engine transfer.Service) *TransactionHandler {
	return &TransactionHandler{
		engine: engine,
	}
}

// GetTransactions lists the caller's ledger entries, newest first.
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := middleware.AccountClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	entries, err := h.engine.RecentTransactions(c.Context(), claims.AccountID, limit)
	if err != nil {
		return respondMovementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"transactions": formatEntries(entries),
		"count":        len(entries),
	})
}

func formatEntries(entries []models.LedgerEntry) []fiber.Map {
	out := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		item := fiber.Map{
			"reference":  e.Reference,
			"kind":       e.Kind,
			"amount":     e.Amount.String(),
			"fee":        e.Fee.String(),
			"note":       e.Note,
			"created_at": e.CreatedAt,
		}
		if e.CounterpartyName != "" {
			item["counterparty"] = e.CounterpartyName
		}
		if len(e.Details) > 0 {
			item["details"] = e.Details
		}
		out = append(out, item)
	}
	return out
}
