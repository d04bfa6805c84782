package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"opal/internal/middleware"
	"opal/internal/models"
	"opal/internal/money"
	"opal/internal/services/deposit"
	"opal/internal/services/transfer"
	"opal/internal/utils"
)

type WalletHandler struct {
	engine         transfer.Service
	depositService deposit.Service
}

func NewWalletHandler(engine transfer.Service, depositService deposit.Service) *WalletHandler {
	return &WalletHandler{
		engine:         engine,
		depositService: depositService,
	}
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := middleware.AccountClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.engine.Balance(c.Context(), claims.AccountID)
	if err != nil {
		return respondMovementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"balance": balance.String(),
	})
}

// PreviewFee quotes the fee a movement would be charged without executing it.
func (h *WalletHandler) PreviewFee(c *fiber.Ctx) error {
	if _, err := middleware.AccountClaims(c); err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	kind, ok := parseMovementKind(c.Query("kind", "SEND"))
	if !ok {
		return utils.BadRequest(c, "Unknown movement kind")
	}
	amount, err := money.Parse(c.Query("amount"))
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	fee := h.engine.PreviewFee(kind, amount)
	return utils.Success(c, fiber.Map{
		"kind":   kind,
		"amount": amount.String(),
		"fee":    fee.String(),
		"total":  (amount + fee).String(),
	})
}

func (h *WalletHandler) AddMoney(c *fiber.Ctx) error {
	claims, err := middleware.AccountClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount string            `json:"amount"`
		Card   deposit.CardInput `json:"card"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	amount, err := money.Parse(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	result, err := h.depositService.AddMoney(c.Context(), claims.AccountID, amount, input.Card)
	if err != nil {
		if errors.Is(err, deposit.ErrCardRejected) {
			return utils.BadRequest(c, "Invalid card")
		}
		return respondMovementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Deposit successful",
		"reference":   result.Reference,
		"amount":      amount.String(),
		"new_balance": result.NewBalance.String(),
	})
}

func parseMovementKind(s string) (models.MovementKind, bool) {
	switch models.MovementKind(s) {
	case models.MovementSend, models.MovementBankTransfer, models.MovementCashOut, models.MovementDeposit:
		return models.MovementKind(s), true
	default:
		return "", false
	}
}
