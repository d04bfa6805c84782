package handlers

import (
	"github.com/gofiber/fiber/v2"

	"opal/internal/middleware"
	"opal/internal/money"
	"opal/internal/services/transfer"
	"opal/internal/utils"
)

// MovementHandler exposes the debit movements: wallet-to-wallet transfers,
// bank transfers and cash-outs.
type MovementHandler struct {
	engine transfer.Service
}

func NewMovementHandler(engine transfer.Service) *MovementHandler {
	return &MovementHandler{
		engine: engine,
	}
}

func (h *MovementHandler) SendMoney(c *fiber.Ctx) error {
	claims, err := middleware.AccountClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Recipient string `json:"recipient"`
		Amount    string `json:"amount"`
		Note      string `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Recipient == "" {
		return utils.BadRequest(c, "Recipient is required")
	}

	amount, err := money.Parse(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	result, err := h.engine.Transfer(c.Context(), claims.AccountID, input.Recipient, amount, input.Note)
	if err != nil {
		return respondMovementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Transfer successful",
		"reference":   result.Reference,
		"amount":      amount.String(),
		"fee":         result.Fee.String(),
		"new_balance": result.NewBalance.String(),
	})
}

func (h *MovementHandler) BankTransfer(c *fiber.Ctx) error {
	claims, err := middleware.AccountClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount string                  `json:"amount"`
		Bank   transfer.BankDescriptor `json:"bank"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Bank.BankName == "" || input.Bank.AccountNumber == "" {
		return utils.BadRequest(c, "Bank name and account number are required")
	}

	amount, err := money.Parse(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	result, err := h.engine.BankTransfer(c.Context(), claims.AccountID, input.Bank, amount)
	if err != nil {
		return respondMovementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Bank transfer successful",
		"reference":   result.Reference,
		"amount":      amount.String(),
		"fee":         result.Fee.String(),
		"new_balance": result.NewBalance.String(),
	})
}

func (h *MovementHandler) CashOut(c *fiber.Ctx) error {
	claims, err := middleware.AccountClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Amount string `json:"amount"`
		Method string `json:"method"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Method == "" {
		input.Method = "agent"
	}

	amount, err := money.Parse(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}

	result, err := h.engine.CashOut(c.Context(), claims.AccountID, input.Method, amount)
	if err != nil {
		return respondMovementError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Cash out successful",
		"reference":   result.Reference,
		"amount":      amount.String(),
		"fee":         result.Fee.String(),
		"new_balance": result.NewBalance.String(),
	})
}
