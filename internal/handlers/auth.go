package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appErrors "opal/internal/errors"
	"opal/internal/services/auth"
	"opal/internal/utils"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
		PIN   string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Name == "" || input.Phone == "" {
		return utils.BadRequest(c, "Name and phone are required")
	}

	account, err := h.authService.Register(auth.RegisterInput{
		Name:  input.Name,
		Phone: input.Phone,
		Email: input.Email,
		PIN:   input.PIN,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPIN) {
			return utils.BadRequest(c, err.Error())
		}
		if errors.Is(err, auth.ErrPhoneRegistered) || errors.Is(err, auth.ErrEmailRegistered) {
			return utils.Conflict(c, err.Error())
		}
		return utils.InternalError(c, "Failed to create account")
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"account_id":    account.ID,
		"wallet_number": account.WalletNumber,
		"name":          account.Name,
		"phone":         account.Phone,
		"balance":       account.Balance.String(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Phone string `json:"phone"`
		PIN   string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	account, token, err := h.authService.Login(input.Phone, input.PIN)
	if err != nil {
		if errors.Is(err, appErrors.ErrAccountLocked) {
			return utils.Respond(c, fiber.StatusLocked, fiber.Map{
				"error": appErrors.ErrAccountLocked.Message,
				"code":  appErrors.ErrAccountLocked.Code,
			})
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid phone or PIN")
		}
		return utils.InternalError(c, "Login failed")
	}

	return utils.Success(c, fiber.Map{
		"token":         token,
		"account_id":    account.ID,
		"wallet_number": account.WalletNumber,
		"name":          account.Name,
	})
}
