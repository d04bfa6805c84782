package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appErrors "opal/internal/errors"
	"opal/internal/utils"
)

// respondMovementError maps a movement engine error to an HTTP response. Every
// expected business failure carries its stable code in the body so clients can
// branch on it; anything else is a 500.
func respondMovementError(c *fiber.Ctx, err error) error {
	var domainErr *appErrors.DomainError
	if !errors.As(err, &domainErr) {
		return utils.InternalError(c, "movement failed")
	}

	status := fiber.StatusBadRequest
	switch domainErr {
	case appErrors.ErrRecipientNotFound, appErrors.ErrAccountNotFound:
		status = fiber.StatusNotFound
	case appErrors.ErrAccountLocked:
		status = fiber.StatusLocked
	case appErrors.ErrStorageConflict:
		status = fiber.StatusConflict
	}

	return utils.Respond(c, status, fiber.Map{
		"error": domainErr.Message,
		"code":  domainErr.Code,
	})
}
