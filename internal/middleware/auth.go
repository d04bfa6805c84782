// Package middleware provides HTTP middleware for the fiber app. It validates
// bearer tokens and puts the account claims on the request context.
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"opal/internal/models"
	"opal/internal/services/auth"
)

// AuthMiddleware validates JWT access tokens issued by the auth gate and adds
// the account claims to the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler checks the Authorization header for a valid bearer token and stores
// the claims under c.Locals("claims").
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.authService.VerifyToken(tokenString)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals("claims", claims)
	c.Locals("accountID", claims.AccountID)

	return c.Next()
}

// AccountClaims extracts the validated claims placed by Handler.
func AccountClaims(c *fiber.Ctx) (*models.AccountClaims, error) {
	claims, ok := c.Locals("claims").(*models.AccountClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
