// Package routes defines the API routing configuration. It wires the
// repositories, movement engine and auth gate together and mounts the HTTP
// handlers with their middleware.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"opal/internal/config"
	"opal/internal/handlers"
	"opal/internal/middleware"
	"opal/internal/repositories"
	"opal/internal/services/auth"
	"opal/internal/services/deposit"
	"opal/internal/services/fee"
	"opal/internal/services/limits"
	"opal/internal/services/transfer"
)

// SetupRoutes configures all application routes. cacheService may be nil, in
// which case balance and statement reads always hit the database.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService transfer.Cache) {
	store := repositories.NewStore(db)
	accountRepo := repositories.NewAccountRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)

	if cacheService == nil {
		cacheService = transfer.NoopCache{}
	}

	feePolicy := fee.NewPolicy(fee.ConfigFromEnv())
	limitPolicy := limits.NewPolicy(ledgerRepo, limits.ConfigFromEnv())
	engine := transfer.NewService(store, feePolicy, limitPolicy, cacheService)

	authService := auth.NewService(accountRepo, auth.Config{
		JWTSecret: config.GetEnv("JWT_SECRET", "opal-dev-secret"),
		TokenTTL:  config.GetDurationEnv("TOKEN_TTL", auth.DefaultTokenTTL),
	})

	tokenizer := deposit.NewTokenizer(config.GetEnv("STRIPE_SECRET_KEY", ""))
	depositService := deposit.NewService(engine, tokenizer)

	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(engine, depositService)
	movementHandler := handlers.NewMovementHandler(engine)
	transactionHandler := handlers.NewTransactionHandler(engine)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Opal API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Protected routes
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	wallet := protected.Group("/wallet")
	wallet.Get("/balance", walletHandler.GetBalance)
	wallet.Get("/fee", walletHandler.PreviewFee)
	wallet.Post("/deposit", walletHandler.AddMoney)

	protected.Post("/transfer", movementHandler.SendMoney)
	protected.Post("/bank-transfer", movementHandler.BankTransfer)
	protected.Post("/cash-out", movementHandler.CashOut)

	protected.Get("/transactions", transactionHandler.GetTransactions)
}
