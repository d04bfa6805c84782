// Package main seeds demo accounts for local development. Safe to run more
// than once: accounts that already exist are left untouched.
package main

import (
	"errors"
	"log"

	"opal/internal/config"
	"opal/internal/money"
	"opal/internal/repositories"
	"opal/internal/services/auth"
)

type seedAccount struct {
	name    string
	phone   string
	email   string
	pin     string
	balance money.Amount
}

func main() {
	config.LoadEnv()

	db, err := repositories.Open(repositories.DBConfigFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.Close(db)

	accountRepo := repositories.NewAccountRepository(db)
	authService := auth.NewService(accountRepo, auth.Config{
		JWTSecret: config.GetEnv("JWT_SECRET", "opal-dev-secret"),
	})

	seeds := []seedAccount{
		{"Alice Demo", "+10000000001", "alice@example.com", "1234", money.FromUnits(1000)},
		{"Bob Demo", "+10000000002", "bob@example.com", "1234", money.FromUnits(500)},
		{"Carol Demo", "+10000000003", "carol@example.com", "1234", money.FromUnits(0)},
	}

	for _, s := range seeds {
		if _, err := accountRepo.GetByIdentifier(s.phone); err == nil {
			log.Printf("Account %s already exists, skipping", s.phone)
			continue
		}

		account, err := authService.Register(auth.RegisterInput{
			Name:            s.name,
			Phone:           s.phone,
			Email:           s.email,
			PIN:             s.pin,
			StartingBalance: s.balance,
		})
		if err != nil {
			if errors.Is(err, auth.ErrPhoneRegistered) {
				log.Printf("Account %s already exists, skipping", s.phone)
				continue
			}
			log.Fatalf("Failed to seed account %s: %v", s.phone, err)
		}
		log.Printf("Seeded %s (wallet %s, balance %s)", account.Name, account.WalletNumber, account.Balance.String())
	}

	log.Println("Seed complete")
}
