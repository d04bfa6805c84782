package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"opal/internal/models"
)

// generateToken signs an access token for the account.
func (s *service) generateToken(account *models.Account, now time.Time) (string, error) {
	claims := models.AccountClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "opal-api",
			Subject:   strconv.FormatUint(uint64(account.ID), 10),
		},
		AccountID:    account.ID,
		WalletNumber: account.WalletNumber,
		Phone:        account.Phone,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken parses and validates an access token.
func (s *service) VerifyToken(tokenStr string) (*models.AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.AccountClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
