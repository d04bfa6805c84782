package models

import "github.com/golang-jwt/jwt/v5"

// AccountClaims are the JWT claims carried by an access token. The auth gate
// has already verified the PIN and lock state by the time a token exists, so
// handlers treat AccountID as the authenticated caller.
type AccountClaims struct {
	jwt.RegisteredClaims
	AccountID    uint   `json:"account_id"`
	WalletNumber string `json:"wallet_number"`
	Phone        string `json:"phone"`
}
