// Package auth is the gate in front of the movement engine: it resolves a
// phone + PIN to an account, enforces the failed-attempt lockout and issues
// access tokens. The engine itself never sees a credential.
package auth

import (
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appErrors "opal/internal/errors"
	"opal/internal/models"
	"opal/internal/money"
	"opal/internal/repositories"
)

// Lockout defaults.
const (
	DefaultLockAfter = 5
	DefaultLockFor   = 15 * time.Minute
	DefaultTokenTTL  = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPIN         = errors.New("PIN must be 4 or 5 digits")
	ErrPhoneRegistered    = errors.New("phone number already registered")
	ErrEmailRegistered    = errors.New("email address already registered")
)

var pinPattern = regexp.MustCompile(`^\d{4,5}$`)

// Config holds auth settings. Zero values are replaced with defaults.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	LockAfter int
	LockFor   time.Duration
}

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Name            string
	Phone           string
	Email           string
	PIN             string
	StartingBalance money.Amount
}

// Service authenticates callers and opens accounts.
type Service interface {
	Register(input RegisterInput) (*models.Account, error)
	// Login returns the account and a signed access token. During a lockout
	// window it returns ErrAccountLocked regardless of PIN correctness.
	Login(phone, pin string) (*models.Account, string, error)
	VerifyToken(token string) (*models.AccountClaims, error)
}

type service struct {
	accounts repositories.AccountRepository
	cfg      Config
	now      func() time.Time
}

// NewService creates the auth gate.
func NewService(accounts repositories.AccountRepository, cfg Config) Service {
	if accounts == nil {
		panic("account repository is required")
	}
	if cfg.JWTSecret == "" {
		panic("JWT secret is required")
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.LockAfter == 0 {
		cfg.LockAfter = DefaultLockAfter
	}
	if cfg.LockFor == 0 {
		cfg.LockFor = DefaultLockFor
	}
	return &service{
		accounts: accounts,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *service) Register(input RegisterInput) (*models.Account, error) {
	if !pinPattern.MatchString(input.PIN) {
		return nil, ErrInvalidPIN
	}
	if input.StartingBalance < 0 {
		return nil, appErrors.ErrInvalidAmount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		WalletNumber: uuid.NewString(),
		Name:         input.Name,
		Phone:        input.Phone,
		PINHash:      string(hash),
		Balance:      input.StartingBalance,
		Status:       models.AccountStatusActive,
	}
	// Email is optional; absent emails stay NULL so they never collide on
	// the unique index.
	if input.Email != "" {
		account.Email = &input.Email
	}

	if err := s.accounts.Create(account); err != nil {
		if repositories.IsUniqueViolation(err) {
			if strings.Contains(repositories.UniqueViolationConstraint(err), "email") {
				return nil, ErrEmailRegistered
			}
			return nil, ErrPhoneRegistered
		}
		return nil, err
	}
	return account, nil
}

func (s *service) Login(phone, pin string) (*models.Account, string, error) {
	account, err := s.accounts.GetByPhone(phone)
	if err != nil {
		if errors.Is(err, appErrors.ErrAccountNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if account.Status == models.AccountStatusClosed {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now()
	if account.Locked(now) {
		return nil, "", appErrors.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PINHash), []byte(pin)); err != nil {
		attempts, recErr := s.accounts.RecordFailedPIN(account.ID, s.cfg.LockAfter, s.cfg.LockFor, now)
		if recErr != nil {
			log.Printf("failed to record PIN failure for account %d: %v", account.ID, recErr)
		} else if attempts >= s.cfg.LockAfter {
			log.Printf("account %d locked after %d failed PIN attempts", account.ID, attempts)
		}
		return nil, "", ErrInvalidCredentials
	}

	// A correct PIN clears the counter and any expired lock.
	if err := s.accounts.ResetFailedPIN(account.ID); err != nil {
		log.Printf("failed to reset PIN counter for account %d: %v", account.ID, err)
	}

	token, err := s.generateToken(account, now)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}
