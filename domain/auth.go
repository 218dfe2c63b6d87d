package domain

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidData = errors.New("invalid data")
	ErrExpired     = errors.New("expired")
	ErrRevoked     = errors.New("revoked")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// TokenClaims is the claim set embedded in a signed token. The account
// fields are a snapshot taken at issue time.
type TokenClaims struct {
	AccountID        int64
	Email            string
	Role             string
	AccountCreatedAt string
	AccountUpdatedAt string
	ExpireAt         time.Time
	Type             TokenType
}

type TokenRepo interface {
	Generate(account *Account, tokenType TokenType, now, expireAt time.Time) (string, error)
	// Verify checks signature, expiry and the type discriminator. It maps
	// failures to ErrInvalidData and ErrExpired.
	Verify(token string, tokenType TokenType) (*TokenClaims, error)
}

// RevocationStore tracks revoked token strings. Revocation is by exact
// string: a freshly issued token for the same subject is unaffected.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*Account, error)
	Logout(ctx context.Context, accessToken string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Verify(ctx context.Context, accessToken string) (int64, error)
}
