package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the identity provider claims the service relies on. UserID is
// parsed from the subject.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService validates bearer tokens issued by the identity provider.
type TokenService interface {
	// GenerateAccessToken mints a token with the same shape the identity provider issues.
	GenerateAccessToken(userID uuid.UUID, email string, ttl time.Duration) (string, error)

	// ValidateToken checks signature, expiry, issuer and audience.
	ValidateToken(tokenString string) (*Claims, error)
}
