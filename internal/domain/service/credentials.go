// Package service holds the contracts use cases need from infrastructure:
// credentials, payments, storage, messaging and rendering. Adapters live
// under internal/infra.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PasswordHasher stores account passwords as salted one-way hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password produces hash. Malformed hashes never match.
	Check(password, hash string) bool
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the JWT body for both token kinds; Type keeps a refresh token
// from being accepted as an access token.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Roles  []string  `json:"roles,omitempty"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the access/refresh pair handed out at login.
type TokenService interface {
	GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)

	GetAccessTokenDuration() time.Duration
	GetRefreshTokenDuration() time.Duration
}
