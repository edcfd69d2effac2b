package repository

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserTokenNotFound is returned when a one-time token does not exist or was already used.
var ErrUserTokenNotFound = errors.New("user token not found")

// UserTokenRepository persists email verification and password reset tokens.
type UserTokenRepository interface {
	Create(ctx context.Context, token *entity.UserToken) error

	// FindByHash looks up a token of the given purpose.
	FindByHash(ctx context.Context, purpose entity.TokenPurpose, tokenHash string) (*entity.UserToken, error)

	// MarkUsed stamps used_at only if the token is still unused.
	MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error

	// InvalidateForUser marks every unused token of purpose for the user as used.
	InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose, usedAt time.Time) error

	// DeleteStale removes tokens that expired or were used before cutoff.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
