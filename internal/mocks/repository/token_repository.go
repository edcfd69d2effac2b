package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRefreshTokenRepository struct {
	mock.Mock
}

func NewMockRefreshTokenRepository(t *testing.T) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)

	return value[*entity.RefreshToken](args, 0), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return value[int64](args, 0), args.Error(1)
}

func (m *MockRefreshTokenRepository) CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)

	return value[int](args, 0), args.Error(1)
}

type MockUserTokenRepository struct {
	mock.Mock
}

func NewMockUserTokenRepository(t *testing.T) *MockUserTokenRepository {
	m := &MockUserTokenRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockUserTokenRepository) Create(ctx context.Context, token *entity.UserToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockUserTokenRepository) FindByHash(ctx context.Context, purpose entity.TokenPurpose, tokenHash string) (*entity.UserToken, error) {
	args := m.Called(ctx, purpose, tokenHash)

	return value[*entity.UserToken](args, 0), args.Error(1)
}

func (m *MockUserTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	return m.Called(ctx, id, usedAt).Error(0)
}

func (m *MockUserTokenRepository) InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose, usedAt time.Time) error {
	return m.Called(ctx, userID, purpose, usedAt).Error(0)
}

func (m *MockUserTokenRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)

	return value[int64](args, 0), args.Error(1)
}
