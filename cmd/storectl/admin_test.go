package main

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestCreateAdmin(t *testing.T) {
	users := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	ctx := context.Background()

	hasher.On("Hash", "s3cret!").Return("hashed", nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ops@shop.example.com" && u.Role == entity.RoleAdmin && u.Verified && u.PasswordHash == "hashed"
	})).Return(nil)

	user, err := createAdmin(ctx, users, hasher, "  Ops@Shop.example.com ", "Ops", "s3cret!", cliNow)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.Equal(t, cliNow, user.CreatedAt)
}

func TestCreateAdmin_RejectsBadInput(t *testing.T) {
	users := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)

	_, err := createAdmin(context.Background(), users, hasher, "not-an-email", "Ops", "s3cret!", cliNow)
	assert.Error(t, err)

	_, err = createAdmin(context.Background(), users, hasher, "ops@shop.example.com", "Ops", "123", cliNow)
	assert.ErrorContains(t, err, "at least 6")
}

func TestCreateAdmin_Duplicate(t *testing.T) {
	users := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)

	hasher.On("Hash", mock.Anything).Return("hashed", nil)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)

	_, err := createAdmin(context.Background(), users, hasher, "ops@shop.example.com", "Ops", "s3cret!", cliNow)
	assert.ErrorContains(t, err, "admin promote")
}

func TestPromoteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("customer", func(t *testing.T) {
		users := mockRepo.NewMockUserRepository(t)
		customer := &entity.User{ID: uuid.New(), Email: "ann@shop.example.com", Role: entity.RoleCustomer}
		users.On("FindByEmail", ctx, "ann@shop.example.com").Return(customer, nil)
		users.On("Update", ctx, customer).Return(nil)

		user, err := promoteUser(ctx, users, "ANN@shop.example.com", cliNow)
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
		assert.Equal(t, cliNow, user.UpdatedAt)
	})

	t.Run("already admin", func(t *testing.T) {
		users := mockRepo.NewMockUserRepository(t)
		admin := &entity.User{ID: uuid.New(), Email: "ops@shop.example.com", Role: entity.RoleAdmin}
		users.On("FindByEmail", ctx, "ops@shop.example.com").Return(admin, nil)

		_, err := promoteUser(ctx, users, "ops@shop.example.com", cliNow)
		require.NoError(t, err)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown", func(t *testing.T) {
		users := mockRepo.NewMockUserRepository(t)
		users.On("FindByEmail", ctx, "ghost@shop.example.com").Return(nil, repository.ErrUserNotFound)

		_, err := promoteUser(ctx, users, "ghost@shop.example.com", cliNow)
		assert.ErrorContains(t, err, "no account")
	})
}
