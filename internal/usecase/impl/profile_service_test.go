package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileServiceFixtures struct {
	service usecase.ProfileUsecase
	repos   *mockRepo.MockRepositoryFactory
	hasher  *mockSvc.MockPasswordHasher
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	repos, txManager := newTestRepos(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	svc := NewProfileService(txManager, hasher, newDiscardLogger()).(*profileService)
	svc.now = fixedNow

	return profileServiceFixtures{service: svc, repos: repos, hasher: hasher}
}

func TestProfileService_GetProfile(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := newCustomer()

	fx.repos.Users.On("FindByID", ctx, user.ID).Return(user, nil)

	got, err := fx.service.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.repos.Users.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetProfile(ctx, userID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_EmailChangeResetsVerification(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := newCustomer()
	user.Verified = true

	fx.repos.Users.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.repos.Users.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	fx.repos.Users.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	got, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{
		Name:  strPtr("Jane Doe"),
		Email: strPtr("New@Example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.False(t, got.Verified)
	assert.Equal(t, testNow, got.UpdatedAt)
}

func TestProfileService_UpdateProfile_EmailTaken(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := newCustomer()

	fx.repos.Users.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.repos.Users.On("FindByEmail", ctx, "taken@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	_, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{Email: strPtr("taken@example.com")})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestProfileService_UpdateProfile_PasswordChange(t *testing.T) {
	t.Run("requires current password", func(t *testing.T) {
		fx := createTestProfileService(t)
		ctx := context.Background()
		user := newCustomer()

		fx.repos.Users.On("FindByID", ctx, user.ID).Return(user, nil)
		fx.hasher.On("Check", "wrong", "hashed").Return(false)

		_, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{CurrentPassword: "wrong", NewPassword: "secret2"})
		assert.ErrorIs(t, err, domainerrors.ErrCurrentPasswordIncorrect)
	})

	t.Run("stores the new hash", func(t *testing.T) {
		fx := createTestProfileService(t)
		ctx := context.Background()
		user := newCustomer()

		fx.repos.Users.On("FindByID", ctx, user.ID).Return(user, nil)
		fx.hasher.On("Check", "secret1", "hashed").Return(true)
		fx.hasher.On("Hash", "secret2").Return("hashed-2", nil)
		fx.repos.Users.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool { return u.PasswordHash == "hashed-2" })).Return(nil)

		_, err := fx.service.UpdateProfile(ctx, user.ID, &usecase.UpdateProfileInput{CurrentPassword: "secret1", NewPassword: "secret2"})
		require.NoError(t, err)
	})
}
