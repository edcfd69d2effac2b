// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
	now       func() time.Time
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
		now:       time.Now,
	}
}

// GetProfile retrieves the account of the signed-in user.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	srv.logger.Debug("Getting user profile", "userID", userID)

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		foundUser, err := findUser(ctx, repoFactory.UserRepo(), userID)
		if err != nil {
			return err
		}
		user = foundUser

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to get user profile")
	}

	return user, nil
}

// UpdateProfile applies the supplied fields. A new email must be unused and
// clears the verified flag; a new password requires the current one.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.logger.Info("Updating user profile", "userID", userID)

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// 1. Find the user
		foundUser, err := findUser(ctx, userRepo, userID)
		if err != nil {
			return err
		}
		user = foundUser

		// 2. Apply simple fields
		if input.Name != nil {
			if err := validateName(*input.Name); err != nil {
				return err
			}
			user.Name = strings.TrimSpace(*input.Name)
		}
		if input.Phone != nil {
			phone := strings.TrimSpace(*input.Phone)
			if err := validatePhone(phone); err != nil {
				return err
			}
			user.Phone = phone
		}

		// 3. Email change
		if input.Email != nil {
			if err := srv.applyEmailChange(ctx, userRepo, user, *input.Email); err != nil {
				return err
			}
		}

		// 4. Password change
		if input.NewPassword != "" {
			if input.CurrentPassword == "" || !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
				return errors.Wrap(domainerrors.ErrCurrentPasswordIncorrect, "current password check failed")
			}

			passwordHash, err := srv.hasher.Hash(input.NewPassword)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			user.PasswordHash = passwordHash
		}

		user.UpdatedAt = srv.now()
		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
			}

			return errors.Wrap(err, "failed to update user")
		}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to update user profile")
	}

	return user, nil
}

func (srv *profileService) applyEmailChange(ctx context.Context, userRepo repository.UserRepository, user *entity.User, rawEmail string) error {
	email := normalizeEmail(rawEmail)
	if email == user.Email {
		return nil
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	existing, err := userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != user.ID:
		return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
	case err != nil && !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to find user by email")
	}

	user.Email = email
	user.Verified = false

	return nil
}

func findUser(ctx context.Context, userRepo repository.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, dataError(err, "failed to fetch user")
	}

	return user, nil
}
