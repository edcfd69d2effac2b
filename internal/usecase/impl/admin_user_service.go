package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type adminUserService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// NewAdminUserService creates the back-office user management use case.
func NewAdminUserService(txManager repository.TransactionManager, userRepo repository.UserRepository, logger *slog.Logger) usecase.AdminUserUsecase {
	return &adminUserService{
		txManager: txManager,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (s *adminUserService) ListUsers(ctx context.Context, search string, page entity.Pagination) (*entity.Page[*entity.User], error) {
	page = page.Normalize()
	users, total, err := s.userRepo.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, dataError(err, "failed to fetch users")
	}

	return entity.NewPage(users, total, page), nil
}

func (s *adminUserService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user, err := findUser(ctx, repos.UserRepo(), userID)
		if err != nil {
			return err
		}
		if user.IsAdmin() {
			return errors.Wrap(domainerrors.ErrCannotDeleteAdmin, "target is an admin")
		}

		if err := repos.UserRepo().SoftDelete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return dataError(err, "failed to delete user")
		}
		if err := repos.CartRepo().ClearByUser(ctx, userID); err != nil {
			return dataError(err, "failed to delete user")
		}
		if err := repos.RefreshTokenRepo().DeleteRefreshTokensByUserID(ctx, userID); err != nil {
			return dataError(err, "failed to delete user")
		}
		if err := repos.DeviceRepo().DeleteDevicesByUser(ctx, userID); err != nil {
			return dataError(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("User deleted by admin",
		slog.Any("actorID", actorID),
		slog.Any("userID", userID),
	)

	return nil
}
