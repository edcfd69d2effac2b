package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type userTokenRepository struct {
	db *gorm.DB
}

// NewUserTokenRepository is the constructor for userTokenRepository.
func NewUserTokenRepository(db *gorm.DB) repository.UserTokenRepository {
	return &userTokenRepository{
		db: db,
	}
}

func (repo *userTokenRepository) Create(ctx context.Context, token *entity.UserToken) error {
	tokenM := fromUserTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

func (repo *userTokenRepository) FindByHash(ctx context.Context, purpose entity.TokenPurpose, tokenHash string) (*entity.UserToken, error) {
	var tokenM model.UserTokenModel

	if err := repo.db.WithContext(ctx).
		Where("purpose = ? AND token_hash = ?", string(purpose), tokenHash).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find user token")
	}

	return toUserTokenDomain(&tokenM), nil
}

// MarkUsed stamps used_at only while the token is unused, so a token redeems once.
func (repo *userTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserTokenModel{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark user token used")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserTokenNotFound
	}

	return nil
}

func (repo *userTokenRepository) InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose, usedAt time.Time) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.UserTokenModel{}).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL", userID, string(purpose)).
		Update("used_at", usedAt).Error; err != nil {
		return errors.Wrap(err, "failed to invalidate user tokens")
	}

	return nil
}

func (repo *userTokenRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ? OR used_at < ?", cutoff, cutoff).
		Delete(&model.UserTokenModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete stale user tokens")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toUserTokenDomain(data *model.UserTokenModel) *entity.UserToken {
	if data == nil {
		return nil
	}

	return &entity.UserToken{
		ID:        data.ID,
		UserID:    data.UserID,
		Purpose:   entity.TokenPurpose(data.Purpose),
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		UsedAt:    data.UsedAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromUserTokenDomain(data *entity.UserToken) *model.UserTokenModel {
	if data == nil {
		return nil
	}

	return &model.UserTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Purpose:   string(data.Purpose),
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		UsedAt:    data.UsedAt,
		CreatedAt: data.CreatedAt,
	}
}
