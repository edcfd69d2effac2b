// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	tokenTypeBearer       = "Bearer"
	defaultVerifyTokenTTL = 24 * time.Hour
	defaultAppBaseURL     = "http://localhost:3000"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	mailer            service.Mailer
	maxActiveSessions int
	userTokenTTL      time.Duration
	appBaseURL        string
	logger            *slog.Logger
	now               func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Mailer           service.Mailer
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	maxActiveSessions := 0
	userTokenTTL := defaultVerifyTokenTTL
	appBaseURL := defaultAppBaseURL
	if params.Config != nil {
		if params.Config.Auth != nil {
			maxActiveSessions = params.Config.Auth.MaxActiveSessions
			if params.Config.Auth.VerifyTokenTTL > 0 {
				userTokenTTL = params.Config.Auth.VerifyTokenTTL
			}
		}
		if params.Config.Mail != nil && params.Config.Mail.AppBaseURL != "" {
			appBaseURL = strings.TrimRight(params.Config.Mail.AppBaseURL, "/")
		}
	}

	return &authService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		mailer:            params.Mailer,
		maxActiveSessions: maxActiveSessions,
		userTokenTTL:      userTokenTTL,
		appBaseURL:        appBaseURL,
		logger:            params.Logger,
		now:               time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a customer account and mails a verification link.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	// bcrypt is CPU-bound, keep it out of the transaction.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := srv.now()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var verifyToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to find user by email")
		}

		if createErr := userRepo.Create(ctx, user); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateEmail) {
				return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
			}

			return errors.Wrap(createErr, "failed to create user")
		}

		var tokenErr error
		verifyToken, tokenErr = srv.issueUserToken(ctx, repoFactory.UserTokenRepo(), user.ID, entity.TokenPurposeVerifyEmail)

		return tokenErr
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.sendMail(ctx, &service.MailMessage{
		To:      user.Email,
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hi %s,\n\nconfirm your email address by opening %s/verify-email?token=%s\n",
			user.Name, srv.appBaseURL, verifyToken),
	})
	srv.log(ctx).Info("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login checks the credentials and opens a new session.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.persistRefreshToken(ctx, user.ID, refreshToken); err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create refresh token during login")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return srv.loginOutput(user, accessToken, refreshToken), nil
}

func (srv *authService) persistRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if srv.maxActiveSessions <= 0 {
		return srv.storeRefreshToken(ctx, srv.refreshTokenRepo, userID, refreshToken)
	}

	// Count and insert in one transaction so concurrent logins cannot both pass the limit check.
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		activeSessions, err := refreshRepo.CountActiveSessionsByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count active sessions")
		}
		if activeSessions >= srv.maxActiveSessions {
			return errors.Wrap(domainerrors.ErrSessionLimitExceeded, "active session limit exceeded")
		}

		return srv.storeRefreshToken(ctx, refreshRepo, userID, refreshToken)
	})
}

func (srv *authService) storeRefreshToken(ctx context.Context, refreshRepo repository.RefreshTokenRepository, userID uuid.UUID, refreshToken string) error {
	now := srv.now()
	record := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: util.HashToken(refreshToken),
		ExpiresAt: now.Add(srv.tokenService.GetRefreshTokenDuration()),
		CreatedAt: now,
	}

	if err := refreshRepo.CreateRefreshToken(ctx, record); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// RefreshToken rotates a session: the presented refresh token is revoked and a new pair is issued.
func (srv *authService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, err.Error())
	}

	var (
		user                       *entity.User
		newAccess, newRefreshToken string
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		tokenHash := util.HashToken(refreshToken)

		stored, findErr := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRefreshTokenNotFound) {
				return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found")
			}

			return errors.Wrap(findErr, "failed to find refresh token")
		}
		if stored.UserID != claims.UserID {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token subject mismatch")
		}
		if !srv.now().Before(stored.ExpiresAt) {
			return errors.Wrap(domainerrors.ErrRefreshTokenExpired, "refresh token expired")
		}

		var userErr error
		user, userErr = repoFactory.UserRepo().FindByID(ctx, stored.UserID)
		if userErr != nil {
			if errors.Is(userErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "user no longer exists")
			}

			return errors.Wrap(userErr, "failed to find user")
		}

		if delErr := refreshRepo.DeleteRefreshTokenByHash(ctx, tokenHash); delErr != nil {
			return errors.Wrap(delErr, "failed to revoke refresh token")
		}

		var genErr error
		newAccess, newRefreshToken, genErr = srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
		if genErr != nil {
			return errors.Wrap(genErr, "failed to generate tokens")
		}

		return srv.storeRefreshToken(ctx, refreshRepo, user.ID, newRefreshToken)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute refresh token transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh token transaction")
	}

	return srv.loginOutput(user, newAccess, newRefreshToken), nil
}

// Logout handles the process of invalidating a user's session by deleting their refresh token.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.ValidateRefreshToken(refreshToken); err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, util.HashToken(refreshToken))
	if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// VerifyEmail redeems a verification link.
func (srv *authService) VerifyEmail(ctx context.Context, token string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userToken, err := srv.redeemUserToken(ctx, repoFactory.UserTokenRepo(), entity.TokenPurposeVerifyEmail, token)
		if err != nil {
			return err
		}

		userRepo := repoFactory.UserRepo()
		user, err := userRepo.FindByID(ctx, userToken.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserTokenInvalid, "token owner no longer exists")
			}

			return errors.Wrap(err, "failed to find user")
		}

		user.Verified = true
		user.UpdatedAt = srv.now()
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to verify email")
	}

	return nil
}

// ForgotPassword mails a reset link when the account exists and silently succeeds otherwise.
func (srv *authService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown email", slog.String("email", email))

			return nil
		}

		return errors.Wrap(err, "failed to find user by email")
	}

	var resetToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.UserTokenRepo()
		if err := tokenRepo.InvalidateForUser(ctx, user.ID, entity.TokenPurposeResetPassword, srv.now()); err != nil {
			return errors.Wrap(err, "failed to invalidate previous reset tokens")
		}

		var tokenErr error
		resetToken, tokenErr = srv.issueUserToken(ctx, tokenRepo, user.ID, entity.TokenPurposeResetPassword)

		return tokenErr
	})
	if err != nil {
		return errors.Wrap(err, "failed to issue password reset token")
	}

	srv.sendMail(ctx, &service.MailMessage{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf("Hi %s,\n\nreset your password by opening %s/reset-password?token=%s\nThe link expires in %s.\n",
			user.Name, srv.appBaseURL, resetToken, util.FormatDuration(srv.userTokenTTL)),
	})

	return nil
}

// ResetPassword sets a new password from a reset link and signs the user out everywhere.
func (srv *authService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	var userID uuid.UUID
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userToken, err := srv.redeemUserToken(ctx, repoFactory.UserTokenRepo(), entity.TokenPurposeResetPassword, input.Token)
		if err != nil {
			return err
		}

		userRepo := repoFactory.UserRepo()
		user, err := userRepo.FindByID(ctx, userToken.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserTokenInvalid, "token owner no longer exists")
			}

			return errors.Wrap(err, "failed to find user")
		}

		user.PasswordHash = passwordHash
		user.UpdatedAt = srv.now()
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		if err := repoFactory.RefreshTokenRepo().DeleteRefreshTokensByUserID(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions")
		}
		userID = user.ID

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to reset password")
	}
	srv.log(ctx).Info("Password reset", slog.Any("userID", userID))

	return nil
}

func (srv *authService) issueUserToken(ctx context.Context, tokenRepo repository.UserTokenRepository, userID uuid.UUID, purpose entity.TokenPurpose) (string, error) {
	raw, err := util.NewOpaqueToken()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate token")
	}

	now := srv.now()
	record := &entity.UserToken{
		ID:        uuid.New(),
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: util.HashToken(raw),
		ExpiresAt: now.Add(srv.userTokenTTL),
		CreatedAt: now,
	}
	if err := tokenRepo.Create(ctx, record); err != nil {
		return "", errors.Wrap(err, "failed to store user token")
	}

	return raw, nil
}

// redeemUserToken looks up a usable token and marks it used.
func (srv *authService) redeemUserToken(ctx context.Context, tokenRepo repository.UserTokenRepository, purpose entity.TokenPurpose, raw string) (*entity.UserToken, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.Wrap(domainerrors.ErrUserTokenInvalid, "empty token")
	}

	userToken, err := tokenRepo.FindByHash(ctx, purpose, util.HashToken(raw))
	if err != nil {
		if errors.Is(err, repository.ErrUserTokenNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserTokenInvalid, "token not found")
		}

		return nil, errors.Wrap(err, "failed to find user token")
	}

	now := srv.now()
	if !userToken.Usable(now) {
		return nil, errors.Wrap(domainerrors.ErrUserTokenInvalid, "token expired or already used")
	}

	if err := tokenRepo.MarkUsed(ctx, userToken.ID, now); err != nil {
		if errors.Is(err, repository.ErrUserTokenNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserTokenInvalid, "token already used")
		}

		return nil, errors.Wrap(err, "failed to mark token used")
	}

	return userToken, nil
}

// sendMail logs delivery failures instead of failing the request; the account change is already committed.
func (srv *authService) sendMail(ctx context.Context, msg *service.MailMessage) {
	if err := srv.mailer.Send(ctx, msg); err != nil {
		srv.log(ctx).Error("Failed to send email", slog.String("subject", msg.Subject), slog.Any("error", err))
	}
}

func (srv *authService) loginOutput(user *entity.User, accessToken, refreshToken string) *usecase.LoginOutput {
	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(srv.tokenService.GetAccessTokenDuration().Seconds()),
		User:         user,
	}
}
