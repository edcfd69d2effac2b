// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ResetPasswordInput redeems a reset link.
type ResetPasswordInput struct {
	Token    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login or refresh.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64 // Access token lifetime in seconds.
	User         *entity.User
}

// AuthUsecase defines the credential flows: account creation, sessions and
// the email-token based verification and password reset.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// RefreshToken rotates the session: the presented token is revoked and a new pair issued.
	RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error)
	Logout(ctx context.Context, refreshToken string) error

	VerifyEmail(ctx context.Context, token string) error

	// ForgotPassword never reports whether the email exists.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password and revokes every session of the user.
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}
