package main

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const minPasswordLength = 6

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage back-office accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a verified admin account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			users  repository.UserRepository
			hasher service.PasswordHasher
		)
		stop, err := withApp(cmd.Context(), &users, &hasher)
		if err != nil {
			return err
		}
		defer stop()

		user, err := createAdmin(cmd.Context(), users, hasher, adminEmail, adminName, adminPassword, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Email, user.ID)

		return nil
	},
}

var adminPromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Grant the admin role to an existing account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var users repository.UserRepository
		stop, err := withApp(cmd.Context(), &users)
		if err != nil {
			return err
		}
		defer stop()

		user, err := promoteUser(cmd.Context(), users, adminEmail, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", user.Email)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminCreateCmd, adminPromoteCmd)

	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email address")
	adminCreateCmd.Flags().StringVar(&adminName, "name", "Administrator", "Display name")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminPromoteCmd.Flags().StringVar(&adminEmail, "email", "", "Email of the account to promote")
	_ = adminPromoteCmd.MarkFlagRequired("email")
}

func createAdmin(ctx context.Context, users repository.UserRepository, hasher service.PasswordHasher, email, name, password string, now time.Time) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.Errorf("invalid email %q", email)
	}
	if len(password) < minPasswordLength {
		return nil, errors.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.Errorf("%s already exists, use `storectl admin promote`", email)
		}

		return nil, errors.Wrap(err, "failed to create admin")
	}

	return user, nil
}

func promoteUser(ctx context.Context, users repository.UserRepository, email string, now time.Time) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Errorf("no account for %s", email)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if user.IsAdmin() {
		return user, nil
	}

	user.Role = entity.RoleAdmin
	user.UpdatedAt = now
	if err := users.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to promote user")
	}

	return user, nil
}
