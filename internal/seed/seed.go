package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emre/tutorhub/internal/app/models"
	appRepos "github.com/emre/tutorhub/internal/app/repositories"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/auth"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData seeds the default admin account if it does not exist.
// The admin is a staff account with an ADMIN profile, so it can message
// anyone and hold either role entry.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	profileRepo := appRepos.NewProfileRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, defaultAdminUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.User{
		Username: defaultAdminUsername,
		Password: hashedPassword,
		IsStaff:  true,
	}
	if err := userRepo.CreateWithProfile(ctx, admin); err != nil {
		// A concurrent instance may have created it in the meantime
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	profile, err := profileRepo.GetByUserID(ctx, admin.ID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error loading admin profile")
		return err
	}
	if err := profileRepo.UpdateRole(ctx, profile.ID, appModels.RoleAdmin); err != nil {
		lgr.Error().Err(err).Msg("Error setting admin role")
		return err
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Default admin user created")
	return nil
}
