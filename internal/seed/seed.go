package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/config"
)

// AdminCreator creates the admin account when it is missing
type AdminCreator interface {
	EnsureAdmin(ctx context.Context, req dto.CreateAccountRequest) (bool, error)
}

// DepartmentCreator creates named departments when they are missing
type DepartmentCreator interface {
	EnsureDepartments(ctx context.Context, names []string) (int, error)
}

// CreateDefaultData creates the configured departments and the default admin
// account if they don't exist. Every step runs even if an earlier one failed;
// the collected errors are returned together.
func CreateDefaultData(ctx context.Context, cfg *config.Config, admins AdminCreator, departments DepartmentCreator, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Departments/Admin)...")
	var finalErr error

	if len(cfg.Seed.Departments) > 0 {
		added, err := departments.EnsureDepartments(ctx, cfg.Seed.Departments)
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating default departments")
			finalErr = errors.Join(finalErr, err)
		}
		lgr.Info().Int("added", added).Int("configured", len(cfg.Seed.Departments)).Msg("Default departments checked")
	}

	created, err := admins.EnsureAdmin(ctx, dto.CreateAccountRequest{
		Username: cfg.Seed.AdminUsername,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
	})
	switch {
	case err != nil:
		lgr.Error().Err(err).Msg("Error creating admin user")
		finalErr = errors.Join(finalErr, err)
	case created:
		lgr.Info().Str("username", cfg.Seed.AdminUsername).Msg("Default admin user created successfully")
	default:
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
