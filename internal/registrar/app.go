// Package registrar wires configuration, database and services into a
// runnable application and owns their lifetime.
package registrar

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/bootstrap"
	"github.com/yigit/registrar/internal/cli"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
)

// App holds the state shared by every command.
type App struct {
	config   *config.Config
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	logger   zerolog.Logger
}

// New loads the configuration, connects to the database and builds the services.
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &App{
		config:   cfg,
		database: database,
		deps:     bootstrap.BuildDependencies(cfg, database, lgr),
		logger:   lgr,
	}, nil
}

// Migrate applies pending schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	return bootstrap.RunMigrations(ctx, a.database, a.logger)
}

// Seed creates the default admin account and the configured departments.
func (a *App) Seed(ctx context.Context) error {
	return bootstrap.SeedDefaults(ctx, a.config, a.deps)
}

// Run prepares the schema and default data, then serves the interactive menu
// until the input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := a.Migrate(ctx); err != nil {
		return err
	}
	if err := a.Seed(ctx); err != nil {
		// Log the error but don't fail the startup
		a.logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	shell := cli.New(cli.Services{
		Auth:        a.deps.AuthService,
		Accounts:    a.deps.AccountService,
		Departments: a.deps.DepartmentService,
		Courses:     a.deps.CourseService,
		Enrollment:  a.deps.EnrollmentService,
		Grades:      a.deps.GradeService,
		Attendance:  a.deps.AttendanceService,
		Fees:        a.deps.FeeService,
	}, in, out, a.logger)
	return shell.Run(ctx)
}

// ResetPassword replaces the password of the named account.
func (a *App) ResetPassword(ctx context.Context, username, password string) error {
	return a.deps.AccountService.ResetPassword(ctx, dto.ResetPasswordRequest{
		Username: username,
		Password: password,
	})
}

// Close releases the database pool.
func (a *App) Close() {
	if a.database != nil {
		a.logger.Info().Msg("Closing database connection pool...")
		a.database.Close()
		a.logger.Info().Msg("Database connection pool closed.")
	}
}
