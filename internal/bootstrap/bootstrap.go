package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appMigrations "github.com/yigit/registrar/internal/app/migrations"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	appServices "github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/logger"
	"github.com/yigit/registrar/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	AccountService    *appServices.AccountService
	DepartmentService *appServices.DepartmentService
	CourseService     *appServices.CourseService
	EnrollmentService *appServices.EnrollmentService
	GradeService      *appServices.GradeService
	AttendanceService *appServices.AttendanceService
	FeeService        *appServices.FeeService
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies the embedded SQL migrations that have not run yet.
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database.Pool).Up(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SeedDefaults creates the default admin account and departments.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	return seed.CreateDefaultData(ctx, cfg, deps.AccountService, deps.DepartmentService, deps.Logger)
}

// BuildDependencies initializes application repositories and services.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	users := deps.Repos.UserRepository
	departments := deps.Repos.DepartmentRepository
	courses := deps.Repos.CourseRepository

	deps.AuthService = appServices.NewAuthService(users, users, users, lgr)
	deps.AccountService = appServices.NewAccountService(database, users, users, departments, cfg.Fees.DefaultDue, lgr)
	deps.DepartmentService = appServices.NewDepartmentService(departments)
	deps.CourseService = appServices.NewCourseService(courses, departments)
	deps.EnrollmentService = appServices.NewEnrollmentService(database, users, users, users, departments, courses, lgr)
	deps.GradeService = appServices.NewGradeService(deps.Repos.GradeRepository, courses, users, deps.EnrollmentService, lgr)
	deps.AttendanceService = appServices.NewAttendanceService(deps.Repos.AttendanceRepository, courses, users, deps.EnrollmentService, lgr)
	deps.FeeService = appServices.NewFeeService(database, users, lgr)

	return deps
}
