package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

var userColumns = []string{"u.id", "u.username", "u.password", "u.name", "u.email", "u.role", "u.created_at"}

// Repository handles account database operations
type Repository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewRepository creates a new Repository
func NewRepository(q db.Querier) *Repository {
	return &Repository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row, u *models.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
}

// CreateUser inserts an account and fills in its id and creation time
func (r *Repository) CreateUser(ctx context.Context, u *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "password", "name", "email", "role").
		Values(u.Username, u.Password, u.Name, u.Email, u.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = db.Executor(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			logger.Warn().Str("username", u.Username).Msg("Attempted to create user with duplicate username")
			return apperrors.ErrUsernameAlreadyExists
		}
		logger.Error().Err(err).Str("username", u.Username).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	logger.Info().Int64("userID", u.ID).Str("role", string(u.Role)).Msg("User created")
	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users u").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u := &models.User{}
	if err := scanUser(db.Executor(ctx, r.db).QueryRow(ctx, sql, args...), u); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

// GetUserByUsername retrieves an account by its login name
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.username": username})
}

// GetUserByID retrieves an account by ID
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

// ListUsers returns accounts ordered by role then name. No roles means every account.
func (r *Repository) ListUsers(ctx context.Context, roles ...models.Role) ([]*models.User, error) {
	q := r.sb.Select(userColumns...).From("users u").OrderBy("u.role ASC", "u.name ASC", "u.id ASC")
	if len(roles) > 0 {
		q = q.Where(squirrel.Eq{"u.role": roles})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := scanUser(rows, u); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdatePassword stores a new password hash
func (r *Repository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", hash).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := db.Executor(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
