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

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(q db.Querier) *StudentRepository {
	return &StudentRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	cols := append(append([]string{}, userColumns...),
		"s.department_id", "d.name", "s.fees_due::float8", "s.fees_paid::float8")
	return r.sb.Select(cols...).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Join("departments d ON d.id = s.department_id")
}

func scanStudent(row pgx.Row, s *models.Student) error {
	return row.Scan(&s.ID, &s.Username, &s.Password, &s.Name, &s.Email, &s.Role, &s.CreatedAt,
		&s.DepartmentID, &s.DepartmentName, &s.FeesDue, &s.FeesPaid)
}

// CreateStudent inserts the 'students' row of an existing student account
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "department_id", "fees_due", "fees_paid").
		Values(student.ID, student.DepartmentID, student.FeesDue, student.FeesPaid).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err = db.Executor(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Int64("userID", student.ID).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("userID", student.ID).Int64("departmentID", student.DepartmentID).Msg("Student created successfully")
	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, userID int64, forUpdate bool) (*models.Student, error) {
	q := r.selectStudents().Where(squirrel.Eq{"s.user_id": userID}).Limit(1)
	if forUpdate {
		q = q.Suffix("FOR UPDATE OF s")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s := &models.Student{}
	if err := scanStudent(db.Executor(ctx, r.db).QueryRow(ctx, sql, args...), s); err != nil {
		if dberrors.IsNoRows(err) {
			logger.Warn().Int64("userID", userID).Msg("Student not found by user ID")
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return s, nil
}

// GetStudentByUserID retrieves a student by user ID
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, userID, false)
}

// GetStudentForUpdate retrieves a student and locks its fee row until the
// surrounding transaction ends
func (r *StudentRepository) GetStudentForUpdate(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, userID, true)
}

// UpdateFeesPaid overwrites the paid amount of a student
func (r *StudentRepository) UpdateFeesPaid(ctx context.Context, userID int64, paid float64) error {
	sql, args, err := r.sb.Update("students").
		Set("fees_paid", paid).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update fees query: %w", err)
	}

	tag, err := db.Executor(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating fees paid")
		return fmt.Errorf("error updating fees: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := q.OrderBy("u.name ASC", "u.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s := &models.Student{}
		if err := scanStudent(rows, s); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// ListStudents returns every student ordered by name
func (r *StudentRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents())
}

// ListStudentsByDepartment returns the students of one department
func (r *StudentRepository) ListStudentsByDepartment(ctx context.Context, departmentID int64) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents().Where(squirrel.Eq{"s.department_id": departmentID}))
}

// ListStudentsVisibleToProfessor returns the students whose department is the
// department of at least one course assigned to the professor
func (r *StudentRepository) ListStudentsVisibleToProfessor(ctx context.Context, professorID int64) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents().Where(squirrel.Expr(
		`s.department_id IN (
			SELECT c.department_id FROM professor_courses pc
			JOIN courses c ON c.id = pc.course_id
			WHERE pc.professor_id = ?)`, professorID)))
}
