package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/dberrors"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// ProfessorRepository handles professor assignment database operations
type ProfessorRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(q db.Querier) *ProfessorRepository {
	return &ProfessorRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ProfessorRepository) link(ctx context.Context, table, column string, professorID, id int64) error {
	sql, args, err := r.sb.Insert(table).
		Columns("professor_id", column).
		Values(professorID, id).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s insert: %w", table, err)
	}

	if _, err := db.Executor(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s reference: %w", table, apperrors.ErrResourceNotFound)
		}
		logger.Error().Err(err).Int64("professorID", professorID).Int64(column, id).Msg("Error inserting assignment")
		return fmt.Errorf("error inserting into %s: %w", table, err)
	}
	return nil
}

// AssignDepartment links a professor to a department. Repeating it is a no-op.
func (r *ProfessorRepository) AssignDepartment(ctx context.Context, professorID, departmentID int64) error {
	return r.link(ctx, "professor_departments", "department_id", professorID, departmentID)
}

// AssignCourse links a professor to a course. Repeating it is a no-op.
func (r *ProfessorRepository) AssignCourse(ctx context.Context, professorID, courseID int64) error {
	return r.link(ctx, "professor_courses", "course_id", professorID, courseID)
}

// GetDepartments lists the departments a professor is assigned to
func (r *ProfessorRepository) GetDepartments(ctx context.Context, professorID int64) ([]*models.Department, error) {
	sql, args, err := r.sb.Select("d.id", "d.name").
		From("professor_departments pd").
		Join("departments d ON d.id = pd.department_id").
		Where(squirrel.Eq{"pd.professor_id": professorID}).
		OrderBy("d.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build professor departments query: %w", err)
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying professor departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		d := &models.Department{}
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// GetCourses lists the courses a professor is assigned to
func (r *ProfessorRepository) GetCourses(ctx context.Context, professorID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("c.id", "c.name", "c.department_id", "c.course_type", "d.name").
		From("professor_courses pc").
		Join("courses c ON c.id = pc.course_id").
		Join("departments d ON d.id = c.department_id").
		Where(squirrel.Eq{"pc.professor_id": professorID}).
		OrderBy("c.name ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build professor courses query: %w", err)
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying professor courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Name, &c.DepartmentID, &c.Type, &c.DepartmentName); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// HasCourse reports whether the course is assigned to the professor
func (r *ProfessorRepository) HasCourse(ctx context.Context, professorID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("professor_courses").
		Where(squirrel.Eq{"professor_id": professorID, "course_id": courseID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build professor course check: %w", err)
	}

	var exists bool
	if err := db.Executor(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking professor course: %w", err)
	}
	return exists, nil
}
