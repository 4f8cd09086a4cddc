package repositories

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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(q db.Querier) *CourseRepository {
	return &CourseRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select("c.id", "c.name", "c.department_id", "c.course_type", "d.name").
		From("courses c").
		Join("departments d ON d.id = c.department_id")
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "department_id", "course_type").
		Values(course.Name, course.DepartmentID, course.Type).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = db.Executor(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&course.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course with its department name
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.selectCourses().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c := &models.Course{}
	err = db.Executor(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.DepartmentID, &c.Type, &c.DepartmentName)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return c, nil
}

// GetAll retrieves all courses ordered by department and name
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.list(ctx, r.selectCourses())
}

// GetByDepartmentID retrieves the courses of one department
func (r *CourseRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	return r.list(ctx, r.selectCourses().Where(squirrel.Eq{"c.department_id": departmentID}))
}

func (r *CourseRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := q.OrderBy("d.name ASC", "c.name ASC", "c.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
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
