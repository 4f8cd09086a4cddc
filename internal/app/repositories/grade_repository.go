package repositories

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

// GradeRepository stores one grade row per student and course
type GradeRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(q db.Querier) *GradeRepository {
	return &GradeRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert inserts the grade or overwrites the existing row for the same
// student and course, then fills in its id and update time
func (r *GradeRepository) Upsert(ctx context.Context, g *models.GradeRecord) error {
	sql, args, err := r.sb.Insert("grades").
		Columns("student_id", "course_id", "assignment1", "assignment2", "coursework", "final_exam", "total", "grade_letter", "updated_at").
		Values(g.StudentID, g.CourseID, g.Assignment1, g.Assignment2, g.Coursework, g.FinalExam, g.Total, g.Letter, squirrel.Expr("CURRENT_TIMESTAMP")).
		Suffix(`ON CONFLICT (student_id, course_id) DO UPDATE SET
			assignment1 = EXCLUDED.assignment1,
			assignment2 = EXCLUDED.assignment2,
			coursework = EXCLUDED.coursework,
			final_exam = EXCLUDED.final_exam,
			total = EXCLUDED.total,
			grade_letter = EXCLUDED.grade_letter,
			updated_at = EXCLUDED.updated_at
		RETURNING id, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert grade query: %w", err)
	}

	err = db.Executor(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&g.ID, &g.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("grade reference: %w", apperrors.ErrResourceNotFound)
		}
		logger.Error().Err(err).Int64("studentID", g.StudentID).Int64("courseID", g.CourseID).Msg("Error executing upsert grade query")
		return fmt.Errorf("error saving grade: %w", err)
	}
	return nil
}

func (r *GradeRepository) selectGrades() squirrel.SelectBuilder {
	return r.sb.Select("g.id", "g.student_id", "g.course_id", "g.assignment1", "g.assignment2", "g.coursework",
		"g.final_exam", "g.total", "g.grade_letter", "g.updated_at", "u.name", "c.name", "c.course_type").
		From("grades g").
		Join("users u ON u.id = g.student_id").
		Join("courses c ON c.id = g.course_id")
}

func scanGrade(row pgx.Row, g *models.GradeRecord) error {
	return row.Scan(&g.ID, &g.StudentID, &g.CourseID, &g.Assignment1, &g.Assignment2, &g.Coursework,
		&g.FinalExam, &g.Total, &g.Letter, &g.UpdatedAt, &g.StudentName, &g.CourseName, &g.CourseType)
}

// Get retrieves the grade of a student in a course
func (r *GradeRepository) Get(ctx context.Context, studentID, courseID int64) (*models.GradeRecord, error) {
	sql, args, err := r.selectGrades().
		Where(squirrel.Eq{"g.student_id": studentID, "g.course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	g := &models.GradeRecord{}
	if err := scanGrade(db.Executor(ctx, r.db).QueryRow(ctx, sql, args...), g); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.NewResourceNotFoundError("grade not found")
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	return g, nil
}

// ListByStudent lists a student's grades ordered by course name
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.GradeRecord, error) {
	return r.list(ctx, r.selectGrades().Where(squirrel.Eq{"g.student_id": studentID}).OrderBy("c.name ASC"))
}

// ListAll lists every grade ordered by student then course name
func (r *GradeRepository) ListAll(ctx context.Context) ([]*models.GradeRecord, error) {
	return r.list(ctx, r.selectGrades().OrderBy("u.name ASC", "c.name ASC"))
}

func (r *GradeRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.GradeRecord, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list grades query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.GradeRecord{}
	for rows.Next() {
		g := &models.GradeRecord{}
		if err := scanGrade(rows, g); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}
