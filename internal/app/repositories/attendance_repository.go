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

// AttendanceRepository stores one status per student, course and day
type AttendanceRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(q db.Querier) *AttendanceRepository {
	return &AttendanceRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert records the status, replacing any status already stored for the
// same student, course and date
func (r *AttendanceRepository) Upsert(ctx context.Context, a *models.AttendanceRecord) error {
	sql, args, err := r.sb.Insert("attendance").
		Columns("student_id", "course_id", "date", "status").
		Values(a.StudentID, a.CourseID, squirrel.Expr("?::date", a.Date), a.Status).
		Suffix("ON CONFLICT (student_id, course_id, date) DO UPDATE SET status = EXCLUDED.status RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert attendance query: %w", err)
	}

	if err := db.Executor(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&a.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("attendance reference: %w", apperrors.ErrResourceNotFound)
		}
		logger.Error().Err(err).Int64("studentID", a.StudentID).Int64("courseID", a.CourseID).Str("date", a.Date).Msg("Error executing upsert attendance query")
		return fmt.Errorf("error saving attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) selectAttendance() squirrel.SelectBuilder {
	return r.sb.Select("a.id", "a.student_id", "a.course_id", "a.date::text", "a.status", "u.name", "c.name").
		From("attendance a").
		Join("users u ON u.id = a.student_id").
		Join("courses c ON c.id = a.course_id")
}

func scanAttendance(row pgx.Row, a *models.AttendanceRecord) error {
	return row.Scan(&a.ID, &a.StudentID, &a.CourseID, &a.Date, &a.Status, &a.StudentName, &a.CourseName)
}

// ListByStudent lists a student's attendance ordered by course name then date
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	return r.list(ctx, r.selectAttendance().
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("c.name ASC", "a.date ASC"))
}

// ListByCourse lists attendance of one course ordered by date then student name
func (r *AttendanceRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.AttendanceRecord, error) {
	return r.list(ctx, r.selectAttendance().
		Where(squirrel.Eq{"a.course_id": courseID}).
		OrderBy("a.date ASC", "u.name ASC"))
}

// ListAll lists every record ordered by student name, course name and date
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]*models.AttendanceRecord, error) {
	return r.list(ctx, r.selectAttendance().OrderBy("u.name ASC", "c.name ASC", "a.date ASC"))
}

func (r *AttendanceRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.AttendanceRecord, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := db.Executor(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list attendance query")
		return nil, fmt.Errorf("error querying attendance: %w", err)
	}
	defer rows.Close()

	records := []*models.AttendanceRecord{}
	for rows.Next() {
		a := &models.AttendanceRecord{}
		if err := scanAttendance(rows, a); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
