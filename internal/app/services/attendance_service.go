package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/helpers"
)

// AttendanceService records and lists attendance
type AttendanceService struct {
	attendanceRepo AttendanceRepository
	courseRepo     CourseRepository
	studentRepo    StudentRepository
	access         AccessChecker
	now            func() time.Time
	logger         zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo AttendanceRepository,
	courseRepo CourseRepository,
	studentRepo StudentRepository,
	access AccessChecker,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		access:         access,
		now:            time.Now,
		logger:         logger,
	}
}

// SetAttendance stores the status of a student in a course on date
// (YYYY-MM-DD). Calling it again for the same day replaces the status.
func (s *AttendanceService) SetAttendance(ctx context.Context, studentID, courseID int64, date string, status models.AttendanceStatus) (*models.AttendanceRecord, error) {
	status, err := models.ParseAttendanceStatus(string(status))
	if err != nil {
		return nil, err
	}
	day, err := helpers.NormalizeDate(date)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]string{"date": "must be YYYY-MM-DD"})
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		StudentID:   student.ID,
		CourseID:    course.ID,
		Date:        day,
		Status:      status,
		StudentName: student.Name,
		CourseName:  course.Name,
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).
		Str("date", day).Str("status", string(status)).Msg("Attendance saved")
	return record, nil
}

// MarkAsProfessor records today's attendance for a student in one of the professor's courses
func (s *AttendanceService) MarkAsProfessor(ctx context.Context, professorID, studentID, courseID int64, status models.AttendanceStatus) (*models.AttendanceRecord, error) {
	if err := s.access.CheckProfessorAccess(ctx, professorID, courseID, studentID); err != nil {
		return nil, err
	}
	return s.SetAttendance(ctx, studentID, courseID, helpers.Today(s.now), status)
}

// ListForStudent lists a student's records by course name then date
func (s *AttendanceService) ListForStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	return s.attendanceRepo.ListByStudent(ctx, studentID)
}

// ListForCourse lists the records of one course
func (s *AttendanceService) ListForCourse(ctx context.Context, courseID int64) ([]*models.AttendanceRecord, error) {
	return s.attendanceRepo.ListByCourse(ctx, courseID)
}

// ListAll lists every record by student name, course name and date
func (s *AttendanceService) ListAll(ctx context.Context) ([]*models.AttendanceRecord, error) {
	return s.attendanceRepo.ListAll(ctx)
}
