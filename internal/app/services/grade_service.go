package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/grading"
	"github.com/yigit/registrar/internal/app/models"
)

// GradeService records and lists grades
type GradeService struct {
	gradeRepo   GradeRepository
	courseRepo  CourseRepository
	studentRepo StudentRepository
	access      AccessChecker
	logger      zerolog.Logger
}

// NewGradeService creates a new GradeService
func NewGradeService(
	gradeRepo GradeRepository,
	courseRepo CourseRepository,
	studentRepo StudentRepository,
	access AccessChecker,
	logger zerolog.Logger,
) *GradeService {
	return &GradeService{
		gradeRepo:   gradeRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		access:      access,
		logger:      logger,
	}
}

// UpsertGrade computes the total and letter with the stored course type and
// writes the single grade row of the student in the course
func (s *GradeService) UpsertGrade(ctx context.Context, studentID, courseID int64, scores models.Scores) (*models.GradeRecord, error) {
	if err := grading.Validate(scores); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	result, err := grading.Compute(course.Type, scores)
	if err != nil {
		return nil, err
	}

	record := &models.GradeRecord{
		StudentID:   student.ID,
		CourseID:    course.ID,
		Scores:      scores,
		Total:       result.Total,
		Letter:      result.Letter,
		StudentName: student.Name,
		CourseName:  course.Name,
		CourseType:  course.Type,
	}
	if err := s.gradeRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).
		Float64("total", record.Total).Str("letter", record.Letter).Msg("Grade saved")
	return record, nil
}

// RecordGradeAsProfessor is UpsertGrade restricted to the professor's own courses and students
func (s *GradeService) RecordGradeAsProfessor(ctx context.Context, professorID, studentID, courseID int64, scores models.Scores) (*models.GradeRecord, error) {
	if err := s.access.CheckProfessorAccess(ctx, professorID, courseID, studentID); err != nil {
		return nil, err
	}
	return s.UpsertGrade(ctx, studentID, courseID, scores)
}

// GetGrade returns the grade of a student in a course
func (s *GradeService) GetGrade(ctx context.Context, studentID, courseID int64) (*models.GradeRecord, error) {
	return s.gradeRepo.Get(ctx, studentID, courseID)
}

// ListGradesForStudent lists a student's grades by course name
func (s *GradeService) ListGradesForStudent(ctx context.Context, studentID int64) ([]*models.GradeRecord, error) {
	return s.gradeRepo.ListByStudent(ctx, studentID)
}

// ListAllGrades lists every grade by student then course name
func (s *GradeService) ListAllGrades(ctx context.Context) ([]*models.GradeRecord, error) {
	return s.gradeRepo.ListAll(ctx)
}
