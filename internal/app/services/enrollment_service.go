package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// EnrollmentService manages professor assignments and derives which students
// a professor may act on
type EnrollmentService struct {
	tx             Transactor
	userRepo       UserRepository
	professorRepo  ProfessorRepository
	studentRepo    StudentRepository
	departmentRepo DepartmentRepository
	courseRepo     CourseRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	tx Transactor,
	userRepo UserRepository,
	professorRepo ProfessorRepository,
	studentRepo StudentRepository,
	departmentRepo DepartmentRepository,
	courseRepo CourseRepository,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		tx:             tx,
		userRepo:       userRepo,
		professorRepo:  professorRepo,
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

func (s *EnrollmentService) getProfessor(ctx context.Context, professorID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, professorID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleProfessor {
		return nil, apperrors.ErrProfessorNotFound
	}
	return user, nil
}

// AssignProfessor links a professor to a department and to one of that
// department's courses. Both links are created together or not at all, and
// repeating the call changes nothing.
func (s *EnrollmentService) AssignProfessor(ctx context.Context, professorID, departmentID, courseID int64) error {
	if _, err := s.getProfessor(ctx, professorID); err != nil {
		return err
	}
	department, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.DepartmentID != department.ID {
		return apperrors.ErrCourseNotInDepartment
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.professorRepo.AssignProfessorDepartment(ctx, professorID, departmentID); err != nil {
			return err
		}
		return s.professorRepo.AssignProfessorCourse(ctx, professorID, courseID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("professorID", professorID).Int64("departmentID", departmentID).Int64("courseID", courseID).Msg("Professor assigned")
	return nil
}

// AssignProfessorToDepartment links a professor to a department
func (s *EnrollmentService) AssignProfessorToDepartment(ctx context.Context, professorID, departmentID int64) error {
	if _, err := s.getProfessor(ctx, professorID); err != nil {
		return err
	}
	if _, err := s.departmentRepo.GetByID(ctx, departmentID); err != nil {
		return err
	}
	return s.professorRepo.AssignProfessorDepartment(ctx, professorID, departmentID)
}

// AssignProfessorToCourse links a professor to a course
func (s *EnrollmentService) AssignProfessorToCourse(ctx context.Context, professorID, courseID int64) error {
	if _, err := s.getProfessor(ctx, professorID); err != nil {
		return err
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}
	return s.professorRepo.AssignProfessorCourse(ctx, professorID, courseID)
}

// StudentsVisibleTo lists the students whose department offers a course
// assigned to the professor. It is read from the store on every call.
func (s *EnrollmentService) StudentsVisibleTo(ctx context.Context, professorID int64) ([]*models.Student, error) {
	if _, err := s.getProfessor(ctx, professorID); err != nil {
		return nil, err
	}
	return s.studentRepo.ListStudentsVisibleToProfessor(ctx, professorID)
}

// StudentsForCourse lists the students a professor may grade in one of their courses
func (s *EnrollmentService) StudentsForCourse(ctx context.Context, professorID, courseID int64) ([]*models.Student, error) {
	course, err := s.assignedCourse(ctx, professorID, courseID)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.ListStudentsByDepartment(ctx, course.DepartmentID)
}

// ProfessorProfile returns the professor with current departments and courses
func (s *EnrollmentService) ProfessorProfile(ctx context.Context, professorID int64) (*models.Professor, error) {
	user, err := s.getProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}
	return loadProfessor(ctx, s.professorRepo, user)
}

func (s *EnrollmentService) assignedCourse(ctx context.Context, professorID, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	assigned, err := s.professorRepo.ProfessorHasCourse(ctx, professorID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking course assignment: %w", err)
	}
	if !assigned {
		return nil, apperrors.ErrCourseNotAssigned
	}
	return course, nil
}

// CheckProfessorAccess allows a professor to record results for a student in
// a course only when the course is assigned to the professor and the student
// belongs to the course's department
func (s *EnrollmentService) CheckProfessorAccess(ctx context.Context, professorID, courseID, studentID int64) error {
	course, err := s.assignedCourse(ctx, professorID, courseID)
	if err != nil {
		return err
	}
	student, err := s.studentRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.DepartmentID != course.DepartmentID {
		return apperrors.ErrStudentNotVisible
	}
	return nil
}
