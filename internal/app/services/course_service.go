package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// CourseService handles course-related operations
type CourseService struct {
	courseRepo     CourseRepository
	departmentRepo DepartmentRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseRepository, departmentRepo DepartmentRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateCourse creates a course in an existing department. Every rejection,
// including an unknown department, is a validation error.
func (s *CourseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	courseType, err := models.ParseCourseType(req.Type)
	if err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewValidationError("department does not exist",
				map[string]string{"departmentId": "must reference an existing department"})
		}
		return nil, err
	}

	course := &models.Course{
		Name:           strings.TrimSpace(req.Name),
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		Type:           courseType,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetAllCourses lists every course
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// GetCoursesByDepartment lists the courses of a department
func (s *CourseService) GetCoursesByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error) {
	return s.courseRepo.GetByDepartmentID(ctx, departmentID)
}
