package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentRepo DepartmentRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

// CreateDepartment creates a new department with a unique name
func (s *DepartmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*models.Department, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	department := &models.Department{Name: strings.TrimSpace(req.Name)}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// GetAllDepartments lists departments ordered by name
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// EnsureDepartments creates every named department that does not exist yet
// and returns how many were added
func (s *DepartmentService) EnsureDepartments(ctx context.Context, names []string) (int, error) {
	added := 0
	for _, name := range names {
		req := dto.CreateDepartmentRequest{Name: strings.TrimSpace(name)}
		if err := validation.Struct(req); err != nil {
			return added, fmt.Errorf("department %q: %w", name, err)
		}
		created, err := s.departmentRepo.CreateIfMissing(ctx, req.Name)
		if err != nil {
			return added, err
		}
		if created {
			added++
		}
	}
	return added, nil
}
