package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
	"github.com/yigit/registrar/internal/pkg/validation"
)

// AccountService creates and lists accounts
type AccountService struct {
	tx             Transactor
	userRepo       UserRepository
	studentRepo    StudentRepository
	departmentRepo DepartmentRepository
	defaultFeesDue float64
	logger         zerolog.Logger
}

// NewAccountService creates a new AccountService. defaultFeesDue is the
// amount owed by every newly created student.
func NewAccountService(
	tx Transactor,
	userRepo UserRepository,
	studentRepo StudentRepository,
	departmentRepo DepartmentRepository,
	defaultFeesDue float64,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		tx:             tx,
		userRepo:       userRepo,
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
		defaultFeesDue: defaultFeesDue,
		logger:         logger,
	}
}

func newUser(req dto.CreateAccountRequest, role models.Role) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: strings.TrimSpace(req.Username),
		Password: hash,
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Role:     role,
	}, nil
}

// CreateStudent creates a student account and its fee record in one transaction
func (s *AccountService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	user, err := newUser(req.CreateAccountRequest, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		FeesDue:        s.defaultFeesDue,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			return err
		}
		student.User = *user
		return s.studentRepo.CreateStudent(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", student.ID).Str("username", student.Username).Msg("Student account created")
	return student, nil
}

// CreateProfessor creates a professor account without assignments
func (s *AccountService) CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := newUser(req.CreateAccountRequest, models.RoleProfessor)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Professor account created")
	return &models.Professor{User: *user, Departments: []*models.Department{}, Courses: []*models.Course{}}, nil
}

// ListUsers lists accounts matching filter
func (s *AccountService) ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	switch filter {
	case models.FilterAll, "":
		return s.userRepo.ListUsers(ctx)
	case models.FilterStudents:
		return s.userRepo.ListUsers(ctx, models.RoleStudent)
	case models.FilterProfessors:
		return s.userRepo.ListUsers(ctx, models.RoleProfessor)
	default:
		return nil, apperrors.NewValidationError("unknown user filter", map[string]string{"filter": string(filter)})
	}
}

// ResetPassword replaces the password of an existing account
func (s *AccountService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset")
	return nil
}

// EnsureAdmin creates the admin account unless the username is already taken
// and reports whether it was created
func (s *AccountService) EnsureAdmin(ctx context.Context, req dto.CreateAccountRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}

	_, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return false, fmt.Errorf("error checking admin account: %w", err)
	}

	user, err := newUser(req, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Admin account created")
	return true, nil
}
