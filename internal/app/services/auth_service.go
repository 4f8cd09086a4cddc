package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo      UserRepository
	studentRepo   StudentRepository
	professorRepo ProfessorRepository
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserRepository,
	studentRepo StudentRepository,
	professorRepo ProfessorRepository,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		professorRepo: professorRepo,
		logger:        logger,
	}
}

// Login checks the credentials and returns the actor for the account's role.
// An unknown username and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.Actor, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("username", username).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		s.logger.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	actor, err := s.actorFor(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return actor, nil
}

func (s *AuthService) actorFor(ctx context.Context, user *models.User) (models.Actor, error) {
	switch user.Role {
	case models.RoleAdmin:
		return &models.AdminActor{User: user}, nil
	case models.RoleProfessor:
		professor, err := loadProfessor(ctx, s.professorRepo, user)
		if err != nil {
			return nil, err
		}
		return &models.ProfessorActor{Professor: professor}, nil
	case models.RoleStudent:
		student, err := s.studentRepo.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading student record: %w", err)
		}
		return &models.StudentActor{Student: student}, nil
	default:
		return nil, fmt.Errorf("account %d has unknown role %q", user.ID, user.Role)
	}
}

func loadProfessor(ctx context.Context, repo ProfessorRepository, user *models.User) (*models.Professor, error) {
	departments, err := repo.GetProfessorDepartments(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading professor departments: %w", err)
	}
	courses, err := repo.GetProfessorCourses(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading professor courses: %w", err)
	}
	return &models.Professor{User: *user, Departments: departments, Courses: courses}, nil
}
