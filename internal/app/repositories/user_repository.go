package repositories

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/repositories/user"
	"github.com/yigit/registrar/internal/db"
)

// UserRepository combines all account-related repositories
type UserRepository struct {
	common    *user.Repository
	student   *user.StudentRepository
	professor *user.ProfessorRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{
		common:    user.NewRepository(q),
		student:   user.NewStudentRepository(q),
		professor: user.NewProfessorRepository(q),
	}
}

// CreateUser inserts an account
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	return r.common.CreateUser(ctx, u)
}

// GetUserByUsername retrieves an account by login name
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.common.GetUserByUsername(ctx, username)
}

// GetUserByID retrieves an account by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// ListUsers lists accounts with any of roles, or all of them
func (r *UserRepository) ListUsers(ctx context.Context, roles ...models.Role) ([]*models.User, error) {
	return r.common.ListUsers(ctx, roles...)
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	return r.common.UpdatePassword(ctx, userID, hash)
}

// CreateStudent inserts a student record
func (r *UserRepository) CreateStudent(ctx context.Context, s *models.Student) error {
	return r.student.CreateStudent(ctx, s)
}

// GetStudentByUserID retrieves a student
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}

// GetStudentForUpdate retrieves and locks a student's fee row
func (r *UserRepository) GetStudentForUpdate(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentForUpdate(ctx, userID)
}

// UpdateFeesPaid overwrites a student's paid amount
func (r *UserRepository) UpdateFeesPaid(ctx context.Context, userID int64, paid float64) error {
	return r.student.UpdateFeesPaid(ctx, userID, paid)
}

// ListStudents lists every student
func (r *UserRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	return r.student.ListStudents(ctx)
}

// ListStudentsByDepartment lists the students of a department
func (r *UserRepository) ListStudentsByDepartment(ctx context.Context, departmentID int64) ([]*models.Student, error) {
	return r.student.ListStudentsByDepartment(ctx, departmentID)
}

// ListStudentsVisibleToProfessor lists the students a professor may see
func (r *UserRepository) ListStudentsVisibleToProfessor(ctx context.Context, professorID int64) ([]*models.Student, error) {
	return r.student.ListStudentsVisibleToProfessor(ctx, professorID)
}

// AssignProfessorDepartment links a professor to a department
func (r *UserRepository) AssignProfessorDepartment(ctx context.Context, professorID, departmentID int64) error {
	return r.professor.AssignDepartment(ctx, professorID, departmentID)
}

// AssignProfessorCourse links a professor to a course
func (r *UserRepository) AssignProfessorCourse(ctx context.Context, professorID, courseID int64) error {
	return r.professor.AssignCourse(ctx, professorID, courseID)
}

// GetProfessorDepartments lists a professor's departments
func (r *UserRepository) GetProfessorDepartments(ctx context.Context, professorID int64) ([]*models.Department, error) {
	return r.professor.GetDepartments(ctx, professorID)
}

// GetProfessorCourses lists a professor's courses
func (r *UserRepository) GetProfessorCourses(ctx context.Context, professorID int64) ([]*models.Course, error) {
	return r.professor.GetCourses(ctx, professorID)
}

// ProfessorHasCourse reports whether a course is assigned to a professor
func (r *UserRepository) ProfessorHasCourse(ctx context.Context, professorID, courseID int64) (bool, error) {
	return r.professor.HasCourse(ctx, professorID, courseID)
}
