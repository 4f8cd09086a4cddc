package services

import (
	"context"

	"github.com/yigit/registrar/internal/app/models"
)

// Services defined in this package:
// - AuthService: resolves a username/password pair into an Actor
// - AccountService: creates student and professor accounts, lists users, resets passwords
// - DepartmentService, CourseService: the catalogue
// - EnrollmentService: professor assignments and the students a professor may act on
// - GradeService, AttendanceService, FeeService: the academic and fee ledgers

// Transactor runs fn in a single database transaction. Repositories called
// with the ctx handed to fn take part in it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository stores accounts
type UserRepository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, roles ...models.Role) ([]*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hash string) error
}

// StudentRepository stores the student extension of accounts
type StudentRepository interface {
	CreateStudent(ctx context.Context, s *models.Student) error
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentForUpdate(ctx context.Context, userID int64) (*models.Student, error)
	UpdateFeesPaid(ctx context.Context, userID int64, paid float64) error
	ListStudents(ctx context.Context) ([]*models.Student, error)
	ListStudentsByDepartment(ctx context.Context, departmentID int64) ([]*models.Student, error)
	ListStudentsVisibleToProfessor(ctx context.Context, professorID int64) ([]*models.Student, error)
}

// ProfessorRepository stores professor assignments
type ProfessorRepository interface {
	AssignProfessorDepartment(ctx context.Context, professorID, departmentID int64) error
	AssignProfessorCourse(ctx context.Context, professorID, courseID int64) error
	GetProfessorDepartments(ctx context.Context, professorID int64) ([]*models.Department, error)
	GetProfessorCourses(ctx context.Context, professorID int64) ([]*models.Course, error)
	ProfessorHasCourse(ctx context.Context, professorID, courseID int64) (bool, error)
}

// DepartmentRepository stores departments
type DepartmentRepository interface {
	Create(ctx context.Context, d *models.Department) error
	CreateIfMissing(ctx context.Context, name string) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
}

// CourseRepository stores courses
type CourseRepository interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Course, error)
}

// GradeRepository stores one grade per student and course
type GradeRepository interface {
	Upsert(ctx context.Context, g *models.GradeRecord) error
	Get(ctx context.Context, studentID, courseID int64) (*models.GradeRecord, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.GradeRecord, error)
	ListAll(ctx context.Context) ([]*models.GradeRecord, error)
}

// AttendanceRepository stores one status per student, course and date
type AttendanceRepository interface {
	Upsert(ctx context.Context, a *models.AttendanceRecord) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]*models.AttendanceRecord, error)
}

// AccessChecker decides whether a professor may record results for a student in a course
type AccessChecker interface {
	CheckProfessorAccess(ctx context.Context, professorID, courseID, studentID int64) error
}
