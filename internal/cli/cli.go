// Package cli is the interactive terminal front end: a login prompt followed by
// the menu of the logged-in role. It only talks to the services through the
// interfaces below.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// Authenticator resolves credentials into an actor
type Authenticator interface {
	Login(ctx context.Context, username, password string) (models.Actor, error)
}

// AccountManager creates and lists accounts
type AccountManager interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error)
	ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
}

// DepartmentCatalogue manages departments
type DepartmentCatalogue interface {
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*models.Department, error)
	GetAllDepartments(ctx context.Context) ([]*models.Department, error)
}

// CourseCatalogue manages courses
type CourseCatalogue interface {
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	GetCoursesByDepartment(ctx context.Context, departmentID int64) ([]*models.Course, error)
}

// Enrollment manages professor assignments
type Enrollment interface {
	AssignProfessor(ctx context.Context, professorID, departmentID, courseID int64) error
	AssignProfessorToDepartment(ctx context.Context, professorID, departmentID int64) error
	StudentsForCourse(ctx context.Context, professorID, courseID int64) ([]*models.Student, error)
	ProfessorProfile(ctx context.Context, professorID int64) (*models.Professor, error)
}

// Gradebook records and lists grades
type Gradebook interface {
	RecordGradeAsProfessor(ctx context.Context, professorID, studentID, courseID int64, scores models.Scores) (*models.GradeRecord, error)
	ListGradesForStudent(ctx context.Context, studentID int64) ([]*models.GradeRecord, error)
	ListAllGrades(ctx context.Context) ([]*models.GradeRecord, error)
}

// AttendanceLedger records and lists attendance
type AttendanceLedger interface {
	MarkAsProfessor(ctx context.Context, professorID, studentID, courseID int64, status models.AttendanceStatus) (*models.AttendanceRecord, error)
	ListForStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]*models.AttendanceRecord, error)
}

// FeeLedger records payments and reports balances
type FeeLedger interface {
	RecordPayment(ctx context.Context, studentID int64, amount float64) (*models.Student, error)
	GetStudentFees(ctx context.Context, studentID int64) (*models.Student, error)
	ListStudentFees(ctx context.Context) ([]*models.Student, error)
}

// Services groups everything the menus call
type Services struct {
	Auth        Authenticator
	Accounts    AccountManager
	Departments DepartmentCatalogue
	Courses     CourseCatalogue
	Enrollment  Enrollment
	Grades      Gradebook
	Attendance  AttendanceLedger
	Fees        FeeLedger
}

// errInputClosed ends the shell when stdin runs out or the context is cancelled
var errInputClosed = errors.New("input closed")

// Shell reads commands from in and writes menus and results to out
type Shell struct {
	svc    Services
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger
	now    func() time.Time

	lines   <-chan string
	readErr error
	done    <-chan struct{}
}

// New creates a Shell
func New(svc Services, in io.Reader, out io.Writer, logger zerolog.Logger) *Shell {
	return &Shell{
		svc:    svc,
		in:     in,
		out:    out,
		logger: logger,
		now:    time.Now,
	}
}

// startReader scans input lines on a goroutine so a prompt can give up when
// ctx is cancelled. The goroutine stops once ctx is done. readErr is set
// before lines is closed.
func (s *Shell) startReader(ctx context.Context) {
	lines := make(chan string)
	s.lines = lines
	s.done = ctx.Done()

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		s.readErr = scanner.Err()
	}()
}

// Run shows the login prompt until the input ends or ctx is cancelled, and
// returns nil in both cases.
// Every successful login opens the menu of the actor's role.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.startReader(ctx)
	s.println("University Management System")
	s.println("---------------------------")

	for ctx.Err() == nil {
		actor, err := s.login(ctx)
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			s.report(err)
			continue
		}

		if err := s.session(ctx, actor); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (s *Shell) login(ctx context.Context) (models.Actor, error) {
	s.println("\n=== University Login ===")
	username, err := s.prompt("Username: ")
	if err != nil {
		return nil, err
	}
	password, err := s.prompt("Password: ")
	if err != nil {
		return nil, err
	}
	return s.svc.Auth.Login(ctx, username, password)
}

// session runs the menu of one login and restores the shell logger afterwards
func (s *Shell) session(ctx context.Context, actor models.Actor) error {
	base := s.logger
	defer func() { s.logger = base }()

	account := actor.Account()
	s.logger = base.With().
		Str("session", uuid.NewString()).
		Str("username", account.Username).
		Str("role", string(account.Role)).
		Logger()
	s.logger.Info().Msg("Login succeeded")
	s.printf("\nWelcome, %s!\n", account.Name)

	var err error
	switch a := actor.(type) {
	case *models.AdminActor:
		err = s.adminMenu(ctx, a)
	case *models.ProfessorActor:
		err = s.professorMenu(ctx, a)
	case *models.StudentActor:
		err = s.studentMenu(ctx, a)
	default:
		err = fmt.Errorf("unsupported actor %T", actor)
	}

	s.logger.Info().Msg("Logged out")
	return err
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// prompt prints label and returns the next input line, trimmed
func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s", label)
	select {
	case line, ok := <-s.lines:
		if !ok {
			if s.readErr != nil {
				s.logger.Error().Err(s.readErr).Msg("Error reading input")
			}
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	case <-s.done:
		s.println()
		return "", errInputClosed
	}
}

func (s *Shell) promptInt(label string) (int64, error) {
	line, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%q is not a whole number", line), nil)
	}
	return n, nil
}

func (s *Shell) promptFloat(label string) (float64, error) {
	line, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%q is not a number", line), nil)
	}
	return f, nil
}

// choice reads a menu selection. Anything that is not a number maps to 0,
// which no menu uses.
func (s *Shell) choice() (int, error) {
	line, err := s.prompt("Enter choice: ")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// report prints a one-line message for err. Errors that are not one of the
// application kinds are logged with details and shown generically.
func (s *Shell) report(err error) {
	var custom *apperrors.CustomError
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		s.println("Invalid credentials!")
	case errors.Is(err, apperrors.ErrOverPayment):
		if errors.As(err, &custom) {
			if maxPayable, ok := custom.Details["maxPayable"].(float64); ok {
				s.printf("Payment exceeds due amount! Maximum payable: $%.2f\n", maxPayable)
				return
			}
		}
		s.println("Payment exceeds due amount!")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrPermissionDenied):
		s.printf("Error: %s\n", err)
	default:
		s.logger.Error().Err(err).Str("kind", apperrors.Kind(err)).Msg("Operation failed")
		s.println("Error: operation failed, see log for details")
	}
}

// fail reports err unless it ends the session, in which case it is returned
func (s *Shell) fail(err error) error {
	if err == nil || errors.Is(err, errInputClosed) {
		return err
	}
	s.report(err)
	return nil
}
