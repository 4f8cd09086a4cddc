package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// fakeBackend implements every service interface of the shell
type fakeBackend struct {
	actors      map[string]models.Actor
	departments []*models.Department
	courses     []*models.Course
	students    []*models.Student
	professors  []*models.User
	profile     *models.Professor
	paymentErr  error

	createdCourse  *dto.CreateCourseRequest
	createdStudent *dto.CreateStudentRequest
	assigned       [][3]int64
	deptOnly       [][2]int64
	marked         []models.AttendanceStatus
	graded         []models.Scores
	payments       []float64
}

func (f *fakeBackend) Login(_ context.Context, username, password string) (models.Actor, error) {
	a, ok := f.actors[username+":"+password]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	return a, nil
}

func (f *fakeBackend) CreateStudent(_ context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	f.createdStudent = &req
	return &models.Student{User: models.User{ID: 99, Username: req.Username}}, nil
}

func (f *fakeBackend) CreateProfessor(_ context.Context, req dto.CreateProfessorRequest) (*models.Professor, error) {
	return &models.Professor{User: models.User{ID: 98, Username: req.Username}}, nil
}

func (f *fakeBackend) ListUsers(context.Context, models.UserFilter) ([]*models.User, error) {
	return f.professors, nil
}

func (f *fakeBackend) CreateDepartment(_ context.Context, req dto.CreateDepartmentRequest) (*models.Department, error) {
	return &models.Department{ID: 1, Name: req.Name}, nil
}

func (f *fakeBackend) GetAllDepartments(context.Context) ([]*models.Department, error) {
	return f.departments, nil
}

func (f *fakeBackend) CreateCourse(_ context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	f.createdCourse = &req
	return &models.Course{ID: 1, Name: req.Name}, nil
}

func (f *fakeBackend) GetCoursesByDepartment(_ context.Context, departmentID int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if c.DepartmentID == departmentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBackend) AssignProfessor(_ context.Context, professorID, departmentID, courseID int64) error {
	f.assigned = append(f.assigned, [3]int64{professorID, departmentID, courseID})
	return nil
}

func (f *fakeBackend) AssignProfessorToDepartment(_ context.Context, professorID, departmentID int64) error {
	f.deptOnly = append(f.deptOnly, [2]int64{professorID, departmentID})
	return nil
}

func (f *fakeBackend) StudentsForCourse(context.Context, int64, int64) ([]*models.Student, error) {
	return f.students, nil
}

func (f *fakeBackend) ProfessorProfile(context.Context, int64) (*models.Professor, error) {
	return f.profile, nil
}

func (f *fakeBackend) RecordGradeAsProfessor(_ context.Context, _, studentID, courseID int64, scores models.Scores) (*models.GradeRecord, error) {
	f.graded = append(f.graded, scores)
	return &models.GradeRecord{StudentID: studentID, CourseID: courseID, Scores: scores, Total: 50, Letter: "Fail"}, nil
}

func (f *fakeBackend) ListGradesForStudent(context.Context, int64) ([]*models.GradeRecord, error) {
	return []*models.GradeRecord{{CourseName: "Mechanics", CourseType: models.CourseTheoretical, Total: 76, Letter: "Very Good"}}, nil
}

func (f *fakeBackend) ListAllGrades(context.Context) ([]*models.GradeRecord, error) {
	return nil, nil
}

func (f *fakeBackend) MarkAsProfessor(_ context.Context, _, studentID, courseID int64, status models.AttendanceStatus) (*models.AttendanceRecord, error) {
	f.marked = append(f.marked, status)
	return &models.AttendanceRecord{StudentID: studentID, CourseID: courseID, Status: status}, nil
}

func (f *fakeBackend) ListForStudent(context.Context, int64) ([]*models.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeBackend) ListAll(context.Context) ([]*models.AttendanceRecord, error) {
	return []*models.AttendanceRecord{{StudentName: "Ada", CourseName: "Mechanics", Date: "2024-03-01", Status: models.StatusPresent}}, nil
}

func (f *fakeBackend) RecordPayment(_ context.Context, studentID int64, amount float64) (*models.Student, error) {
	f.payments = append(f.payments, amount)
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	st := *f.students[0]
	st.FeesPaid += amount
	return &st, nil
}

func (f *fakeBackend) GetStudentFees(context.Context, int64) (*models.Student, error) {
	return f.students[0], nil
}

func (f *fakeBackend) ListStudentFees(context.Context) ([]*models.Student, error) {
	return f.students, nil
}

func newFakeBackend() *fakeBackend {
	ada := &models.Student{
		User:           models.User{ID: 7, Username: "ada", Name: "Ada", Email: "ada@uni.edu", Role: models.RoleStudent},
		DepartmentID:   1,
		DepartmentName: "Physics",
		FeesDue:        5000,
		FeesPaid:       4800,
	}
	prof := &models.Professor{User: models.User{ID: 3, Username: "prof", Name: "Prof", Role: models.RoleProfessor}}
	admin := &models.User{ID: 1, Username: "admin", Name: "Admin", Role: models.RoleAdmin}
	return &fakeBackend{
		actors: map[string]models.Actor{
			"admin:admin123": &models.AdminActor{User: admin},
			"prof:secret1":   &models.ProfessorActor{Professor: prof},
			"ada:secret1":    &models.StudentActor{Student: ada},
		},
		departments: []*models.Department{{ID: 1, Name: "Physics"}, {ID: 2, Name: "History"}},
		courses:     []*models.Course{{ID: 3, Name: "Mechanics", DepartmentID: 1, Type: models.CoursePractical}},
		students:    []*models.Student{ada},
		professors:  []*models.User{&prof.User},
		profile:     prof,
	}
}

func runShell(t *testing.T, f *fakeBackend, input string) string {
	t.Helper()
	var out bytes.Buffer
	svc := Services{
		Auth:        f,
		Accounts:    f,
		Departments: f,
		Courses:     f,
		Enrollment:  f,
		Grades:      f,
		Attendance:  f,
		Fees:        f,
	}
	sh := New(svc, strings.NewReader(input), &out, zerolog.Nop())
	sh.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local) }
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func TestShell(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fakeBackend)
		input   string
		want    []string
		check   func(t *testing.T, f *fakeBackend)
		notWant []string
	}{
		{
			name:  "wrong password",
			input: lines("ada", "nope"),
			want:  []string{"University Management System", "=== University Login ===", "Invalid credentials!"},
		},
		{
			name:  "student sees fees and grades",
			input: lines("ada", "secret1", "1", "3", "4", "5"),
			want: []string{
				"=== Student Profile ===", "Department: Physics",
				"Fees Due: $5000.00", "Fees Paid: $4800.00", "Balance: $200.00",
				"Mechanics", "Very Good",
			},
		},
		{
			name:  "invalid menu choice",
			input: lines("ada", "secret1", "x", "5"),
			want:  []string{"Invalid choice!"},
		},
		{
			name: "overpayment shows maximum payable",
			setup: func(f *fakeBackend) {
				f.paymentErr = apperrors.NewOverPaymentError(200)
			},
			input:   lines("admin", "admin123", "8", "7", "300", "9"),
			want:    []string{"=== Manage Student Fees ===", "Payment exceeds due amount! Maximum payable: $200.00"},
			notWant: []string{"Fees updated successfully!"},
			check: func(t *testing.T, f *fakeBackend) {
				assert.Equal(t, []float64{300}, f.payments)
			},
		},
		{
			name:  "payment within balance",
			input: lines("admin", "admin123", "8", "7", "150.50", "9"),
			want:  []string{"Fees updated successfully!", "Balance: $49.50"},
		},
		{
			name:  "non numeric payment is rejected before the service",
			input: lines("admin", "admin123", "8", "7", "lots", "9"),
			want:  []string{"Error: \"lots\" is not a number"},
			check: func(t *testing.T, f *fakeBackend) {
				assert.Empty(t, f.payments)
			},
		},
		{
			name:  "add course passes the typed course type",
			input: lines("admin", "admin123", "6", "1", "Optics", "p", "9"),
			want:  []string{"Available Departments:", "1. Physics", "Course added successfully!"},
			check: func(t *testing.T, f *fakeBackend) {
				require.NotNil(t, f.createdCourse)
				assert.Equal(t, "p", f.createdCourse.Type)
				assert.Equal(t, int64(1), f.createdCourse.DepartmentID)
			},
		},
		{
			name:  "add student without departments",
			setup: func(f *fakeBackend) { f.departments = nil },
			input: lines("admin", "admin123", "1", "1", "bob", "secret1", "Bob Stone", "bob@uni.edu", "3", "9"),
			want:  []string{"No departments found! Add departments first."},
			check: func(t *testing.T, f *fakeBackend) {
				assert.Nil(t, f.createdStudent)
			},
		},
		{
			name:  "add student",
			input: lines("admin", "admin123", "1", "1", "bob", "secret1", "Bob Stone", "bob@uni.edu", "2", "3", "9"),
			want:  []string{"Student created successfully!"},
			check: func(t *testing.T, f *fakeBackend) {
				require.NotNil(t, f.createdStudent)
				assert.Equal(t, "Bob Stone", f.createdStudent.Name)
				assert.Equal(t, int64(2), f.createdStudent.DepartmentID)
			},
		},
		{
			name:  "assign professor to a course",
			input: lines("admin", "admin123", "7", "3", "1", "3", "9"),
			want:  []string{"=== Assign Professor ===", "3. Mechanics (practical)", "Professor assigned successfully!"},
			check: func(t *testing.T, f *fakeBackend) {
				assert.Equal(t, [][3]int64{{3, 1, 3}}, f.assigned)
			},
		},
		{
			name:  "assign professor to a department without courses",
			input: lines("admin", "admin123", "7", "3", "2", "9"),
			want:  []string{"No courses found in this department!"},
			check: func(t *testing.T, f *fakeBackend) {
				assert.Equal(t, [][2]int64{{3, 2}}, f.deptOnly)
				assert.Empty(t, f.assigned)
			},
		},
		{
			name:  "admin lists all attendance",
			input: lines("admin", "admin123", "5", "9"),
			want:  []string{"=== All Attendance ===", "Student", "2024-03-01", "present"},
		},
		{
			name:  "professor without courses",
			input: lines("prof", "secret1", "2", "5"),
			want:  []string{"You have no courses assigned!"},
		},
		{
			name: "professor takes attendance",
			setup: func(f *fakeBackend) {
				f.profile.Courses = f.courses
				f.students = append(f.students, &models.Student{User: models.User{ID: 8, Name: "Bea"}, DepartmentID: 1})
			},
			input: lines("prof", "secret1", "2", "1", "a", "x", "5"),
			want:  []string{"Select course:", "1. Mechanics (practical)", "Enter attendance for 2024-03-01:", "Ada (p/a): ", "Skipped Bea", "Attendance recorded successfully!"},
			check: func(t *testing.T, f *fakeBackend) {
				assert.Equal(t, []models.AttendanceStatus{models.StatusAbsent}, f.marked)
			},
		},
		{
			name:  "professor enters grades",
			setup: func(f *fakeBackend) { f.profile.Courses = f.courses },
			input: lines("prof", "secret1", "3", "1", "50", "50", "50", "50", "5"),
			want:  []string{"Enter grades for course (practical):", "Student: Ada", "Assignment 2 (30%): ", "Final Exam (30%): ", "Total: 50.00 (Fail)"},
			check: func(t *testing.T, f *fakeBackend) {
				want := models.Scores{Assignment1: 50, Assignment2: 50, Coursework: 50, FinalExam: 50}
				assert.Equal(t, []models.Scores{want}, f.graded)
			},
		},
		{
			name:  "professor lists course students",
			setup: func(f *fakeBackend) { f.profile.Courses = f.courses },
			input: lines("prof", "secret1", "4", "1", "5"),
			want:  []string{"Students enrolled:", "Student ID", "Ada"},
		},
		{
			name:  "input ends inside a menu",
			input: lines("ada", "secret1", "1"),
			want:  []string{"=== Student Profile ==="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeBackend()
			if tt.setup != nil {
				tt.setup(f)
			}
			out := runShell(t, f, tt.input)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestShellSessionsAreIndependent(t *testing.T) {
	f := newFakeBackend()
	out := runShell(t, f, lines("ada", "secret1", "5", "admin", "admin123", "9"))
	assert.Equal(t, 3, strings.Count(out, "=== University Login ==="), "login prompt after each logout")
	assert.Contains(t, out, "Welcome, Ada!")
	assert.Contains(t, out, "Welcome, Admin!")
}

func TestShellStopsWhenContextIsCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sh := New(Services{Auth: newFakeBackend()}, pr, io.Discard, zerolog.Nop())

	errc := make(chan error, 1)
	go func() { errc <- sh.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// unknownActor satisfies models.Actor without being one of the handled roles
type unknownActor struct {
	models.Actor
}

type unknownAuth struct{}

func (unknownAuth) Login(context.Context, string, string) (models.Actor, error) {
	return unknownActor{Actor: &models.AdminActor{User: &models.User{Username: "ghost"}}}, nil
}

func TestShellReaderStopsAfterRunFails(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	sh := New(Services{Auth: unknownAuth{}}, pr, io.Discard, zerolog.Nop())
	errc := make(chan error, 1)
	go func() { errc <- sh.Run(context.Background()) }()

	_, err := io.WriteString(pw, "ghost\nsecret1\n")
	require.NoError(t, err)

	select {
	case err := <-errc:
		require.ErrorContains(t, err, "unsupported actor")
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}

	// the next line wakes the reader, which must exit instead of waiting for a receiver
	_, err = io.WriteString(pw, "extra\n")
	require.NoError(t, err)
	select {
	case line, ok := <-sh.lines:
		assert.False(t, ok, "reader delivered %q after Run returned", line)
	case <-time.After(2 * time.Second):
		t.Fatal("reader goroutine still running")
	}
}
