package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
)

func init() {
	auth.BcryptCost = bcrypt.MinCost
}

// ── Mock Transactor ──

type mockTx struct {
	calls int
}

func (m *mockTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// ── Mock DepartmentRepository ──

type mockDepartmentRepo struct {
	departments map[int64]*models.Department
	nextID      int64
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{departments: make(map[int64]*models.Department)}
}

func (m *mockDepartmentRepo) Create(_ context.Context, d *models.Department) error {
	for _, existing := range m.departments {
		if existing.Name == d.Name {
			return apperrors.ErrDepartmentAlreadyExists
		}
	}
	m.nextID++
	d.ID = m.nextID
	copied := *d
	m.departments[d.ID] = &copied
	return nil
}

func (m *mockDepartmentRepo) CreateIfMissing(ctx context.Context, name string) (bool, error) {
	if err := m.Create(ctx, &models.Department{Name: name}); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id int64) (*models.Department, error) {
	if d, ok := m.departments[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, apperrors.ErrDepartmentNotFound
}

func (m *mockDepartmentRepo) GetAll(_ context.Context) ([]*models.Department, error) {
	result := []*models.Department{}
	for _, d := range m.departments {
		copied := *d
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int64]*models.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, c *models.Course) error {
	m.nextID++
	c.ID = m.nextID
	copied := *c
	m.courses[c.ID] = &copied
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m *mockCourseRepo) GetAll(ctx context.Context) ([]*models.Course, error) {
	return m.filter(func(*models.Course) bool { return true }), nil
}

func (m *mockCourseRepo) GetByDepartmentID(_ context.Context, departmentID int64) ([]*models.Course, error) {
	return m.filter(func(c *models.Course) bool { return c.DepartmentID == departmentID }), nil
}

func (m *mockCourseRepo) filter(keep func(*models.Course) bool) []*models.Course {
	result := []*models.Course{}
	for _, c := range m.courses {
		if keep(c) {
			copied := *c
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ── Mock UserRepository (accounts, students and professor assignments) ──

type mockUserRepo struct {
	users       map[int64]*models.User
	students    map[int64]*models.Student
	profDepts   map[int64]map[int64]bool
	profCourses map[int64]map[int64]bool
	nextID      int64

	departments *mockDepartmentRepo
	courses     *mockCourseRepo
}

func newMockUserRepo(departments *mockDepartmentRepo, courses *mockCourseRepo) *mockUserRepo {
	return &mockUserRepo{
		users:       make(map[int64]*models.User),
		students:    make(map[int64]*models.Student),
		profDepts:   make(map[int64]map[int64]bool),
		profCourses: make(map[int64]map[int64]bool),
		departments: departments,
		courses:     courses,
	}
}

func (m *mockUserRepo) CreateUser(_ context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *mockUserRepo) ListUsers(_ context.Context, roles ...models.Role) ([]*models.User, error) {
	result := []*models.User{}
	for _, u := range m.users {
		if len(roles) == 0 || containsRole(roles, u.Role) {
			copied := *u
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func containsRole(roles []models.Role, r models.Role) bool {
	for _, role := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, userID int64, hash string) error {
	u, ok := m.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

func (m *mockUserRepo) CreateStudent(_ context.Context, s *models.Student) error {
	if _, ok := m.departments.departments[s.DepartmentID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	copied := *s
	m.students[s.ID] = &copied
	return nil
}

func (m *mockUserRepo) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	if s, ok := m.students[userID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *mockUserRepo) GetStudentForUpdate(ctx context.Context, userID int64) (*models.Student, error) {
	return m.GetStudentByUserID(ctx, userID)
}

func (m *mockUserRepo) UpdateFeesPaid(_ context.Context, userID int64, paid float64) error {
	s, ok := m.students[userID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.FeesPaid = paid
	return nil
}

func (m *mockUserRepo) ListStudents(_ context.Context) ([]*models.Student, error) {
	return m.filterStudents(func(*models.Student) bool { return true }), nil
}

func (m *mockUserRepo) ListStudentsByDepartment(_ context.Context, departmentID int64) ([]*models.Student, error) {
	return m.filterStudents(func(s *models.Student) bool { return s.DepartmentID == departmentID }), nil
}

func (m *mockUserRepo) ListStudentsVisibleToProfessor(_ context.Context, professorID int64) ([]*models.Student, error) {
	departments := map[int64]bool{}
	for courseID := range m.profCourses[professorID] {
		if c, ok := m.courses.courses[courseID]; ok {
			departments[c.DepartmentID] = true
		}
	}
	return m.filterStudents(func(s *models.Student) bool { return departments[s.DepartmentID] }), nil
}

func (m *mockUserRepo) filterStudents(keep func(*models.Student) bool) []*models.Student {
	result := []*models.Student{}
	for _, s := range m.students {
		if keep(s) {
			copied := *s
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (m *mockUserRepo) AssignProfessorDepartment(_ context.Context, professorID, departmentID int64) error {
	if m.profDepts[professorID] == nil {
		m.profDepts[professorID] = map[int64]bool{}
	}
	m.profDepts[professorID][departmentID] = true
	return nil
}

func (m *mockUserRepo) AssignProfessorCourse(_ context.Context, professorID, courseID int64) error {
	if m.profCourses[professorID] == nil {
		m.profCourses[professorID] = map[int64]bool{}
	}
	m.profCourses[professorID][courseID] = true
	return nil
}

func (m *mockUserRepo) GetProfessorDepartments(_ context.Context, professorID int64) ([]*models.Department, error) {
	result := []*models.Department{}
	for id := range m.profDepts[professorID] {
		if d, ok := m.departments.departments[id]; ok {
			copied := *d
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) GetProfessorCourses(_ context.Context, professorID int64) ([]*models.Course, error) {
	result := []*models.Course{}
	for id := range m.profCourses[professorID] {
		if c, ok := m.courses.courses[id]; ok {
			copied := *c
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) ProfessorHasCourse(_ context.Context, professorID, courseID int64) (bool, error) {
	return m.profCourses[professorID][courseID], nil
}

// ── Mock GradeRepository ──

type gradeKey struct{ studentID, courseID int64 }

type mockGradeRepo struct {
	grades map[gradeKey]*models.GradeRecord
	nextID int64
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[gradeKey]*models.GradeRecord)}
}

func (m *mockGradeRepo) Upsert(_ context.Context, g *models.GradeRecord) error {
	key := gradeKey{g.StudentID, g.CourseID}
	if existing, ok := m.grades[key]; ok {
		g.ID = existing.ID
	} else {
		m.nextID++
		g.ID = m.nextID
	}
	g.UpdatedAt = time.Now()
	copied := *g
	m.grades[key] = &copied
	return nil
}

func (m *mockGradeRepo) Get(_ context.Context, studentID, courseID int64) (*models.GradeRecord, error) {
	if g, ok := m.grades[gradeKey{studentID, courseID}]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, apperrors.NewResourceNotFoundError("grade not found")
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.GradeRecord, error) {
	result := []*models.GradeRecord{}
	for key, g := range m.grades {
		if key.studentID == studentID {
			copied := *g
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseName < result[j].CourseName })
	return result, nil
}

func (m *mockGradeRepo) ListAll(_ context.Context) ([]*models.GradeRecord, error) {
	result := []*models.GradeRecord{}
	for _, g := range m.grades {
		copied := *g
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock AttendanceRepository ──

type attendanceKey struct {
	studentID, courseID int64
	date                string
}

type mockAttendanceRepo struct {
	records map[attendanceKey]*models.AttendanceRecord
	nextID  int64
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[attendanceKey]*models.AttendanceRecord)}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, a *models.AttendanceRecord) error {
	key := attendanceKey{a.StudentID, a.CourseID, a.Date}
	if existing, ok := m.records[key]; ok {
		a.ID = existing.ID
	} else {
		m.nextID++
		a.ID = m.nextID
	}
	copied := *a
	m.records[key] = &copied
	return nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	return m.filter(func(a *models.AttendanceRecord) bool { return a.StudentID == studentID }), nil
}

func (m *mockAttendanceRepo) ListByCourse(_ context.Context, courseID int64) ([]*models.AttendanceRecord, error) {
	return m.filter(func(a *models.AttendanceRecord) bool { return a.CourseID == courseID }), nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context) ([]*models.AttendanceRecord, error) {
	return m.filter(func(*models.AttendanceRecord) bool { return true }), nil
}

func (m *mockAttendanceRepo) filter(keep func(*models.AttendanceRecord) bool) []*models.AttendanceRecord {
	result := []*models.AttendanceRecord{}
	for _, a := range m.records {
		if keep(a) {
			copied := *a
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CourseName != result[j].CourseName {
			return result[i].CourseName < result[j].CourseName
		}
		return result[i].Date < result[j].Date
	})
	return result
}

// ── Test environment ──

type testEnv struct {
	tx          *mockTx
	departments *mockDepartmentRepo
	courses     *mockCourseRepo
	users       *mockUserRepo
	grades      *mockGradeRepo
	attendance  *mockAttendanceRepo

	auth       *AuthService
	accounts   *AccountService
	depts      *DepartmentService
	catalogue  *CourseService
	enrollment *EnrollmentService
	grading    *GradeService
	ledger     *AttendanceService
	fees       *FeeService
}

func newTestEnv() *testEnv {
	e := &testEnv{
		tx:          &mockTx{},
		departments: newMockDepartmentRepo(),
		courses:     newMockCourseRepo(),
		grades:      newMockGradeRepo(),
		attendance:  newMockAttendanceRepo(),
	}
	e.users = newMockUserRepo(e.departments, e.courses)

	log := zerolog.Nop()
	e.auth = NewAuthService(e.users, e.users, e.users, log)
	e.accounts = NewAccountService(e.tx, e.users, e.users, e.departments, 5000, log)
	e.depts = NewDepartmentService(e.departments)
	e.catalogue = NewCourseService(e.courses, e.departments)
	e.enrollment = NewEnrollmentService(e.tx, e.users, e.users, e.users, e.departments, e.courses, log)
	e.grading = NewGradeService(e.grades, e.courses, e.users, e.enrollment, log)
	e.ledger = NewAttendanceService(e.attendance, e.courses, e.users, e.enrollment, log)
	e.fees = NewFeeService(e.tx, e.users, log)
	return e
}
