package repositories

import (
	"github.com/yigit/registrar/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	DepartmentRepository *DepartmentRepository
	CourseRepository     *CourseRepository
	GradeRepository      *GradeRepository
	AttendanceRepository *AttendanceRepository
}

// NewRepositories initializes all repositories. q is normally the pool; calls
// made with a transactional context use that transaction instead.
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(q),
		DepartmentRepository: NewDepartmentRepository(q),
		CourseRepository:     NewCourseRepository(q),
		GradeRepository:      NewGradeRepository(q),
		AttendanceRepository: NewAttendanceRepository(q),
	}
}
