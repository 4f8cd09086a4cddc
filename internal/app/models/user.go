package models

import (
	"time"
)

// User is an account row of the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt hash
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Student is a student account joined with its 'students' row
type Student struct {
	User
	DepartmentID   int64   `json:"departmentId" db:"department_id"`
	DepartmentName string  `json:"departmentName,omitempty"`
	FeesDue        float64 `json:"feesDue" db:"fees_due"`
	FeesPaid       float64 `json:"feesPaid" db:"fees_paid"`
}

// Balance is the amount still owed
func (s *Student) Balance() float64 {
	return s.FeesDue - s.FeesPaid
}

// Professor is a professor account with its assignments
type Professor struct {
	User
	Departments []*Department `json:"departments"`
	Courses     []*Course     `json:"courses"`
}
