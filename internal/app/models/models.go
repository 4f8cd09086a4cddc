package models

import (
	"strings"

	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// Role is fixed when an account is created
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessor, RoleStudent:
		return true
	}
	return false
}

// CourseType selects the grade weighting scheme of a course
type CourseType string

const (
	CourseTheoretical CourseType = "theoretical"
	CoursePractical   CourseType = "practical"
)

// ParseCourseType accepts the full type name or its first letter, case-insensitive
func ParseCourseType(s string) (CourseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "theoretical", "t":
		return CourseTheoretical, nil
	case "practical", "p":
		return CoursePractical, nil
	}
	return "", apperrors.ErrInvalidCourseType
}

// AttendanceStatus of a student for one course on one day
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// ParseAttendanceStatus accepts present/absent or p/a, case-insensitive
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "p":
		return StatusPresent, nil
	case "absent", "a":
		return StatusAbsent, nil
	}
	return "", apperrors.ErrInvalidAttendanceStatus
}

// UserFilter selects which accounts ListUsers returns
type UserFilter string

const (
	FilterAll        UserFilter = "all"
	FilterStudents   UserFilter = "students"
	FilterProfessors UserFilter = "professors"
)
