package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
)

func account(username, prefix string) dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		Username: username, Password: "secret1", Name: prefix + " " + username, Email: username + "@uni.edu",
	}
}

func (e *testEnv) mustDepartment(t *testing.T, name string) *models.Department {
	t.Helper()
	d, err := e.depts.CreateDepartment(context.Background(), dto.CreateDepartmentRequest{Name: name})
	require.NoError(t, err, "CreateDepartment(%q)", name)
	return d
}

func (e *testEnv) mustCourse(t *testing.T, name string, departmentID int64, courseType models.CourseType) *models.Course {
	t.Helper()
	c, err := e.catalogue.CreateCourse(context.Background(), dto.CreateCourseRequest{
		Name: name, DepartmentID: departmentID, Type: string(courseType),
	})
	require.NoError(t, err, "CreateCourse(%q)", name)
	return c
}

func (e *testEnv) mustStudent(t *testing.T, username string, departmentID int64) *models.Student {
	t.Helper()
	s, err := e.accounts.CreateStudent(context.Background(), dto.CreateStudentRequest{
		CreateAccountRequest: account(username, "Student"),
		DepartmentID:         departmentID,
	})
	require.NoError(t, err, "CreateStudent(%q)", username)
	return s
}

func (e *testEnv) mustProfessor(t *testing.T, username string) *models.Professor {
	t.Helper()
	p, err := e.accounts.CreateProfessor(context.Background(), dto.CreateProfessorRequest{
		CreateAccountRequest: account(username, "Prof"),
	})
	require.NoError(t, err, "CreateProfessor(%q)", username)
	return p
}
