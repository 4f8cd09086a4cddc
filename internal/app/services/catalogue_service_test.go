package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

func TestDepartmentService_CreateDepartment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	d, err := env.depts.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "  Physics "})
	require.NoError(t, err)
	assert.Equal(t, "Physics", d.Name, "name must be trimmed")

	_, err = env.depts.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "Physics"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	_, err = env.depts.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDepartmentService_EnsureDepartments(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.mustDepartment(t, "Physics")

	added, err := env.depts.EnsureDepartments(ctx, []string{"Physics", "Chemistry", "Biology"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	all, err := env.depts.GetAllDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Biology", all[0].Name)
}

func TestCourseService_CreateCourse(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	cs := env.mustDepartment(t, "Computer Science")

	c, err := env.catalogue.CreateCourse(ctx, dto.CreateCourseRequest{Name: "Compilers", DepartmentID: cs.ID, Type: "P"})
	require.NoError(t, err)
	assert.Equal(t, models.CoursePractical, c.Type)
	assert.Equal(t, "Computer Science", c.DepartmentName)

	tests := []struct {
		name string
		req  dto.CreateCourseRequest
	}{
		{"unknown department", dto.CreateCourseRequest{Name: "Optics", DepartmentID: 77, Type: "theoretical"}},
		{"unknown type", dto.CreateCourseRequest{Name: "Optics", DepartmentID: cs.ID, Type: "seminar"}},
		{"empty name", dto.CreateCourseRequest{Name: "", DepartmentID: cs.ID, Type: "theoretical"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.catalogue.CreateCourse(ctx, tt.req)
			assert.Equal(t, "VALIDATION", apperrors.Kind(err), "CreateCourse() error = %v", err)
		})
	}

	courses, err := env.catalogue.GetCoursesByDepartment(ctx, cs.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}
