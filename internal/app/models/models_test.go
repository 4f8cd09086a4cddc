package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

func TestParseAttendanceStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    AttendanceStatus
		wantErr bool
	}{
		{in: "present", want: StatusPresent},
		{in: "P", want: StatusPresent},
		{in: " absent ", want: StatusAbsent},
		{in: "a", want: StatusAbsent},
		{in: "late", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAttendanceStatus(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "ParseAttendanceStatus(%q)", tt.in)
			continue
		}
		assert.NoError(t, err, "ParseAttendanceStatus(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseAttendanceStatus(%q)", tt.in)
	}
}

func TestParseCourseType(t *testing.T) {
	ct, err := ParseCourseType("Theoretical")
	assert.NoError(t, err)
	assert.Equal(t, CourseTheoretical, ct)

	ct, err = ParseCourseType("p")
	assert.NoError(t, err)
	assert.Equal(t, CoursePractical, ct)

	_, err = ParseCourseType("lab")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCourseType)
}

func TestStudentBalance(t *testing.T) {
	s := &Student{FeesDue: 5000, FeesPaid: 4800}
	assert.Equal(t, 200.0, s.Balance())
}

func TestActorAccount(t *testing.T) {
	actors := []Actor{
		&AdminActor{User: &User{Username: "admin", Role: RoleAdmin}},
		&ProfessorActor{Professor: &Professor{User: User{Username: "prof", Role: RoleProfessor}}},
		&StudentActor{Student: &Student{User: User{Username: "stud", Role: RoleStudent}}},
	}
	want := []string{"admin", "prof", "stud"}
	for i, a := range actors {
		assert.Equal(t, want[i], a.Account().Username)
		assert.True(t, a.Account().Role.Valid(), "role %q not valid", a.Account().Role)
	}
}
