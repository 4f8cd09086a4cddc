// Package grading computes weighted course totals and letter grades.
package grading

import (
	"fmt"

	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// Letter grades
const (
	Excellent = "Excellent"
	VeryGood  = "Very Good"
	Good      = "Good"
	Pass      = "Pass"
	Fail      = "Fail"
)

// MaxScore is the upper bound of every grade component
const MaxScore = 100.0

// Result of a grade computation
type Result struct {
	Total  float64
	Letter string
}

// Compute applies the weighting of courseType to scores.
// Theoretical courses ignore coursework.
func Compute(courseType models.CourseType, s models.Scores) (Result, error) {
	var total float64
	switch courseType {
	case models.CourseTheoretical:
		total = 0.2*s.Assignment1 + 0.2*s.Assignment2 + 0.6*s.FinalExam
	case models.CoursePractical:
		total = 0.2*s.Assignment1 + 0.3*s.Assignment2 + 0.2*s.Coursework + 0.3*s.FinalExam
	default:
		return Result{}, apperrors.ErrInvalidCourseType
	}
	return Result{Total: total, Letter: Letter(total)}, nil
}

// Letter maps a total to its grade letter
func Letter(total float64) string {
	switch {
	case total >= 85:
		return Excellent
	case total >= 75:
		return VeryGood
	case total >= 65:
		return Good
	case total >= 60:
		return Pass
	default:
		return Fail
	}
}

// Validate checks that every component is a number in [0, MaxScore]
func Validate(s models.Scores) error {
	fields := map[string]string{}
	check := func(name string, v float64) {
		if !(v >= 0 && v <= MaxScore) {
			fields[name] = fmt.Sprintf("must be between 0 and %.0f", MaxScore)
		}
	}
	check("assignment1", s.Assignment1)
	check("assignment2", s.Assignment2)
	check("coursework", s.Coursework)
	check("finalExam", s.FinalExam)

	if len(fields) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidScore, apperrors.NewValidationError("invalid scores", fields))
}
