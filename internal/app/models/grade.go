package models

import "time"

// Scores are the four grade components, each in [0, 100]
type Scores struct {
	Assignment1 float64 `json:"assignment1"`
	Assignment2 float64 `json:"assignment2"`
	Coursework  float64 `json:"coursework"`
	FinalExam   float64 `json:"finalExam"`
}

// GradeRecord is the single grade row of a student in a course
type GradeRecord struct {
	ID        int64 `json:"id" db:"id"`
	StudentID int64 `json:"studentId" db:"student_id"`
	CourseID  int64 `json:"courseId" db:"course_id"`
	Scores
	Total     float64   `json:"total" db:"total"`
	Letter    string    `json:"gradeLetter" db:"grade_letter"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	StudentName string     `json:"studentName,omitempty"`
	CourseName  string     `json:"courseName,omitempty"`
	CourseType  CourseType `json:"courseType,omitempty"`
}
