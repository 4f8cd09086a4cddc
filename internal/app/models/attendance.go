package models

// AttendanceRecord is one row of the 'attendance' table. Date is YYYY-MM-DD.
type AttendanceRecord struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	CourseID  int64            `json:"courseId" db:"course_id"`
	Date      string           `json:"date" db:"date"`
	Status    AttendanceStatus `json:"status" db:"status"`

	StudentName string `json:"studentName,omitempty"`
	CourseName  string `json:"courseName,omitempty"`
}
