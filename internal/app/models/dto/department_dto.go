package dto

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// CreateCourseRequest represents course creation data. Type is parsed by the service.
type CreateCourseRequest struct {
	Name         string `json:"name" validate:"notblank,max=100"`
	DepartmentID int64  `json:"departmentId" validate:"gt=0"`
	Type         string `json:"courseType" validate:"required"`
}

// AssignProfessorRequest links a professor to a department and one of its courses
type AssignProfessorRequest struct {
	ProfessorID  int64 `json:"professorId" validate:"gt=0"`
	DepartmentID int64 `json:"departmentId" validate:"gt=0"`
	CourseID     int64 `json:"courseId" validate:"gt=0"`
}
