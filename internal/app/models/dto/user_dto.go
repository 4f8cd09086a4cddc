package dto

// CreateAccountRequest holds the fields every account is created with
type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,username,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"notblank,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// CreateProfessorRequest represents professor account creation data
type CreateProfessorRequest struct {
	CreateAccountRequest
}

// CreateStudentRequest represents student account creation data
type CreateStudentRequest struct {
	CreateAccountRequest
	DepartmentID int64 `json:"departmentId" validate:"gt=0"`
}

// ResetPasswordRequest replaces the password of an existing account
type ResetPasswordRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
