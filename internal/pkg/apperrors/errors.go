package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of these.
var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrValidationFailed   = errors.New("validation failed")
	ErrOverPayment        = errors.New("payment exceeds amount due")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Entity errors
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrResourceNotFound)
	ErrStudentNotFound    = fmt.Errorf("student %w", ErrResourceNotFound)
	ErrProfessorNotFound  = fmt.Errorf("professor %w", ErrResourceNotFound)
	ErrDepartmentNotFound = fmt.Errorf("department %w", ErrResourceNotFound)
	ErrCourseNotFound     = fmt.Errorf("course %w", ErrResourceNotFound)

	ErrUsernameAlreadyExists   = fmt.Errorf("username already exists: %w", ErrConflict)
	ErrDepartmentAlreadyExists = fmt.Errorf("department with this name already exists: %w", ErrConflict)

	ErrInvalidCourseType       = fmt.Errorf("course type must be theoretical or practical: %w", ErrValidationFailed)
	ErrInvalidAttendanceStatus = fmt.Errorf("attendance status must be present or absent: %w", ErrValidationFailed)
	ErrInvalidScore            = fmt.Errorf("score must be between 0 and 100: %w", ErrValidationFailed)
	ErrInvalidAmount           = fmt.Errorf("payment amount must be a positive number: %w", ErrValidationFailed)
	ErrCourseNotInDepartment   = fmt.Errorf("course does not belong to department: %w", ErrValidationFailed)

	ErrCourseNotAssigned = fmt.Errorf("course is not assigned to professor: %w", ErrPermissionDenied)
	ErrStudentNotVisible = fmt.Errorf("student is not enrolled in the course department: %w", ErrPermissionDenied)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a validation error with per-field messages
func NewValidationError(message string, fields map[string]string) error {
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return (&CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}).WithDetails(details)
}

// NewOverPaymentError reports a rejected payment and the maximum the student may still pay
func NewOverPaymentError(maxPayable float64) error {
	return (&CustomError{
		Err:     ErrOverPayment,
		Message: fmt.Sprintf("payment exceeds due amount, maximum payable: %.2f", maxPayable),
		Code:    "OVER_PAYMENT",
	}).WithDetails(map[string]interface{}{"maxPayable": maxPayable})
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Kind maps an error to the name of its kind, or "INTERNAL" for infrastructure failures
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrResourceNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrValidationFailed):
		return "VALIDATION"
	case errors.Is(err, ErrOverPayment):
		return "OVER_PAYMENT"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrPermissionDenied):
		return "FORBIDDEN"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	default:
		return "INTERNAL"
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
