package apperrors

import "errors"

// Category errors. Every application error wraps exactly one of these so the
// HTTP layer can map it to a status with errors.Is.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	ErrPermissionDenied = errors.New("permission denied")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User and role errors
var (
	ErrUserNotFound       = NewResourceNotFoundError("user not found")
	ErrRoleNotFound       = NewResourceNotFoundError("role not found")
	ErrEmailAlreadyExists = NewConflictError("email already registered")
	ErrRoleAlreadyExists  = NewConflictError("role already exists")
	ErrAccountDisabled    = NewCustomError(ErrUnauthenticated, "account is disabled").WithCode("AUTH_003")
)

// Catalog errors
var (
	ErrCourseNotFound      = NewResourceNotFoundError("course not found")
	ErrCourseAlreadyExists = NewConflictError("course with this name or code already exists")
	ErrCourseInUse         = NewConflictError("course is referenced by completed courses and cannot be deleted")
)

// Completed course errors
var (
	ErrCompletedCourseNotFound = NewResourceNotFoundError("course not completed")
	ErrCompletedCoursesEmpty   = NewResourceNotFoundError("no completed courses")
	ErrCompletedCourseExists   = NewConflictError("course already completed")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) *CustomError {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) *CustomError {
	return NewCustomError(ErrConflict, message)
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) *CustomError {
	return NewCustomError(ErrPermissionDenied, message)
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) *CustomError {
	return NewCustomError(ErrBadRequest, message)
}

// NewValidationError creates a custom error for rejected input
func NewValidationError(message string) *CustomError {
	return NewCustomError(ErrValidationFailed, message)
}

// CustomError represents application-specific errors with additional context.
// Code, when set, replaces the category error code in responses.
type CustomError struct {
	Err     error
	Message string
	Code    string
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

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithCode returns a copy carrying an error code
func (e *CustomError) WithCode(code string) *CustomError {
	cp := *e
	cp.Code = code
	return &cp
}

// Message returns the message of the first CustomError in err's chain, or
// the error text when there is none.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}

// Code returns the code of the first CustomError in err's chain that has one
func Code(err error) string {
	for err != nil {
		var ce *CustomError
		if !errors.As(err, &ce) {
			return ""
		}
		if ce.Code != "" {
			return ce.Code
		}
		err = ce.Err
	}
	return ""
}

// NewRecordNotFoundError reports a missing singleton record of the labelled kind
func NewRecordNotFoundError(label string) *CustomError {
	return NewResourceNotFoundError(label + " not found")
}

// NewRecordExistsError reports an already present singleton record
func NewRecordExistsError(label string) *CustomError {
	return NewConflictError(label + " already exist")
}
