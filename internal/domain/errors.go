package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every domain error wraps exactly one of these so the
// transports can map it with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrCourseNotFound     = fmt.Errorf("course %w", ErrNotFound)
	ErrModuleNotFound     = fmt.Errorf("module %w", ErrNotFound)
	ErrLessonNotFound     = fmt.Errorf("lesson %w", ErrNotFound)
	ErrAssignmentNotFound = fmt.Errorf("assignment %w", ErrNotFound)
	ErrEnrollmentNotFound = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrSubmissionNotFound = fmt.Errorf("submission %w", ErrNotFound)

	ErrUserAlreadyExists = fmt.Errorf("user already exists: %w", ErrConflict)
	ErrUsernameTaken     = fmt.Errorf("username already taken: %w", ErrConflict)
	ErrEmailTaken        = fmt.Errorf("email already taken: %w", ErrConflict)
	ErrCourseCodeTaken   = fmt.Errorf("course code already taken: %w", ErrConflict)
	ErrAlreadyEnrolled   = fmt.Errorf("user already enrolled in course: %w", ErrConflict)
	ErrCourseFull        = fmt.Errorf("course enrollment is full: %w", ErrConflict)
	ErrAlreadySubmitted  = fmt.Errorf("assignment already submitted: %w", ErrConflict)
)

// FieldError describes a single invalid field by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an entity or request fails validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
