package common

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ValidationError is a user input problem. The triggering request is a no-op
// and the message is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned for operations on a nonexistent primary key.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// NewNotFoundError creates a NotFoundError for the given entity name.
func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// WrapNotFound converts gorm.ErrRecordNotFound into a NotFoundError for the
// given entity, leaving other errors untouched.
func WrapNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(entity)
	}
	return err
}

// TranslateDeleteError maps a foreign-key violation on a hard delete to a
// user-facing "deletion forbidden" validation error instead of leaking the
// raw database error. Requires gorm's TranslateError option.
func TranslateDeleteError(err error, entity string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return NewValidationError("cannot delete %s: it is referenced by other records", entity)
	}
	return err
}
