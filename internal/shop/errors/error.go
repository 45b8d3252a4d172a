// Package errors provides the error values shared by the shop service layers.
package errors

import "errors"

var ErrValidation = errors.New("validation failed")
var ErrUnauthorized = errors.New("authentication required")
var ErrForbidden = errors.New("permission denied")

var ErrUserNotFound = errors.New("user not found")
var ErrUserAlreadyExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrProductNotFound = errors.New("product not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryAlreadyExists = errors.New("category already exists")
var ErrCommentNotFound = errors.New("comment not found")

// ErrConstraintViolation signals a lost uniqueness race on a composite key.
// It never leaves the store: the losing write is re-run.
var ErrConstraintViolation = errors.New("constraint violation")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
