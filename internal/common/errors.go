// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap them with %w so callers can match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrDatabaseCorrupted = errors.New("database corrupted")
	ErrInvalidDocument   = errors.New("invalid import document")
	ErrMissingConfig     = errors.New("missing configuration")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// UserError pairs a message fit for the terminal with the underlying cause.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

// NewUserError wraps err with a message for the user. err may be nil.
func NewUserError(message string, err error) error {
	return &UserError{Message: message, Err: err}
}

// UserMessage is what the CLI prints for err: the message of the outermost
// UserError, or the full error text when there is none.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return err.Error()
}
