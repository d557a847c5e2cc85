package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind classifies a domain-level failure independently of the
// underlying persistence error.
type ErrorKind string

const (
	ErrKindNotFound      ErrorKind = "not_found"
	ErrKindAlreadyExists ErrorKind = "already_exists"
	ErrKindUnauthorized  ErrorKind = "unauthorized"
	ErrKindForbidden     ErrorKind = "forbidden"
)

// DomainError is an application-level error raised by the service layer.
// The error handler middleware maps its Kind to an HTTP status code.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// NewNotFoundError creates a not-found domain error
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: ErrKindNotFound, Message: message}
}

// NewAlreadyExistsError creates a uniqueness-conflict domain error
func NewAlreadyExistsError(message string) *DomainError {
	return &DomainError{Kind: ErrKindAlreadyExists, Message: message}
}

// NewUnauthorizedError creates an unauthorized domain error
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Kind: ErrKindUnauthorized, Message: message}
}

// NewForbiddenError creates a forbidden domain error
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Kind: ErrKindForbidden, Message: message}
}

// GetDomainError extracts a DomainError from an error chain, or nil.
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsUniqueViolation reports whether err is the database's unique-constraint
// violation signal. It recognizes gorm's translated error plus the raw
// SQLite and PostgreSQL driver messages.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	// SQLite unique violation
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	// PostgreSQL unique violation
	return strings.Contains(errStr, "duplicate key value violates unique constraint")
}
