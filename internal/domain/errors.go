package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by stores, services and handlers
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
)

// NotFoundError identifies the missing resource.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Resource string
	ID       int64
}

// NewNotFoundError creates a NotFoundError for the given resource and id
func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// EmailInUseError reports a signup or update that collides with an existing account.
// It matches ErrEmailInUse with errors.Is.
type EmailInUseError struct {
	Email string
}

func (e *EmailInUseError) Error() string {
	return fmt.Sprintf("Email %s is already in use!", e.Email)
}

// Is makes errors.Is(err, ErrEmailInUse) true
func (e *EmailInUseError) Is(target error) bool {
	return target == ErrEmailInUse
}
