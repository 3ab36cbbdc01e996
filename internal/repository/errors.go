package repository

import (
	"errors"
	"strings"
)

// Common repository errors
var (
	// ErrNotFound matches every NotFoundError
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail matches every DuplicateEmailError
	ErrDuplicateEmail = errors.New("email already exists")
)

const (
	EntityEmployee = "employee"
	EntityTask     = "task"
)

// NotFoundError is returned when an id does not resolve to a stored record.
type NotFoundError struct {
	Entity string
	ID     int64
}

// Error matches the wording shown to users, e.g. "Employee not found.".
// The id is kept on the struct for logging.
func (e *NotFoundError) Error() string {
	entity := e.Entity
	if entity != "" {
		entity = strings.ToUpper(entity[:1]) + entity[1:]
	}
	return entity + " not found."
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateEmailError is returned when a create or update would give two
// employees the same email.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return "Email already exists."
}

func (e *DuplicateEmailError) Is(target error) bool {
	return target == ErrDuplicateEmail
}
