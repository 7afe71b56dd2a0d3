package application

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrEmptyProject = errors.New("project is empty")
	ErrUnknownArea  = errors.New("unknown practice area")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ImportError lists every structural problem found in an import document
type ImportError struct {
	Missing []string
}

func (e *ImportError) Error() string {
	return "invalid project file: missing " + strings.Join(e.Missing, ", ")
}

// NotFoundError names the entity that could not be resolved
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
