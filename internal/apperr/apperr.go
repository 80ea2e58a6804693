// Package apperr defines the error taxonomy shared by the repositories,
// the access policy and the HTTP layer. Every error surfaced by the core
// is one of these; handlers map them to transport status codes.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means no record exists for the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller's role or ownership is insufficient.
	// It is distinct from ErrNotFound so a denial never reveals whether
	// the resource exists.
	ErrForbidden = errors.New("forbidden")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every failing field of a request payload,
// not just the first one.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid payload: " + strings.Join(parts, ", ")
}

// StoreError wraps a document store failure. It is fatal for the request,
// there is no internal retry because the store does not guarantee the
// intended write is idempotent.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError, or returns nil if err is nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
