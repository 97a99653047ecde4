// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/productivity-hub/internal/model"
	"github.com/maxviazov/productivity-hub/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// Migration failure kinds. Both are recorded in the report, never returned to callers.
var (
	// ErrParse marks a legacy blob that is not valid JSON for its provider or misses required fields.
	ErrParse = errors.New("legacy session parse error")
	// ErrStoreWrite marks a session the current store refused to save.
	ErrStoreWrite = errors.New("session store write error")
)

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// InvalidField reports a single invalid input field; it unwraps to ErrInvalidInput.
func InvalidField(field, message string) error {
	return newInvalidInput([]FieldError{{Field: field, Message: message}})
}

// fromPaginationError turns a pagination argument error into a field-level input error.
func fromPaginationError(err error) error {
	var argErr *pagination.ArgumentError
	if errors.As(err, &argErr) {
		return newInvalidInput([]FieldError{{Field: argErr.Field, Message: argErr.Reason}})
	}
	return err
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// SessionService defines provider session read use cases.
type SessionService interface {
	ListSessions(ctx context.Context, req pagination.Request) (model.SessionPage, error)
	GetSession(ctx context.Context, id int64) (model.ProviderSession, error)
}

// Migrator moves legacy provider sessions into the current session store.
type Migrator interface {
	Migrate(ctx context.Context) model.MigrationReport
	LastReport() (model.MigrationReport, bool)
}
