package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrStoreFailure    = errors.New("store failure")
)

// uniqueViolation is the PostgreSQL SQLSTATE for a broken unique/primary key constraint.
const uniqueViolation = "23505"

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// ConflictError reports a create attempt with an identifier that is already taken.
type ConflictError struct {
	Entity string
	ID     uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with ID '%s' already exists.", e.Entity, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' could not be found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
}
