package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrProviderNotFound    = errors.New("provider not found")
	ErrProviderExists      = errors.New("provider already exists")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidState        = errors.New("booking is not in an assignable state")
	ErrProviderMismatch    = errors.New("booking not found or provider mismatch")
	ErrNoProviderAvailable = errors.New("no available providers found for this service type")
	ErrStore               = errors.New("booking store failure")
	ErrConflict            = errors.New("booking was modified concurrently")
)

// IsRetryable reports whether the assignment engine may retry after err.
// Validation, not-found, transition and state errors are deterministic and never retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNoProviderAvailable) ||
		errors.Is(err, ErrStore) ||
		errors.Is(err, ErrConflict)
}

// storeError tags a persistence failure. PostgreSQL serialization failures
// and deadlocks are reported as conflicts.
func storeError(op string, err error) error {
	if isSerializationError(err) {
		return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// isSerializationError checks for PostgreSQL 40001 (serialization_failure)
// and 40P01 (deadlock_detected)
func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isDuplicateKeyError checks if the error is a unique violation on the specified
// constraint. Handles opened with TranslateError report gorm.ErrDuplicatedKey
// for both drivers and drop the constraint name.
func isDuplicateKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return false
}
