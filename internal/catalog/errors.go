package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error kinds. Every error that leaves the core wraps exactly one of these.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrConstraint          = errors.New("constraint violation")
	ErrInternal            = errors.New("internal error")
)

// ConflictError reports a stale write against a singleton record.
type ConflictError struct {
	Kind      string // "inventory" or "pricing"
	ProductID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("concurrency conflict: %s for product %s was modified concurrently", e.Kind, e.ProductID)
}

// Is reports ErrConcurrencyConflict as the kind of e.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConcurrencyConflict
}

// NotFoundf returns an ErrNotFound with context.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidArgumentf returns an ErrInvalidArgument with context.
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Constraintf returns an ErrConstraint with context.
func Constraintf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstraint, fmt.Sprintf(format, args...))
}

// Internal wraps cause as an ErrInternal. The cause stays reachable via errors.Is/As.
func Internal(msg string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, msg, cause)
}

// Kind returns the sentinel kind err wraps, or nil if it wraps none.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrInvalidArgument, ErrConcurrencyConflict, ErrConstraint, ErrInternal} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
