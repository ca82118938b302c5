package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinels for errors.Is; each typed error below matches exactly one.
var (
	ErrValidation = errors.New("validation failed")
	ErrReference  = errors.New("referenced entity does not exist")
	ErrNotFound   = errors.New("not found")
	ErrConnection = errors.New("store unreachable")
)

// ValidationError reports a caller-supplied field that fails a precondition
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceError reports an order pointing at a missing customer or product
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s not found: %s", e.Entity, e.ID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// NotFoundError reports a get/update/delete against a missing id
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConnectionError reports that the backing database could not be reached
// or refused the configured credentials or target.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// isConnectionFailure reports whether err means the database itself is
// unusable rather than the statement having failed.
func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// database/sql does not export its closed-pool error
	return strings.Contains(err.Error(), "sql: database is closed")
}

// storeError wraps a failed statement, reporting connection failures as
// *ConnectionError so that callers can tell them apart.
func storeError(op string, err error) error {
	if isConnectionFailure(err) {
		return &ConnectionError{Op: op, Err: err}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
