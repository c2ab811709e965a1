// Package fabrix persists tabular in-memory dataframes to relational
// databases (MySQL, PostgreSQL, SQLite) through one uniform API.
//
// The root package holds the error taxonomy shared by the sub-packages:
//
//   - dialect: dialect constants and driver capability interfaces
//   - dialect/sql: database/sql adapter with debug and stats wrappers
//   - df: the minimal dataframe collaborator (values, columns, frames)
//   - sqlbuilder: dialect-aware DDL/DML synthesis and the value bridge
//   - engine: the write/read engine and the Loader facade
package fabrix

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common failure classes.
var (
	// ErrPoolNotSet is returned when a data operation is issued on a
	// Loader before Connect has established a connection pool.
	ErrPoolNotSet = errors.New("fabrix: loader pool not set")

	// ErrUnsupported is returned for operations and type mappings that
	// are explicitly not implemented.
	ErrUnsupported = errors.New("fabrix: not implemented")

	// ErrEmptyContent is returned when an operation receives a dataframe
	// or series with no rows to work with.
	ErrEmptyContent = errors.New("fabrix: empty content")
)

// ConnectionError reports a failure to establish or use a connection.
type ConnectionError struct {
	Dialect string // Dialect the connection was opened for
	Err     error  // Underlying driver error, nil if the pool is absent
}

// Error returns the error string.
func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fabrix: %s: connection not established", e.Dialect)
	}
	return fmt.Sprintf("fabrix: %s: connect: %v", e.Dialect, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error { return e.Err }

// Is reports whether the target matches ErrPoolNotSet when no
// underlying error is present.
func (e *ConnectionError) Is(err error) bool {
	return e.Err == nil && err == ErrPoolNotSet
}

// NewConnectionError returns a new ConnectionError.
func NewConnectionError(dialect string, err error) *ConnectionError {
	return &ConnectionError{Dialect: dialect, Err: err}
}

// IsConnection returns true if the error is a ConnectionError.
func IsConnection(err error) bool {
	if err == nil {
		return false
	}
	var e *ConnectionError
	return errors.As(err, &e)
}

// TypeBridgeError reports a value/type/nullability mismatch during
// value bridging. It is always surfaced, never coerced silently.
type TypeBridgeError struct {
	Value any    // Offending value, formatted with %v
	Type  string // Declared column type
}

// Error returns the error string.
func (e *TypeBridgeError) Error() string {
	return fmt.Sprintf("fabrix: cannot bridge %v into %s", e.Value, e.Type)
}

// NewTypeBridgeError returns a new TypeBridgeError.
func NewTypeBridgeError(value any, typ string) *TypeBridgeError {
	return &TypeBridgeError{Value: value, Type: typ}
}

// IsTypeBridge returns true if the error is a TypeBridgeError.
func IsTypeBridge(err error) bool {
	if err == nil {
		return false
	}
	var e *TypeBridgeError
	return errors.As(err, &e)
}

// UnsupportedError reports an operation or type mapping that is
// explicitly marked as not implemented.
type UnsupportedError struct {
	Op string // Operation or type that is unsupported
}

// Error returns the error string.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("fabrix: %s not implemented", e.Op)
}

// Is reports whether the target error matches ErrUnsupported.
func (e *UnsupportedError) Is(err error) bool {
	return err == ErrUnsupported
}

// NewUnsupportedError returns a new UnsupportedError for the given operation.
func NewUnsupportedError(op string) *UnsupportedError {
	return &UnsupportedError{Op: op}
}

// IsUnsupported returns true if the error is an UnsupportedError.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// ExecutionError wraps a database-reported failure with dialect context.
type ExecutionError struct {
	Dialect string // Dialect the statement ran against
	Op      string // Operation (e.g. "exec", "fetch", "transaction")
	Err     error  // Verbatim driver error
}

// Error returns the error string.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("fabrix: %s %s: %v", e.Dialect, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecutionError) Unwrap() error { return e.Err }

// NewExecutionError returns a new ExecutionError.
func NewExecutionError(dialect, op string, err error) *ExecutionError {
	return &ExecutionError{Dialect: dialect, Op: op, Err: err}
}

// IsExecution returns true if the error is an ExecutionError.
func IsExecution(err error) bool {
	if err == nil {
		return false
	}
	var e *ExecutionError
	return errors.As(err, &e)
}

// SchemaMismatchError reports an index type that is incompatible with
// the declared column type.
type SchemaMismatchError struct {
	Column string // Column name
	Type   string // Declared column type
}

// Error returns the error string.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("fabrix: column %q of type %s cannot serve as an index", e.Column, e.Type)
}

// NewSchemaMismatchError returns a new SchemaMismatchError.
func NewSchemaMismatchError(column, typ string) *SchemaMismatchError {
	return &SchemaMismatchError{Column: column, Type: typ}
}

// IsSchemaMismatch returns true if the error is a SchemaMismatchError.
func IsSchemaMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaMismatchError
	return errors.As(err, &e)
}
