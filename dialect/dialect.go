// Package dialect provides database dialect abstraction for fabrix.
//
// A dialect is fixed at connection-creation time and drives every
// statement-text branch in the sqlbuilder package. The Driver, Tx and
// ExecQuerier interfaces are the capability surface the engine depends
// on, so the engine never inspects concrete driver types.
package dialect

import (
	"context"
	"strings"
)

// Supported dialects. Each is identified by a constant string that is
// also the database/sql driver name it opens with.
const (
	// MySQL is the MySQL/MariaDB dialect.
	MySQL = "mysql"
	// Postgres is the PostgreSQL dialect.
	Postgres = "postgres"
	// SQLite is the SQLite dialect.
	SQLite = "sqlite"
)

// FromString resolves a dialect token case-insensitively.
// "m"/"mysql" map to MySQL, "p"/"postgres"/"postgresql" map to Postgres,
// anything else falls back to SQLite.
func FromString(v string) string {
	switch strings.ToLower(v) {
	case "mysql", "m":
		return MySQL
	case "postgres", "postgresql", "p":
		return Postgres
	default:
		return SQLite
	}
}

// ExecQuerier wraps the two basic statement operations.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows. For the
	// args and v parameters, see dialect/sql.Conn.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the capability interface the engine executes against.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx is a transaction scoped to a single connection. Statements issued
// through it execute in submission order; Commit applies them all,
// Rollback discards them all.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
