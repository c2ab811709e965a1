package engine

import (
	"context"
	"log/slog"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
	"github.com/Jacobbishopxy/fabrix/dialect"
	"github.com/Jacobbishopxy/fabrix/sqlbuilder"
)

// Loader is the user-facing facade over the engine. It is constructed
// unconnected; every data operation before Connect fails with a
// pool-not-set connection error and attempts no I/O.
type Loader struct {
	info ConnInfo
	eng  *Engine
	log  *slog.Logger
}

// New returns an unconnected Loader for the connection info.
func New(info ConnInfo) *Loader {
	info.Dialect = dialect.FromString(info.Dialect)
	return &Loader{info: info, log: slog.Default()}
}

// FromString returns an unconnected Loader for a DSN string.
func FromString(dsn string) (*Loader, error) {
	info, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	return New(info), nil
}

// WithLogger sets the loader's logger and returns the loader.
func (l *Loader) WithLogger(lg *slog.Logger) *Loader {
	l.log = lg
	if l.eng != nil {
		l.eng.WithLogger(lg)
	}
	return l
}

// WithDriver attaches an already-open driver, bypassing Connect. The
// driver's dialect wins over the connection info's.
func (l *Loader) WithDriver(drv dialect.Driver) *Loader {
	l.eng = NewEngine(drv).WithLogger(l.log)
	return l
}

// Connect opens the driver for the loader's connection info and
// verifies the connection with a ping.
func (l *Loader) Connect(ctx context.Context) error {
	drv, err := Open(l.info)
	if err != nil {
		return fabrix.NewConnectionError(l.info.Dialect, err)
	}
	if err := drv.DB().PingContext(ctx); err != nil {
		_ = drv.Close()
		return fabrix.NewConnectionError(l.info.Dialect, err)
	}
	l.eng = NewEngine(drv).WithLogger(l.log)
	l.log.Info("connected", "dialect", l.info.Dialect, "database", l.info.Database)
	return nil
}

// Dialect returns the loader's resolved dialect name.
func (l *Loader) Dialect() string { return l.info.Dialect }

// engine returns the connected engine or the pool-not-set error.
func (l *Loader) engine() (*Engine, error) {
	if l.eng == nil {
		return nil, fabrix.NewConnectionError(l.info.Dialect, nil)
	}
	return l.eng, nil
}

// Close closes the underlying driver. Closing an unconnected loader is
// a no-op.
func (l *Loader) Close() error {
	if l.eng == nil {
		return nil
	}
	return l.eng.Close()
}

// RawFetch runs caller-written SQL and returns the result as a frame.
func (l *Loader) RawFetch(ctx context.Context, query string) (*df.DataFrame, error) {
	eng, err := l.engine()
	if err != nil {
		return nil, err
	}
	return eng.RawFetch(ctx, query)
}

// Select fetches the named columns with an optional filter.
func (l *Loader) Select(ctx context.Context, table string, columns []string, filter []sqlbuilder.Expression) (*df.DataFrame, error) {
	eng, err := l.engine()
	if err != nil {
		return nil, err
	}
	return eng.Select(ctx, table, columns, filter)
}

// HasTable reports whether the table exists.
func (l *Loader) HasTable(ctx context.Context, table string) (bool, error) {
	eng, err := l.engine()
	if err != nil {
		return false, err
	}
	return eng.HasTable(ctx, table)
}

// TableSchema introspects the table's columns.
func (l *Loader) TableSchema(ctx context.Context, table string) ([]df.Column, error) {
	eng, err := l.engine()
	if err != nil {
		return nil, err
	}
	return eng.TableSchema(ctx, table)
}

// ListTables returns the names of all tables in the current database.
func (l *Loader) ListTables(ctx context.Context) ([]string, error) {
	eng, err := l.engine()
	if err != nil {
		return nil, err
	}
	return eng.ListTables(ctx)
}

// PrimaryKey resolves the table's primary-key column name.
func (l *Loader) PrimaryKey(ctx context.Context, table string) (string, error) {
	eng, err := l.engine()
	if err != nil {
		return "", err
	}
	return eng.PrimaryKey(ctx, table)
}

// CreateTable creates a table from column descriptors.
func (l *Loader) CreateTable(ctx context.Context, table string, cols []df.Column, idx *sqlbuilder.IndexOption) error {
	eng, err := l.engine()
	if err != nil {
		return err
	}
	return eng.CreateTable(ctx, table, cols, idx)
}

// DeleteTable drops the table if it exists.
func (l *Loader) DeleteTable(ctx context.Context, table string) error {
	eng, err := l.engine()
	if err != nil {
		return err
	}
	return eng.DeleteTable(ctx, table)
}

// Insert appends the frame's rows to the table.
func (l *Loader) Insert(ctx context.Context, table string, d *df.DataFrame) error {
	eng, err := l.engine()
	if err != nil {
		return err
	}
	return eng.Insert(ctx, table, d)
}

// Update rewrites the frame's rows keyed by the index column, inside a
// single transaction.
func (l *Loader) Update(ctx context.Context, table string, d *df.DataFrame, idx *sqlbuilder.IndexOption) error {
	eng, err := l.engine()
	if err != nil {
		return err
	}
	return eng.Update(ctx, table, d, idx)
}

// Save persists the frame under the given strategy.
func (l *Loader) Save(ctx context.Context, table string, d *df.DataFrame, strategy sqlbuilder.SaveStrategy, idx *sqlbuilder.IndexOption) error {
	eng, err := l.engine()
	if err != nil {
		return err
	}
	return eng.Save(ctx, table, d, strategy, idx)
}

// Delete removes the rows matching the filter.
func (l *Loader) Delete(ctx context.Context, table string, filter []sqlbuilder.Expression) error {
	eng, err := l.engine()
	if err != nil {
		return err
	}
	return eng.Delete(ctx, table, filter)
}
