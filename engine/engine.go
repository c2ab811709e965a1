package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
	"github.com/Jacobbishopxy/fabrix/dialect"
	fsql "github.com/Jacobbishopxy/fabrix/dialect/sql"
	"github.com/Jacobbishopxy/fabrix/sqlbuilder"
)

// Engine runs synthesized statements against a dialect.Driver and maps
// the results back into dataframes. It holds no connection state of its
// own; the driver owns the pool.
type Engine struct {
	drv dialect.Driver
	bld sqlbuilder.Builder
	log *slog.Logger
}

// NewEngine returns an Engine over the given driver. The builder's
// dialect follows the driver's.
func NewEngine(drv dialect.Driver) *Engine {
	return &Engine{
		drv: drv,
		bld: sqlbuilder.New(drv.Dialect()),
		log: slog.Default(),
	}
}

// WithLogger sets the engine's logger and returns the engine.
func (e *Engine) WithLogger(l *slog.Logger) *Engine {
	e.log = l
	return e
}

// Builder returns the engine's statement builder.
func (e *Engine) Builder() sqlbuilder.Builder { return e.bld }

// Close closes the underlying driver.
func (e *Engine) Close() error { return e.drv.Close() }

func (e *Engine) execErr(op string, err error) error {
	return fabrix.NewExecutionError(e.drv.Dialect(), op, err)
}

// args never passes a nil slice to the driver layer.
func stmtArgs(s sqlbuilder.Statement) []any {
	if s.Args == nil {
		return []any{}
	}
	return s.Args
}

// Exec runs one statement outside a transaction and discards the result.
func (e *Engine) Exec(ctx context.Context, stmt sqlbuilder.Statement) error {
	if err := e.drv.Exec(ctx, stmt.Query, stmtArgs(stmt), nil); err != nil {
		return e.execErr("exec", err)
	}
	return nil
}

// transaction runs a statement batch atomically: begin, execute in
// order, commit only when every statement succeeds. On any failure the
// transaction is rolled back and the first failure is surfaced; rows
// touched by earlier statements in the batch are discarded with it.
func (e *Engine) transaction(ctx context.Context, op string, stmts []sqlbuilder.Statement) error {
	tx, err := e.drv.Tx(ctx)
	if err != nil {
		return e.execErr(op, err)
	}
	for _, s := range stmts {
		if err := tx.Exec(ctx, s.Query, stmtArgs(s), nil); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				e.log.Error("rollback failed", "dialect", e.drv.Dialect(), "op", op, "error", rerr)
			}
			return e.execErr(op, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return e.execErr(op, err)
	}
	return nil
}

// decodeCell maps one driver-native cell into a dataframe value.
// Unrecognized driver types decode through display formatting so a
// fetched row is never dropped.
func decodeCell(v any) df.Value {
	switch v := v.(type) {
	case nil:
		return df.Null()
	case bool:
		return df.Bool(v)
	case int64:
		return df.I64(v)
	case uint64:
		return df.U64(v)
	case float64:
		return df.F64(v)
	case []byte:
		return df.Str(string(v))
	case string:
		return df.Str(v)
	case time.Time:
		return df.DateTime(v)
	default:
		return df.Str(fmt.Sprint(v))
	}
}

// scanFrame drains a row set into a dataframe. Column names are
// captured once from the result-set metadata; each column's logical
// type is inferred from its first non-null cell and defaults to string
// when the column is all null. A column whose cells disagree on type
// (SQLite affinities allow this) is demoted to string via display
// formatting, so fetched rows are never dropped. Fetched columns are
// always nullable.
func scanFrame(rows *fsql.Rows) (*df.DataFrame, error) {
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var data [][]df.Value
	for rows.Next() {
		cells := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]df.Value, len(names))
		for i, c := range cells {
			row[i] = decodeCell(c)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cols := make([]df.Column, len(names))
	for j, name := range names {
		t := df.TypeString
		var seen, mixed bool
		for _, row := range data {
			c := row[j]
			if c.IsNull() {
				continue
			}
			if !seen {
				t, seen = c.Type(), true
				continue
			}
			if c.Type() != t {
				mixed = true
				break
			}
		}
		if mixed {
			t = df.TypeString
			for _, row := range data {
				if !row[j].IsNull() {
					row[j] = df.Str(row[j].String())
				}
			}
		}
		cols[j] = df.NewNullableColumn(name, t)
	}
	d, err := df.NewDataFrame(cols...)
	if err != nil {
		return nil, err
	}
	for _, row := range data {
		if err := d.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// fetch runs a query and scans the full result set into a dataframe.
func (e *Engine) fetch(ctx context.Context, query string, args []any) (*df.DataFrame, error) {
	if args == nil {
		args = []any{}
	}
	var rows fsql.Rows
	if err := e.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, e.execErr("fetch", err)
	}
	return scanFrame(&rows)
}

// RawFetch runs caller-written SQL and returns the result as a frame.
func (e *Engine) RawFetch(ctx context.Context, query string) (*df.DataFrame, error) {
	return e.fetch(ctx, query, nil)
}

// Select fetches the named columns with an optional filter.
func (e *Engine) Select(ctx context.Context, table string, columns []string, filter []sqlbuilder.Expression) (*df.DataFrame, error) {
	stmt, err := e.bld.Select(table, columns, filter)
	if err != nil {
		return nil, err
	}
	return e.fetch(ctx, stmt.Query, stmt.Args)
}

// HasTable reports whether the table exists.
func (e *Engine) HasTable(ctx context.Context, table string) (bool, error) {
	query, err := e.bld.CheckTable(table)
	if err != nil {
		return false, err
	}
	d, err := e.fetch(ctx, query, nil)
	if err != nil {
		return false, err
	}
	if d.Height() == 0 || d.Width() == 0 {
		return false, nil
	}
	return truthy(d.At(0, 0)), nil
}

func truthy(v df.Value) bool {
	switch v.Type() {
	case df.TypeBool:
		return v.Bool()
	case df.TypeI8, df.TypeI16, df.TypeI32, df.TypeI64:
		return v.Int() != 0
	case df.TypeU8, df.TypeU16, df.TypeU32, df.TypeU64:
		return v.Uint() != 0
	case df.TypeString:
		return v.Str() == "1" || v.Str() == "t" || v.Str() == "true"
	default:
		return false
	}
}

// TableSchema introspects the table's columns: name, logical type and
// nullability, in declaration order where the dialect preserves it.
func (e *Engine) TableSchema(ctx context.Context, table string) ([]df.Column, error) {
	query, err := e.bld.CheckTableSchema(table)
	if err != nil {
		return nil, err
	}
	d, err := e.fetch(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	if d.Width() < 3 {
		return nil, fabrix.NewSchemaMismatchError(table, "introspection row")
	}
	cols := make([]df.Column, 0, d.Height())
	for i := 0; i < d.Height(); i++ {
		name := d.At(i, 0).Str()
		cols = append(cols, df.Column{
			Name:     name,
			Type:     e.bld.DTypeFromSQL(d.At(i, 1).Str()),
			Nullable: truthy(d.At(i, 2)),
		})
	}
	return cols, nil
}

// ListTables returns the names of all tables in the current database.
func (e *Engine) ListTables(ctx context.Context) ([]string, error) {
	d, err := e.fetch(ctx, e.bld.ListTables(), nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, d.Height())
	for i := 0; i < d.Height(); i++ {
		names = append(names, d.At(i, 0).Str())
	}
	return names, nil
}

// PrimaryKey resolves the table's primary-key column name. It returns
// the empty string when the table has none.
func (e *Engine) PrimaryKey(ctx context.Context, table string) (string, error) {
	query, err := e.bld.PrimaryKey(table)
	if err != nil {
		return "", err
	}
	d, err := e.fetch(ctx, query, nil)
	if err != nil {
		return "", err
	}
	if d.Height() == 0 {
		return "", nil
	}
	return d.At(0, 0).Str(), nil
}

// CreateTable creates a table from column descriptors.
func (e *Engine) CreateTable(ctx context.Context, table string, cols []df.Column, idx *sqlbuilder.IndexOption) error {
	query, err := e.bld.CreateTable(table, cols, idx)
	if err != nil {
		return err
	}
	return e.Exec(ctx, sqlbuilder.Statement{Query: query})
}

// DeleteTable drops the table if it exists.
func (e *Engine) DeleteTable(ctx context.Context, table string) error {
	query, err := e.bld.DeleteTable(table)
	if err != nil {
		return err
	}
	return e.Exec(ctx, sqlbuilder.Statement{Query: query})
}

// Insert appends the frame's rows as one multi-row INSERT.
func (e *Engine) Insert(ctx context.Context, table string, d *df.DataFrame) error {
	stmt, err := e.bld.Insert(table, d)
	if err != nil {
		return err
	}
	return e.Exec(ctx, stmt)
}

// Update rewrites the frame's rows keyed by the index column, one
// UPDATE per row inside a single transaction. Either every row lands
// or none does.
func (e *Engine) Update(ctx context.Context, table string, d *df.DataFrame, idx *sqlbuilder.IndexOption) error {
	stmts, err := e.bld.Update(table, d, idx)
	if err != nil {
		return err
	}
	return e.transaction(ctx, "update", stmts)
}

// Save persists the frame under the given strategy. Replace and Append
// run their statement batch in one transaction; Upsert and Fail surface
// their unsupported-strategy error before any I/O.
func (e *Engine) Save(ctx context.Context, table string, d *df.DataFrame, strategy sqlbuilder.SaveStrategy, idx *sqlbuilder.IndexOption) error {
	stmts, err := e.bld.Save(table, d, strategy, idx)
	if err != nil {
		return err
	}
	return e.transaction(ctx, "save "+strategy.String(), stmts)
}

// Delete removes the rows matching the filter. A nil filter removes all
// rows.
func (e *Engine) Delete(ctx context.Context, table string, filter []sqlbuilder.Expression) error {
	stmt, err := e.bld.Delete(table, filter)
	if err != nil {
		return err
	}
	return e.Exec(ctx, stmt)
}
