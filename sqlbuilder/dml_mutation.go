package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
)

// Insert synthesizes one multi-row INSERT for the whole frame. Every
// cell is bridged through the neutral representation; the first
// unbridgeable cell aborts the statement, so no partial row is emitted.
func (b Builder) Insert(table string, d *df.DataFrame) (Statement, error) {
	if err := checkIdent(table); err != nil {
		return Statement{}, err
	}
	if d.Height() == 0 {
		return Statement{}, fabrix.ErrEmptyContent
	}
	cols := d.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		if err := checkIdent(c.Name); err != nil {
			return Statement{}, err
		}
		names[i] = b.quote(c.Name)
	}

	var (
		rows = make([]string, 0, d.Height())
		args = make([]any, 0, d.Height()*len(cols))
	)
	for i := 0; i < d.Height(); i++ {
		row := d.Row(i)
		for j, cell := range row {
			a, err := bridgeCell(cell, cols[j])
			if err != nil {
				return Statement{}, err
			}
			args = append(args, a)
		}
		rows = append(rows, "("+b.params(i*len(cols)+1, len(cols))+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		b.quote(table), strings.Join(names, ", "), strings.Join(rows, ", "))
	return Statement{Query: query, Args: args}, nil
}

// Update synthesizes one UPDATE per row, keyed by the index column's
// bridged value. The statements are returned as a batch because the
// engine must run them inside a single transaction.
func (b Builder) Update(table string, d *df.DataFrame, idx *IndexOption) ([]Statement, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}
	if d.Height() == 0 {
		return nil, fabrix.ErrEmptyContent
	}
	if idx == nil {
		return nil, fmt.Errorf("sqlbuilder: update requires an index option")
	}
	keyPos := d.ColumnIndex(idx.Name)
	if keyPos < 0 {
		return nil, fabrix.NewSchemaMismatchError(idx.Name, "absent")
	}
	cols := d.Columns()
	for _, c := range cols {
		if err := checkIdent(c.Name); err != nil {
			return nil, err
		}
	}

	stmts := make([]Statement, 0, d.Height())
	for i := 0; i < d.Height(); i++ {
		var (
			sets []string
			args []any
		)
		row := d.Row(i)
		for j, cell := range row {
			if j == keyPos {
				continue
			}
			a, err := bridgeCell(cell, cols[j])
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			sets = append(sets, fmt.Sprintf("%s = %s", b.quote(cols[j].Name), b.param(len(args))))
		}
		key, err := bridgeCell(row[keyPos], cols[keyPos])
		if err != nil {
			return nil, err
		}
		args = append(args, key)
		query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
			b.quote(table), strings.Join(sets, ", "), b.quote(idx.Name), b.param(len(args)))
		stmts = append(stmts, Statement{Query: query, Args: args})
	}
	return stmts, nil
}

// Delete synthesizes a DELETE with an optional filter. An empty filter
// deletes all rows.
func (b Builder) Delete(table string, filter []Expression) (Statement, error) {
	if err := checkIdent(table); err != nil {
		return Statement{}, err
	}
	query := "DELETE FROM " + b.quote(table)
	cond, err := b.Compile(filter, 1)
	if err != nil {
		return Statement{}, err
	}
	if !cond.Empty() {
		query += " WHERE " + cond.Pred
	}
	return Statement{Query: query, Args: cond.Args}, nil
}

// Save dispatches on the strategy and returns the statement batch the
// engine runs in one transaction.
//
// Replace drops the table, recreates it from the frame's schema and
// inserts everything. Append inserts into the existing table. Upsert
// and Fail are recognized but not implemented; they surface an error
// rather than silently falling back to Append.
func (b Builder) Save(table string, d *df.DataFrame, strategy SaveStrategy, idx *IndexOption) ([]Statement, error) {
	switch strategy {
	case Replace:
		drop, err := b.DeleteTable(table)
		if err != nil {
			return nil, err
		}
		create, err := b.CreateTable(table, d.Columns(), idx)
		if err != nil {
			return nil, err
		}
		insert, err := b.Insert(table, d)
		if err != nil {
			return nil, err
		}
		return []Statement{{Query: drop}, {Query: create}, insert}, nil
	case Append:
		insert, err := b.Insert(table, d)
		if err != nil {
			return nil, err
		}
		return []Statement{insert}, nil
	case Upsert, Fail:
		return nil, fabrix.NewUnsupportedError("save strategy " + strategy.String())
	default:
		return nil, fmt.Errorf("sqlbuilder: unknown save strategy %d", strategy)
	}
}
