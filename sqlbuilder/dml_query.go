package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
)

// Select synthesizes a SELECT over the named columns with an optional
// filter. An empty column list selects *; an empty filter matches all
// rows.
func (b Builder) Select(table string, columns []string, filter []Expression) (Statement, error) {
	if err := checkIdent(table); err != nil {
		return Statement{}, err
	}
	cols := "*"
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			if err := checkIdent(c); err != nil {
				return Statement{}, err
			}
			quoted[i] = b.quote(c)
		}
		cols = strings.Join(quoted, ", ")
	}
	query := fmt.Sprintf("SELECT %s FROM %s", cols, b.quote(table))

	cond, err := b.Compile(filter, 1)
	if err != nil {
		return Statement{}, err
	}
	if !cond.Empty() {
		query += " WHERE " + cond.Pred
	}
	return Statement{Query: query, Args: cond.Args}, nil
}

// SelectExistIds synthesizes the SELECT that probes which of the given
// index values already exist in the table. It feeds the upsert/fail
// decision before those strategies are implemented.
func (b Builder) SelectExistIds(table string, index *df.Series) (Statement, error) {
	if err := checkIdent(table); err != nil {
		return Statement{}, err
	}
	if err := checkIdent(index.Name()); err != nil {
		return Statement{}, err
	}
	if index.Len() == 0 {
		return Statement{}, fabrix.ErrEmptyContent
	}
	args := make([]any, 0, index.Len())
	for i := 0; i < index.Len(); i++ {
		a, err := bridgeLiteral(index.Get(i))
		if err != nil {
			return Statement{}, err
		}
		args = append(args, a)
	}
	col := b.quote(index.Name())
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IN (%s)",
		col, b.quote(table), col, b.params(1, len(args)))
	return Statement{Query: query, Args: args}, nil
}
