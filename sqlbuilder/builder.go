// Package sqlbuilder synthesizes dialect-specific SQL from dataframe
// schemas and values. All dialect branching lives here and in the
// dialect package; the engine only executes what this package emits.
//
// Values never enter statement text: DML statements carry placeholders
// plus a driver-ready argument list, and the DDL/introspection templates
// substitute validated identifiers only.
package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
	"github.com/Jacobbishopxy/fabrix/dialect"
	fsql "github.com/Jacobbishopxy/fabrix/dialect/sql"
)

// Statement is one synthesized SQL statement: query text with
// placeholders and the matching argument list.
type Statement struct {
	Query string
	Args  []any
}

// Builder synthesizes SQL for one dialect. The dialect is fixed at
// construction and never mutates.
type Builder struct {
	dialect string
}

// New returns a Builder for the given dialect token. Tokens are
// resolved with dialect.FromString, so aliases like "m" or "p" work.
func New(d string) Builder {
	return Builder{dialect: dialect.FromString(d)}
}

// Dialect returns the builder's dialect name.
func (b Builder) Dialect() string { return b.dialect }

// quote quotes an identifier in the dialect's style.
func (b Builder) quote(ident string) string {
	if b.dialect == dialect.MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// param renders the n-th (1-based) statement placeholder.
func (b Builder) param(n int) string {
	if b.dialect == dialect.Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// params renders count placeholders starting at 1-based position start.
func (b Builder) params(start, count int) string {
	ps := make([]string, count)
	for i := range ps {
		ps[i] = b.param(start + i)
	}
	return strings.Join(ps, ", ")
}

// checkIdent validates a caller-supplied identifier before it is
// substituted into statement text.
func checkIdent(name string) error {
	if !fsql.ValidIdentifier(name) {
		return fmt.Errorf("sqlbuilder: invalid identifier %q", name)
	}
	return nil
}

// IndexType is the kind tag of a generated primary-key column.
type IndexType uint8

// Supported index kinds.
const (
	IndexInt IndexType = iota
	IndexBigInt
	IndexUUID
)

// String returns the lower-case name of the index kind.
func (t IndexType) String() string {
	switch t {
	case IndexBigInt:
		return "bigint"
	case IndexUUID:
		return "uuid"
	default:
		return "int"
	}
}

// ParseIndexType resolves an index-kind token case-insensitively.
// "u"/"uuid" map to IndexUUID, "b"/"bigint" to IndexBigInt, anything
// else to IndexInt.
func ParseIndexType(v string) IndexType {
	switch strings.ToLower(v) {
	case "uuid", "u":
		return IndexUUID
	case "bigint", "b":
		return IndexBigInt
	default:
		return IndexInt
	}
}

// IndexOption names the primary-key column and its kind.
type IndexOption struct {
	Name string
	Type IndexType
}

// NewIndexOption returns an IndexOption with the kind parsed from a token.
func NewIndexOption(name, indexType string) *IndexOption {
	return &IndexOption{Name: name, Type: ParseIndexType(indexType)}
}

// IndexOptionFromSeries derives an index descriptor from a series.
// Integer families map to IndexInt or IndexBigInt by width; string maps
// to IndexUUID by convention. Anything else is a schema mismatch.
func IndexOptionFromSeries(s *df.Series) (*IndexOption, error) {
	var it IndexType
	switch s.Type() {
	case df.TypeU8, df.TypeU16, df.TypeU32, df.TypeI8, df.TypeI16, df.TypeI32:
		it = IndexInt
	case df.TypeU64, df.TypeI64:
		it = IndexBigInt
	case df.TypeString:
		// Strings are assumed to hold UUID text.
		it = IndexUUID
	default:
		return nil, fabrix.NewSchemaMismatchError(s.Name(), s.Type().String())
	}
	return &IndexOption{Name: s.Name(), Type: it}, nil
}

// SaveStrategy governs how a write behaves when the target table or
// conflicting rows already exist.
type SaveStrategy uint8

// Supported strategies. Upsert and Fail are recognized but their
// synthesis is not implemented yet.
const (
	Replace SaveStrategy = iota
	Append
	Upsert
	Fail
)

// String returns the lower-case name of the strategy.
func (s SaveStrategy) String() string {
	switch s {
	case Append:
		return "append"
	case Upsert:
		return "upsert"
	case Fail:
		return "fail"
	default:
		return "replace"
	}
}
