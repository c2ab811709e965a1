package sqlbuilder

import (
	"strings"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
	"github.com/Jacobbishopxy/fabrix/dialect"
)

// Per-dialect mapping between logical dataframe types and SQL type
// names. The forward direction feeds CREATE TABLE synthesis; the
// reverse direction decodes schema introspection rows.

var mysqlTypeNames = map[df.DType]string{
	df.TypeBool:     "BOOLEAN",
	df.TypeU8:       "TINYINT UNSIGNED",
	df.TypeU16:      "SMALLINT UNSIGNED",
	df.TypeU32:      "INT UNSIGNED",
	df.TypeU64:      "BIGINT UNSIGNED",
	df.TypeI8:       "TINYINT",
	df.TypeI16:      "SMALLINT",
	df.TypeI32:      "INT",
	df.TypeI64:      "BIGINT",
	df.TypeF32:      "FLOAT",
	df.TypeF64:      "DOUBLE",
	df.TypeString:   "VARCHAR(255)",
	df.TypeDate:     "DATE",
	df.TypeTime:     "TIME",
	df.TypeDateTime: "DATETIME",
}

var postgresTypeNames = map[df.DType]string{
	df.TypeBool:     "BOOLEAN",
	df.TypeU8:       "SMALLINT",
	df.TypeU16:      "INTEGER",
	df.TypeU32:      "BIGINT",
	df.TypeU64:      "NUMERIC(20)",
	df.TypeI8:       "SMALLINT",
	df.TypeI16:      "SMALLINT",
	df.TypeI32:      "INTEGER",
	df.TypeI64:      "BIGINT",
	df.TypeF32:      "REAL",
	df.TypeF64:      "DOUBLE PRECISION",
	df.TypeString:   "TEXT",
	df.TypeDate:     "DATE",
	df.TypeTime:     "TIME",
	df.TypeDateTime: "TIMESTAMP",
}

var sqliteTypeNames = map[df.DType]string{
	df.TypeBool:     "BOOLEAN",
	df.TypeU8:       "INTEGER",
	df.TypeU16:      "INTEGER",
	df.TypeU32:      "INTEGER",
	df.TypeU64:      "INTEGER",
	df.TypeI8:       "INTEGER",
	df.TypeI16:      "INTEGER",
	df.TypeI32:      "INTEGER",
	df.TypeI64:      "INTEGER",
	df.TypeF32:      "REAL",
	df.TypeF64:      "REAL",
	df.TypeString:   "TEXT",
	df.TypeDate:     "DATE",
	df.TypeTime:     "TIME",
	df.TypeDateTime: "DATETIME",
}

// SQLTypeName returns the dialect's DDL type name for a logical type.
func (b Builder) SQLTypeName(t df.DType) (string, error) {
	var table map[df.DType]string
	switch b.dialect {
	case dialect.MySQL:
		table = mysqlTypeNames
	case dialect.Postgres:
		table = postgresTypeNames
	default:
		table = sqliteTypeNames
	}
	name, ok := table[t]
	if !ok {
		return "", fabrix.NewUnsupportedError("DDL type for " + t.String())
	}
	return name, nil
}

var mysqlDTypes = map[string]df.DType{
	"tinyint":   df.TypeI8,
	"smallint":  df.TypeI16,
	"mediumint": df.TypeI32,
	"int":       df.TypeI32,
	"integer":   df.TypeI32,
	"bigint":    df.TypeI64,
	"float":     df.TypeF32,
	"double":    df.TypeF64,
	"decimal":   df.TypeF64,
	"char":      df.TypeString,
	"varchar":   df.TypeString,
	"text":      df.TypeString,
	"longtext":  df.TypeString,
	"date":      df.TypeDate,
	"time":      df.TypeTime,
	"datetime":  df.TypeDateTime,
	"timestamp": df.TypeDateTime,
}

var postgresDTypes = map[string]df.DType{
	"bool":        df.TypeBool,
	"boolean":     df.TypeBool,
	"int2":        df.TypeI16,
	"int4":        df.TypeI32,
	"int8":        df.TypeI64,
	"smallint":    df.TypeI16,
	"integer":     df.TypeI32,
	"bigint":      df.TypeI64,
	"float4":      df.TypeF32,
	"float8":      df.TypeF64,
	"real":        df.TypeF32,
	"numeric":     df.TypeF64,
	"bpchar":      df.TypeString,
	"varchar":     df.TypeString,
	"text":        df.TypeString,
	"uuid":        df.TypeString,
	"date":        df.TypeDate,
	"time":        df.TypeTime,
	"timestamp":   df.TypeDateTime,
	"timestamptz": df.TypeDateTime,
}

var sqliteDTypes = map[string]df.DType{
	"integer":  df.TypeI64,
	"int":      df.TypeI64,
	"bigint":   df.TypeI64,
	"real":     df.TypeF64,
	"numeric":  df.TypeF64,
	"double":   df.TypeF64,
	"boolean":  df.TypeBool,
	"text":     df.TypeString,
	"varchar":  df.TypeString,
	"blob":     df.TypeString,
	"date":     df.TypeDate,
	"time":     df.TypeTime,
	"datetime": df.TypeDateTime,
}

// DTypeFromSQL resolves an introspected SQL type name into a logical
// type. Parenthesized precision suffixes are ignored; unrecognized
// names decode as strings so fetched rows are never dropped.
func (b Builder) DTypeFromSQL(name string) df.DType {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i > 0 {
		name = name[:i]
	}
	var table map[string]df.DType
	switch b.dialect {
	case dialect.MySQL:
		table = mysqlDTypes
	case dialect.Postgres:
		table = postgresDTypes
	default:
		table = sqliteDTypes
	}
	if t, ok := table[name]; ok {
		return t
	}
	return df.TypeString
}
