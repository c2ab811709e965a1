package sqlbuilder

import (
	"fmt"

	"github.com/Jacobbishopxy/fabrix/dialect"
)

// The introspection registry: pure functions returning SQL text with a
// single identifier substitution point. Identifiers are validated before
// substitution; values never enter these templates.

// CheckTable returns the dialect's table-existence query. Against a
// live database it yields a single truthy cell when the table exists.
func (b Builder) CheckTable(table string) (string, error) {
	if err := checkIdent(table); err != nil {
		return "", err
	}
	switch b.dialect {
	case dialect.Postgres:
		return fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = '%s')::int",
			table,
		), nil
	case dialect.MySQL:
		return fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM information_schema.TABLES WHERE TABLE_NAME = '%s')",
			table,
		), nil
	default:
		return fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = '%s')",
			table,
		), nil
	}
}

// CheckTableSchema returns the dialect's column-introspection query.
// Each result row is (column name, type name, nullable as 1/0), in
// declaration order where the dialect preserves it.
func (b Builder) CheckTableSchema(table string) (string, error) {
	if err := checkIdent(table); err != nil {
		return "", err
	}
	switch b.dialect {
	case dialect.MySQL:
		return fmt.Sprintf(
			"SELECT column_name, data_type, "+
				"CASE WHEN is_nullable = 'YES' THEN 1 ELSE 0 END AS is_nullable "+
				"FROM information_schema.columns WHERE table_name = '%s' "+
				"ORDER BY ordinal_position",
			table,
		), nil
	case dialect.Postgres:
		return fmt.Sprintf(
			"SELECT column_name, udt_name, "+
				"CASE WHEN is_nullable = 'YES' THEN 1 ELSE 0 END AS is_nullable "+
				"FROM information_schema.columns WHERE table_name = '%s' "+
				"ORDER BY ordinal_position",
			table,
		), nil
	default:
		return fmt.Sprintf(
			"SELECT name, type, CASE WHEN `notnull` = 0 THEN 1 ELSE 0 END AS is_nullable "+
				"FROM PRAGMA_TABLE_INFO('%s')",
			table,
		), nil
	}
}

// ListTables returns the dialect's query listing all tables in the
// current database.
func (b Builder) ListTables() string {
	switch b.dialect {
	case dialect.MySQL:
		return "SHOW TABLES"
	case dialect.Postgres:
		return "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public'"
	default:
		return "SELECT name FROM sqlite_master WHERE type = 'table'"
	}
}

// PrimaryKey returns the dialect's query resolving a table's primary
// key column name.
func (b Builder) PrimaryKey(table string) (string, error) {
	if err := checkIdent(table); err != nil {
		return "", err
	}
	switch b.dialect {
	case dialect.MySQL:
		return fmt.Sprintf(
			"SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS "+
				"WHERE TABLE_NAME = '%s' AND COLUMN_KEY = 'PRI'",
			table,
		), nil
	case dialect.Postgres:
		return fmt.Sprintf(
			"SELECT c.column_name FROM information_schema.key_column_usage AS c "+
				"LEFT JOIN information_schema.table_constraints AS t "+
				"ON t.constraint_name = c.constraint_name "+
				"WHERE t.table_name = '%s' AND t.constraint_type = 'PRIMARY KEY'",
			table,
		), nil
	default:
		return fmt.Sprintf(
			"SELECT l.name FROM pragma_table_info('%s') AS l WHERE l.pk = 1",
			table,
		), nil
	}
}
