package sqlbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jacobbishopxy/fabrix"
	"github.com/Jacobbishopxy/fabrix/df"
)

func TestCheckTable(t *testing.T) {
	tests := []struct {
		dialect  string
		expected string
	}{
		{
			"mysql",
			"SELECT EXISTS(SELECT 1 FROM information_schema.TABLES WHERE TABLE_NAME = 'people')",
		},
		{
			"postgres",
			"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = 'people')::int",
		},
		{
			"sqlite",
			"SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'people')",
		},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			query, err := New(tt.dialect).CheckTable("people")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
		})
	}

	t.Run("bad_identifier", func(t *testing.T) {
		_, err := New("sqlite").CheckTable("people'; --")
		assert.Error(t, err)
	})
}

func TestCheckTableSchema(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		query, err := New("mysql").CheckTableSchema("people")
		require.NoError(t, err)
		assert.Contains(t, query, "information_schema.columns")
		assert.Contains(t, query, "ORDER BY ordinal_position")
	})
	t.Run("postgres_uses_udt_name", func(t *testing.T) {
		query, err := New("postgres").CheckTableSchema("people")
		require.NoError(t, err)
		assert.Contains(t, query, "udt_name")
	})
	t.Run("sqlite", func(t *testing.T) {
		query, err := New("sqlite").CheckTableSchema("people")
		require.NoError(t, err)
		assert.Contains(t, query, "PRAGMA_TABLE_INFO('people')")
	})
}

func TestListTables(t *testing.T) {
	assert.Equal(t, "SHOW TABLES", New("mysql").ListTables())
	assert.Contains(t, New("postgres").ListTables(), "table_schema = 'public'")
	assert.Contains(t, New("sqlite").ListTables(), "sqlite_master")
}

func TestPrimaryKey(t *testing.T) {
	for _, tt := range []struct {
		dialect  string
		fragment string
	}{
		{"mysql", "COLUMN_KEY = 'PRI'"},
		{"postgres", "constraint_type = 'PRIMARY KEY'"},
		{"sqlite", "pragma_table_info('people')"},
	} {
		query, err := New(tt.dialect).PrimaryKey("people")
		require.NoError(t, err, tt.dialect)
		assert.Contains(t, query, tt.fragment, tt.dialect)
	}
}

func TestCreateTable(t *testing.T) {
	cols := []df.Column{
		df.NewColumn("name", df.TypeString),
		df.NewNullableColumn("age", df.TypeI32),
	}

	tests := []struct {
		dialect  string
		idx      *IndexOption
		expected string
	}{
		{
			"sqlite", nil,
			`CREATE TABLE "people" ("name" TEXT NOT NULL, "age" INTEGER)`,
		},
		{
			"mysql", NewIndexOption("id", "int"),
			"CREATE TABLE `people` (`id` INT AUTO_INCREMENT PRIMARY KEY, `name` VARCHAR(255) NOT NULL, `age` INT)",
		},
		{
			"postgres", NewIndexOption("id", "bigint"),
			`CREATE TABLE "people" ("id" BIGSERIAL PRIMARY KEY, "name" TEXT NOT NULL, "age" INTEGER)`,
		},
		{
			"postgres", NewIndexOption("id", "uuid"),
			`CREATE TABLE "people" ("id" UUID PRIMARY KEY, "name" TEXT NOT NULL, "age" INTEGER)`,
		},
		{
			"mysql", NewIndexOption("id", "uuid"),
			"CREATE TABLE `people` (`id` VARCHAR(36) PRIMARY KEY, `name` VARCHAR(255) NOT NULL, `age` INT)",
		},
		{
			"sqlite", NewIndexOption("id", "uuid"),
			`CREATE TABLE "people" ("id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "age" INTEGER)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			query, err := New(tt.dialect).CreateTable("people", cols, tt.idx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, query)
		})
	}
}

func TestDeleteTable(t *testing.T) {
	query, err := New("mysql").DeleteTable("people")
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE IF EXISTS `people`", query)
}

func TestSQLTypeName(t *testing.T) {
	tests := []struct {
		dialect  string
		dtype    df.DType
		expected string
	}{
		{"mysql", df.TypeU8, "TINYINT UNSIGNED"},
		{"mysql", df.TypeString, "VARCHAR(255)"},
		{"postgres", df.TypeU64, "NUMERIC(20)"},
		{"postgres", df.TypeF64, "DOUBLE PRECISION"},
		{"postgres", df.TypeDateTime, "TIMESTAMP"},
		{"sqlite", df.TypeI64, "INTEGER"},
		{"sqlite", df.TypeF32, "REAL"},
	}
	for _, tt := range tests {
		name, err := New(tt.dialect).SQLTypeName(tt.dtype)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, name)
	}

	t.Run("null_has_no_ddl_type", func(t *testing.T) {
		_, err := New("mysql").SQLTypeName(df.TypeNull)
		require.Error(t, err)
		assert.True(t, fabrix.IsUnsupported(err))
	})
}

func TestDTypeFromSQL(t *testing.T) {
	tests := []struct {
		dialect  string
		name     string
		expected df.DType
	}{
		{"mysql", "varchar(255)", df.TypeString},
		{"mysql", "BIGINT", df.TypeI64},
		{"postgres", "int8", df.TypeI64},
		{"postgres", "timestamptz", df.TypeDateTime},
		{"postgres", "uuid", df.TypeString},
		{"sqlite", "INTEGER", df.TypeI64},
		{"sqlite", "no_such_type", df.TypeString},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, New(tt.dialect).DTypeFromSQL(tt.name), tt.name)
	}
}
