package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/Jacobbishopxy/fabrix/df"
	"github.com/Jacobbishopxy/fabrix/dialect"
)

// indexColumnDef renders the generated primary-key column for an index
// option: an auto-incrementing integer family or a UUID stored as text.
func (b Builder) indexColumnDef(idx *IndexOption) (string, error) {
	if err := checkIdent(idx.Name); err != nil {
		return "", err
	}
	name := b.quote(idx.Name)
	switch idx.Type {
	case IndexUUID:
		switch b.dialect {
		case dialect.Postgres:
			return name + " UUID PRIMARY KEY", nil
		case dialect.MySQL:
			return name + " VARCHAR(36) PRIMARY KEY", nil
		default:
			return name + " TEXT PRIMARY KEY", nil
		}
	case IndexBigInt:
		switch b.dialect {
		case dialect.Postgres:
			return name + " BIGSERIAL PRIMARY KEY", nil
		case dialect.MySQL:
			return name + " BIGINT AUTO_INCREMENT PRIMARY KEY", nil
		default:
			return name + " INTEGER PRIMARY KEY AUTOINCREMENT", nil
		}
	default:
		switch b.dialect {
		case dialect.Postgres:
			return name + " SERIAL PRIMARY KEY", nil
		case dialect.MySQL:
			return name + " INT AUTO_INCREMENT PRIMARY KEY", nil
		default:
			return name + " INTEGER PRIMARY KEY AUTOINCREMENT", nil
		}
	}
}

// CreateTable synthesizes a CREATE TABLE statement from column
// descriptors. When an index option is present, the typed primary-key
// column is emitted ahead of the declared columns.
func (b Builder) CreateTable(table string, cols []df.Column, idx *IndexOption) (string, error) {
	if err := checkIdent(table); err != nil {
		return "", err
	}
	defs := make([]string, 0, len(cols)+1)
	if idx != nil {
		def, err := b.indexColumnDef(idx)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}
	for _, c := range cols {
		if err := checkIdent(c.Name); err != nil {
			return "", err
		}
		typ, err := b.SQLTypeName(c.Type)
		if err != nil {
			return "", err
		}
		def := b.quote(c.Name) + " " + typ
		if !c.Nullable {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", b.quote(table), strings.Join(defs, ", ")), nil
}

// DeleteTable synthesizes a DROP TABLE statement. IF EXISTS keeps the
// Replace save strategy valid when the table is absent.
func (b Builder) DeleteTable(table string) (string, error) {
	if err := checkIdent(table); err != nil {
		return "", err
	}
	return "DROP TABLE IF EXISTS " + b.quote(table), nil
}
