package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mysql_full", "mysql", MySQL},
		{"mysql_alias", "m", MySQL},
		{"mysql_upper", "MySQL", MySQL},
		{"postgres_full", "postgres", Postgres},
		{"postgres_long", "postgresql", Postgres},
		{"postgres_alias", "p", Postgres},
		{"postgres_upper", "P", Postgres},
		{"sqlite", "sqlite", SQLite},
		{"unknown_falls_back", "oracle", SQLite},
		{"empty_falls_back", "", SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromString(tt.input))
		})
	}
}
