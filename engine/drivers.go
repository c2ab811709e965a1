package engine

import (
	// Database drivers registered for the three supported dialects. The
	// registered driver names match the dialect constants, so Open can
	// pass the dialect straight to database/sql.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	fsql "github.com/Jacobbishopxy/fabrix/dialect/sql"
)

// Open opens a driver for the connection info without pinging it. Most
// callers go through Loader.Connect, which verifies the connection.
func Open(info ConnInfo) (*fsql.Driver, error) {
	return fsql.Open(info.Dialect, info.DSN())
}
