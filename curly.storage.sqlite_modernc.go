//go:build !cgo_sqlite

package curly

import (
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

const sqliteDriverName = "sqlite"
