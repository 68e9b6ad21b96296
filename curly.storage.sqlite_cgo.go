//go:build cgo_sqlite

package curly

import (
	_ "github.com/mattn/go-sqlite3" // cgo SQLite driver
)

const sqliteDriverName = "sqlite3"
