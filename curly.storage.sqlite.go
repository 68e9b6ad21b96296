package curly

// SQLiteStoreDriver is the driver for creating SQLite-backed stores.
type SQLiteStoreDriver struct{}

func init() {
	RegisterStoreDriver(StorageDriverNameSQLite, &SQLiteStoreDriver{})
}

// Open creates a SQLite store. The connection string is a database file
// path or DSN, e.g. "file:templates.db" or ":memory:".
func (d *SQLiteStoreDriver) Open(connectionString string) (Store, error) {
	config := DefaultSQLConfig()
	config.ConnectionString = connectionString
	return NewSQLiteStore(config)
}

// NewSQLiteStore opens a SQLite database and migrates the templates table.
// The pool holds a single connection that never expires, so an in-memory
// database lives as long as the store.
// The pure-Go driver is used unless built with the cgo_sqlite tag.
func NewSQLiteStore(config SQLConfig) (*SQLStore, error) {
	config.MaxOpenConns = 1
	config.MaxIdleConns = 1
	config.ConnMaxLifetime = -1
	return openSQLStore(sqlDialect{driverName: sqliteDriverName}, config)
}
