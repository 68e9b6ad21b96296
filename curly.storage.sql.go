package curly

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SQLConfig configures the SQL-backed stores.
type SQLConfig struct {
	// ConnectionString is the driver-specific DSN.
	ConnectionString string

	// TableName is the table holding templates. The migrations table is
	// named after it with a "_migrations" suffix.
	// Default: "curly_templates"
	TableName string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10 (always 1 for SQLite)
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 2
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime.
	// Default: 5 minutes
	ConnMaxLifetime time.Duration

	// QueryTimeout bounds every statement the store issues.
	// Default: 30 seconds
	QueryTimeout time.Duration

	// Logger receives migration and write events.
	// Default: nil (no logging)
	Logger *zap.Logger
}

// DefaultSQLConfig returns a configuration with sensible defaults.
func DefaultSQLConfig() SQLConfig {
	return SQLConfig{
		TableName:       SQLDefaultTableName,
		MaxOpenConns:    SQLDefaultMaxOpenConns,
		MaxIdleConns:    SQLDefaultMaxIdleConns,
		ConnMaxLifetime: SQLDefaultConnMaxLifetime,
		QueryTimeout:    SQLDefaultQueryTimeout,
	}
}

func (c *SQLConfig) applyDefaults() {
	d := DefaultSQLConfig()
	if c.TableName == "" {
		c.TableName = d.TableName
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = d.MaxOpenConns
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = d.MaxIdleConns
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = d.ConnMaxLifetime
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = d.QueryTimeout
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// sqlDialect captures what differs between database/sql drivers
type sqlDialect struct {
	driverName string
	// numbered placeholders ($1, $2) instead of ?
	numbered bool
}

func (d sqlDialect) placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// SQLStore is a Store over database/sql. Use NewPostgresStore or
// NewSQLiteStore to create one.
type SQLStore struct {
	db      *sql.DB
	dialect sqlDialect
	config  SQLConfig
	mu      sync.RWMutex
	closed  bool
}

// openSQLStore opens the database, verifies the connection and applies
// pending migrations.
func openSQLStore(dialect sqlDialect, config SQLConfig) (*SQLStore, error) {
	if config.ConnectionString == "" {
		return nil, &StorageError{Message: ErrMsgEmptyConnString}
	}
	config.applyDefaults()
	if !isSQLIdentifier(config.TableName) {
		return nil, &StorageError{Message: ErrMsgInvalidTableName, Name: config.TableName}
	}

	db, err := sql.Open(dialect.driverName, config.ConnectionString)
	if err != nil {
		return nil, &StorageError{
			Message: ErrMsgConnectionFailed,
			Cause:   err,
		}
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), config.QueryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &StorageError{
			Message: ErrMsgConnectionFailed,
			Cause:   err,
		}
	}

	store := &SQLStore{
		db:      db,
		dialect: dialect,
		config:  config,
	}
	if err := store.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	config.Logger.Debug(LogMsgStoreOpened,
		zap.String(LogFieldDriver, dialect.driverName),
		zap.String(LogFieldTable, config.TableName))
	return store, nil
}

// DB returns the underlying database handle
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// TableName returns the table holding templates
func (s *SQLStore) TableName() string {
	return s.config.TableName
}

func (s *SQLStore) migrationsTableName() string {
	return s.config.TableName + "_migrations"
}

// Get returns the source of the named template.
func (s *SQLStore) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewStoreClosedError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT source FROM %s WHERE name = %s",
		s.config.TableName, s.dialect.placeholder(1))

	var source string
	if err := s.db.QueryRowContext(ctx, query, name).Scan(&source); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", NewTemplateNotFoundError(name)
		}
		return "", &StorageError{
			Message: ErrMsgQueryFailed,
			Name:    name,
			Cause:   err,
		}
	}
	return source, nil
}

// Put inserts or replaces the named template.
func (s *SQLStore) Put(ctx context.Context, name, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateTemplateName(name); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return NewStoreClosedError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (name, source, updated_at)
		VALUES (%s, %s, %s)
		ON CONFLICT (name) DO UPDATE
		SET source = excluded.source, updated_at = excluded.updated_at`,
		s.config.TableName,
		s.dialect.placeholder(1), s.dialect.placeholder(2), s.dialect.placeholder(3))

	if _, err := s.db.ExecContext(ctx, query, name, source, time.Now().UTC()); err != nil {
		return &StorageError{
			Message: ErrMsgQueryFailed,
			Name:    name,
			Cause:   err,
		}
	}
	s.config.Logger.Debug(LogMsgTemplateSaved,
		zap.String(LogFieldTemplate, name),
		zap.Int(LogFieldTemplateLength, len(source)))
	return nil
}

// Delete removes the named template.
func (s *SQLStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return NewStoreClosedError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s WHERE name = %s",
		s.config.TableName, s.dialect.placeholder(1))

	result, err := s.db.ExecContext(ctx, query, name)
	if err != nil {
		return &StorageError{
			Message: ErrMsgDeleteTemplate,
			Name:    name,
			Cause:   err,
		}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &StorageError{
			Message: ErrMsgDeleteTemplate,
			Name:    name,
			Cause:   err,
		}
	}
	if affected == 0 {
		return NewTemplateNotFoundError(name)
	}
	s.config.Logger.Debug(LogMsgTemplateDeleted, zap.String(LogFieldTemplate, name))
	return nil
}

// List returns all template names in sorted order.
func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT name FROM %s ORDER BY name", s.config.TableName))
	if err != nil {
		return nil, &StorageError{
			Message: ErrMsgQueryFailed,
			Cause:   err,
		}
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &StorageError{
				Message: ErrMsgQueryFailed,
				Cause:   err,
			}
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{
			Message: ErrMsgQueryFailed,
			Cause:   err,
		}
	}
	return names, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// RunMigrations applies pending schema migrations. Each migration runs in
// its own transaction together with its bookkeeping row.
func (s *SQLStore) RunMigrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version     INTEGER PRIMARY KEY,
			applied_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			description VARCHAR(255)
		)`, s.migrationsTableName()))
	if err != nil {
		return &StorageError{
			Message: ErrMsgMigrationFailed,
			Cause:   err,
		}
	}

	applied, err := s.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO %s (version, description) VALUES (%s, %s)",
		s.migrationsTableName(), s.dialect.placeholder(1), s.dialect.placeholder(2))

	for _, m := range s.migrations() {
		if applied[m.version] {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return &StorageError{
				Message: ErrMsgMigrationFailed,
				Cause:   err,
			}
		}
		if _, err := tx.ExecContext(ctx, m.statement); err != nil {
			_ = tx.Rollback()
			return &StorageError{
				Message: ErrMsgMigrationFailed,
				Cause:   fmt.Errorf("migration %d: %w", m.version, err),
			}
		}
		if _, err := tx.ExecContext(ctx, insert, m.version, m.description); err != nil {
			_ = tx.Rollback()
			return &StorageError{
				Message: ErrMsgMigrationFailed,
				Cause:   err,
			}
		}
		if err := tx.Commit(); err != nil {
			return &StorageError{
				Message: ErrMsgMigrationFailed,
				Cause:   err,
			}
		}
		s.config.Logger.Info(LogMsgStoreMigrated,
			zap.String(LogFieldDriver, s.dialect.driverName),
			zap.Int(LogFieldSchemaVersion, m.version))
	}
	return nil
}

// SchemaVersion returns the highest applied migration, or 0.
func (s *SQLStore) SchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT MAX(version) FROM %s", s.migrationsTableName())).Scan(&version)
	if err != nil {
		return 0, &StorageError{
			Message: ErrMsgQueryFailed,
			Cause:   err,
		}
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// appliedMigrations reads the applied versions and releases the
// connection before any migration starts.
func (s *SQLStore) appliedMigrations(ctx context.Context) (map[int]bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT version FROM %s", s.migrationsTableName()))
	if err != nil {
		return nil, &StorageError{
			Message: ErrMsgMigrationFailed,
			Cause:   err,
		}
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, &StorageError{
				Message: ErrMsgMigrationFailed,
				Cause:   err,
			}
		}
		applied[v] = true
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{
			Message: ErrMsgMigrationFailed,
			Cause:   err,
		}
	}
	return applied, nil
}

// sqlMigration is one schema step
type sqlMigration struct {
	version     int
	description string
	statement   string
}

func (s *SQLStore) migrations() []sqlMigration {
	return []sqlMigration{
		{
			version:     1,
			description: "create templates table",
			statement: fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					name       VARCHAR(255) PRIMARY KEY,
					source     TEXT NOT NULL,
					updated_at TIMESTAMP NOT NULL
				)`, s.config.TableName),
		},
	}
}

// isSQLIdentifier reports whether name is safe to splice into a statement
func isSQLIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Ensure SQLStore implements Store
var _ Store = (*SQLStore)(nil)
