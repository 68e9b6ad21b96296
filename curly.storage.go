package curly

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/itsatony/go-cuserr"
)

// Store keeps template sources by name. Stores hold text only; templates
// are parsed again on every render.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the source of the named template.
	// A missing template is reported with a StorageError for which
	// IsTemplateNotFound is true.
	Get(ctx context.Context, name string) (string, error)

	// Put inserts or replaces the named template
	Put(ctx context.Context, name, source string) error

	// Delete removes the named template. Deleting a missing template
	// reports IsTemplateNotFound.
	Delete(ctx context.Context, name string) error

	// List returns all template names in sorted order
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	// After Close, the store should not be used.
	Close() error
}

// StoreDriver is a factory for creating stores.
// Drivers register themselves during init().
type StoreDriver interface {
	// Open creates a store from a driver-specific connection string
	Open(connectionString string) (Store, error)
}

// Storage driver registry
var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver registers a storage driver by name.
// Panics if driver is nil or the name is taken.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStoreDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a store using the named driver.
//
// Example:
//
//	store, err := curly.OpenStore("memory", "")
//	store, err := curly.OpenStore("filesystem", "./templates")
//	store, err := curly.OpenStore("sqlite", "file:templates.db")
func OpenStore(driverName, connectionString string) (Store, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, NewStoreDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// ListStoreDrivers returns the names of all registered drivers, sorted
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Storage error message constants
const (
	ErrMsgNilStoreDriver          = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStoreDriverNotFound     = "storage driver not found"
	ErrMsgStoreClosed             = "store is closed"
	ErrMsgTemplateNotFound        = "template not found"
	ErrMsgInvalidTemplateName     = "invalid template name"
	ErrMsgInvalidStoreRoot        = "invalid store root path"
	ErrMsgCreateStoreDir          = "failed to create store directory"
	ErrMsgReadStoreDir            = "failed to read store directory"
	ErrMsgReadTemplate            = "failed to read template file"
	ErrMsgWriteTemplate           = "failed to write template file"
	ErrMsgDeleteTemplate          = "failed to delete template"
	ErrMsgEmptyConnString         = "connection string cannot be empty"
	ErrMsgConnectionFailed        = "failed to connect to database"
	ErrMsgMigrationFailed         = "schema migration failed"
	ErrMsgQueryFailed             = "database query failed"
	ErrMsgInvalidTableName        = "invalid table name"
)

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg += ": " + e.Name
	}
	if e.Cause != nil && e.Message != ErrMsgTemplateNotFound && e.Message != ErrMsgStoreDriverNotFound {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewTemplateNotFoundError reports a missing template. The cause is a
// cuserr not-found error carrying the template name.
func NewTemplateNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgTemplateNotFound,
		Name:    name,
		Cause: cuserr.NewNotFoundError(MetaKeyTemplate, ErrMsgTemplateNotFound).
			WithMetadata(MetaKeyName, name),
	}
}

// NewStoreDriverNotFoundError reports an unregistered driver name
func NewStoreDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStoreDriverNotFound,
		Name:    name,
		Cause: cuserr.NewNotFoundError(MetaKeyDriver, ErrMsgStoreDriverNotFound).
			WithMetadata(MetaKeyDriver, name),
	}
}

// NewStoreClosedError creates an error for operations on a closed store
func NewStoreClosedError() error {
	return &StorageError{Message: ErrMsgStoreClosed}
}

// IsTemplateNotFound reports whether err is a missing-template error
func IsTemplateNotFound(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr) && storageErr.Message == ErrMsgTemplateNotFound
}

// validateTemplateName rejects names that are empty, contain "..", or
// contain characters that are unsafe in file names.
func validateTemplateName(name string) error {
	if name == "" {
		return &StorageError{Message: ErrMsgInvalidTemplateName}
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\:*?\"<>|\x00") {
		return &StorageError{Message: ErrMsgInvalidTemplateName, Name: name}
	}
	return nil
}
