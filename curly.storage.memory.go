package curly

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]string
	closed    bool
}

// MemoryStoreDriver is the driver for creating MemoryStore instances.
type MemoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StorageDriverNameMemory, &MemoryStoreDriver{})
}

// Open creates a new MemoryStore. The connection string is ignored.
func (d *MemoryStoreDriver) Open(connectionString string) (Store, error) {
	return NewMemoryStore(), nil
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{templates: make(map[string]string)}
}

// Get returns the source of the named template.
func (s *MemoryStore) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewStoreClosedError()
	}
	source, ok := s.templates[name]
	if !ok {
		return "", NewTemplateNotFoundError(name)
	}
	return source, nil
}

// Put inserts or replaces the named template.
func (s *MemoryStore) Put(ctx context.Context, name, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateTemplateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	s.templates[name] = source
	return nil
}

// Delete removes the named template.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}
	if _, ok := s.templates[name]; !ok {
		return NewTemplateNotFoundError(name)
	}
	delete(s.templates, name)
	return nil
}

// List returns all template names in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the store closed and drops its contents.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.templates = nil
	return nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
