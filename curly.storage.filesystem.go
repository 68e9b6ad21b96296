package curly

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// FilesystemStore keeps each template as a <name>.tmpl file under a root
// directory. Writes go through a temp file and rename, so readers never
// see a partially written template.
type FilesystemStore struct {
	root   string
	mu     sync.RWMutex
	closed bool
}

// FilesystemStoreDriver is the driver for creating FilesystemStore instances.
type FilesystemStoreDriver struct{}

func init() {
	RegisterStoreDriver(StorageDriverNameFilesystem, &FilesystemStoreDriver{})
}

// Open creates a FilesystemStore. The connection string is the root directory.
func (d *FilesystemStoreDriver) Open(connectionString string) (Store, error) {
	return NewFilesystemStore(connectionString)
}

// NewFilesystemStore creates the root directory if needed and returns a
// store over it.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStoreRoot}
	}
	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStoreDir,
			Name:    root,
			Cause:   err,
		}
	}
	return &FilesystemStore{root: root}, nil
}

// Root returns the directory the store writes to
func (s *FilesystemStore) Root() string {
	return s.root
}

func (s *FilesystemStore) path(name string) string {
	return filepath.Join(s.root, name+FilesystemTemplateExt)
}

// Get returns the source of the named template.
func (s *FilesystemStore) Get(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateTemplateName(name); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewStoreClosedError()
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewTemplateNotFoundError(name)
		}
		return "", &StorageError{
			Message: ErrMsgReadTemplate,
			Name:    name,
			Cause:   err,
		}
	}
	return string(data), nil
}

// Put atomically writes the named template.
func (s *FilesystemStore) Put(ctx context.Context, name, source string) error {
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

	path := s.path(name)
	if err := atomic.WriteFile(path, strings.NewReader(source)); err != nil {
		return &StorageError{
			Message: ErrMsgWriteTemplate,
			Name:    name,
			Cause:   err,
		}
	}
	if err := os.Chmod(path, FilesystemFilePermissions); err != nil {
		return &StorageError{
			Message: ErrMsgWriteTemplate,
			Name:    name,
			Cause:   err,
		}
	}
	return nil
}

// Delete removes the named template file.
func (s *FilesystemStore) Delete(ctx context.Context, name string) error {
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

	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewTemplateNotFoundError(name)
		}
		return &StorageError{
			Message: ErrMsgDeleteTemplate,
			Name:    name,
			Cause:   err,
		}
	}
	return nil
}

// List returns the names of all .tmpl files under the root, sorted.
// Subdirectories and other files are ignored.
func (s *FilesystemStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{
			Message: ErrMsgReadStoreDir,
			Name:    s.root,
			Cause:   err,
		}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), FilesystemTemplateExt)
		if !ok || name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close marks the store closed. Files are left in place.
func (s *FilesystemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Ensure FilesystemStore implements Store
var _ Store = (*FilesystemStore)(nil)
