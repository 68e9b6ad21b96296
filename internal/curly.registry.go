package internal

import (
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// Registry is a named, sharded, concurrent map with insert-or-overwrite
// semantics. Keys on different shards never contend.
type Registry[V any] struct {
	name    string
	entries cmap.ConcurrentMap[string, V]
	logger  *zap.Logger
}

// NewRegistry creates an empty registry. name only appears in logs.
func NewRegistry[V any](name string, logger *zap.Logger) *Registry[V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgStoreCreated, zap.String(LogFieldStore, name))
	return &Registry[V]{
		name:    name,
		entries: cmap.New[V](),
		logger:  logger,
	}
}

// Set inserts or overwrites key
func (r *Registry[V]) Set(key string, value V) {
	r.entries.Set(key, value)
	r.logger.Debug(LogMsgEntrySet, zap.String(LogFieldStore, r.name), zap.String(LogFieldKey, key))
}

// SetAll inserts or overwrites every entry of values
func (r *Registry[V]) SetAll(values map[string]V) {
	r.entries.MSet(values)
	r.logger.Debug(LogMsgEntrySet, zap.String(LogFieldStore, r.name), zap.Int(LogFieldCount, len(values)))
}

// Get returns the value for key
func (r *Registry[V]) Get(key string) (V, bool) {
	return r.entries.Get(key)
}

// Has reports whether key is present
func (r *Registry[V]) Has(key string) bool {
	return r.entries.Has(key)
}

// Remove deletes key. Removing a missing key is a no-op.
func (r *Registry[V]) Remove(key string) {
	r.entries.Remove(key)
	r.logger.Debug(LogMsgEntryRemoved, zap.String(LogFieldStore, r.name), zap.String(LogFieldKey, key))
}

// Clear deletes every entry
func (r *Registry[V]) Clear() {
	r.entries.Clear()
	r.logger.Debug(LogMsgEntriesCleared, zap.String(LogFieldStore, r.name))
}

// Keys returns all keys in sorted order
func (r *Registry[V]) Keys() []string {
	keys := r.entries.Keys()
	sort.Strings(keys)
	return keys
}

// Count returns the number of entries
func (r *Registry[V]) Count() int {
	return r.entries.Count()
}
