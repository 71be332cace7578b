package storage

import (
	"sync"
	"sync/atomic"
)

// valueOverhead is the fixed per-entry bookkeeping charged by the memory
// usage estimate, on top of key and value bytes. It is an estimate, not
// allocator accounting.
const valueOverhead = 64

// MemoryStorage is the volatile in-memory backend: a single map guarded by a
// reader/writer lock, plus relaxed atomic operation counters.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]Value

	getOps    atomic.Uint64
	putOps    atomic.Uint64
	deleteOps atomic.Uint64
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]Value)}
}

// NewMemoryStorageWithCapacity pre-sizes the internal map.
func NewMemoryStorageWithCapacity(capacity int) *MemoryStorage {
	return &MemoryStorage{data: make(map[string]Value, capacity)}
}

// Put stores a key-value pair, replacing any existing value. The original
// CreatedAt timestamp is preserved across overwrites.
func (m *MemoryStorage) Put(key, value string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	if err := ValidateValue(value); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, existed := m.data[key]
	stored := NewValue(value)
	if existed {
		stored.Metadata.CreatedAt = prev.Metadata.CreatedAt
	}
	m.data[key] = stored

	m.putOps.Add(1)
	return !existed, nil
}

// Get retrieves a value by key.
func (m *MemoryStorage) Get(key string) (Value, error) {
	if err := ValidateKey(key); err != nil {
		return Value{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	m.getOps.Add(1)

	v, ok := m.data[key]
	if !ok {
		return Value{}, NewKeyNotFound(key)
	}
	return v, nil
}

// Delete removes a key, reporting whether it existed. Deleting an absent key
// is not an error.
func (m *MemoryStorage) Delete(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteOps.Add(1)

	_, existed := m.data[key]
	delete(m.data, key)
	return existed, nil
}

// Exists reports whether a key is present.
func (m *MemoryStorage) Exists(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[key]
	return ok, nil
}

// Keys lists all keys in map iteration order.
func (m *MemoryStorage) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	return keys, nil
}

// Values lists all stored values.
func (m *MemoryStorage) Values() ([]Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values := make([]Value, 0, len(m.data))
	for _, v := range m.data {
		values = append(values, v)
	}
	return values, nil
}

// All returns a copy of every key-value pair.
func (m *MemoryStorage) All() (map[string]Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make(map[string]Value, len(m.data))
	for key, v := range m.data {
		all[key] = v
	}
	return all, nil
}

// Clear removes everything.
func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]Value)
	return nil
}

// Stats returns key count, estimated memory usage and operation counters.
func (m *MemoryStorage) Stats() (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	usage := 0
	for key, v := range m.data {
		usage += len(key) + len(v.Value) + valueOverhead
	}

	return Stats{
		KeyCount:    len(m.data),
		MemoryUsage: usage,
		GetOps:      m.getOps.Load(),
		PutOps:      m.putOps.Load(),
		DeleteOps:   m.deleteOps.Load(),
	}, nil
}

// SizeOfValue returns the stored size of a value in bytes.
func (m *MemoryStorage) SizeOfValue(key string) (int, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return 0, NewKeyNotFound(key)
	}
	return v.Metadata.Size, nil
}

var _ Engine = (*MemoryStorage)(nil)
