package storage

import "github.com/zephyrite-db/zephyrite/pkg/timeutil"

// ValueMetadata describes a stored value.
type ValueMetadata struct {
	// Size of the value in bytes.
	Size int
	// CreatedAt is the timestamp of the first write, ISO 8601 UTC.
	CreatedAt string
	// UpdatedAt is refreshed on every successful write.
	UpdatedAt string
}

// NewValueMetadata returns metadata for a value of the given size, with both
// timestamps set to now.
func NewValueMetadata(size int) ValueMetadata {
	ts := timeutil.Timestamp()
	return ValueMetadata{Size: size, CreatedAt: ts, UpdatedAt: ts}
}

// Update records a new size and refreshes UpdatedAt, preserving CreatedAt.
func (m *ValueMetadata) Update(size int) {
	m.Size = size
	m.UpdatedAt = timeutil.Timestamp()
}

// Value is a stored value with its metadata. Values are replaced, never
// mutated in place.
type Value struct {
	Value    string
	Metadata ValueMetadata
}

// NewValue wraps a string in a Value with fresh metadata.
func NewValue(value string) Value {
	return Value{Value: value, Metadata: NewValueMetadata(len(value))}
}

// Stats reports storage engine statistics. The operation counters are
// observational only and are not linearized with map mutations.
type Stats struct {
	KeyCount    int
	MemoryUsage int
	GetOps      uint64
	PutOps      uint64
	DeleteOps   uint64
}

// Engine is the capability interface every storage backend implements.
// All key- and value-taking operations validate their inputs before any
// mutation; a validation failure leaves no partial side effects.
type Engine interface {
	// Put stores a key-value pair. It returns true if the key was absent
	// before the call.
	Put(key, value string) (bool, error)

	// Get retrieves a value by key. It fails with a KeyNotFound error if
	// the key is absent.
	Get(key string) (Value, error)

	// Delete removes a key. It returns true if the key existed.
	Delete(key string) (bool, error)

	// Exists reports whether a key is present.
	Exists(key string) (bool, error)

	// Keys lists all keys. Order is not guaranteed.
	Keys() ([]string, error)

	// Values lists all values.
	Values() ([]Value, error)

	// All returns a point-in-time snapshot of every key-value pair. The
	// snapshot is not transactionally consistent with concurrent writers.
	All() (map[string]Value, error)

	// Clear removes everything.
	Clear() error

	// Stats returns engine statistics.
	Stats() (Stats, error)

	// SizeOfValue returns the stored size of a value. It fails with a
	// KeyNotFound error if the key is absent.
	SizeOfValue(key string) (int, error)
}
