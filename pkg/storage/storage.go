// Package storage implements the Zephyrite storage engine: the capability
// interface, the concurrent in-memory backend, and the WAL-backed persistent
// backend with crash recovery.
package storage

// Kind selects a storage backend.
type Kind string

const (
	// KindMemory selects the volatile in-memory backend.
	KindMemory Kind = "memory"
	// KindPersistent selects the WAL-backed persistent backend.
	KindPersistent Kind = "persistent"
)

// Options are the construction parameters consumed from configuration.
type Options struct {
	Kind Kind
	// Capacity is an optional initial capacity hint for the in-memory map.
	Capacity int
	// WALPath is required for the persistent kind.
	WALPath string
	// Checksums enables WAL entry checksums.
	Checksums bool
}

// New builds the configured storage engine.
func New(opts Options) (Engine, error) {
	switch opts.Kind {
	case KindMemory, "":
		if opts.Capacity > 0 {
			return NewMemoryStorageWithCapacity(opts.Capacity), nil
		}
		return NewMemoryStorage(), nil
	case KindPersistent:
		if opts.WALPath == "" {
			return nil, NewInternal("wal path is required for persistent storage")
		}
		return NewPersistentStorageWithConfig(PersistentConfig{
			WALPath:   opts.WALPath,
			Capacity:  opts.Capacity,
			Checksums: opts.Checksums,
		})
	default:
		return nil, NewUnsupportedOperation("unknown storage kind: " + string(opts.Kind))
	}
}
