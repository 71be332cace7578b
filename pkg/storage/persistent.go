package storage

import (
	"log/slog"
	"sync"

	"github.com/zephyrite-db/zephyrite/pkg/wal"
)

// PersistentStorage composes an in-memory backend with a write-ahead log.
// Mutations are logged first and applied to memory only if the append
// succeeds; reads are served from memory without consulting the log.
type PersistentStorage struct {
	memory *MemoryStorage
	log    *wal.Manager

	// compactMu excludes mutating operations for the duration of a
	// compaction; writers take the read side.
	compactMu sync.RWMutex
}

// PersistentConfig holds construction parameters for the persistent backend.
type PersistentConfig struct {
	// WALPath is the write-ahead log file path.
	WALPath string
	// Capacity pre-sizes the in-memory map.
	Capacity int
	// Checksums enables per-entry WAL checksums.
	Checksums bool
}

// NewPersistentStorage opens (or creates) the WAL at the given path with
// checksums enabled and replays it into a fresh in-memory map.
func NewPersistentStorage(walPath string) (*PersistentStorage, error) {
	return NewPersistentStorageWithConfig(PersistentConfig{WALPath: walPath, Checksums: true})
}

// NewPersistentStorageWithConfig opens the backend with explicit options.
func NewPersistentStorageWithConfig(config PersistentConfig) (*PersistentStorage, error) {
	manager, err := wal.NewManager(wal.ManagerConfig{Path: config.WALPath, Checksums: config.Checksums})
	if err != nil {
		return nil, NewInternalf("open wal: %v", err)
	}

	s := &PersistentStorage{
		memory: NewMemoryStorageWithCapacity(config.Capacity),
		log:    manager,
	}

	if err := s.recover(); err != nil {
		manager.Close()
		return nil, err
	}
	return s, nil
}

// recover replays every WAL entry in ascending sequence order against the
// empty in-memory map. Individual replay failures are logged and counted but
// do not abort recovery; only log corruption or an unreadable file is fatal.
func (s *PersistentStorage) recover() error {
	entries, err := s.log.ReadAll()
	if err != nil {
		return NewInternalf("wal recovery: %v", err)
	}

	if len(entries) == 0 {
		slog.Info("no wal entries found, starting with empty storage", "wal", s.log.Path())
		return nil
	}

	slog.Info("recovering entries from wal", "count", len(entries), "wal", s.log.Path())

	recovered, failed := 0, 0
	for _, entry := range entries {
		var err error
		switch entry.Operation.Type {
		case wal.OpPut:
			_, err = s.memory.Put(entry.Operation.Key, entry.Operation.Value)
		case wal.OpDelete:
			_, err = s.memory.Delete(entry.Operation.Key)
		case wal.OpClear:
			err = s.memory.Clear()
		default:
			err = NewInternalf("unknown wal operation %q", entry.Operation.Type)
		}
		if err != nil {
			failed++
			slog.Warn("failed to replay wal entry",
				"sequence", entry.SequenceNumber,
				"op", entry.Operation.Type,
				"key", entry.Operation.Key,
				"error", err)
			continue
		}
		recovered++
	}

	if failed > 0 {
		slog.Warn("wal recovery completed with failures", "recovered", recovered, "failed", failed)
	} else {
		slog.Info("wal recovery completed", "recovered", recovered)
	}
	return nil
}

// Put logs the write, then applies it to memory.
func (s *PersistentStorage) Put(key, value string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	if err := ValidateValue(value); err != nil {
		return false, err
	}

	s.compactMu.RLock()
	defer s.compactMu.RUnlock()

	if _, err := s.log.Append(wal.PutOp(key, value)); err != nil {
		return false, NewInternalf("wal append: %v", err)
	}
	return s.memory.Put(key, value)
}

// Get is served from memory.
func (s *PersistentStorage) Get(key string) (Value, error) {
	return s.memory.Get(key)
}

// Delete logs the removal, then applies it to memory.
func (s *PersistentStorage) Delete(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	s.compactMu.RLock()
	defer s.compactMu.RUnlock()

	if _, err := s.log.Append(wal.DeleteOp(key)); err != nil {
		return false, NewInternalf("wal append: %v", err)
	}
	return s.memory.Delete(key)
}

// Exists is served from memory.
func (s *PersistentStorage) Exists(key string) (bool, error) {
	return s.memory.Exists(key)
}

// Keys is served from memory.
func (s *PersistentStorage) Keys() ([]string, error) {
	return s.memory.Keys()
}

// Values is served from memory.
func (s *PersistentStorage) Values() ([]Value, error) {
	return s.memory.Values()
}

// All is served from memory.
func (s *PersistentStorage) All() (map[string]Value, error) {
	return s.memory.All()
}

// Clear logs the operation, then clears memory.
func (s *PersistentStorage) Clear() error {
	s.compactMu.RLock()
	defer s.compactMu.RUnlock()

	if _, err := s.log.Append(wal.ClearOp()); err != nil {
		return NewInternalf("wal append: %v", err)
	}
	return s.memory.Clear()
}

// Stats is served from memory.
func (s *PersistentStorage) Stats() (Stats, error) {
	return s.memory.Stats()
}

// SizeOfValue is served from memory.
func (s *PersistentStorage) SizeOfValue(key string) (int, error) {
	return s.memory.SizeOfValue(key)
}

// DetailedStats extends Stats with WAL information.
type DetailedStats struct {
	Memory            Stats
	WALPath           string
	WALSequenceNumber uint64
}

// DetailedStats reports memory statistics alongside the WAL path and current
// sequence number.
func (s *PersistentStorage) DetailedStats() (DetailedStats, error) {
	memStats, err := s.memory.Stats()
	if err != nil {
		return DetailedStats{}, err
	}
	return DetailedStats{
		Memory:            memStats,
		WALPath:           s.log.Path(),
		WALSequenceNumber: s.log.CurrentSequence(),
	}, nil
}

// CompactionResult reports log sizes around a compaction.
type CompactionResult struct {
	EntriesBefore int
	EntriesAfter  int
}

// Compact snapshots the live key set, truncates the log, and re-appends one
// put record per surviving key. Mutating operations are excluded for the
// whole duration; the snapshot-truncate-rewrite sequence is not otherwise
// atomic.
func (s *PersistentStorage) Compact() (CompactionResult, error) {
	s.compactMu.Lock()
	defer s.compactMu.Unlock()

	slog.Info("starting wal compaction", "wal", s.log.Path())

	all, err := s.memory.All()
	if err != nil {
		return CompactionResult{}, err
	}

	before, err := s.log.ReadAll()
	if err != nil {
		return CompactionResult{}, NewInternalf("wal read before compaction: %v", err)
	}

	if err := s.log.Truncate(); err != nil {
		return CompactionResult{}, NewInternalf("wal truncate: %v", err)
	}

	rewritten := 0
	for key, value := range all {
		if _, err := s.log.Append(wal.PutOp(key, value.Value)); err != nil {
			return CompactionResult{}, NewInternalf("wal rewrite during compaction: %v", err)
		}
		rewritten++
	}

	slog.Info("wal compaction completed", "entries_before", len(before), "entries_after", rewritten)

	return CompactionResult{EntriesBefore: len(before), EntriesAfter: rewritten}, nil
}

// WALPath returns the backing log file path.
func (s *PersistentStorage) WALPath() string {
	return s.log.Path()
}

// Close flushes and closes the WAL.
func (s *PersistentStorage) Close() error {
	if err := s.log.Close(); err != nil {
		return NewInternalf("close wal: %v", err)
	}
	return nil
}

var _ Engine = (*PersistentStorage)(nil)
