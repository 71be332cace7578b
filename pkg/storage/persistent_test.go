package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrite-db/zephyrite/pkg/wal"
)

func walPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.wal")
}

func TestPersistentPutGet(t *testing.T) {
	s, err := NewPersistentStorage(walPath(t))
	require.NoError(t, err)
	defer s.Close()

	created, err := s.Put("k", "v")
	require.NoError(t, err)
	assert.True(t, created)

	value, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", value.Value)
}

func TestPersistentValidatesBeforeLogging(t *testing.T) {
	path := walPath(t)
	s, err := NewPersistentStorage(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Put(" bad", "v")
	assert.True(t, IsInvalidKey(err))

	// A rejected write must leave no trace in the log.
	m, err := wal.NewManager(wal.ManagerConfig{Path: path, Checksums: true})
	require.NoError(t, err)
	defer m.Close()
	entries, err := m.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPersistentRecovery(t *testing.T) {
	path := walPath(t)

	s, err := NewPersistentStorage(path)
	require.NoError(t, err)

	_, err = s.Put("a", "1")
	require.NoError(t, err)
	_, err = s.Put("b", "2")
	require.NoError(t, err)
	_, err = s.Delete("a")
	require.NoError(t, err)
	_, err = s.Put("c", "3")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening replays the log; the rebuilt state must equal the state at
	// close.
	reopened, err := NewPersistentStorage(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Get("a")
	assert.True(t, IsKeyNotFound(err))

	b, err := reopened.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "2", b.Value)

	c, err := reopened.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "3", c.Value)
}

func TestPersistentRecoveryAfterClear(t *testing.T) {
	path := walPath(t)

	s, err := NewPersistentStorage(path)
	require.NoError(t, err)
	_, err = s.Put("a", "1")
	require.NoError(t, err)
	require.NoError(t, s.Clear())
	_, err = s.Put("b", "2")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewPersistentStorage(path)
	require.NoError(t, err)
	defer reopened.Close()

	keys, err := reopened.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestPersistentRecoveryCorruptLog(t *testing.T) {
	path := walPath(t)

	s, err := NewPersistentStorage(path)
	require.NoError(t, err)
	_, err = s.Put("a", "1")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(data, []byte("{\"garbage\n")...), 0o600))

	_, err = NewPersistentStorage(path)
	require.Error(t, err)
	assert.True(t, IsInternal(err))
}

func TestPersistentCompact(t *testing.T) {
	path := walPath(t)

	s, err := NewPersistentStorage(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Put("a", "1")
	require.NoError(t, err)
	_, err = s.Put("a", "2")
	require.NoError(t, err)
	_, err = s.Put("b", "1")
	require.NoError(t, err)
	_, err = s.Delete("b")
	require.NoError(t, err)
	_, err = s.Put("c", "3")
	require.NoError(t, err)

	result, err := s.Compact()
	require.NoError(t, err)
	assert.Equal(t, 5, result.EntriesBefore)
	assert.Equal(t, 2, result.EntriesAfter)

	// Live data is untouched.
	a, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "2", a.Value)
	_, err = s.Get("b")
	assert.True(t, IsKeyNotFound(err))
}

func TestPersistentRecoveryAfterCompact(t *testing.T) {
	path := walPath(t)

	s, err := NewPersistentStorage(path)
	require.NoError(t, err)
	_, err = s.Put("a", "1")
	require.NoError(t, err)
	_, err = s.Put("a", "2")
	require.NoError(t, err)
	_, err = s.Delete("a")
	require.NoError(t, err)
	_, err = s.Put("z", "last")
	require.NoError(t, err)
	_, err = s.Compact()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewPersistentStorage(path)
	require.NoError(t, err)
	defer reopened.Close()

	keys, err := reopened.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, keys)

	z, err := reopened.Get("z")
	require.NoError(t, err)
	assert.Equal(t, "last", z.Value)
}

func TestPersistentDetailedStats(t *testing.T) {
	path := walPath(t)

	s, err := NewPersistentStorage(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Put("a", "1")
	require.NoError(t, err)
	_, err = s.Put("b", "2")
	require.NoError(t, err)

	detailed, err := s.DetailedStats()
	require.NoError(t, err)
	assert.Equal(t, 2, detailed.Memory.KeyCount)
	assert.Equal(t, path, detailed.WALPath)
	assert.Equal(t, uint64(2), detailed.WALSequenceNumber)
}

func TestPersistentFactoryRequiresWALPath(t *testing.T) {
	_, err := New(Options{Kind: KindPersistent})
	require.Error(t, err)
	assert.True(t, IsInternal(err))
}

func TestFactoryKinds(t *testing.T) {
	mem, err := New(Options{Kind: KindMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, mem)

	def, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, def)

	_, err = New(Options{Kind: "tape"})
	require.Error(t, err)
	assert.True(t, IsUnsupportedOperation(err))

	p, err := New(Options{Kind: KindPersistent, WALPath: walPath(t), Checksums: true})
	require.NoError(t, err)
	assert.IsType(t, &PersistentStorage{}, p)
	require.NoError(t, p.(*PersistentStorage).Close())
}
