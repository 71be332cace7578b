package wal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupt marks log corruption detected during a full read. A corrupt log
// fails the whole read; records after the bad line are never trusted.
var ErrCorrupt = errors.New("wal corruption detected")

// readBufferSize bounds a single record line. Values are capped at 1 MiB, so
// 4 MiB leaves generous headroom for JSON escaping and metadata.
const readBufferSize = 4 << 20

// ManagerConfig holds configuration for the log manager.
type ManagerConfig struct {
	// Path to the log file. Parent directories are created as needed.
	Path string
	// Checksums enables per-entry checksums on append.
	Checksums bool
}

// Manager owns the write-ahead log file and the sequence counter. The two
// are guarded by a single mutex so that sequence assignment and the
// corresponding file write form one critical section.
type Manager struct {
	mu     sync.Mutex
	file   *os.File
	seq    uint64
	config ManagerConfig
}

// NewManager opens (creating if necessary) the log file in append mode.
func NewManager(config ManagerConfig) (*Manager, error) {
	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create wal directory: %w", err)
		}
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open wal file: %w", err)
	}

	return &Manager{file: file, config: config}, nil
}

// Append assigns the next sequence number, writes one record line and
// flushes it to stable storage before returning. On failure the sequence
// counter is not advanced and the assigned number must not be assumed
// durable.
func (m *Manager) Append(op Operation) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seq := m.seq + 1

	var entry Entry
	if m.config.Checksums {
		entry = NewEntryWithChecksum(seq, op)
	} else {
		entry = NewEntry(seq, op)
	}

	line, err := entry.Encode()
	if err != nil {
		return 0, err
	}
	line = append(line, '\n')

	if _, err := m.file.Write(line); err != nil {
		return 0, fmt.Errorf("write wal record: %w", err)
	}
	if err := m.file.Sync(); err != nil {
		return 0, fmt.Errorf("sync wal file: %w", err)
	}

	m.seq = seq
	return seq, nil
}

// ReadAll opens the file independently of the append handle and decodes
// every non-blank line in file order, verifying checksums. A checksum
// mismatch or undecodable line fails the whole read with ErrCorrupt. After a
// successful read the sequence counter is advanced to the maximum sequence
// number observed.
func (m *Manager) ReadAll() ([]Entry, error) {
	file, err := os.Open(m.config.Path)
	if err != nil {
		return nil, fmt.Errorf("open wal file for reading: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), readBufferSize)

	var entries []Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		entry, err := DecodeEntry(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", lineNum, ErrCorrupt, err)
		}
		if !entry.VerifyChecksum() {
			return nil, fmt.Errorf("line %d: %w: checksum mismatch", lineNum, ErrCorrupt)
		}

		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wal file: %w", err)
	}

	// Take the maximum over all entries; file order is not trusted to be
	// monotonic.
	var maxSeq uint64
	for _, entry := range entries {
		if entry.SequenceNumber > maxSeq {
			maxSeq = entry.SequenceNumber
		}
	}
	if maxSeq > 0 {
		m.mu.Lock()
		if maxSeq > m.seq {
			m.seq = maxSeq
		}
		m.mu.Unlock()
	}

	return entries, nil
}

// Truncate resets the file to zero length and the sequence counter to 0.
// Used only as part of compaction.
func (m *Manager) Truncate() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate wal file: %w", err)
	}
	if err := m.file.Sync(); err != nil {
		return fmt.Errorf("sync wal file after truncate: %w", err)
	}

	m.seq = 0
	return nil
}

// CurrentSequence returns the last assigned sequence number.
func (m *Manager) CurrentSequence() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq
}

// Path returns the log file path.
func (m *Manager) Path() string {
	return m.config.Path
}

// Close syncs and closes the append handle.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.file.Sync(); err != nil {
		m.file.Close()
		return fmt.Errorf("sync wal file on close: %w", err)
	}
	return m.file.Close()
}
