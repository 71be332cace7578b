// Package wal implements the write-ahead log: a durable, sequenced record of
// every mutating operation, stored as one JSON record per line. The log is
// append-only; truncation to zero length (during compaction) is the only
// supported non-append mutation.
package wal

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	"github.com/zephyrite-db/zephyrite/pkg/timeutil"
)

// OpType tags the operation carried by a log entry.
type OpType string

const (
	// OpPut records a key-value write.
	OpPut OpType = "put"
	// OpDelete records a key removal.
	OpDelete OpType = "delete"
	// OpClear records removal of all data.
	OpClear OpType = "clear"
)

// Operation is the tagged union logged by an entry. Key and Value are only
// meaningful for the op types that carry them.
type Operation struct {
	Type  OpType `json:"type"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
}

// PutOp builds a put operation.
func PutOp(key, value string) Operation {
	return Operation{Type: OpPut, Key: key, Value: value}
}

// DeleteOp builds a delete operation.
func DeleteOp(key string) Operation {
	return Operation{Type: OpDelete, Key: key}
}

// ClearOp builds a clear operation.
func ClearOp() Operation {
	return Operation{Type: OpClear}
}

// Entry is a single write-ahead log record. Entries are appended once and
// immutable thereafter.
type Entry struct {
	// SequenceNumber is strictly increasing across the log, starting at 1.
	SequenceNumber uint64    `json:"sequence_number"`
	Operation      Operation `json:"operation"`
	// Timestamp is the ISO 8601 UTC time the operation was logged.
	Timestamp string `json:"timestamp"`
	// Checksum, when present, is an FNV-1a/64 hex digest over the entry
	// content and must verify on read.
	Checksum string `json:"checksum,omitempty"`
}

// NewEntry builds an entry without a checksum.
func NewEntry(seq uint64, op Operation) Entry {
	return Entry{
		SequenceNumber: seq,
		Operation:      op,
		Timestamp:      timeutil.Timestamp(),
	}
}

// NewEntryWithChecksum builds an entry and attaches its checksum.
func NewEntryWithChecksum(seq uint64, op Operation) Entry {
	e := NewEntry(seq, op)
	e.Checksum = e.computeChecksum()
	return e
}

// computeChecksum hashes the sequence number, operation and timestamp. The
// checksum field itself is excluded.
func (e *Entry) computeChecksum() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d\x00%s\x00%s\x00%s\x00%s", e.SequenceNumber, e.Operation.Type, e.Operation.Key, e.Operation.Value, e.Timestamp)
	return fmt.Sprintf("%x", h.Sum64())
}

// VerifyChecksum reports whether the stored checksum matches the entry
// content. Entries without a checksum always verify.
func (e *Entry) VerifyChecksum() bool {
	if e.Checksum == "" {
		return true
	}
	return e.Checksum == e.computeChecksum()
}

// Encode serializes the entry to its single-line JSON record form, without a
// trailing newline.
func (e *Entry) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode wal entry: %w", err)
	}
	return data, nil
}

// DecodeEntry parses a single JSON record line.
func DecodeEntry(line []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return Entry{}, fmt.Errorf("decode wal entry: %w", err)
	}
	return e, nil
}
