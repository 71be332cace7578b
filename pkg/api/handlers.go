package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zephyrite-db/zephyrite"
	"github.com/zephyrite-db/zephyrite/pkg/storage"
)

// Compactor is implemented by storage backends that support log compaction.
type Compactor interface {
	Compact() (storage.CompactionResult, error)
}

// Server holds the API server state
type Server struct {
	store   storage.Engine
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(store storage.Engine, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
	}
}

// statusForError maps storage errors to HTTP status codes. Missing keys are
// 404, rejected keys and values are 400, everything else is 500.
func statusForError(err error) int {
	switch {
	case storage.IsKeyNotFound(err):
		return http.StatusNotFound
	case storage.IsInvalidKey(err), storage.IsInvalidValue(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// keyParam extracts and unescapes the key path parameter
func keyParam(r *http.Request) (string, error) {
	return url.PathUnescape(chi.URLParam(r, "key"))
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, HealthResponse{
		Status:  "healthy",
		Service: "zephyrite",
		Version: zephyrite.Version,
	})
}

// handlePut stores a value for a key. Creating a new key responds 201,
// overwriting an existing one responds 200.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		s.metrics.RecordStorageOperation("put", false, time.Since(start))
		sendError(w, "Invalid key encoding", http.StatusBadRequest)
		return
	}

	var req PutKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordStorageOperation("put", false, time.Since(start))
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	created, err := s.store.Put(key, req.Value)
	if err != nil {
		s.metrics.RecordStorageOperation("put", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to store value: %v", err), statusForError(err))
		return
	}

	s.metrics.RecordStorageOperation("put", true, time.Since(start))

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	sendSuccessStatus(w, PutKeyResponse{Key: key, Created: created}, status)
}

// handleGet returns a value and its metadata
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		s.metrics.RecordStorageOperation("get", false, time.Since(start))
		sendError(w, "Invalid key encoding", http.StatusBadRequest)
		return
	}

	value, err := s.store.Get(key)
	if err != nil {
		s.metrics.RecordStorageOperation("get", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to get value: %v", err), statusForError(err))
		return
	}

	s.metrics.RecordStorageOperation("get", true, time.Since(start))
	sendSuccess(w, GetKeyResponse{
		Key:       key,
		Value:     value.Value,
		Size:      value.Metadata.Size,
		CreatedAt: value.Metadata.CreatedAt,
		UpdatedAt: value.Metadata.UpdatedAt,
	})
}

// handleDelete removes a key. Deleting an absent key responds 404.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	key, err := keyParam(r)
	if err != nil {
		s.metrics.RecordStorageOperation("delete", false, time.Since(start))
		sendError(w, "Invalid key encoding", http.StatusBadRequest)
		return
	}

	existed, err := s.store.Delete(key)
	if err != nil {
		s.metrics.RecordStorageOperation("delete", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to delete key: %v", err), statusForError(err))
		return
	}
	if !existed {
		s.metrics.RecordStorageOperation("delete", false, time.Since(start))
		sendError(w, "Key not found", http.StatusNotFound)
		return
	}

	s.metrics.RecordStorageOperation("delete", true, time.Since(start))
	sendSuccess(w, map[string]string{"key": key, "message": "Key deleted"})
}

// handleListKeys returns all stored keys sorted ascending
func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	keys, err := s.store.Keys()
	if err != nil {
		s.metrics.RecordStorageOperation("list", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to list keys: %v", err), statusForError(err))
		return
	}
	sort.Strings(keys)

	s.metrics.RecordStorageOperation("list", true, time.Since(start))
	sendSuccess(w, ListKeysResponse{Keys: keys, Count: len(keys)})
}

// handleStats returns storage statistics
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := s.store.Stats()
	if err != nil {
		s.metrics.RecordStorageOperation("stats", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to get stats: %v", err), statusForError(err))
		return
	}

	s.metrics.RecordStorageOperation("stats", true, time.Since(start))
	s.metrics.UpdateStorageStats(stats.KeyCount, stats.MemoryUsage)
	sendSuccess(w, StatsResponse{
		KeyCount:    stats.KeyCount,
		MemoryUsage: stats.MemoryUsage,
		GetOps:      stats.GetOps,
		PutOps:      stats.PutOps,
		DeleteOps:   stats.DeleteOps,
	})
}

// handleCompact triggers a log compaction. Backends without a log respond
// 500 with an explanatory error.
func (s *Server) handleCompact(w http.ResponseWriter, r *http.Request) {
	compactor, ok := s.store.(Compactor)
	if !ok {
		s.metrics.RecordCompaction(false)
		sendError(w, "Storage backend does not support compaction", http.StatusInternalServerError)
		return
	}

	result, err := compactor.Compact()
	if err != nil {
		s.metrics.RecordCompaction(false)
		sendError(w, fmt.Sprintf("Compaction failed: %v", err), statusForError(err))
		return
	}

	s.metrics.RecordCompaction(true)
	sendSuccess(w, CompactResponse{
		EntriesBefore: result.EntriesBefore,
		EntriesAfter:  result.EntriesAfter,
	})
}
