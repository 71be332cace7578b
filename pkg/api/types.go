package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string
}

// PutKeyRequest is the JSON body for storing a value
type PutKeyRequest struct {
	Value string `json:"value"`
}

// PutKeyResponse reports the outcome of a put
type PutKeyResponse struct {
	Key     string `json:"key"`
	Created bool   `json:"created"`
}

// GetKeyResponse returns a value with its metadata
type GetKeyResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Size      int    `json:"size"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListKeysResponse returns all stored keys
type ListKeysResponse struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// StatsResponse reports storage statistics
type StatsResponse struct {
	KeyCount    int    `json:"key_count"`
	MemoryUsage int    `json:"memory_usage"`
	GetOps      uint64 `json:"get_operations"`
	PutOps      uint64 `json:"put_operations"`
	DeleteOps   uint64 `json:"delete_operations"`
}

// CompactResponse reports the outcome of a log compaction
type CompactResponse struct {
	EntriesBefore int `json:"entries_before"`
	EntriesAfter  int `json:"entries_after"`
}
