package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrite-db/zephyrite/pkg/storage"
)

func TestProtectedRoutesRequireAPIKey(t *testing.T) {
	s := testServer(t, storage.NewMemoryStorage(), "topsecret")

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/health"},
		{http.MethodGet, "/api/v1/keys"},
		{http.MethodGet, "/api/v1/keys/k"},
		{http.MethodGet, "/api/v1/stats"},
		{http.MethodPost, "/api/v1/compact"},
	}

	for _, route := range protected {
		rec := doRequest(t, s, route.method, route.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestProtectedRouteWithAPIKey(t *testing.T) {
	s := testServer(t, storage.NewMemoryStorage(), "topsecret")

	req, err := http.NewRequest(http.MethodGet, "/api/v1/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", "topsecret")

	rec := doRequestRaw(t, s, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := testServer(t, storage.NewMemoryStorage(), "")

	rec := doRequest(t, s, http.MethodGet, "/api/v2/keys", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
