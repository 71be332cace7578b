package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKeyAccepts(t *testing.T) {
	valid := []string{
		"user:123",
		"session-abc",
		"config.json",
		"a",
		"ключ",
		"键",
		strings.Repeat("k", MaxKeySize),
	}
	for _, key := range valid {
		assert.NoError(t, ValidateKey(key), "key %q should be accepted", key)
	}
}

func TestValidateKeyRejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"leading space", " key"},
		{"trailing space", "key "},
		{"too long", strings.Repeat("k", MaxKeySize+1)},
		{"nul byte", "key\x00"},
		{"newline", "key\nvalue"},
		{"carriage return", "key\r"},
		{"tab", "key\twith\ttabs"},
		{"delete control", "key\x7f"},
		{"low control", "key\x01"},
		{"reserved prefix", ReservedKeyPrefix + "internal"},
		{"parent traversal", "a/../b"},
		{"bare traversal", ".."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			require.Error(t, err)
			assert.True(t, IsInvalidKey(err))
		})
	}
}

func TestValidateKeyStrict(t *testing.T) {
	assert.Error(t, ValidateKeyStrict("a/b", false, true))
	assert.NoError(t, ValidateKeyStrict("a/b", true, true))

	assert.Error(t, ValidateKeyStrict("a.b", true, false))
	assert.NoError(t, ValidateKeyStrict("a.b", true, true))

	assert.Error(t, ValidateKeyStrict("a::b", true, true))
	assert.Error(t, ValidateKeyStrict("a--b", true, true))
	assert.Error(t, ValidateKeyStrict("a__b", true, true))
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue(""))
	assert.NoError(t, ValidateValue("hello"))
	assert.NoError(t, ValidateValue(strings.Repeat("v", MaxValueSize)))

	err := ValidateValue(strings.Repeat("v", MaxValueSize+1))
	require.Error(t, err)
	assert.True(t, IsInvalidValue(err))
}
