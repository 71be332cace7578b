package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := NewKeyNotFound("mykey")
	assert.True(t, IsKeyNotFound(err))
	assert.False(t, IsInvalidKey(err))
	assert.Contains(t, err.Error(), "mykey")

	assert.True(t, IsInvalidKey(NewInvalidKey("bad")))
	assert.True(t, IsInvalidValue(NewInvalidValue("bad")))
	assert.True(t, IsInternal(NewInternal("boom")))
	assert.True(t, IsInternal(NewInternalf("boom %d", 42)))
	assert.True(t, IsUnsupportedOperation(NewUnsupportedOperation("nope")))
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewKeyNotFound("k"))
	assert.True(t, IsKeyNotFound(wrapped))

	var target *Error
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, KindKeyNotFound, target.Kind)
}

func TestErrorKindMismatch(t *testing.T) {
	assert.False(t, IsKeyNotFound(errors.New("plain")))
	assert.False(t, IsKeyNotFound(nil))
}
