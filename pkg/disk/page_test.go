package disk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageZeroed(t *testing.T) {
	p := NewPage(3)
	assert.Equal(t, uint64(3), p.ID)
	assert.Equal(t, PageSize, p.Size())
	assert.False(t, p.IsDirty())
	assert.True(t, bytes.Equal(p.Bytes(), make([]byte, PageSize)))
}

func TestPageFromData(t *testing.T) {
	p, err := PageFromData(1, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, PageSize, p.Size())

	got, err := p.Read(0, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	// Bytes beyond the input are zero padding.
	tail, err := p.Read(5, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, tail)
}

func TestPageFromDataTooLarge(t *testing.T) {
	_, err := PageFromData(1, make([]byte, PageSize+1))
	require.Error(t, err)
}

func TestPageWriteRead(t *testing.T) {
	p := NewPage(1)

	require.NoError(t, p.Write(100, []byte("data")))
	assert.True(t, p.IsDirty())

	got, err := p.Read(100, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestPageWriteBounds(t *testing.T) {
	p := NewPage(1)

	assert.Error(t, p.Write(-1, []byte("x")))
	assert.Error(t, p.Write(PageSize-1, []byte("xy")))
	assert.NoError(t, p.Write(PageSize-1, []byte("x")))

	// A rejected write must not set the dirty flag by itself.
	q := NewPage(2)
	require.Error(t, q.Write(PageSize, []byte("x")))
	assert.False(t, q.IsDirty())
}

func TestPageReadBounds(t *testing.T) {
	p := NewPage(1)

	_, err := p.Read(-1, 1)
	assert.Error(t, err)
	_, err = p.Read(0, PageSize+1)
	assert.Error(t, err)
	_, err = p.Read(PageSize, 1)
	assert.Error(t, err)

	got, err := p.Read(0, PageSize)
	require.NoError(t, err)
	assert.Len(t, got, PageSize)
}

func TestPageReadReturnsCopy(t *testing.T) {
	p := NewPage(1)
	require.NoError(t, p.Write(0, []byte("abc")))

	got, err := p.Read(0, 3)
	require.NoError(t, err)
	got[0] = 'z'

	again, err := p.Read(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestPageDirtyFlag(t *testing.T) {
	p := NewPage(1)
	p.MarkDirty()
	assert.True(t, p.IsDirty())
	p.ClearDirty()
	assert.False(t, p.IsDirty())
}
