package disk

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := FileHeader{
		Version:     FormatVersion,
		PageSize:    PageSize,
		NextPageID:  42,
		FreePages:   3,
		IndexPageID: 7,
	}

	data := h.Serialize()
	require.Len(t, data, HeaderSize)

	decoded, err := DeserializeHeader(data)
	require.NoError(t, err)
	assert.Equal(t, h, decoded)
}

func TestHeaderLayout(t *testing.T) {
	h := NewFileHeader()
	data := h.Serialize()

	assert.Equal(t, Magic, string(data[:9]))
	assert.Equal(t, uint16(FormatVersion), binary.LittleEndian.Uint16(data[9:]))
	assert.Equal(t, uint16(PageSize), binary.LittleEndian.Uint16(data[11:]))
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(data[13:]))

	// Padding after the last field is zero.
	for i := 37; i < HeaderSize; i++ {
		assert.Zero(t, data[i], "byte %d", i)
	}
}

func TestHeaderRejectsBadMagic(t *testing.T) {
	data := NewFileHeader().Serialize()
	copy(data, "NOTZEPHYR")

	_, err := DeserializeHeader(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magic")
}

func TestHeaderRejectsShortInput(t *testing.T) {
	_, err := DeserializeHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
}

func TestHeaderRejectsUnsupportedVersion(t *testing.T) {
	h := NewFileHeader()
	h.Version = FormatVersion + 1
	_, err := DeserializeHeader(h.Serialize())
	require.Error(t, err)

	h.Version = 0
	_, err = DeserializeHeader(h.Serialize())
	require.Error(t, err)
}

func TestHeaderRejectsBadPageSize(t *testing.T) {
	h := NewFileHeader()
	h.PageSize = 1000
	assert.Error(t, h.Validate())

	h.PageSize = 0
	assert.Error(t, h.Validate())

	h.PageSize = 512
	assert.NoError(t, h.Validate())
}

func TestHeaderRejectsZeroNextPage(t *testing.T) {
	h := NewFileHeader()
	h.NextPageID = 0
	assert.Error(t, h.Validate())
}
