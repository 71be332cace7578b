package disk

import (
	"encoding/binary"
	"fmt"
)

const (
	// Magic identifies a Zephyrite page file.
	Magic = "ZEPHYRITE"
	// FormatVersion is the newest on-disk format this build writes.
	FormatVersion = 1
	// HeaderSize is the serialized header length. The header occupies the
	// start of page 0; the remainder of the page is zero.
	HeaderSize = 64
)

// FileHeader is the fixed metadata block at the start of a page file. All
// integer fields are little-endian.
//
// Layout:
//
//	offset 0   magic, 9 bytes
//	offset 9   format version, uint16
//	offset 11  page size, uint16
//	offset 13  next page id, uint64
//	offset 21  free page count, uint64
//	offset 29  index page id, uint64
//	offset 37  zero padding to 64 bytes
type FileHeader struct {
	Version     uint16
	PageSize    uint16
	NextPageID  uint64
	FreePages   uint64
	IndexPageID uint64
}

// NewFileHeader creates a header for a fresh file: current format version,
// standard page size, first allocatable page id 1, nothing free, no index
// page.
func NewFileHeader() FileHeader {
	return FileHeader{
		Version:    FormatVersion,
		PageSize:   PageSize,
		NextPageID: 1,
	}
}

// Serialize encodes the header into its fixed 64-byte form.
func (h FileHeader) Serialize() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic)
	binary.LittleEndian.PutUint16(buf[9:], h.Version)
	binary.LittleEndian.PutUint16(buf[11:], h.PageSize)
	binary.LittleEndian.PutUint64(buf[13:], h.NextPageID)
	binary.LittleEndian.PutUint64(buf[21:], h.FreePages)
	binary.LittleEndian.PutUint64(buf[29:], h.IndexPageID)
	return buf
}

// DeserializeHeader decodes and validates a header.
func DeserializeHeader(data []byte) (FileHeader, error) {
	if len(data) < HeaderSize {
		return FileHeader{}, fmt.Errorf("header too short: %d bytes, need %d", len(data), HeaderSize)
	}
	if string(data[:len(Magic)]) != Magic {
		return FileHeader{}, fmt.Errorf("bad magic: not a zephyrite page file")
	}
	h := FileHeader{
		Version:     binary.LittleEndian.Uint16(data[9:]),
		PageSize:    binary.LittleEndian.Uint16(data[11:]),
		NextPageID:  binary.LittleEndian.Uint64(data[13:]),
		FreePages:   binary.LittleEndian.Uint64(data[21:]),
		IndexPageID: binary.LittleEndian.Uint64(data[29:]),
	}
	if err := h.Validate(); err != nil {
		return FileHeader{}, err
	}
	return h, nil
}

// Validate checks the header invariants: a known format version, a power-of-two
// page size, and a nonzero next page id (id 0 belongs to the header).
func (h FileHeader) Validate() error {
	if h.Version == 0 || h.Version > FormatVersion {
		return fmt.Errorf("unsupported format version %d (max %d)", h.Version, FormatVersion)
	}
	if h.PageSize == 0 || h.PageSize&(h.PageSize-1) != 0 {
		return fmt.Errorf("page size %d is not a power of two", h.PageSize)
	}
	if h.NextPageID == 0 {
		return fmt.Errorf("next page id must not be zero")
	}
	return nil
}
