// Package disk implements the page-oriented on-disk storage building blocks:
// fixed-size pages, the free-page allocator, an LRU page cache with
// write-back, the key location index, and the page file format.
package disk

import "fmt"

// PageSize is the fixed page size in bytes.
const PageSize = 4096

// Page is a fixed-size block identified by a 64-bit id. Page id 0 is
// reserved for the file header. The page cache is the sole mutator of the
// dirty flag once a page is cached.
type Page struct {
	ID    uint64
	data  []byte
	dirty bool
}

// NewPage creates a zeroed page with the given id.
func NewPage(id uint64) *Page {
	return &Page{ID: id, data: make([]byte, PageSize)}
}

// PageFromData creates a page from existing bytes, zero-padding to PageSize.
// Data longer than a page is an error.
func PageFromData(id uint64, data []byte) (*Page, error) {
	if len(data) > PageSize {
		return nil, fmt.Errorf("data exceeds page size: %d > %d", len(data), PageSize)
	}
	buf := make([]byte, PageSize)
	copy(buf, data)
	return &Page{ID: id, data: buf}, nil
}

// Write copies data into the page at offset and marks the page dirty.
// Writing beyond the page bound is an error and leaves the page untouched.
func (p *Page) Write(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > PageSize {
		return fmt.Errorf("write exceeds page size: offset %d, length %d", offset, len(data))
	}
	copy(p.data[offset:], data)
	p.dirty = true
	return nil
}

// Read returns a copy of length bytes starting at offset. Reading beyond the
// page bound is an error.
func (p *Page) Read(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > PageSize {
		return nil, fmt.Errorf("read exceeds page size: offset %d, length %d", offset, length)
	}
	out := make([]byte, length)
	copy(out, p.data[offset:offset+length])
	return out, nil
}

// Bytes returns the page's backing bytes, always PageSize long. Callers must
// not retain the slice across writes.
func (p *Page) Bytes() []byte {
	return p.data
}

// MarkDirty flags the page as modified.
func (p *Page) MarkDirty() {
	p.dirty = true
}

// ClearDirty resets the dirty flag after a write-back.
func (p *Page) ClearDirty() {
	p.dirty = false
}

// IsDirty reports whether the page has unwritten modifications.
func (p *Page) IsDirty() bool {
	return p.dirty
}

// Size returns the page size in bytes.
func (p *Page) Size() int {
	return len(p.data)
}
