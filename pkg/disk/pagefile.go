package disk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PageFile is page-granular storage over a single file. Page 0 holds the
// file header; data pages are addressed as id * PageSize. PageFile satisfies
// PageWriter so a Cache can use it as the write-back target.
//
// PageFile is not safe for concurrent use.
type PageFile struct {
	file      *os.File
	path      string
	header    FileHeader
	allocator *Allocator
}

// OpenPageFile opens an existing page file or initializes a new one. A new
// file gets a fresh header written and synced before the first allocation.
// The header persists only the free-page count, not the ids, so reopening
// starts with an empty free list: freed pages leak until the file is rebuilt,
// but an in-use page is never handed out again.
func OpenPageFile(path string) (*PageFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create page file directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open page file: %w", err)
	}

	pf := &PageFile{file: file, path: path}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat page file: %w", err)
	}

	if info.Size() == 0 {
		pf.header = NewFileHeader()
		pf.allocator = NewAllocator()
		if err := pf.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
		return pf, nil
	}

	if err := pf.readHeader(); err != nil {
		file.Close()
		return nil, err
	}
	// The exact freed ids are unknown after a restart; guessing would risk
	// re-allocating a live page. Fresh allocations mint from NextPageID.
	pf.allocator = NewAllocatorWithState(pf.header.NextPageID, nil)
	pf.header.FreePages = 0
	return pf, nil
}

func (pf *PageFile) writeHeader() error {
	page := make([]byte, PageSize)
	copy(page, pf.header.Serialize())
	if _, err := pf.file.WriteAt(page, 0); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := pf.file.Sync(); err != nil {
		return fmt.Errorf("sync header: %w", err)
	}
	return nil
}

func (pf *PageFile) readHeader() error {
	buf := make([]byte, HeaderSize)
	if _, err := pf.file.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	header, err := DeserializeHeader(buf)
	if err != nil {
		return fmt.Errorf("invalid page file %s: %w", pf.path, err)
	}
	if header.PageSize != PageSize {
		return fmt.Errorf("page file %s uses page size %d, this build supports %d",
			pf.path, header.PageSize, PageSize)
	}
	pf.header = header
	return nil
}

// AllocatePage returns a usable page id, reusing freed ids before extending
// the file.
func (pf *PageFile) AllocatePage() (uint64, error) {
	id := pf.allocator.Allocate()
	pf.syncHeaderState()
	if err := pf.writeHeader(); err != nil {
		return 0, err
	}
	return id, nil
}

// FreePage returns a page id to the free list. Freeing the header page is an
// error; freeing an already-free id is a no-op.
func (pf *PageFile) FreePage(id uint64) error {
	if id == 0 {
		return fmt.Errorf("page 0 is reserved for the file header")
	}
	if id >= pf.allocator.NextPageID() {
		return fmt.Errorf("page %d was never allocated", id)
	}
	pf.allocator.Free(id)
	pf.syncHeaderState()
	return pf.writeHeader()
}

func (pf *PageFile) syncHeaderState() {
	pf.header.NextPageID = pf.allocator.NextPageID()
	pf.header.FreePages = uint64(pf.allocator.FreeCount())
}

// ReadPage reads a full page from disk. Reading past the end of the file
// returns a zeroed page, matching never-written allocations.
func (pf *PageFile) ReadPage(id uint64) (*Page, error) {
	if id == 0 {
		return nil, fmt.Errorf("page 0 is reserved for the file header")
	}
	page := NewPage(id)
	_, err := pf.file.ReadAt(page.Bytes(), int64(id)*PageSize)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return page, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", id, err)
	}
	return page, nil
}

// WritePage writes a full page to disk and clears its dirty flag.
func (pf *PageFile) WritePage(page *Page) error {
	if page.ID == 0 {
		return fmt.Errorf("page 0 is reserved for the file header")
	}
	if _, err := pf.file.WriteAt(page.Bytes(), int64(page.ID)*PageSize); err != nil {
		return fmt.Errorf("write page %d: %w", page.ID, err)
	}
	page.ClearDirty()
	return nil
}

// Header returns a copy of the current header.
func (pf *PageFile) Header() FileHeader {
	return pf.header
}

// SetIndexPageID records where the serialized index lives and persists the
// header.
func (pf *PageFile) SetIndexPageID(id uint64) error {
	pf.header.IndexPageID = id
	return pf.writeHeader()
}

// Path returns the backing file path.
func (pf *PageFile) Path() string {
	return pf.path
}

// Sync flushes file contents to stable storage.
func (pf *PageFile) Sync() error {
	if err := pf.file.Sync(); err != nil {
		return fmt.Errorf("sync page file: %w", err)
	}
	return nil
}

// Close persists the header and closes the file.
func (pf *PageFile) Close() error {
	pf.syncHeaderState()
	if err := pf.writeHeader(); err != nil {
		pf.file.Close()
		return err
	}
	return pf.file.Close()
}

var _ PageWriter = (*PageFile)(nil)
