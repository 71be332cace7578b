package disk

import (
	"fmt"
	"sort"
)

// IndexEntry records where a key's value lives on disk.
type IndexEntry struct {
	Key    string
	PageID uint64
	Offset uint16
	Size   uint16
}

// NewIndexEntry creates a location record.
func NewIndexEntry(key string, pageID uint64, offset, size uint16) IndexEntry {
	return IndexEntry{Key: key, PageID: pageID, Offset: offset, Size: size}
}

// EndOffset returns the first byte past the entry's data, saturating at the
// uint16 maximum rather than wrapping.
func (e IndexEntry) EndOffset() uint16 {
	end := uint32(e.Offset) + uint32(e.Size)
	if end > 0xffff {
		return 0xffff
	}
	return uint16(end)
}

// Overlaps reports whether two entries on the same page claim intersecting
// byte ranges. Adjacent ranges do not overlap; zero-size entries never
// overlap anything.
func (e IndexEntry) Overlaps(other IndexEntry) bool {
	if e.PageID != other.PageID {
		return false
	}
	if e.Size == 0 || other.Size == 0 {
		return false
	}
	return e.Offset < other.EndOffset() && other.Offset < e.EndOffset()
}

// Index maps keys to their on-disk locations.
type Index struct {
	entries map[string]IndexEntry
}

// NewIndex creates an empty location index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]IndexEntry)}
}

// Insert adds or replaces a key's location and returns the previous entry, if
// any.
func (ix *Index) Insert(entry IndexEntry) (IndexEntry, bool) {
	prev, existed := ix.entries[entry.Key]
	ix.entries[entry.Key] = entry
	return prev, existed
}

// Get returns a key's location.
func (ix *Index) Get(key string) (IndexEntry, bool) {
	e, ok := ix.entries[key]
	return e, ok
}

// Remove deletes a key's location and returns the removed entry, if any.
func (ix *Index) Remove(key string) (IndexEntry, bool) {
	e, ok := ix.entries[key]
	if ok {
		delete(ix.entries, key)
	}
	return e, ok
}

// Contains reports whether a key is indexed.
func (ix *Index) Contains(key string) bool {
	_, ok := ix.entries[key]
	return ok
}

// Keys returns all indexed keys in unspecified order.
func (ix *Index) Keys() []string {
	keys := make([]string, 0, len(ix.entries))
	for k := range ix.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of indexed keys.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Clear removes every entry.
func (ix *Index) Clear() {
	ix.entries = make(map[string]IndexEntry)
}

// EntriesOnPage returns every entry stored on the given page.
func (ix *Index) EntriesOnPage(pageID uint64) []IndexEntry {
	var out []IndexEntry
	for _, e := range ix.entries {
		if e.PageID == pageID {
			out = append(out, e)
		}
	}
	return out
}

// UsedPages returns the sorted, deduplicated page ids that hold data.
func (ix *Index) UsedPages() []uint64 {
	seen := make(map[uint64]struct{})
	for _, e := range ix.entries {
		seen[e.PageID] = struct{}{}
	}
	pages := make([]uint64, 0, len(seen))
	for id := range seen {
		pages = append(pages, id)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })
	return pages
}

// IndexStats summarizes index contents.
type IndexStats struct {
	EntryCount            int
	PageCount             int
	TotalDataSize         uint64
	AverageKeyLength      float64
	AverageValueSize      float64
	MaxValueSize          uint16
	MinValueSize          uint16
	AverageEntriesPerPage float64
}

// Stats computes summary statistics over all entries. An empty index yields
// zero values throughout.
func (ix *Index) Stats() IndexStats {
	if len(ix.entries) == 0 {
		return IndexStats{}
	}

	var (
		totalData uint64
		totalKey  int
		maxSize   uint16
		minSize   = uint16(0xffff)
	)
	for _, e := range ix.entries {
		totalData += uint64(e.Size)
		totalKey += len(e.Key)
		if e.Size > maxSize {
			maxSize = e.Size
		}
		if e.Size < minSize {
			minSize = e.Size
		}
	}

	n := len(ix.entries)
	pages := len(ix.UsedPages())
	stats := IndexStats{
		EntryCount:       n,
		PageCount:        pages,
		TotalDataSize:    totalData,
		AverageKeyLength: float64(totalKey) / float64(n),
		AverageValueSize: float64(totalData) / float64(n),
		MaxValueSize:     maxSize,
		MinValueSize:     minSize,
	}
	if pages > 0 {
		stats.AverageEntriesPerPage = float64(n) / float64(pages)
	}
	return stats
}

// Validate checks structural invariants and returns a description of each
// violation found: entries whose range exceeds the page, entries on the
// reserved header page, and pairs of entries whose ranges overlap. An empty
// slice means the index is consistent.
func (ix *Index) Validate() []string {
	var problems []string

	byPage := make(map[uint64][]IndexEntry)
	for _, e := range ix.entries {
		if e.PageID == 0 {
			problems = append(problems, fmt.Sprintf("key %q is indexed on the reserved header page", e.Key))
		}
		if uint32(e.Offset)+uint32(e.Size) > PageSize {
			problems = append(problems, fmt.Sprintf(
				"key %q exceeds page bounds: offset %d + size %d > %d", e.Key, e.Offset, e.Size, PageSize))
		}
		byPage[e.PageID] = append(byPage[e.PageID], e)
	}

	for _, entries := range byPage {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Offset != entries[j].Offset {
				return entries[i].Offset < entries[j].Offset
			}
			return entries[i].Key < entries[j].Key
		})
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if entries[i].Overlaps(entries[j]) {
					problems = append(problems, fmt.Sprintf(
						"keys %q and %q overlap on page %d",
						entries[i].Key, entries[j].Key, entries[i].PageID))
				}
			}
		}
	}

	return problems
}
