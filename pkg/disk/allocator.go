package disk

import "sort"

// Allocator hands out page ids. Ids start at 1 (id 0 is the file header).
// Freed ids are kept sorted ascending and the next allocation reuses the
// largest free id before minting a new sequential one; allocation order is
// deterministic.
type Allocator struct {
	nextPage uint64
	free     []uint64
}

// NewAllocator creates an allocator with no allocated pages.
func NewAllocator() *Allocator {
	return &Allocator{nextPage: 1}
}

// NewAllocatorWithState restores an allocator from persisted state. The free
// list is re-sorted defensively.
func NewAllocatorWithState(nextPage uint64, free []uint64) *Allocator {
	list := append([]uint64(nil), free...)
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return &Allocator{nextPage: nextPage, free: list}
}

// Allocate returns the largest free id, or mints a new sequential id when
// the free list is empty.
func (a *Allocator) Allocate() uint64 {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		return id
	}
	id := a.nextPage
	a.nextPage++
	return id
}

// Free returns an id to the free list, keeping it sorted. Freeing an
// already-free id is a no-op.
func (a *Allocator) Free(id uint64) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i] >= id })
	if i < len(a.free) && a.free[i] == id {
		return
	}
	a.free = append(a.free, 0)
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = id
}

// NextPageID returns the next id that would be minted.
func (a *Allocator) NextPageID() uint64 {
	return a.nextPage
}

// FreePages returns the free list in ascending order.
func (a *Allocator) FreePages() []uint64 {
	return append([]uint64(nil), a.free...)
}

// FreeCount returns the number of free pages.
func (a *Allocator) FreeCount() int {
	return len(a.free)
}

// TotalPages returns minted pages plus free-list entries, matching the
// header accounting.
func (a *Allocator) TotalPages() uint64 {
	return a.nextPage - 1 + uint64(len(a.free))
}
