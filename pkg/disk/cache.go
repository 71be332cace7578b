package disk

import (
	"container/list"
	"fmt"
)

// PageWriter is the backing store a cache writes dirty pages to on eviction
// and flush.
type PageWriter interface {
	WritePage(p *Page) error
}

// Cache is a bounded page cache with least-recently-used eviction. Evicting
// a dirty page writes it back to the backing store first; the cache never
// silently drops unflushed modifications.
//
// Cache is not safe for concurrent use; callers needing shared access must
// serialize externally.
type Cache struct {
	capacity int
	store    PageWriter
	pages    map[uint64]*list.Element
	// order holds page ids, least recently used at the front.
	order *list.List

	hits   uint64
	misses uint64
}

// NewCache creates a cache holding at most capacity pages, writing dirty
// evictees to store. A capacity of zero retains nothing. store may be nil,
// in which case evicting or flushing a dirty page is an error.
func NewCache(capacity int, store PageWriter) *Cache {
	return &Cache{
		capacity: capacity,
		store:    store,
		pages:    make(map[uint64]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached page and promotes it to most recently used.
func (c *Cache) Get(id uint64) (*Page, bool) {
	elem, ok := c.pages[id]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToBack(elem)
	return elem.Value.(*Page), true
}

// Insert adds a page, evicting the LRU victim first when at capacity.
// Inserting a page id that is already cached replaces it (the replaced copy
// is written back if dirty).
func (c *Cache) Insert(page *Page) error {
	if c.capacity == 0 {
		// Nothing is retained; a dirty page still must not be dropped.
		if page.IsDirty() {
			if err := c.writeBack(page); err != nil {
				return err
			}
		}
		return nil
	}

	if elem, ok := c.pages[page.ID]; ok {
		old := elem.Value.(*Page)
		if old != page && old.IsDirty() {
			if err := c.writeBack(old); err != nil {
				return err
			}
		}
		elem.Value = page
		c.order.MoveToBack(elem)
		return nil
	}

	for len(c.pages) >= c.capacity {
		if err := c.evictLRU(); err != nil {
			return err
		}
	}

	c.pages[page.ID] = c.order.PushBack(page)
	return nil
}

// evictLRU removes the least recently used page, writing it back first if
// dirty.
func (c *Cache) evictLRU() error {
	front := c.order.Front()
	if front == nil {
		return nil
	}
	victim := front.Value.(*Page)
	if victim.IsDirty() {
		if err := c.writeBack(victim); err != nil {
			return err
		}
	}
	c.order.Remove(front)
	delete(c.pages, victim.ID)
	return nil
}

func (c *Cache) writeBack(page *Page) error {
	if c.store == nil {
		return fmt.Errorf("cannot write back dirty page %d: no backing store", page.ID)
	}
	if err := c.store.WritePage(page); err != nil {
		return fmt.Errorf("write back page %d: %w", page.ID, err)
	}
	page.ClearDirty()
	return nil
}

// Remove drops a page from the cache without write-back and returns it; the
// caller takes ownership of any unflushed modifications.
func (c *Cache) Remove(id uint64) (*Page, bool) {
	elem, ok := c.pages[id]
	if !ok {
		return nil, false
	}
	c.order.Remove(elem)
	delete(c.pages, id)
	return elem.Value.(*Page), true
}

// Contains reports whether a page id is cached.
func (c *Cache) Contains(id uint64) bool {
	_, ok := c.pages[id]
	return ok
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	return len(c.pages)
}

// Capacity returns the maximum number of cached pages.
func (c *Cache) Capacity() int {
	return c.capacity
}

// DirtyPages returns the ids of all dirty cached pages.
func (c *Cache) DirtyPages() []uint64 {
	var ids []uint64
	for id, elem := range c.pages {
		if elem.Value.(*Page).IsDirty() {
			ids = append(ids, id)
		}
	}
	return ids
}

// FlushDirtyPages writes back every dirty page, clears its flag, and returns
// the flushed ids.
func (c *Cache) FlushDirtyPages() ([]uint64, error) {
	var flushed []uint64
	for id, elem := range c.pages {
		page := elem.Value.(*Page)
		if !page.IsDirty() {
			continue
		}
		if err := c.writeBack(page); err != nil {
			return flushed, err
		}
		flushed = append(flushed, id)
	}
	return flushed, nil
}

// Clear flushes dirty pages, then empties the cache.
func (c *Cache) Clear() error {
	if _, err := c.FlushDirtyPages(); err != nil {
		return err
	}
	c.pages = make(map[uint64]*list.Element, c.capacity)
	c.order.Init()
	return nil
}

// CacheStats describes cache occupancy and effectiveness.
type CacheStats struct {
	Capacity    int
	CachedPages int
	DirtyPages  int
	HitRatio    float64
}

// Stats returns current cache statistics.
func (c *Cache) Stats() CacheStats {
	dirty := 0
	for _, elem := range c.pages {
		if elem.Value.(*Page).IsDirty() {
			dirty++
		}
	}
	ratio := 0.0
	if total := c.hits + c.misses; total > 0 {
		ratio = float64(c.hits) / float64(total)
	}
	return CacheStats{
		Capacity:    c.capacity,
		CachedPages: len(c.pages),
		DirtyPages:  dirty,
		HitRatio:    ratio,
	}
}
