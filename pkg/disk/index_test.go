package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexEntryEndOffset(t *testing.T) {
	e := NewIndexEntry("k", 1, 100, 50)
	assert.Equal(t, uint16(150), e.EndOffset())

	// Saturates instead of wrapping.
	e = NewIndexEntry("k", 1, 0xfff0, 0x100)
	assert.Equal(t, uint16(0xffff), e.EndOffset())
}

func TestIndexEntryOverlaps(t *testing.T) {
	a := NewIndexEntry("a", 1, 0, 100)
	b := NewIndexEntry("b", 1, 50, 100)
	c := NewIndexEntry("c", 1, 100, 100)
	d := NewIndexEntry("d", 2, 0, 100)
	zero := NewIndexEntry("z", 1, 10, 0)

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "adjacent ranges do not overlap")
	assert.False(t, a.Overlaps(d), "different pages never overlap")
	assert.False(t, a.Overlaps(zero), "zero-size entries never overlap")
}

func TestIndexInsertGetRemove(t *testing.T) {
	ix := NewIndex()

	_, existed := ix.Insert(NewIndexEntry("k", 1, 0, 10))
	assert.False(t, existed)

	prev, existed := ix.Insert(NewIndexEntry("k", 2, 0, 20))
	assert.True(t, existed)
	assert.Equal(t, uint64(1), prev.PageID)

	e, ok := ix.Get("k")
	require.True(t, ok)
	assert.Equal(t, uint64(2), e.PageID)
	assert.True(t, ix.Contains("k"))
	assert.Equal(t, 1, ix.Len())

	removed, ok := ix.Remove("k")
	require.True(t, ok)
	assert.Equal(t, uint64(2), removed.PageID)
	assert.False(t, ix.Contains("k"))

	_, ok = ix.Remove("k")
	assert.False(t, ok)
}

func TestIndexPages(t *testing.T) {
	ix := NewIndex()
	ix.Insert(NewIndexEntry("a", 3, 0, 10))
	ix.Insert(NewIndexEntry("b", 1, 0, 10))
	ix.Insert(NewIndexEntry("c", 3, 100, 10))

	assert.Equal(t, []uint64{1, 3}, ix.UsedPages())
	assert.Len(t, ix.EntriesOnPage(3), 2)
	assert.Empty(t, ix.EntriesOnPage(9))
}

func TestIndexClear(t *testing.T) {
	ix := NewIndex()
	ix.Insert(NewIndexEntry("a", 1, 0, 10))
	ix.Clear()
	assert.Equal(t, 0, ix.Len())
}

func TestIndexStats(t *testing.T) {
	ix := NewIndex()
	assert.Equal(t, IndexStats{}, ix.Stats())

	ix.Insert(NewIndexEntry("ab", 1, 0, 10))
	ix.Insert(NewIndexEntry("cdef", 1, 10, 30))
	ix.Insert(NewIndexEntry("gh", 2, 0, 20))

	stats := ix.Stats()
	assert.Equal(t, 3, stats.EntryCount)
	assert.Equal(t, 2, stats.PageCount)
	assert.Equal(t, uint64(60), stats.TotalDataSize)
	assert.InDelta(t, 8.0/3.0, stats.AverageKeyLength, 1e-9)
	assert.InDelta(t, 20.0, stats.AverageValueSize, 1e-9)
	assert.Equal(t, uint16(30), stats.MaxValueSize)
	assert.Equal(t, uint16(10), stats.MinValueSize)
	assert.InDelta(t, 1.5, stats.AverageEntriesPerPage, 1e-9)
}

func TestIndexValidateClean(t *testing.T) {
	ix := NewIndex()
	ix.Insert(NewIndexEntry("a", 1, 0, 100))
	ix.Insert(NewIndexEntry("b", 1, 100, 100))
	ix.Insert(NewIndexEntry("c", 2, 0, 100))

	assert.Empty(t, ix.Validate())
}

func TestIndexValidateDetectsOverlap(t *testing.T) {
	ix := NewIndex()
	ix.Insert(NewIndexEntry("a", 1, 0, 100))
	ix.Insert(NewIndexEntry("b", 1, 50, 100))

	problems := ix.Validate()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "overlap")
}

func TestIndexValidateDetectsHeaderPage(t *testing.T) {
	ix := NewIndex()
	ix.Insert(NewIndexEntry("a", 0, 0, 10))

	problems := ix.Validate()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "header page")
}

func TestIndexValidateDetectsOutOfBounds(t *testing.T) {
	ix := NewIndex()
	ix.Insert(NewIndexEntry("a", 1, 4000, 200))

	problems := ix.Validate()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "page bounds")
}
