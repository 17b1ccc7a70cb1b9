package resource

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathMap_SetGetDelete(t *testing.T) {
	m := NewPathMap[int]()

	m.Set(NewKey("/a/b/c"), 1)
	m.Set(NewKey("/a/b/d"), 2)
	m.Set(NewKey("/a"), 3)

	assert.Equal(t, 3, m.Len())

	v, ok := m.Get(NewKey("/a/b/c"))
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// Interior node without a value is not an entry.
	_, ok = m.Get(NewKey("/a/b"))
	assert.False(t, ok)
	assert.False(t, m.Has(NewKey("/a/b")))
	assert.True(t, m.Has(NewKey("/a")))

	assert.True(t, m.Delete(NewKey("/a/b/c")))
	assert.False(t, m.Delete(NewKey("/a/b/c")))
	assert.Equal(t, 2, m.Len())
	assert.False(t, m.Has(NewKey("/a/b/c")))
	assert.True(t, m.Has(NewKey("/a/b/d")))
}

func TestPathMap_SetReplaces(t *testing.T) {
	m := NewPathMap[string]()

	m.Set(NewKey("/x"), "old")
	m.Set(NewKey("/x"), "new")

	assert.Equal(t, 1, m.Len())
	v, _ := m.Get(NewKey("/x"))
	assert.Equal(t, "new", v)
}

func TestPathMap_DeletePrunesEmptyBranches(t *testing.T) {
	m := NewPathMap[int]()

	m.Set(NewKey("/a/b/c/d"), 1)
	m.Set(NewKey("/a/x"), 2)

	require.True(t, m.Delete(NewKey("/a/b/c/d")))

	// The /a/b branch is gone entirely; /a/x survives.
	assert.Len(t, m.root.children["a"].children, 1)
	assert.True(t, m.Has(NewKey("/a/x")))
}

func TestPathMap_RangePrefix(t *testing.T) {
	m := NewPathMap[int]()

	m.Set(NewKey("/notes/todo.md"), 1)
	m.Set(NewKey("/notes/deep/plan.md"), 2)
	m.Set(NewKey("/other/file.md"), 3)

	var keys []string
	m.RangePrefix(NewKey("/notes"), func(k Key, _ int) bool {
		keys = append(keys, k.String())
		return true
	})
	sort.Strings(keys)

	assert.Equal(t, []string{"/notes/deep/plan.md", "/notes/todo.md"}, keys)
}

func TestPathMap_RangePrefixRoot(t *testing.T) {
	m := NewPathMap[int]()

	m.Set(NewKey("/a"), 1)
	m.Set(NewKey("/b/c"), 2)

	count := 0
	m.RangePrefix(NewKey("/"), func(Key, int) bool {
		count++
		return true
	})

	assert.Equal(t, 2, count)
}

func TestPathMap_RangeStopsEarly(t *testing.T) {
	m := NewPathMap[int]()

	m.Set(NewKey("/a"), 1)
	m.Set(NewKey("/b"), 2)
	m.Set(NewKey("/c"), 3)

	count := 0
	m.Range(func(Key, int) bool {
		count++
		return false
	})

	assert.Equal(t, 1, count)
}

func TestPathMap_Keys(t *testing.T) {
	m := NewPathMap[int]()

	m.Set(NewKey("/a/b"), 1)
	m.Set(NewKey("/c"), 2)

	keys := m.Keys()
	strs := make([]string, len(keys))
	for i, k := range keys {
		strs[i] = k.String()
	}
	sort.Strings(strs)

	assert.Equal(t, []string{"/a/b", "/c"}, strs)
}
