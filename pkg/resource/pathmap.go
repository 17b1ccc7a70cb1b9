package resource

// PathMap is a map from Key to V stored as a trie over path segments.
// Lookups cost the segment depth of the key, and all entries below a
// folder can be visited without scanning the whole map.
//
// PathMap is not safe for concurrent use; callers guard it with their
// own lock.
type PathMap[V any] struct {
	root *pathNode[V]
	size int
}

type pathNode[V any] struct {
	children map[string]*pathNode[V]
	value    V
	hasValue bool
}

// NewPathMap creates an empty PathMap.
func NewPathMap[V any]() *PathMap[V] {
	return &PathMap[V]{root: &pathNode[V]{}}
}

// Len returns the number of stored entries.
func (m *PathMap[V]) Len() int {
	return m.size
}

// Get returns the value stored under key.
func (m *PathMap[V]) Get(key Key) (V, bool) {
	n := m.lookup(key)
	if n == nil || !n.hasValue {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Has reports whether key has a stored value.
func (m *PathMap[V]) Has(key Key) bool {
	n := m.lookup(key)
	return n != nil && n.hasValue
}

// Set stores value under key, replacing any previous value.
func (m *PathMap[V]) Set(key Key, value V) {
	n := m.root
	for _, seg := range key.Segments() {
		if n.children == nil {
			n.children = make(map[string]*pathNode[V])
		}
		child, ok := n.children[seg]
		if !ok {
			child = &pathNode[V]{}
			n.children[seg] = child
		}
		n = child
	}
	if !n.hasValue {
		m.size++
	}
	n.value = value
	n.hasValue = true
}

// Delete removes the entry under key, pruning trie branches that become
// empty. It returns true if an entry was removed.
func (m *PathMap[V]) Delete(key Key) bool {
	segs := key.Segments()
	// Track the path down so empty branches can be pruned on the way back.
	nodes := make([]*pathNode[V], 0, len(segs)+1)
	n := m.root
	nodes = append(nodes, n)
	for _, seg := range segs {
		child, ok := n.children[seg]
		if !ok {
			return false
		}
		n = child
		nodes = append(nodes, n)
	}
	if !n.hasValue {
		return false
	}
	var zero V
	n.value = zero
	n.hasValue = false
	m.size--

	for i := len(nodes) - 1; i > 0; i-- {
		node := nodes[i]
		if node.hasValue || len(node.children) > 0 {
			break
		}
		delete(nodes[i-1].children, segs[i-1])
	}
	return true
}

// Range visits every entry. Returning false from fn stops the walk.
func (m *PathMap[V]) Range(fn func(Key, V) bool) {
	m.walk(m.root, "", fn)
}

// RangePrefix visits every entry at or below prefix. Returning false from
// fn stops the walk.
func (m *PathMap[V]) RangePrefix(prefix Key, fn func(Key, V) bool) {
	n := m.lookup(prefix)
	if n == nil {
		return
	}
	base := string(prefix)
	if base == "/" {
		base = ""
	}
	m.walk(n, base, fn)
}

// Keys returns all stored keys.
func (m *PathMap[V]) Keys() []Key {
	keys := make([]Key, 0, m.size)
	m.Range(func(k Key, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (m *PathMap[V]) lookup(key Key) *pathNode[V] {
	n := m.root
	for _, seg := range key.Segments() {
		child, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func (m *PathMap[V]) walk(n *pathNode[V], prefix string, fn func(Key, V) bool) bool {
	if n.hasValue {
		key := prefix
		if key == "" {
			key = "/"
		}
		if !fn(Key(key), n.value) {
			return false
		}
	}
	for seg, child := range n.children {
		if !m.walk(child, prefix+"/"+seg, fn) {
			return false
		}
	}
	return true
}
