// Package splay implements an ordered map backed by a splay tree. Splaying
// is done top-down, largely following the classic c code by Sleator:
//
//	ftp://ftp.cs.cmu.edu/usr/ftp/usr/sleator/splaying/top-down-splay.c
//
// Beyond exact-key lookup the map exposes a generalized search primitive
// driven by an arbitrary three-way predicate over key/value pairs, plus a
// non-restructuring lower-bound search. Splay trees are self-modifying:
// every lookup, even a logically read-only one, restructures the tree so
// that recently accessed keys stay cheap to reach. A SplayMap must therefore
// never be shared between goroutines without external locking.
package splay

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// SplayMap is an ordered map with unique keys. The zero value is an empty
// map ready for use.
type SplayMap[K constraints.Ordered, V any] struct {
	root *node[K, V]
	size int
}

// New returns an empty SplayMap.
func New[K constraints.Ordered, V any]() *SplayMap[K, V] {
	return &SplayMap[K, V]{}
}

// FromEntries builds a map from a sequence of entries. On duplicate keys the
// last value wins.
func FromEntries[K constraints.Ordered, V any](entries []Entry[K, V]) *SplayMap[K, V] {
	var m SplayMap[K, V]
	m.Extend(entries...)
	return &m
}

func compare[K constraints.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// splay performs a top-down splay of the tree driven by cmp, which reports
// <0, 0, or >0 to steer the descent left, stop, or steer it right. When it
// returns, the root holds the node cmp converged on: a node judged 0 if the
// descent reached one, otherwise the closest node visited.
//
// The descent maintains two accumulator chains hung off a local sentinel:
// nodes cut away while moving left collect into the right chain (they are
// all greater than anything still to be visited) and nodes cut away while
// moving right collect into the left chain. Two successive steps in the same
// direction rotate first (zig-zig) so that runs flatten. The final graft of
// the chains onto the terminal node is a constant number of pointer moves.
func (m *SplayMap[K, V]) splay(cmp func(K, V) int) {
	t := m.root
	var scratch node[K, V]
	l, r := &scratch, &scratch
	for {
		c := cmp(t.kv.Key, t.kv.Value)
		if c == 0 {
			break
		}
		if c < 0 {
			if t.left == nil {
				break
			}
			if cmp(t.left.kv.Key, t.left.kv.Value) < 0 {
				// Zig-zig: rotate right before linking.
				y := t.left
				t.left = y.right
				y.right = t
				t = y
				if t.left == nil {
					break
				}
			}
			r.left = t
			r = t
			t = t.left
		} else {
			if t.right == nil {
				break
			}
			if cmp(t.right.kv.Key, t.right.kv.Value) > 0 {
				y := t.right
				t.right = y.left
				y.left = t
				t = y
				if t.right == nil {
					break
				}
			}
			l.right = t
			l = t
			t = t.right
		}
	}
	l.right = t.left
	r.left = t.right
	t.left = scratch.right
	t.right = scratch.left
	m.root = t
}

func (m *SplayMap[K, V]) splayKey(key K) {
	m.splay(func(k K, _ V) int { return compare(key, k) })
}

// Len returns the number of entries in the map.
func (m *SplayMap[K, V]) Len() int {
	return m.size
}

// Get returns the value stored under key. Like every access, it splays the
// tree, so the receiver is a pointer even though the map's contents do not
// change.
func (m *SplayMap[K, V]) Get(key K) (V, bool) {
	if v := m.GetMut(key); v != nil {
		return *v, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to the value stored under key, or nil if the key
// is absent. The pointer stays valid until the entry is removed.
func (m *SplayMap[K, V]) GetMut(key K) *V {
	if m.root == nil {
		return nil
	}
	m.splayKey(key)
	if m.root.kv.Key == key {
		return &m.root.kv.Value
	}
	return nil
}

// GetWith searches the map with an arbitrary three-way predicate instead of
// a key comparison: cmp reports <0 if the target lies before the visited
// entry, >0 if after, and 0 on a match. This permits searches such as "the
// entry whose interval contains position x". The splay is driven by cmp, and
// the root entry is returned iff cmp judges it a match afterwards. The
// returned entry may be mutated in place through the pointer.
func (m *SplayMap[K, V]) GetWith(cmp func(K, V) int) *Entry[K, V] {
	if m.root == nil {
		return nil
	}
	m.splay(cmp)
	if cmp(m.root.kv.Key, m.root.kv.Value) == 0 {
		return &m.root.kv
	}
	return nil
}

// LowerBoundWith returns the lowest-keyed entry cmp accepts, without
// restructuring the tree. cmp must be monotonic in the key: <0 means this
// entry qualifies but an earlier one might too, 0 means this entry is the
// answer, >0 means no entry at or before this one qualifies.
func (m *SplayMap[K, V]) LowerBoundWith(cmp func(K, V) int) (Entry[K, V], bool) {
	if e := m.root.lowerBound(cmp); e != nil {
		return *e, true
	}
	var zero Entry[K, V]
	return zero, false
}

func (n *node[K, V]) lowerBound(cmp func(K, V) int) *Entry[K, V] {
	if n == nil {
		return nil
	}
	switch c := cmp(n.kv.Key, n.kv.Value); {
	case c < 0:
		if e := n.left.lowerBound(cmp); e != nil {
			return e
		}
		return &n.kv
	case c > 0:
		return n.right.lowerBound(cmp)
	default:
		return &n.kv
	}
}

// Insert stores value under key. If the key was already present its previous
// value is returned with replaced set.
func (m *SplayMap[K, V]) Insert(key K, value V) (old V, replaced bool) {
	if m.root == nil {
		m.root = &node[K, V]{kv: Entry[K, V]{Key: key, Value: value}}
		m.size++
		return old, false
	}
	m.splayKey(key)
	root := m.root
	switch c := compare(key, root.kv.Key); {
	case c == 0:
		old, root.kv.Value = root.kv.Value, value
		return old, true
	case c < 0:
		// Split: everything at or below root.left is less than key, the
		// former root and its right subtree are greater.
		m.root = &node[K, V]{
			kv:    Entry[K, V]{Key: key, Value: value},
			left:  root.popLeft(),
			right: root,
		}
	default:
		m.root = &node[K, V]{
			kv:    Entry[K, V]{Key: key, Value: value},
			left:  root,
			right: root.popRight(),
		}
	}
	m.size++
	return old, false
}

// Extend inserts each entry in order; on duplicate keys the last value wins.
func (m *SplayMap[K, V]) Extend(entries ...Entry[K, V]) {
	for _, e := range entries {
		m.Insert(e.Key, e.Value)
	}
}

// Remove deletes key from the map, returning the value that was stored
// under it.
func (m *SplayMap[K, V]) Remove(key K) (V, bool) {
	var zero V
	if m.root == nil {
		return zero, false
	}
	m.splayKey(key)
	if m.root.kv.Key != key {
		return zero, false
	}
	root := m.root
	left, right := root.popLeft(), root.popRight()
	if left == nil {
		m.root = right
	} else {
		// Re-splaying the left subtree on the removed key brings its
		// maximum to the top, which has a free right slot.
		m.root = left
		m.splayKey(key)
		m.root.right = right
	}
	m.size--
	return root.kv.Value, true
}

// Clear empties the map. Unlinking the root is all that is needed: the
// collector reclaims the nodes without walking the tree on this stack.
func (m *SplayMap[K, V]) Clear() {
	m.root = nil
	m.size = 0
}

// MustGet is like Get but treats an absent key as a contract violation.
func (m *SplayMap[K, V]) MustGet(key K) V {
	v, ok := m.Get(key)
	if !ok {
		panic("splay: key not present in map")
	}
	return v
}

// MustGetMut is like GetMut but treats an absent key as a contract
// violation.
func (m *SplayMap[K, V]) MustGetMut(key K) *V {
	v := m.GetMut(key)
	if v == nil {
		panic("splay: key not present in map")
	}
	return v
}

// Clone returns a deep copy with independent ownership of every node.
func (m *SplayMap[K, V]) Clone() *SplayMap[K, V] {
	return &SplayMap[K, V]{
		root: m.root.clone(),
		size: m.size,
	}
}

func (m *SplayMap[K, V]) String() string {
	var b strings.Builder
	b.WriteString("{")
	it := m.Clone().Drain()
	for i := 0; ; i++ {
		e, ok := it.Next()
		if !ok {
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v:%v", e.Key, e.Value)
	}
	b.WriteString("}")
	return b.String()
}
