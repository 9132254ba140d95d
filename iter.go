package splay

// Iter consumes a SplayMap in order. It owns the remaining tree outright:
// each step rotates the in-order successor (or predecessor) to the top with
// a constant number of pointer moves, so a full drain touches each node a
// bounded number of times and uses O(1) auxiliary space regardless of how
// degenerate the tree is. Next and NextBack may be interleaved freely; each
// entry is yielded exactly once between the two ends.
type Iter[K, V any] struct {
	cur       *node[K, V]
	remaining int
}

// Drain moves the map's contents into an iterator, leaving the map empty.
func (m *SplayMap[K, V]) Drain() *Iter[K, V] {
	it := &Iter[K, V]{cur: m.root, remaining: m.size}
	m.root = nil
	m.size = 0
	return it
}

// Remaining reports how many entries are left to yield.
func (it *Iter[K, V]) Remaining() int {
	return it.remaining
}

// Next yields the smallest remaining entry.
func (it *Iter[K, V]) Next() (Entry[K, V], bool) {
	cur := it.cur
	if cur == nil {
		var zero Entry[K, V]
		return zero, false
	}
	for {
		left := cur.popLeft()
		if left == nil {
			it.cur = cur.popRight()
			it.remaining--
			return cur.kv, true
		}
		// Rotate right so the minimum climbs toward the top.
		cur.left = left.popRight()
		left.right = cur
		cur = left
	}
}

// NextBack yields the largest remaining entry.
func (it *Iter[K, V]) NextBack() (Entry[K, V], bool) {
	cur := it.cur
	if cur == nil {
		var zero Entry[K, V]
		return zero, false
	}
	for {
		right := cur.popRight()
		if right == nil {
			it.cur = cur.popLeft()
			it.remaining--
			return cur.kv, true
		}
		// Mirror image of Next.
		cur.right = right.popLeft()
		right.left = cur
		cur = right
	}
}
