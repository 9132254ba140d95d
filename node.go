package splay

// Entry is a key/value pair stored in a SplayMap. The predicate-driven
// accessors hand entries back directly; mutating Value through such a
// reference is supported, mutating Key is not (it would break the tree's
// ordering).
type Entry[K, V any] struct {
	Key   K
	Value V
}

type node[K, V any] struct {
	kv          Entry[K, V]
	left, right *node[K, V]
}

// popLeft detaches and returns the left child, leaving the slot empty.
func (n *node[K, V]) popLeft() *node[K, V] {
	l := n.left
	n.left = nil
	return l
}

// popRight detaches and returns the right child, leaving the slot empty.
func (n *node[K, V]) popRight() *node[K, V] {
	r := n.right
	n.right = nil
	return r
}

func (n *node[K, V]) clone() *node[K, V] {
	if n == nil {
		return nil
	}
	return &node[K, V]{
		kv:    n.kv,
		left:  n.left.clone(),
		right: n.right.clone(),
	}
}
