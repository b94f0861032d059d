package store

import (
	"math/rand/v2"
)

// ostNode is a node in a randomized BST (treap) ordered by insertion sequence.
// Subtree sizes make positional lookups (select by index) logarithmic.
type ostNode struct {
	seq      uint64
	key      string
	priority int // Maintains max-heap property for BST structure
	size     int // Subtree size including self
	left     *ostNode
	right    *ostNode
}

// nodeSize gracefully handles nil nodes to avoid nil checks in recursive functions.
func nodeSize(n *ostNode) int {
	if n == nil {
		return 0
	}

	return n.size
}

// pull recalculates subtree size after structural changes.
// Must be called after any rotation or child modification.
func pull(n *ostNode) {
	if n == nil {
		return
	}

	n.size = 1 + nodeSize(n.left) + nodeSize(n.right)
}

// rotateRight maintains BST order while fixing heap property.
// Returns new root of rotated subtree.
func rotateRight(n *ostNode) *ostNode {
	l := n.left

	n.left = l.right
	l.right = n

	pull(n)
	pull(l)

	return l
}

// rotateLeft is symmetric to rotateRight.
func rotateLeft(n *ostNode) *ostNode {
	r := n.right

	n.right = r.left
	r.left = n

	pull(n)
	pull(r)

	return r
}

// insert places (seq, key) then bubbles the node up with rotations
// to restore the heap property. Returns new root of subtree.
func insert(n *ostNode, seq uint64, key string, prio int) *ostNode {
	if n == nil {
		return &ostNode{seq: seq, key: key, priority: prio, size: 1}
	}

	if seq == n.seq {
		// Sequence numbers are unique; re-inserting is a no-op.
		return n
	}

	if seq < n.seq {
		n.left = insert(n.left, seq, key, prio)

		if n.left.priority > n.priority {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, seq, key, prio)

		if n.right.priority > n.priority {
			n = rotateLeft(n)
		}
	}

	pull(n)

	return n
}

// deleteSeq locates the node carrying seq and rotates it down to a leaf
// position for removal.
func deleteSeq(n *ostNode, seq uint64) *ostNode {
	if n == nil {
		return nil
	}

	switch {
	case seq < n.seq:
		n.left = deleteSeq(n.left, seq)
	case seq > n.seq:
		n.right = deleteSeq(n.right, seq)
	default:
		if n.left == nil {
			return n.right
		}

		if n.right == nil {
			return n.left
		}

		// Two children: rotate the higher priority child up until
		// the target becomes a leaf.
		if n.left.priority > n.right.priority {
			n = rotateRight(n)
			n.right = deleteSeq(n.right, seq)
		} else {
			n = rotateLeft(n)
			n.left = deleteSeq(n.left, seq)
		}
	}

	pull(n)

	return n
}

// kth uses subtree sizes for O(log n) traversal.
// Returns zero-value + false for out-of-range indices.
func kth(n *ostNode, k int) (string, bool) {
	if n == nil || k < 0 || k >= nodeSize(n) {
		return "", false
	}

	leftSize := nodeSize(n.left)

	switch {
	case k < leftSize:
		return kth(n.left, k)
	case k == leftSize:
		return n.key, true
	default:
		return kth(n.right, k-leftSize-1)
	}
}

// walk visits nodes in sequence order and stops early when fn returns false.
func walk(n *ostNode, fn func(key string) bool) bool {
	if n == nil {
		return true
	}

	if !walk(n.left, fn) {
		return false
	}

	if !fn(n.key) {
		return false
	}

	return walk(n.right, fn)
}

// cloneNode deep-copies a subtree.
func cloneNode(n *ostNode) *ostNode {
	if n == nil {
		return nil
	}

	return &ostNode{
		seq:      n.seq,
		key:      n.key,
		priority: n.priority,
		size:     n.size,
		left:     cloneNode(n.left),
		right:    cloneNode(n.right),
	}
}

// OSTree is an order-statistics tree over insertion sequence numbers.
// It answers "which key is at position n" for an insertion-ordered keyspace.
type OSTree struct {
	root *ostNode
}

// NewOSTree creates and returns a new empty order-statistics tree.
func NewOSTree() *OSTree {
	return new(OSTree)
}

// Len returns the current number of keys stored in the tree.
func (t *OSTree) Len() int {
	return nodeSize(t.root)
}

// Insert adds key under the given sequence number with a random priority.
// If seq is already present, this is a no-op.
func (t *OSTree) Insert(seq uint64, key string) {
	p := rand.Int() //nolint:gosec // priorities only balance the tree.

	t.root = insert(t.root, seq, key, p)
}

// Delete removes the node carrying seq if it exists.
func (t *OSTree) Delete(seq uint64) {
	t.root = deleteSeq(t.root, seq)
}

// Kth returns the key at 0-based position k in sequence order.
func (t *OSTree) Kth(k int) (string, bool) {
	return kth(t.root, k)
}

// Walk visits keys in sequence order until fn returns false.
func (t *OSTree) Walk(fn func(key string) bool) {
	walk(t.root, fn)
}

// Clone returns an independent copy of the tree.
func (t *OSTree) Clone() *OSTree {
	return &OSTree{root: cloneNode(t.root)}
}
