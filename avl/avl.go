package avl

// Tree is a height-balanced binary search tree over uint64 values where
// equal values collapse into a single node with a multiplicity count.
// Every node also tracks the total multiplicity of its subtree, which is
// what makes CountAtMost run in logarithmic time.
type Tree struct {
	root *node
}

type node struct {
	value  uint64
	freq   uint64 // multiplicity of value
	size   uint64 // sum of freq across this subtree
	height int
	left   *node
	right  *node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// NewWithValue returns a tree holding count copies of value in a single
// node. count == 0 yields an empty tree.
func NewWithValue(value, count uint64) *Tree {
	if count == 0 {
		return &Tree{}
	}
	return &Tree{root: &node{value: value, freq: count, size: count, height: 1}}
}

// Size returns the total multiplicity stored in the tree.
func (t *Tree) Size() uint64 {
	return subtreeSize(t.root)
}

// Empty reports whether the tree holds no values.
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Insert adds one copy of value. Inserting an existing value increments
// the multiplicity of its node instead of allocating a new one.
func (t *Tree) Insert(value uint64) {
	t.root = insert(t.root, value)
}

// Delete removes one copy of value. Removing a value that is not present
// is a no-op.
func (t *Tree) Delete(value uint64) {
	t.root = remove(t.root, value)
}

// DeleteAtMost removes one copy of some value <= limit, following the
// leftmost-descent policy: walk left whenever a left child exists, and
// decrement (or drop) the node reached. The caller must ensure
// CountAtMost(limit) > 0; the policy relies on the tree minimum being
// <= limit.
func (t *Tree) DeleteAtMost(limit uint64) {
	t.root = removeAtMost(t.root, limit)
}

// CountAtMost returns the number of stored values <= limit, counting
// multiplicity.
func (t *Tree) CountAtMost(limit uint64) uint64 {
	return countAtMost(t.root, limit)
}

// Min returns the smallest stored value. ok is false when the tree is
// empty.
func (t *Tree) Min() (value uint64, ok bool) {
	if t.root == nil {
		return 0, false
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return n.value, true
}

// Max returns the largest stored value. ok is false when the tree is
// empty.
func (t *Tree) Max() (value uint64, ok bool) {
	if t.root == nil {
		return 0, false
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return n.value, true
}

func subtreeSize(n *node) uint64 {
	if n == nil {
		return 0
	}
	return n.size
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balance(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

// update recomputes the cached size and height from the children.
func update(n *node) {
	n.size = subtreeSize(n.left) + n.freq + subtreeSize(n.right)
	h := height(n.left)
	if r := height(n.right); r > h {
		h = r
	}
	n.height = h + 1
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	update(y)
	update(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	update(x)
	update(y)
	return y
}

// rebalance restores the AVL height invariant at n after a child subtree
// changed. n's cached fields must already be up to date.
func rebalance(n *node) *node {
	b := balance(n)
	if b > 1 {
		if balance(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	}
	if b < -1 {
		if balance(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func insert(n *node, value uint64) *node {
	if n == nil {
		return &node{value: value, freq: 1, size: 1, height: 1}
	}
	switch {
	case value == n.value:
		n.freq++
		n.size++
		return n
	case value < n.value:
		n.left = insert(n.left, value)
	default:
		n.right = insert(n.right, value)
	}
	update(n)
	return rebalance(n)
}

func remove(n *node, value uint64) *node {
	if n == nil {
		return nil
	}
	switch {
	case value < n.value:
		n.left = remove(n.left, value)
	case value > n.value:
		n.right = remove(n.right, value)
	default:
		if n.freq > 1 {
			n.freq--
			n.size--
			return n
		}
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		// Two children: adopt the in-order successor's value together
		// with its full multiplicity, then unlink that node.
		s := n.right
		for s.left != nil {
			s = s.left
		}
		n.value, n.freq = s.value, s.freq
		n.right = unlink(n.right, s.value)
	}
	update(n)
	return rebalance(n)
}

// unlink removes the node holding value outright, ignoring multiplicity.
// Only called on the in-order successor, which has no left child.
func unlink(n *node, value uint64) *node {
	if n == nil {
		return nil
	}
	switch {
	case value < n.value:
		n.left = unlink(n.left, value)
	case value > n.value:
		n.right = unlink(n.right, value)
	default:
		return n.right
	}
	update(n)
	return rebalance(n)
}

func removeAtMost(n *node, limit uint64) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.value > limit:
		n.left = removeAtMost(n.left, limit)
	case n.left != nil:
		// Descend left regardless of the left subtree's values: the
		// caller guarantees the tree minimum is <= limit, so the node
		// this reaches is always eligible and cheap to drop.
		n.left = removeAtMost(n.left, limit)
	case n.freq > 1:
		n.freq--
		n.size--
		return n
	default:
		return n.right
	}
	update(n)
	return rebalance(n)
}

func countAtMost(n *node, limit uint64) uint64 {
	if n == nil {
		return 0
	}
	if n.value <= limit {
		return subtreeSize(n.left) + n.freq + countAtMost(n.right, limit)
	}
	return countAtMost(n.left, limit)
}
