package tree

// Internal-node operations. The locking contract matches leaf.go.

// scanNode picks the next node for key: the right sibling when key lies
// beyond this node's high key, otherwise the child at the lower bound. A
// sibling result keeps the traversal on the same level.
func (n *node[K]) scanNode(key K) *node[K] {
	if s := n.sibling.Load(); s != nil && n.highKey < key {
		return s
	}
	return n.children[n.lowerBound(key)]
}

func (n *node[K]) leftmostChild() *node[K] {
	return n.children[0]
}

// insertChild places a separator and the right half of a lower-level split.
// The child that previously covered the separator's range stays to its left;
// right becomes its successor.
func (n *node[K]) insertChild(separator K, right *node[K]) {
	pos := n.lowerBound(separator)
	copy(n.keys[pos+1:n.count+1], n.keys[pos:n.count])
	copy(n.children[pos+2:n.count+2], n.children[pos+1:n.count+1])
	n.keys[pos] = separator
	n.children[pos+1] = right
	n.count++
	if separator > n.highKey {
		n.highKey = separator
	}
}

// splitInner promotes keys[half] and moves the entries above it, with their
// children, into a fresh right sibling. The promoted key is returned to the
// caller and appears in neither half.
func (n *node[K]) splitInner() (*node[K], K) {
	half := n.count - n.count/2
	splitKey := n.keys[half]

	right := newInner[K](len(n.keys), n.level)
	right.count = copy(right.keys, n.keys[half+1:n.count])
	copy(right.children, n.children[half+1:n.count+1])
	right.highKey = n.highKey
	right.sibling.Store(n.sibling.Load())

	n.sibling.Store(right)
	n.highKey = splitKey
	n.count = half
	return right, splitKey
}
