package tree

import "iter"

// All returns an ascending iterator over the live entries. Each leaf is
// captured atomically before any of its entries are yielded; like
// RangeLookup, the sequence is not a global snapshot across leaves. When a
// leaf changes mid-scan the iterator re-descends to the last yielded key, so
// no entry is delivered twice and no entry present for the whole scan is
// skipped.
func (t *Tree[K]) All() iter.Seq2[K, uint64] {
	return func(yield func(K, uint64) bool) {
		var (
			last    K
			started bool
		)

		keys := make([]K, 0, t.leafCardinality)
		values := make([]uint64, 0, t.leafCardinality)

		for {
			var (
				leaf    *node[K]
				version uint64
				ok      bool
			)
			if started {
				leaf, version, ok = t.descend(last, nil)
			} else {
				leaf, version, ok = t.leftmostLeaf()
			}
			if !ok {
				t.stats.rangeRestarts.Add(1)
				continue
			}

			for leaf != nil {
				keys = append(keys[:0], leaf.keys[:leaf.count]...)
				values = append(values[:0], leaf.values[:leaf.count]...)

				next := leaf.sibling.Load()
				var nextVersion uint64
				if next != nil {
					if nextVersion, ok = next.readBegin(); !ok {
						break
					}
				}
				if !leaf.validate(version) {
					break
				}

				for i := range keys {
					if started && keys[i] <= last {
						continue
					}
					if !yield(keys[i], values[i]) {
						return
					}
					last = keys[i]
					started = true
				}

				leaf = next
				version = nextVersion
			}

			if leaf == nil {
				return
			}
			t.stats.rangeRestarts.Add(1)
		}
	}
}

// leftmostLeaf descends along leftmost children under the usual validation
// discipline.
func (t *Tree[K]) leftmostLeaf() (*node[K], uint64, bool) {
	cur := t.root.Load()

	version, ok := cur.readBegin()
	if !ok {
		return nil, 0, false
	}

	for cur.level != 0 {
		child := cur.leftmostChild()

		childVersion, ok := child.readBegin()
		if !ok {
			return nil, 0, false
		}

		if !cur.validate(version) {
			return nil, 0, false
		}

		cur = child
		version = childVersion
	}

	return cur, version, true
}
