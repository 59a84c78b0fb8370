package tree

import "sync/atomic"

// treeStats are the hot-path counters. They are updated with atomic adds and
// only ever read for reporting.
type treeStats struct {
	insertRestarts atomic.Uint64
	lookupRestarts atomic.Uint64
	updateRestarts atomic.Uint64
	removeRestarts atomic.Uint64
	rangeRestarts  atomic.Uint64
	parentRetries  atomic.Uint64
	leafSplits     atomic.Uint64
	innerSplits    atomic.Uint64
	rootPromotions atomic.Uint64
	retired        atomic.Uint64
}

// LevelStats summarizes one level of the tree.
type LevelStats struct {
	Level   int
	Nodes   int
	Entries int
	AvgFill float64
}

// Stats is a point-in-time summary of the tree shape and its contention
// counters.
type Stats struct {
	Height           int
	LeafCardinality  int
	InnerCardinality int
	Levels           []LevelStats

	InsertRestarts uint64
	LookupRestarts uint64
	UpdateRestarts uint64
	RemoveRestarts uint64
	RangeRestarts  uint64
	ParentRetries  uint64
	LeafSplits     uint64
	InnerSplits    uint64
	RootPromotions uint64
	Retired        uint64
}

// Stats walks the tree and returns shape and contention statistics. The walk
// does not validate versions; run it without concurrent writers.
func (t *Tree[K]) Stats() Stats {
	s := Stats{
		LeafCardinality:  t.leafCardinality,
		InnerCardinality: t.innerCardinality,

		InsertRestarts: t.stats.insertRestarts.Load(),
		LookupRestarts: t.stats.lookupRestarts.Load(),
		UpdateRestarts: t.stats.updateRestarts.Load(),
		RemoveRestarts: t.stats.removeRestarts.Load(),
		RangeRestarts:  t.stats.rangeRestarts.Load(),
		ParentRetries:  t.stats.parentRetries.Load(),
		LeafSplits:     t.stats.leafSplits.Load(),
		InnerSplits:    t.stats.innerSplits.Load(),
		RootPromotions: t.stats.rootPromotions.Load(),
		Retired:        t.stats.retired.Load(),
	}

	root := t.root.Load()
	s.Height = root.level
	s.Levels = make([]LevelStats, root.level+1)

	for left := root; left != nil; left = left.leftChildOrNil() {
		cardinality := t.innerCardinality
		if left.level == 0 {
			cardinality = t.leafCardinality
		}

		ls := LevelStats{Level: left.level}
		for n := left; n != nil; n = n.sibling.Load() {
			ls.Nodes++
			ls.Entries += n.count
		}
		if ls.Nodes > 0 {
			ls.AvgFill = float64(ls.Entries) / float64(ls.Nodes*cardinality)
		}
		s.Levels[left.level] = ls
	}

	return s
}

// leftChildOrNil returns the leftmost child for internal nodes and nil for
// leaves, so level walks can step down uniformly.
func (n *node[K]) leftChildOrNil() *node[K] {
	if n.level == 0 {
		return nil
	}
	return n.leftmostChild()
}
