package blinktree

import (
	"cmp"
	"iter"
	"sync/atomic"
	"time"

	"github.com/hupe1980/blinktree/tree"
)

// Stats re-exports the tree statistics type for facade users.
type Stats = tree.Stats

// DB is the public handle around tree.Tree. It adds metrics, logging, a live
// entry counter and optional insert duplicate checking; all index semantics
// live in the tree package.
type DB[K cmp.Ordered] struct {
	tree             *tree.Tree[K]
	logger           *Logger
	metricsCollector MetricsCollector
	duplicateCheck   bool
	size             atomic.Int64
}

// New creates a new DB for keys of type K.
func New[K cmp.Ordered](optFns ...Option) (*DB[K], error) {
	opts := options{
		pageSize:         tree.DefaultPageSize,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	t, err := tree.New[K](func(o *tree.Options) {
		o.PageSize = opts.pageSize
		if opts.retirer != nil {
			o.Retirer = opts.retirer
		}
	})
	if err != nil {
		return nil, err
	}

	return &DB[K]{
		tree:             t,
		logger:           opts.logger,
		metricsCollector: opts.metricsCollector,
		duplicateCheck:   opts.duplicateCheck,
	}, nil
}

// Insert adds key with the given value. The key must not already be present;
// with WithDuplicateCheck, a present key is rejected with ErrDuplicateKey
// instead of corrupting the index.
func (db *DB[K]) Insert(key K, value uint64) error {
	start := time.Now()

	if db.duplicateCheck {
		if _, found := db.tree.Get(key); found {
			err := &ErrDuplicateKey{Key: key}
			db.metricsCollector.RecordInsert(time.Since(start), err)
			db.logger.LogInsert(key, err)
			return err
		}
	}

	db.tree.Insert(key, value)
	db.size.Add(1)

	db.metricsCollector.RecordInsert(time.Since(start), nil)
	db.logger.LogInsert(key, nil)

	return nil
}

// Upsert overwrites the value stored under key, inserting the key when it is
// absent. It reports whether a new key was inserted.
func (db *DB[K]) Upsert(key K, value uint64) bool {
	if db.tree.Update(key, value) {
		return false
	}

	// Lost race: another goroutine may have inserted the key between the
	// failed update and this insert. That is the same contract as a caller
	// doing update-then-insert; disjoint writer key sets avoid it.
	db.tree.Insert(key, value)
	db.size.Add(1)

	return true
}

// Update overwrites the value stored under key and reports whether the key
// was present.
func (db *DB[K]) Update(key K, value uint64) bool {
	start := time.Now()

	updated := db.tree.Update(key, value)

	db.metricsCollector.RecordUpdate(time.Since(start), updated)

	return updated
}

// Lookup returns the value stored under key, or 0 when the key is absent. A
// stored value of 0 is indistinguishable from absence; use Get where that
// matters.
func (db *DB[K]) Lookup(key K) uint64 {
	v, _ := db.Get(key)
	return v
}

// Get returns the value stored under key and whether it was present.
func (db *DB[K]) Get(key K) (uint64, bool) {
	start := time.Now()

	value, found := db.tree.Get(key)

	db.metricsCollector.RecordLookup(time.Since(start), found)

	return value, found
}

// Remove deletes key and reports whether it was present.
func (db *DB[K]) Remove(key K) bool {
	start := time.Now()

	removed := db.tree.Remove(key)
	if removed {
		db.size.Add(-1)
	}

	db.metricsCollector.RecordRemove(time.Since(start), removed)
	db.logger.LogRemove(key, removed)

	return removed
}

// RangeLookup returns, in ascending key order, the values of up to n keys
// >= minKey. See the package documentation for the snapshot semantics.
func (db *DB[K]) RangeLookup(minKey K, n int) ([]uint64, error) {
	if n <= 0 {
		return nil, ErrInvalidRange
	}

	start := time.Now()

	buf := make([]uint64, n)
	count := db.tree.RangeLookup(minKey, buf)

	db.metricsCollector.RecordRangeLookup(count, time.Since(start))
	db.logger.LogRangeLookup(minKey, n, count)

	return buf[:count], nil
}

// RangeLookupBuffer fills buf like RangeLookup without allocating, returning
// the number of values copied.
func (db *DB[K]) RangeLookupBuffer(minKey K, buf []uint64) int {
	start := time.Now()

	count := db.tree.RangeLookup(minKey, buf)

	db.metricsCollector.RecordRangeLookup(count, time.Since(start))

	return count
}

// All returns an ascending iterator over the live entries.
func (db *DB[K]) All() iter.Seq2[K, uint64] {
	return db.tree.All()
}

// Height returns the level of the current root: 0 while the root is a leaf.
func (db *DB[K]) Height() int {
	return db.tree.Height()
}

// Len returns the number of live entries. The counter is maintained by this
// handle; entries inserted through a different handle of the same tree are
// not counted.
func (db *DB[K]) Len() int64 {
	return db.size.Load()
}

// Stats returns shape and contention statistics. Run without concurrent
// writers.
func (db *DB[K]) Stats() tree.Stats {
	return db.tree.Stats()
}

// CheckInvariants verifies the structural invariants of the underlying tree.
// Run without concurrent writers.
func (db *DB[K]) CheckInvariants() error {
	return db.tree.CheckInvariants()
}

// Reset empties the index. The caller must ensure no writes are in flight.
func (db *DB[K]) Reset() {
	entries := db.size.Swap(0)
	db.tree.Reset()
	db.logger.LogReset(entries)
}
