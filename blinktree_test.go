package blinktree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/blinktree/testutil"
	"github.com/hupe1980/blinktree/tree"
)

func TestNew(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	assert.Equal(t, 0, db.Height())
	assert.Equal(t, int64(0), db.Len())
}

func TestNewPageTooSmall(t *testing.T) {
	_, err := New[uint64](WithPageSize(16))

	var pageErr *tree.ErrPageTooSmall
	assert.ErrorAs(t, err, &pageErr)
}

func TestInsertLookup(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	require.NoError(t, db.Insert(10, 100))
	require.NoError(t, db.Insert(20, 200))

	assert.Equal(t, uint64(100), db.Lookup(10))
	assert.Equal(t, uint64(0), db.Lookup(15))
	assert.Equal(t, int64(2), db.Len())
}

func TestInsertDuplicateCheck(t *testing.T) {
	db, err := New[uint64](WithDuplicateCheck())
	require.NoError(t, err)

	require.NoError(t, db.Insert(10, 100))

	err = db.Insert(10, 200)
	var dup *ErrDuplicateKey
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, uint64(10), dup.Key)

	// The rejected insert left the original value in place.
	assert.Equal(t, uint64(100), db.Lookup(10))
	assert.Equal(t, int64(1), db.Len())
}

func TestUpsert(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	assert.True(t, db.Upsert(10, 100))
	assert.False(t, db.Upsert(10, 101))

	assert.Equal(t, uint64(101), db.Lookup(10))
	assert.Equal(t, int64(1), db.Len())
}

func TestUpdateRemove(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	require.NoError(t, db.Insert(10, 100))

	assert.True(t, db.Update(10, 111))
	assert.False(t, db.Update(99, 1))

	assert.True(t, db.Remove(10))
	assert.False(t, db.Remove(10))
	assert.Equal(t, int64(0), db.Len())
}

func TestGet(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	require.NoError(t, db.Insert(10, 0))

	v, found := db.Get(10)
	assert.True(t, found)
	assert.Equal(t, uint64(0), v)

	_, found = db.Get(11)
	assert.False(t, found)
}

func TestRangeLookup(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	for key := uint64(1); key <= 10; key++ {
		require.NoError(t, db.Insert(key*10, key))
	}

	values, err := db.RangeLookup(35, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 5, 6, 7}, values)

	_, err = db.RangeLookup(0, 0)
	assert.ErrorIs(t, err, ErrInvalidRange)

	buf := make([]uint64, 3)
	count := db.RangeLookupBuffer(80, buf)
	assert.Equal(t, []uint64{8, 9, 10}, buf[:count])
}

func TestAll(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	for _, key := range testutil.NewRNG(5).ShuffledKeys(500) {
		require.NoError(t, db.Insert(key, key))
	}

	var prev uint64
	seen := 0
	for key, value := range db.All() {
		require.Greater(t, key, prev)
		require.Equal(t, key, value)
		prev = key
		seen++
	}
	assert.Equal(t, 500, seen)
}

func TestMetricsCollector(t *testing.T) {
	collector := &BasicMetricsCollector{}

	db, err := New[uint64](WithMetricsCollector(collector), WithDuplicateCheck())
	require.NoError(t, err)

	require.NoError(t, db.Insert(1, 10))
	require.Error(t, db.Insert(1, 11))
	db.Lookup(1)
	db.Lookup(2)
	db.Update(1, 12)
	db.Remove(1)
	_, _ = db.RangeLookup(0, 8)

	assert.Equal(t, int64(2), collector.InsertCount.Load())
	assert.Equal(t, int64(1), collector.InsertErrors.Load())
	assert.Equal(t, int64(2), collector.LookupCount.Load())
	assert.Equal(t, int64(1), collector.LookupMisses.Load())
	assert.Equal(t, int64(1), collector.UpdateCount.Load())
	assert.Equal(t, int64(1), collector.RemoveCount.Load())
	assert.Equal(t, int64(1), collector.RangeCount.Load())
}

func TestNoopMetricsCollector(t *testing.T) {
	var collector MetricsCollector = NoopMetricsCollector{}

	collector.RecordInsert(time.Second, nil)
	collector.RecordLookup(time.Second, true)
	collector.RecordUpdate(time.Second, true)
	collector.RecordRemove(time.Second, true)
	collector.RecordRangeLookup(1, time.Second)
}

func TestWithLoggerNil(t *testing.T) {
	db, err := New[uint64](WithLogger(nil))
	require.NoError(t, err)

	require.NoError(t, db.Insert(1, 1))
}

func TestReset(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	for key := uint64(1); key <= 100; key++ {
		require.NoError(t, db.Insert(key, key))
	}

	db.Reset()

	assert.Equal(t, int64(0), db.Len())
	assert.Equal(t, uint64(0), db.Lookup(50))
}

func TestStatsAndInvariants(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	for _, key := range testutil.NewRNG(9).ShuffledKeys(5_000) {
		require.NoError(t, db.Insert(key, key))
	}

	s := db.Stats()
	assert.Equal(t, db.Height(), s.Height)
	assert.Equal(t, 5_000, s.Levels[0].Entries)

	require.NoError(t, db.CheckInvariants())
}

func TestConcurrentFacade(t *testing.T) {
	db, err := New[uint64]()
	require.NoError(t, err)

	const (
		numWorkers = 8
		numKeys    = 10_000
	)
	keys := testutil.NewRNG(41).ShuffledKeys(numKeys)

	var g errgroup.Group
	for tid := 0; tid < numWorkers; tid++ {
		from, to := testutil.Chunk(numKeys, numWorkers, tid)
		g.Go(func() error {
			for _, key := range keys[from:to] {
				if err := db.Insert(key, key); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(numKeys), db.Len())
	require.NoError(t, db.CheckInvariants())
}
