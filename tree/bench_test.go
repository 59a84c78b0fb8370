package tree

import (
	"sync/atomic"
	"testing"

	"github.com/hupe1980/blinktree/testutil"
)

func BenchmarkInsert(b *testing.B) {
	tr, err := New[uint64]()
	if err != nil {
		b.Fatal(err)
	}

	keys := testutil.NewRNG(1).ShuffledKeys(b.N)

	b.ResetTimer()
	for _, key := range keys {
		tr.Insert(key, key)
	}
}

func BenchmarkConcurrentInsert(b *testing.B) {
	tr, err := New[uint64]()
	if err != nil {
		b.Fatal(err)
	}

	var next atomic.Uint64

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			key := next.Add(1)
			tr.Insert(key, key)
		}
	})
}

func BenchmarkLookup(b *testing.B) {
	tr, err := New[uint64]()
	if err != nil {
		b.Fatal(err)
	}

	const numKeys = 100_000
	for _, key := range testutil.NewRNG(2).ShuffledKeys(numKeys) {
		tr.Insert(key, key)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		key := uint64(0)
		for pb.Next() {
			key = key%numKeys + 1
			if v := tr.Lookup(key); v != key {
				b.Errorf("lookup(%d) = %d", key, v)
			}
		}
	})
}

func BenchmarkRangeLookup(b *testing.B) {
	tr, err := New[uint64]()
	if err != nil {
		b.Fatal(err)
	}

	const numKeys = 100_000
	for _, key := range testutil.NewRNG(3).ShuffledKeys(numKeys) {
		tr.Insert(key, key)
	}

	buf := make([]uint64, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		minKey := uint64(i%numKeys + 1)
		tr.RangeLookup(minKey, buf)
	}
}
