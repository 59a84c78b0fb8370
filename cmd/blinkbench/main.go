// Command blinkbench drives the index under high read/write contention and
// reports per-phase throughput.
//
// It generates the dense key set 1..N in random order, partitions it across
// worker goroutines, runs a concurrent insert phase followed by a concurrent
// lookup phase, and verifies that every inserted key is retrievable. Keys
// whose first lookup missed (possible only if the index were broken, since
// the phases are separated by a barrier) are collected in a bitmap and
// rechecked after all workers join.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/blinktree"
	"github.com/hupe1980/blinktree/testutil"
)

func main() {
	var (
		numKeys    int
		numThreads int
		seed       int64
		showStats  bool
	)

	rootCmd := &cobra.Command{
		Use:   "blinkbench",
		Short: "Concurrent B-link tree benchmark",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the insert/lookup benchmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			if numKeys <= 0 {
				return fmt.Errorf("--keys must be positive, got %d", numKeys)
			}
			if numThreads <= 0 {
				numThreads = runtime.GOMAXPROCS(0)
			}
			return run(numKeys, numThreads, seed, showStats)
		},
	}

	runCmd.Flags().IntVar(&numKeys, "keys", 1_000_000, "number of keys to insert")
	runCmd.Flags().IntVar(&numThreads, "threads", 0, "worker goroutines (default GOMAXPROCS)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "key shuffle seed")
	runCmd.Flags().BoolVar(&showStats, "stats", false, "print tree shape and restart counters")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(numKeys, numThreads int, seed int64, showStats bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := blinktree.New[uint64]()
	if err != nil {
		return err
	}

	stats := db.Stats()
	logger.Info("benchmark start",
		"keys", numKeys,
		"threads", numThreads,
		"seed", seed,
		"leaf_cardinality", stats.LeafCardinality,
		"inner_cardinality", stats.InnerCardinality,
	)

	keys := testutil.NewRNG(seed).ShuffledKeys(numKeys)

	insertTime, err := concurrentInsert(db, keys, numThreads)
	if err != nil {
		return err
	}
	report(logger, "insert", numKeys, insertTime)

	lookupTime, notFound, err := concurrentLookup(db, keys, numThreads)
	if err != nil {
		return err
	}
	report(logger, "lookup", numKeys, lookupTime)

	if card := notFound.GetCardinality(); card > 0 {
		// Recheck after the barrier; a persistent miss is an index defect.
		missing := uint64(0)
		it := notFound.Iterator()
		for it.HasNext() {
			key := it.Next()
			if _, found := db.Get(key); !found {
				missing++
				logger.Error("key not found", "key", key)
			}
		}
		if missing > 0 {
			return fmt.Errorf("%d of %d keys missing after recheck", missing, numKeys)
		}
		logger.Warn("keys missed on first lookup but found on recheck", "count", card)
	}

	logger.Info("benchmark done",
		"height", db.Height(),
		"entries", db.Len(),
	)

	if showStats {
		printStats(db.Stats())
	}

	return nil
}

func concurrentInsert(db *blinktree.DB[uint64], keys []uint64, numThreads int) (time.Duration, error) {
	var g errgroup.Group

	start := time.Now()
	for tid := 0; tid < numThreads; tid++ {
		from, to := testutil.Chunk(len(keys), numThreads, tid)
		g.Go(func() error {
			for _, key := range keys[from:to] {
				if err := db.Insert(key, key); err != nil {
					return err
				}
			}
			return nil
		})
	}
	err := g.Wait()

	return time.Since(start), err
}

func concurrentLookup(db *blinktree.DB[uint64], keys []uint64, numThreads int) (time.Duration, *roaring64.Bitmap, error) {
	var g errgroup.Group

	// Roaring bitmaps are not safe for concurrent mutation: one per worker,
	// merged after the join.
	missed := make([]*roaring64.Bitmap, numThreads)

	start := time.Now()
	for tid := 0; tid < numThreads; tid++ {
		from, to := testutil.Chunk(len(keys), numThreads, tid)
		mine := roaring64.New()
		missed[tid] = mine
		g.Go(func() error {
			for _, key := range keys[from:to] {
				if value := db.Lookup(key); value != key {
					mine.Add(key)
				}
			}
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, nil, err
	}

	notFound := roaring64.New()
	for _, m := range missed {
		notFound.Or(m)
	}

	return elapsed, notFound, nil
}

func report(logger *slog.Logger, phase string, ops int, elapsed time.Duration) {
	mops := float64(ops) / elapsed.Seconds() / 1e6
	logger.Info(phase+" phase finished",
		"ops", ops,
		"elapsed", elapsed.Round(time.Millisecond),
		"mops_per_sec", fmt.Sprintf("%.2f", mops),
	)
}

func printStats(s blinktree.Stats) {
	fmt.Printf("height: %d\n", s.Height)
	for i := len(s.Levels) - 1; i >= 0; i-- {
		l := s.Levels[i]
		fmt.Printf("level %d: nodes=%d entries=%d fill=%.2f\n", l.Level, l.Nodes, l.Entries, l.AvgFill)
	}
	fmt.Printf("leaf splits: %d\n", s.LeafSplits)
	fmt.Printf("inner splits: %d\n", s.InnerSplits)
	fmt.Printf("root promotions: %d\n", s.RootPromotions)
	fmt.Printf("insert restarts: %d\n", s.InsertRestarts)
	fmt.Printf("lookup restarts: %d\n", s.LookupRestarts)
	fmt.Printf("parent retries: %d\n", s.ParentRetries)
}
