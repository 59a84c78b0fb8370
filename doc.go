// Package blinktree provides a concurrent, in-memory, ordered key/value
// index for Go.
//
// The index is a B-link tree: a B+-tree whose nodes carry right-sibling
// pointers, letting readers traverse past concurrent splits without holding
// locks along the descent path. Readers are lock free (optimistic version
// validation with restart); writers lock a single node at a time, except
// while a split's separator is handed to the parent.
//
// # Quick Start
//
//	db, err := blinktree.New[uint64]()
//	if err != nil {
//	    panic(err)
//	}
//
//	_ = db.Insert(42, 1001)
//	value := db.Lookup(42)          // 1001
//	db.Update(42, 1002)             // true
//	values, _ := db.RangeLookup(0, 10)
//	db.Remove(42)                   // true
//
// Ordered iteration:
//
//	for key, value := range db.All() {
//	    fmt.Println(key, value)
//	}
//
// # Concurrency Contract
//
// Every operation is linearizable against every other operation. RangeLookup
// and All read each leaf atomically but are not global snapshots: an insert
// into a not-yet-visited leaf during a scan is visible, an insert into an
// already-visited leaf is not.
//
// Lookup returns 0 for absent keys; a stored value of 0 is indistinguishable
// from absence. Use Get where that matters.
//
// # Key Features
//
//   - Lock-free reads, restart-based contention handling
//   - Localized write locking with B-link split propagation
//   - Page-sized nodes (512 bytes by default) for cache friendliness
//   - Generic keys over cmp.Ordered
//   - Optional metrics collection and structured logging
package blinktree
