package tree

import (
	"sync/atomic"

	"github.com/hupe1980/blinktree/internal/spin"
)

// Lock word layout: the two low bits encode state, the remaining bits form a
// monotonically increasing version counter.
//
//	...00  unlocked
//	...10  write locked
//	...x1  obsolete
const (
	latchLocked   uint64 = 0b10
	latchObsolete uint64 = 0b01
)

// latch is the per-node lock word of the optimistic protocol. Readers never
// block: they capture a version with readBegin, act on the node, and confirm
// with validate. Writers promote a captured version to an exclusive lock with
// a single CAS, so any concurrent reader's captured version is invalidated
// before the first mutation.
type latch struct {
	word atomic.Uint64
}

func isLocked(v uint64) bool { return v&latchLocked == latchLocked }

func isObsolete(v uint64) bool { return v&latchObsolete == latchObsolete }

// readBegin captures the current version. ok is false when the word is write
// locked or obsolete; the caller must restart its operation.
func (l *latch) readBegin() (version uint64, ok bool) {
	v := l.word.Load()
	if isLocked(v) || isObsolete(v) {
		spin.Pause()
		return 0, false
	}
	return v, true
}

// validate reports whether the word still equals the captured version. A
// mismatch covers a bumped version as well as an observed lock or obsolete
// bit.
func (l *latch) validate(version uint64) bool {
	return l.word.Load() == version
}

// upgradeToWrite promotes a captured version to the write lock.
func (l *latch) upgradeToWrite(version uint64) bool {
	if !l.word.CompareAndSwap(version, version+latchLocked) {
		spin.Pause()
		return false
	}
	return true
}

// tryWriteLock acquires the write lock without a previously captured version.
func (l *latch) tryWriteLock() bool {
	v := l.word.Load()
	if isLocked(v) || isObsolete(v) {
		spin.Pause()
		return false
	}
	if !l.word.CompareAndSwap(v, v+latchLocked) {
		spin.Pause()
		return false
	}
	return true
}

// writeUnlock releases the write lock and bumps the version.
func (l *latch) writeUnlock() {
	l.word.Add(latchLocked)
}

// writeUnlockObsolete releases the write lock, bumps the version and marks
// the node obsolete. Readers validating against the node afterwards restart
// from the root.
func (l *latch) writeUnlockObsolete() {
	l.word.Add(latchLocked | latchObsolete)
}

func (l *latch) version() uint64 {
	return l.word.Load()
}
