// Package spin provides a cooperative CPU pause hint for optimistic retry
// loops.
package spin

import (
	_ "unsafe" // for go:linkname
)

//go:linkname procyield runtime.procyield
func procyield(cycles uint32)

// pauseCycles is short on purpose: the protocol restarts instead of waiting,
// the hint only keeps the contended cache line from thrashing.
const pauseCycles = 8

// Pause hints the CPU that the caller is spinning. It maps to the PAUSE
// instruction on x86 and does not yield to the scheduler.
func Pause() {
	procyield(pauseCycles)
}
