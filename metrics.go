package blinktree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordInsert is called after each insert operation. err is non-nil
	// only when duplicate checking rejected the key.
	RecordInsert(duration time.Duration, err error)

	// RecordLookup is called after each lookup. found reports whether the
	// key was present.
	RecordLookup(duration time.Duration, found bool)

	// RecordUpdate is called after each update operation.
	RecordUpdate(duration time.Duration, updated bool)

	// RecordRemove is called after each remove operation.
	RecordRemove(duration time.Duration, removed bool)

	// RecordRangeLookup is called after each range lookup. count is the
	// number of values copied.
	RecordRangeLookup(count int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)    {}
func (NoopMetricsCollector) RecordLookup(time.Duration, bool)     {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, bool)     {}
func (NoopMetricsCollector) RecordRemove(time.Duration, bool)     {}
func (NoopMetricsCollector) RecordRangeLookup(int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	LookupCount      atomic.Int64
	LookupMisses     atomic.Int64
	LookupTotalNanos atomic.Int64
	UpdateCount      atomic.Int64
	UpdateMisses     atomic.Int64
	RemoveCount      atomic.Int64
	RemoveMisses     atomic.Int64
	RangeCount       atomic.Int64
	RangeValues      atomic.Int64
	RangeTotalNanos  atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(duration time.Duration, found bool) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(duration.Nanoseconds())
	if !found {
		b.LookupMisses.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, updated bool) {
	b.UpdateCount.Add(1)
	if !updated {
		b.UpdateMisses.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, removed bool) {
	b.RemoveCount.Add(1)
	if !removed {
		b.RemoveMisses.Add(1)
	}
}

// RecordRangeLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRangeLookup(count int, duration time.Duration) {
	b.RangeCount.Add(1)
	b.RangeValues.Add(int64(count))
	b.RangeTotalNanos.Add(duration.Nanoseconds())
}
