package blinktree

import (
	"github.com/hupe1980/blinktree/tree"
)

type options struct {
	pageSize         int
	retirer          tree.Retirer
	logger           *Logger
	metricsCollector MetricsCollector
	duplicateCheck   bool
}

// Option configures DB constructor behavior.
type Option func(*options)

// WithPageSize configures the byte budget of a node. Smaller pages mean
// lower fan-out and a taller tree; the default is 512.
func WithPageSize(pageSize int) Option {
	return func(o *options) {
		o.pageSize = pageSize
	}
}

// WithRetirer configures the reclamation hook that receives unlinked nodes.
// The default leaves reclamation to the garbage collector.
func WithRetirer(r tree.Retirer) Option {
	return func(o *options) {
		o.retirer = r
	}
}

// WithLogger configures a logger for operation logging. If nil is passed,
// logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metricsCollector = collector
	}
}

// WithDuplicateCheck makes Insert verify that the key is absent first and
// return ErrDuplicateKey otherwise. The check costs an extra traversal per
// insert; without it, inserting an existing key corrupts lookup results for
// that key, matching the raw contract of the underlying tree.
func WithDuplicateCheck() Option {
	return func(o *options) {
		o.duplicateCheck = true
	}
}
