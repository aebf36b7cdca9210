package tempusmap

import (
	"time"

	"github.com/Krishna8167/tempusmap/internal/list"
	"github.com/Krishna8167/tempusmap/internal/metrics"
)

// Comparator orders keys; re-exported from internal/list so callers never
// need to import an internal package to configure a Map.
type Comparator[K any] = list.Comparator[K]

// Scheme selects which of the two safe-memory-reclamation designs a Map's
// handles use.
type Scheme int

const (
	// SchemeEpoch is the per-handle epoch-counter design: a private
	// counter per handle, a shared registry, and a reclamation pass that
	// scans every other handle's counter directly. This is the reference
	// design.
	SchemeEpoch Scheme = iota

	// SchemeGeneric is the shared global-epoch design: one counter for
	// the whole table, a registry of reader pins, and retirements filed
	// by epoch rather than by handle.
	SchemeGeneric
)

const defaultBuckets = 64

type config[K any, V any] struct {
	buckets int
	scheme  Scheme
	logger  Logger
	metrics *metrics.Recorder
	refresh time.Duration
}

func defaultConfig[K any, V any]() *config[K, V] {
	return &config[K, V]{
		buckets: defaultBuckets,
		scheme:  SchemeEpoch,
		logger:  noopLogger{},
	}
}

// Option configures a Map at construction time: each Option mutates a
// private config struct rather than widening New's signature.
type Option[K any, V any] func(*config[K, V])

// WithBuckets fixes the table's bucket count. The table never resizes
// after construction; n <= 0 is ignored and the default is kept.
func WithBuckets[K any, V any](n int) Option[K, V] {
	return func(c *config[K, V]) {
		if n > 0 {
			c.buckets = n
		}
	}
}

// WithReclamationScheme selects Scheme A (the default) or Scheme B for
// every handle this Map issues.
func WithReclamationScheme[K any, V any](s Scheme) Option[K, V] {
	return func(c *config[K, V]) { c.scheme = s }
}

// WithLogger injects a Logger. A nil Logger is ignored and the default
// no-op logger is kept, so the core never logs unless a caller opts in.
func WithLogger[K any, V any](l Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics injects a Prometheus recorder. A nil recorder disables
// instrumentation, which is also the default.
func WithMetrics[K any, V any](r *metrics.Recorder) Option[K, V] {
	return func(c *config[K, V]) { c.metrics = r }
}

// WithAutoReclaim starts a background goroutine, on every handle issued
// after this option is set, that calls Reclaim on the given interval.
// interval <= 0 leaves reclamation entirely up to explicit Handle.Reclaim
// calls, which is the default.
func WithAutoReclaim[K any, V any](interval time.Duration) Option[K, V] {
	return func(c *config[K, V]) { c.refresh = interval }
}
