// Package metrics is the optional Prometheus recorder a Handle can be
// configured with. The core never reads these counters back, they exist
// purely for an operator's own registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder is the hook the root package calls on every operation and
// reclamation pass. A zero Recorder (with nil collectors) is not usable;
// use New or NewUnregistered.
type Recorder struct {
	Inserts           prometheus.Counter
	Removes           prometheus.Counter
	Lookups           prometheus.Counter
	ReclaimPasses     prometheus.Counter
	RetiredBufferSize prometheus.Gauge
}

// New builds a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer, namespace string) *Recorder {
	r := NewUnregistered(namespace)
	reg.MustRegister(r.Inserts, r.Removes, r.Lookups, r.ReclaimPasses, r.RetiredBufferSize)
	return r
}

// NewUnregistered builds a Recorder without registering it, for callers
// that manage registration themselves (or tests that want an isolated
// registry per case).
func NewUnregistered(namespace string) *Recorder {
	return &Recorder{
		Inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "inserts_total",
			Help: "Total number of Insert calls, including key updates.",
		}),
		Removes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "removes_total",
			Help: "Total number of successful Remove calls.",
		}),
		Lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "lookups_total",
			Help: "Total number of Lookup calls.",
		}),
		ReclaimPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "reclaim_passes_total",
			Help: "Total number of reclamation passes run by any handle.",
		}),
		RetiredBufferSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "retired_buffer_size",
			Help: "Number of retired nodes awaiting release, summed over all handles.",
		}),
	}
}
