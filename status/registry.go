// Package status is the metrics facade shared by the frame loop, the motion
// scheduler, throttlers and scroll trackers. Components cache counter
// pointers at construction; hot paths write atomics directly.
package status

import (
	"fmt"
	"sync/atomic"
)

// Registry is the central metrics facade
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Counter returns the named int metric, or a detached counter when r is nil
// Lets components accept an optional registry without nil checks on hot paths
func Counter(r *Registry, key string) *atomic.Int64 {
	if r == nil {
		return new(atomic.Int64)
	}
	return r.Ints.Get(key)
}

// Gauge returns the named float metric, or a detached gauge when r is nil
func Gauge(r *Registry, key string) *AtomicFloat {
	if r == nil {
		return new(AtomicFloat)
	}
	return r.Floats.Get(key)
}

// Flag returns the named bool metric, or a detached flag when r is nil
func Flag(r *Registry, key string) *atomic.Bool {
	if r == nil {
		return new(atomic.Bool)
	}
	return r.Bools.Get(key)
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Lines renders every metric as "key: value" in sorted key order, ints first
// Used by host debug overlays
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s: %d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s: %.4f", key, v.Load()))
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s: %t", key, v.Load()))
	})
	return lines
}
