package status

import (
	"sort"
	"sync"
)

// MetricMap holds named metrics of one type
// Pointers are stable once created so callers cache them and skip the map on hot paths
type MetricMap[T any] struct {
	m sync.Map // string -> *T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the metric for key, creating it on first use
func (mm *MetricMap[T]) Get(key string) *T {
	if v, ok := mm.m.Load(key); ok {
		return v.(*T)
	}
	v, _ := mm.m.LoadOrStore(key, new(T))
	return v.(*T)
}

// Lookup returns the metric for key without creating it
func (mm *MetricMap[T]) Lookup(key string) (*T, bool) {
	v, ok := mm.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Keys returns registered keys in sorted order
func (mm *MetricMap[T]) Keys() []string {
	var keys []string
	mm.m.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Range visits metrics in sorted key order
func (mm *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	for _, k := range mm.Keys() {
		if ptr, ok := mm.Lookup(k); ok {
			fn(k, ptr)
		}
	}
}

// Count returns the number of registered metrics
func (mm *MetricMap[T]) Count() int {
	n := 0
	mm.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
