package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap holds named metrics of type T
// Pointers are stable for the life of the map; values are read and written through them
type MetricMap[T any] struct {
	items sync.Map // string -> *T
	count atomic.Int64
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the metric for key, allocating it on first use
// Callers cache the pointer at construction and store into it from the tick
func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.items.Load(key); ok {
		return v.(*T)
	}
	v, loaded := m.items.LoadOrStore(key, new(T))
	if !loaded {
		m.count.Add(1)
	}
	return v.(*T)
}

// Keys returns registered metric names, sorted
func (m *MetricMap[T]) Keys() []string {
	var keys []string
	m.items.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	return keys
}

// Range visits metrics in key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	for _, k := range m.Keys() {
		fn(k, m.Get(k))
	}
}

func (m *MetricMap[T]) Count() int {
	return int(m.count.Load())
}
