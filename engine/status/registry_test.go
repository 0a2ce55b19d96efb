package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapReturnsCachedPointer(t *testing.T) {
	reg := NewRegistry()
	a := reg.Ints.Get("spawn.required")
	b := reg.Ints.Get("spawn.required")
	if a != b {
		t.Fatal("expected the same pointer for the same key")
	}
	a.Store(4)
	if got := reg.Snapshot()["spawn.required"]; got != 4 {
		t.Errorf("snapshot value = %d, want 4", got)
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Ints.Get("engine.ticks").Add(1)
			reg.Bools.Get("spawn.enabled").Store(true)
		}()
	}
	wg.Wait()

	if got := reg.Ints.Get("engine.ticks").Load(); got != 16 {
		t.Errorf("ticks = %d, want 16", got)
	}
	if reg.TotalCount() != 2 {
		t.Errorf("TotalCount = %d, want 2", reg.TotalCount())
	}
}

func TestRangeSortedOrder(t *testing.T) {
	reg := NewRegistry()
	for _, k := range []string{"weapon.b.ammo", "score.current", "hit.resolved"} {
		reg.Ints.Get(k)
	}
	var keys []string
	reg.Ints.Range(func(key string, _ *atomic.Int64) { keys = append(keys, key) })
	want := []string{"hit.resolved", "score.current", "weapon.b.ammo"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
