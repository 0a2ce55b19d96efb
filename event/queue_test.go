package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/rangefire/parameter"
)

func TestIntentQueueFIFO(t *testing.T) {
	q := NewIntentQueue()
	q.Push(IntentFire)
	q.Push(IntentReload)
	q.Push(IntentPauseToggle)

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}

	got := q.Consume()
	want := []Intent{IntentFire, IntentReload, IntentPauseToggle}
	if len(got) != len(want) {
		t.Fatalf("Consume returned %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("intent %d = %v, want %v", i, got[i], want[i])
		}
	}

	if q.Consume() != nil {
		t.Error("second Consume should be empty")
	}
}

func TestIntentQueueOverflowKeepsNewest(t *testing.T) {
	q := NewIntentQueue()
	for i := 0; i < parameter.IntentQueueSize; i++ {
		q.Push(IntentFire)
	}
	q.Push(IntentQuit)

	got := q.Consume()
	if len(got) != parameter.IntentQueueSize {
		t.Fatalf("got %d intents, want %d", len(got), parameter.IntentQueueSize)
	}
	if got[len(got)-1] != IntentQuit {
		t.Errorf("newest intent = %v, want Quit", got[len(got)-1])
	}
}

func TestIntentQueueConcurrentProducers(t *testing.T) {
	q := NewIntentQueue()
	var wg sync.WaitGroup
	const producers, each = 4, 30

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Push(IntentFire)
			}
		}()
	}
	wg.Wait()

	if got := len(q.Consume()); got != producers*each {
		t.Errorf("consumed %d intents, want %d", got, producers*each)
	}
}
