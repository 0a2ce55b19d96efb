package event

import (
	"sync/atomic"

	"github.com/lixenwraith/rangefire/parameter"
)

// IntentQueue is a lock-free MPSC ring buffer for player intents
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (input goroutine, tests)
//   - Consume: Single consumer (simulation tick)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest intents overwritten when full
type IntentQueue struct {
	intents   [parameter.IntentQueueSize]Intent
	published [parameter.IntentQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                          // Read index
	tail      atomic.Uint64                          // Write index
}

func NewIntentQueue() *IntentQueue {
	return &IntentQueue{}
}

// Push adds an intent using lock-free CAS with published flags pattern
func (q *IntentQueue) Push(intent Intent) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.IntentBufferMask

			q.intents[idx] = intent
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread intents
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.IntentQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.IntentQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending intents in FIFO order and advances head
func (q *IntentQueue) Consume() []Intent {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.IntentQueueSize {
			maxAvailable = parameter.IntentQueueSize
			currentHead = currentTail - parameter.IntentQueueSize
		}

		result := make([]Intent, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.IntentBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.intents[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending intent count
func (q *IntentQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.IntentQueueSize {
		return parameter.IntentQueueSize
	}
	return diff
}
