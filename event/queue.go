package event

import (
	"sync/atomic"

	"github.com/lixenwraith/parallax/parameter"
)

// Queue is a lock-free MPSC ring buffer
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest items overwritten when full
type Queue[T any] struct {
	items     []T
	published []atomic.Bool // True = slot fully written
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
}

// NewQueue creates a queue with parameter.PostQueueSize slots
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		items:     make([]T, parameter.PostQueueSize),
		published: make([]atomic.Bool, parameter.PostQueueSize),
	}
}

// Push adds an item using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (q *Queue[T]) Push(item T) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.PostQueueMask

			q.items[idx] = item
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread items
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.PostQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.PostQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending items in FIFO order and advances head
// Single-consumer design. Checks published flags for safety
func (q *Queue[T]) Consume() []T {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.PostQueueSize {
			maxAvailable = parameter.PostQueueSize
			currentHead = currentTail - parameter.PostQueueSize
		}

		result := make([]T, 0, maxAvailable)
		var zero T
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.PostQueueMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.items[idx])
			q.items[idx] = zero // release references held by the slot
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

// Len returns approximate pending item count
func (q *Queue[T]) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.PostQueueSize {
		return parameter.PostQueueSize
	}
	return diff
}
