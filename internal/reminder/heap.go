package reminder

import "container/heap"

// timerHeap implements container/heap.Interface for ArmedTimer, ordered by
// FiresAt (earliest first). Coincident timers are ordered by their position
// in the configured time set, with the sweep timer always last, so a sweep
// never reconciles doses a coincident reminder was about to report on.
type timerHeap []ArmedTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if !h[i].FiresAt.Equal(h[j].FiresAt) {
		return h[i].FiresAt.Before(h[j].FiresAt)
	}
	return h[i].order < h[j].order
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(ArmedTimer))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// heapPush adds an ArmedTimer, maintaining the heap invariant.
func heapPush(h *timerHeap, t ArmedTimer) {
	heap.Push(h, t)
}

// heapPop removes and returns the earliest ArmedTimer.
// Panics if the heap is empty.
func heapPop(h *timerHeap) ArmedTimer {
	return heap.Pop(h).(ArmedTimer)
}
