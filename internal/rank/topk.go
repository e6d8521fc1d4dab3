package rank

import "container/heap"

// ratedHeap is a min-heap over the ranking order, the root is the
// worst-ranked retained entry.
type ratedHeap []Rated

func (h ratedHeap) Len() int           { return len(h) }
func (h ratedHeap) Less(i, j int) bool { return before(h[j], h[i]) }
func (h ratedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *ratedHeap) Push(x any) { *h = append(*h, x.(Rated)) }
func (h *ratedHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topN returns the n best-ranked entries in ranking order without sorting
// the full slice.
func topN(items []Rated, n int) []Rated {
	if n <= 0 {
		return nil
	}
	h := make(ratedHeap, 0, n)
	for _, it := range items {
		if len(h) < n {
			heap.Push(&h, it)
			continue
		}
		if before(it, h[0]) {
			h[0] = it
			heap.Fix(&h, 0)
		}
	}
	out := make([]Rated, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Rated)
	}
	return out
}
