package scheduler

import "container/heap"

// MaxImportance is the highest importance level a job can carry.
// Importance values are dense in [1, MaxImportance], which is what makes
// the per-importance partitioning below a flat array rather than a map.
const MaxImportance = 100

// jobHeap implements heap.Interface over job IDs, ordered by the full
// composite priority (popped highest first). Holding IDs instead of job
// records keeps sift operations from copying satellite data; the
// registry resolves comparisons.
type jobHeap struct {
	reg *Registry
	ids []uint64
}

func (h jobHeap) Len() int { return len(h.ids) }

func (h jobHeap) Less(i, j int) bool {
	return h.reg.Get(h.ids[i]).HigherPriorityThan(h.reg.Get(h.ids[j]))
}

func (h jobHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
}

// Push adds an ID to the heap. Called by heap.Push — do not call directly.
func (h *jobHeap) Push(x any) {
	h.ids = append(h.ids, x.(uint64))
}

// Pop removes and returns the highest-priority ID. Called by heap.Pop — do not call directly.
func (h *jobHeap) Pop() any {
	old := h.ids
	n := len(old)
	id := old[n-1]
	h.ids = old[:n-1]
	return id
}

// PriorityQueue holds the waiting jobs that have left staging,
// partitioned into one heap per importance level. The partitioning keeps
// each heap a constant factor smaller and makes "highest importance
// first" a plain downward scan over the bands.
type PriorityQueue struct {
	bands [MaxImportance + 1]jobHeap
	size  int
}

// NewPriorityQueue returns an empty queue resolving IDs against reg.
func NewPriorityQueue(reg *Registry) *PriorityQueue {
	q := &PriorityQueue{}
	for i := range q.bands {
		q.bands[i].reg = reg
	}
	return q
}

// Push inserts a job ID into the band for its importance.
func (q *PriorityQueue) Push(id uint64, importance int) {
	heap.Push(&q.bands[importance], id)
	q.size++
}

// PopBand removes and returns the highest-priority ID in the given
// importance band. ok is false when the band is empty.
func (q *PriorityQueue) PopBand(importance int) (id uint64, ok bool) {
	if q.bands[importance].Len() == 0 {
		return 0, false
	}
	q.size--
	return heap.Pop(&q.bands[importance]).(uint64), true
}

// BandLen returns the number of waiting jobs at the given importance.
func (q *PriorityQueue) BandLen(importance int) int {
	return q.bands[importance].Len()
}

// Len returns the number of waiting jobs across all bands.
func (q *PriorityQueue) Len() int {
	return q.size
}
