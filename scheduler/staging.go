package scheduler

import "container/heap"

// durationHeap implements heap.Interface over job IDs, ordered by
// ascending duration. It stages jobs admitted at one open timestamp so
// that equal-timestamp ties drain shortest-first.
type durationHeap struct {
	reg *Registry
	ids []uint64
}

func (h durationHeap) Len() int { return len(h.ids) }

func (h durationHeap) Less(i, j int) bool {
	return h.reg.Get(h.ids[i]).Duration < h.reg.Get(h.ids[j]).Duration
}

func (h durationHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
}

// Push adds an ID to the heap. Called by heap.Push — do not call directly.
func (h *durationHeap) Push(x any) {
	h.ids = append(h.ids, x.(uint64))
}

// Pop removes and returns the shortest-duration ID. Called by heap.Pop — do not call directly.
func (h *durationHeap) Pop() any {
	old := h.ids
	n := len(old)
	id := old[n-1]
	h.ids = old[:n-1]
	return id
}

// Staging defers admissions before they reach the priority queue and the
// historical buckets. Each importance band accumulates the jobs admitted
// at its currently-open timestamp in a duration-keyed min-heap, so a
// drain hands them over shortest-first. Without this, a job arriving
// late at the open timestamp with a shorter duration could land behind
// an earlier, longer one in the append-only bucket order.
type Staging struct {
	bands  [MaxImportance + 1]durationHeap
	openTS [MaxImportance + 1]uint64
	total  int
}

// NewStaging returns empty staging resolving IDs against reg.
func NewStaging(reg *Registry) *Staging {
	s := &Staging{}
	for i := range s.bands {
		s.bands[i].reg = reg
	}
	return s
}

// Push stages a job ID in the band for its importance and marks ts as
// the band's open timestamp. The caller drains the band first when its
// open timestamp differs.
func (s *Staging) Push(id uint64, importance int, ts uint64) {
	heap.Push(&s.bands[importance], id)
	s.openTS[importance] = ts
	s.total++
}

// OpenTimestamp returns the timestamp a non-empty band is staging for.
// ok is false when the band is empty.
func (s *Staging) OpenTimestamp(importance int) (ts uint64, ok bool) {
	if s.bands[importance].Len() == 0 {
		return 0, false
	}
	return s.openTS[importance], true
}

// DrainBand empties one band, returning its IDs in ascending duration
// order.
func (s *Staging) DrainBand(importance int) []uint64 {
	n := s.bands[importance].Len()
	if n == 0 {
		return nil
	}
	ids := make([]uint64, 0, n)
	for s.bands[importance].Len() > 0 {
		ids = append(ids, heap.Pop(&s.bands[importance]).(uint64))
		s.total--
	}
	return ids
}

// BandLen returns the number of jobs staged at the given importance.
func (s *Staging) BandLen(importance int) int {
	return s.bands[importance].Len()
}

// Len returns the number of staged jobs across all bands. A zero total
// lets callers skip the 100-band scan entirely.
func (s *Staging) Len() int {
	return s.total
}
