package scheduler

import (
	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/avl"
	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/scheduler/job"
)

// Scheduler is the central coordinator for the three operations: admit a
// job, assign CPUs to the highest-priority waiting jobs, and reconstruct
// the waiting set at a past timestamp. It is single-threaded and
// strictly sequential: one command mutates the indexes at a time, in
// stream order.
type Scheduler struct {
	reg      *Registry
	queue    *PriorityQueue
	staging  *Staging
	buckets  *Buckets
	summary  *SummaryLog
	cpus     *avl.Tree // free-after times of the CPU pool; nil until InitCPUs
	arrivals *avl.Tree // arrival timestamps of currently-waiting jobs
	prevTS   uint64    // timestamp of the most recent admit/assign
}

// New returns a scheduler with no CPU pool configured. InitCPUs must run
// before the first Assign can hand out work.
func New() *Scheduler {
	reg := NewRegistry()
	return &Scheduler{
		reg:      reg,
		queue:    NewPriorityQueue(reg),
		staging:  NewStaging(reg),
		buckets:  NewBuckets(reg),
		summary:  NewSummaryLog(),
		arrivals: avl.New(),
	}
}

// InitCPUs sets the CPU pool size. Every CPU starts free at time 0, so
// the pool collapses into a single tree node with multiplicity count.
func (s *Scheduler) InitCPUs(count uint64) {
	s.cpus = avl.NewWithValue(0, count)
}

// Admit records a newly arrived job and stages it for its importance
// band. Returns the admitted job.
func (s *Scheduler) Admit(ts, processID uint64, origin, instruction string, importance int, duration uint64) *job.Job {
	// A strictly newer timestamp closes every open staging epoch.
	if ts > s.prevTS && s.staging.Len() > 0 {
		s.flushAll()
	}
	s.prevTS = ts

	j := s.reg.Insert(ts, processID, origin, instruction, importance, duration)

	// Same-band admissions at a different timestamp also close that
	// band's epoch before the new one opens.
	if open, ok := s.staging.OpenTimestamp(importance); ok && open != ts {
		s.flushBand(importance)
	}
	s.staging.Push(j.ID, importance, ts)

	s.arrivals.Insert(ts)
	s.recordSummary(ts)
	return j
}

// Assign hands CPUs to up to k of the highest-priority waiting jobs at
// time ts, bounded by how many CPUs are free then. Returns the assigned
// jobs in emission order (highest priority first).
func (s *Scheduler) Assign(ts, k uint64) []*job.Job {
	if s.staging.Len() > 0 {
		s.flushAll()
	}
	s.prevTS = ts

	free := uint64(0)
	if s.cpus != nil {
		free = s.cpus.CountAtMost(ts)
	}
	toAssign := k
	if free < toAssign {
		toAssign = free
	}

	var assigned []*job.Job
	for imp := MaxImportance; imp >= 1 && uint64(len(assigned)) < toAssign; imp-- {
		for uint64(len(assigned)) < toAssign {
			id, ok := s.queue.PopBand(imp)
			if !ok {
				break
			}
			j := s.reg.Get(id)
			j.QExit = ts
			s.cpus.DeleteAtMost(ts)
			s.cpus.Insert(ts + j.Duration)
			s.arrivals.Delete(j.Timestamp)
			assigned = append(assigned, j)
		}
	}

	s.recordSummary(ts)
	return assigned
}

// QueryTopK reconstructs the waiting set at time t and returns up to k
// jobs from it in composite priority order.
func (s *Scheduler) QueryTopK(t, k uint64) []*job.Job {
	entry, ok := s.beginQuery(t)
	if !ok {
		return nil
	}
	var out []*job.Job
	for imp := MaxImportance; imp >= 1 && uint64(len(out)) < k; imp-- {
		s.buckets.Scan(imp, entry.Min, entry.Max, func(j *job.Job) bool {
			if j.Timestamp > t {
				return false
			}
			if j.QueuedAt(t) {
				out = append(out, j)
			}
			return uint64(len(out)) < k
		})
	}
	return out
}

// QueryOrigin reconstructs the waiting set at time t and returns the
// jobs from the given origin system, in composite priority order.
func (s *Scheduler) QueryOrigin(t uint64, origin string) []*job.Job {
	entry, ok := s.beginQuery(t)
	if !ok {
		return nil
	}
	var out []*job.Job
	for imp := MaxImportance; imp >= 1; imp-- {
		s.buckets.Scan(imp, entry.Min, entry.Max, func(j *job.Job) bool {
			if j.Timestamp > t {
				return false
			}
			if j.Origin == origin && j.QueuedAt(t) {
				out = append(out, j)
			}
			return true
		})
	}
	return out
}

// beginQuery flushes staging when t could see jobs still staged at the
// current timestamp, then resolves the summary window for t. ok is false
// when nothing was queued: t precedes every operation, or the floor
// entry recorded an empty waiting set. Queries do not advance prevTS.
func (s *Scheduler) beginQuery(t uint64) (SummaryEntry, bool) {
	if t >= s.prevTS && s.staging.Len() > 0 {
		s.flushAll()
	}
	entry, ok := s.summary.Floor(t)
	if !ok || entry.Empty() {
		return SummaryEntry{}, false
	}
	return entry, true
}

// flushBand drains one staging band, appending the drained IDs to the
// band's historical bucket and the priority queue. Drain order is
// ascending duration, which is exactly the composite order within one
// (timestamp, importance) epoch.
func (s *Scheduler) flushBand(importance int) {
	for _, id := range s.staging.DrainBand(importance) {
		s.buckets.Append(importance, id)
		s.queue.Push(id, importance)
	}
}

// flushAll closes every open staging epoch.
func (s *Scheduler) flushAll() {
	for imp := 1; imp <= MaxImportance; imp++ {
		s.flushBand(imp)
	}
}

// recordSummary captures the arrival tree's window into the summary log
// after the operation at ts.
func (s *Scheduler) recordSummary(ts uint64) {
	min, max := uint64(emptyWindowMin), uint64(emptyWindowMax)
	if !s.arrivals.Empty() {
		min, _ = s.arrivals.Min()
		max, _ = s.arrivals.Max()
	}
	s.summary.Record(ts, min, max)
}

// Stats returns a snapshot of the scheduler's current state: jobs
// waiting (staged included), jobs assigned so far, and CPUs free at the
// most recent operation timestamp.
func (s *Scheduler) Stats() (waiting, assigned int, freeCPUs uint64) {
	waiting = s.queue.Len() + s.staging.Len()
	assigned = s.reg.Len() - waiting
	if s.cpus != nil {
		freeCPUs = s.cpus.CountAtMost(s.prevTS)
	}
	return waiting, assigned, freeCPUs
}
