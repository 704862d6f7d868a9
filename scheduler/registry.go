package scheduler

import "github.com/tusharsircar95/GSQuantify-2016-JobScheduler/scheduler/job"

// Registry is the dense, append-only job store. IDs are contiguous from
// 0 in admission order, so lookup is a slice index. Heaps and buckets
// hold IDs rather than job copies; everything routes through here to
// read the satellite data.
type Registry struct {
	jobs []*job.Job
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert allocates the next ID, records the job, and returns it.
func (r *Registry) Insert(ts, processID uint64, origin, instruction string, importance int, duration uint64) *job.Job {
	j := &job.Job{
		ID:          uint64(len(r.jobs)),
		ProcessID:   processID,
		Origin:      origin,
		Instruction: instruction,
		Timestamp:   ts,
		Importance:  importance,
		Duration:    duration,
	}
	r.jobs = append(r.jobs, j)
	return j
}

// Get returns the job with the given ID. IDs come from this registry,
// so out-of-range access is a programming error and panics via the
// slice bounds check.
func (r *Registry) Get(id uint64) *job.Job {
	return r.jobs[id]
}

// Len returns the number of admitted jobs.
func (r *Registry) Len() int {
	return len(r.jobs)
}
