package scheduler

import (
	"sort"

	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/scheduler/job"
)

// Sentinel min/max recorded when the waiting set is empty. Max < Min is
// impossible for a real window, so readers treat it as "no jobs queued".
const (
	emptyWindowMin = 1
	emptyWindowMax = 0
)

// SummaryEntry records the smallest and largest arrival timestamps among
// the jobs still waiting immediately after the operation at TS.
type SummaryEntry struct {
	TS  uint64
	Min uint64
	Max uint64
}

// Empty reports whether the entry recorded an empty waiting set.
func (e SummaryEntry) Empty() bool {
	return e.Max < e.Min
}

// SummaryLog is the append-only sequence of summary entries, one per
// distinct operation timestamp, in strictly increasing TS order. The
// waiting set only changes at operation timestamps, so a historical
// query for any T collapses to the entry with the largest TS <= T.
type SummaryLog struct {
	entries []SummaryEntry
}

// NewSummaryLog returns an empty log.
func NewSummaryLog() *SummaryLog {
	return &SummaryLog{}
}

// Record sets the window for ts. A repeated tail timestamp overwrites
// the last entry in place; a new timestamp appends. ts never regresses
// because operation timestamps are non-decreasing.
func (l *SummaryLog) Record(ts, min, max uint64) {
	if n := len(l.entries); n > 0 && l.entries[n-1].TS == ts {
		l.entries[n-1] = SummaryEntry{TS: ts, Min: min, Max: max}
		return
	}
	l.entries = append(l.entries, SummaryEntry{TS: ts, Min: min, Max: max})
}

// Floor returns the entry with the largest TS <= t. ok is false when no
// such entry exists (t precedes every recorded operation, or nothing has
// been recorded).
func (l *SummaryLog) Floor(t uint64) (entry SummaryEntry, ok bool) {
	// First index with TS > t; the floor sits immediately before it.
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].TS > t
	})
	if i == 0 {
		return SummaryEntry{}, false
	}
	return l.entries[i-1], true
}

// Len returns the number of recorded entries.
func (l *SummaryLog) Len() int {
	return len(l.entries)
}

// Last returns the most recent entry. ok is false when the log is empty.
func (l *SummaryLog) Last() (entry SummaryEntry, ok bool) {
	if len(l.entries) == 0 {
		return SummaryEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Buckets is the historical index: one append-only job ID sequence per
// importance level, appended in staging drain order. Entries are never
// removed, even after assignment; readers filter on QExit instead.
//
// Within a bucket, arrival timestamps are non-decreasing (staging drains
// in strictly increasing timestamp epochs) and equal-timestamp runs are
// ordered by ascending duration (the staging heap drains
// shortest-first). So a bucket enumerates its jobs in composite priority
// order, and a timestamp window maps to one contiguous slice.
type Buckets struct {
	reg  *Registry
	seqs [MaxImportance + 1][]uint64
}

// NewBuckets returns an empty index resolving IDs against reg.
func NewBuckets(reg *Registry) *Buckets {
	return &Buckets{reg: reg}
}

// Append records a job ID in its importance bucket.
func (b *Buckets) Append(importance int, id uint64) {
	b.seqs[importance] = append(b.seqs[importance], id)
}

// BandLen returns the number of entries in the given bucket.
func (b *Buckets) BandLen(importance int) int {
	return len(b.seqs[importance])
}

// Scan visits the bucket's jobs whose arrival timestamps fall in
// [min, max], in bucket order, until visit returns false. Buckets whose
// timestamp range misses the window entirely are skipped without a
// search.
func (b *Buckets) Scan(importance int, min, max uint64, visit func(*job.Job) bool) {
	seq := b.seqs[importance]
	if len(seq) == 0 {
		return
	}
	if max < b.reg.Get(seq[0]).Timestamp {
		return
	}
	if min > b.reg.Get(seq[len(seq)-1]).Timestamp {
		return
	}
	// First index with timestamp >= min, last index with timestamp <= max.
	lo := sort.Search(len(seq), func(i int) bool {
		return b.reg.Get(seq[i]).Timestamp >= min
	})
	hi := sort.Search(len(seq), func(i int) bool {
		return b.reg.Get(seq[i]).Timestamp > max
	})
	for _, id := range seq[lo:hi] {
		if !visit(b.reg.Get(id)) {
			return
		}
	}
}
