package avl

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyTree(t *testing.T) {
	tr := New()
	require.True(t, tr.Empty())
	require.EqualValues(t, 0, tr.Size())
	require.EqualValues(t, 0, tr.CountAtMost(100))

	_, ok := tr.Min()
	require.False(t, ok)
	_, ok = tr.Max()
	require.False(t, ok)
}

func TestNewWithValue(t *testing.T) {
	tr := NewWithValue(0, 8)
	require.EqualValues(t, 8, tr.Size())
	require.EqualValues(t, 8, tr.CountAtMost(0))
	require.EqualValues(t, 8, tr.CountAtMost(50))

	min, ok := tr.Min()
	require.True(t, ok)
	require.EqualValues(t, 0, min)
	max, ok := tr.Max()
	require.True(t, ok)
	require.EqualValues(t, 0, max)

	require.True(t, NewWithValue(3, 0).Empty())
}

func TestInsertCoalescesDuplicates(t *testing.T) {
	tr := New()
	for i := 0; i < 5; i++ {
		tr.Insert(7)
	}
	tr.Insert(3)
	tr.Insert(11)

	require.EqualValues(t, 7, tr.Size())
	require.EqualValues(t, 1, tr.CountAtMost(3))
	require.EqualValues(t, 6, tr.CountAtMost(7))
	require.EqualValues(t, 7, tr.CountAtMost(11))
}

func TestCountAtMostBoundaries(t *testing.T) {
	tr := New()
	for _, v := range []uint64{10, 20, 20, 30} {
		tr.Insert(v)
	}

	require.EqualValues(t, 0, tr.CountAtMost(9))
	require.EqualValues(t, 1, tr.CountAtMost(10))
	require.EqualValues(t, 1, tr.CountAtMost(19))
	require.EqualValues(t, 3, tr.CountAtMost(20))
	require.EqualValues(t, 4, tr.CountAtMost(30))
	require.EqualValues(t, 4, tr.CountAtMost(1<<40))
}

func TestDeleteDecrementsThenRemoves(t *testing.T) {
	tr := New()
	tr.Insert(5)
	tr.Insert(5)
	tr.Insert(9)

	tr.Delete(5)
	require.EqualValues(t, 2, tr.Size())
	require.EqualValues(t, 1, tr.CountAtMost(5))

	tr.Delete(5)
	require.EqualValues(t, 1, tr.Size())
	require.EqualValues(t, 0, tr.CountAtMost(5))

	min, ok := tr.Min()
	require.True(t, ok)
	require.EqualValues(t, 9, min)
}

func TestDeleteAbsentValueIsNoop(t *testing.T) {
	tr := New()
	tr.Insert(4)
	tr.Delete(99)
	require.EqualValues(t, 1, tr.Size())
}

func TestDeleteTwoChildrenKeepsMultiplicity(t *testing.T) {
	// Deleting a two-child node must carry the successor's full
	// multiplicity across, not just one copy.
	tr := New()
	for _, v := range []uint64{50, 25, 75, 75, 75, 100} {
		tr.Insert(v)
	}
	tr.Delete(50)

	require.EqualValues(t, 5, tr.Size())
	require.EqualValues(t, 0, tr.CountAtMost(50)-tr.CountAtMost(49)) // 50 gone
	require.EqualValues(t, 3, tr.CountAtMost(75)-tr.CountAtMost(74)) // all 75s intact
}

func TestDeleteAtMostTakesLeftmost(t *testing.T) {
	tr := New()
	for _, v := range []uint64{10, 20, 30} {
		tr.Insert(v)
	}

	// Minimum is 10 <= 25, so the leftmost descent lands on it.
	tr.DeleteAtMost(25)
	require.EqualValues(t, 2, tr.Size())
	min, ok := tr.Min()
	require.True(t, ok)
	require.EqualValues(t, 20, min)

	tr.DeleteAtMost(20)
	min, ok = tr.Min()
	require.True(t, ok)
	require.EqualValues(t, 30, min)
	require.EqualValues(t, 1, tr.Size())
}

func TestDeleteAtMostDecrementsFrequency(t *testing.T) {
	tr := NewWithValue(0, 3)
	tr.Insert(12)

	tr.DeleteAtMost(5)
	tr.DeleteAtMost(5)
	require.EqualValues(t, 2, tr.Size())
	require.EqualValues(t, 1, tr.CountAtMost(5))

	tr.DeleteAtMost(5)
	require.EqualValues(t, 0, tr.CountAtMost(5))
	min, ok := tr.Min()
	require.True(t, ok)
	require.EqualValues(t, 12, min)
}

func TestSequentialInsertStaysBalancedEnough(t *testing.T) {
	// Ascending inserts are the classic degenerate case for an
	// unbalanced BST (height n). An AVL tree of 10k nodes is at most 18
	// levels tall, so the height check shows the rotations kept it
	// balanced; the counts check that they kept the sizes right.
	tr := New()
	const n = 10000
	for v := uint64(1); v <= n; v++ {
		tr.Insert(v)
	}
	require.LessOrEqual(t, tr.root.height, 18)
	require.EqualValues(t, n, tr.Size())
	for _, probe := range []uint64{1, 500, 9999, n} {
		require.EqualValues(t, probe, tr.CountAtMost(probe))
	}
	max, ok := tr.Max()
	require.True(t, ok)
	require.EqualValues(t, n, max)
}

// TestRandomizedAgainstReference drives the tree with a random op mix
// and cross-checks every observable against a sorted-slice multiset.
func TestRandomizedAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := New()
	var ref []uint64 // sorted multiset

	refInsert := func(v uint64) {
		i := sort.Search(len(ref), func(i int) bool { return ref[i] >= v })
		ref = append(ref, 0)
		copy(ref[i+1:], ref[i:])
		ref[i] = v
	}
	refDelete := func(v uint64) {
		i := sort.Search(len(ref), func(i int) bool { return ref[i] >= v })
		if i < len(ref) && ref[i] == v {
			ref = append(ref[:i], ref[i+1:]...)
		}
	}
	refCountAtMost := func(v uint64) uint64 {
		return uint64(sort.Search(len(ref), func(i int) bool { return ref[i] > v }))
	}

	for step := 0; step < 20000; step++ {
		v := uint64(rng.Intn(64)) // small domain to force duplicates
		switch rng.Intn(4) {
		case 0, 1:
			tr.Insert(v)
			refInsert(v)
		case 2:
			tr.Delete(v)
			refDelete(v)
		case 3:
			if tr.CountAtMost(v) > 0 {
				tr.DeleteAtMost(v)
				refDelete(ref[0]) // leftmost policy removes the minimum
			}
		}

		require.EqualValues(t, len(ref), tr.Size(), "step %d", step)
		probe := uint64(rng.Intn(64))
		require.Equal(t, refCountAtMost(probe), tr.CountAtMost(probe), "step %d probe %d", step, probe)

		min, ok := tr.Min()
		require.Equal(t, len(ref) > 0, ok, "step %d", step)
		if ok {
			require.Equal(t, ref[0], min, "step %d", step)
			max, _ := tr.Max()
			require.Equal(t, ref[len(ref)-1], max, "step %d", step)
		}
	}
}
