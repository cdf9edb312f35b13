package structure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intHeap is a minimal Interface implementation over a plain []int, used to
// exercise the algorithm independent of the matching core's Order type.
type intHeap []int

func (h intHeap) Len() int           { return len(h) }
func (h intHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h intHeap) min() int {
	m := h[0]
	for _, v := range h {
		if v < m {
			m = v
		}
	}
	return m
}

func (h intHeap) max() int {
	m := h[0]
	for _, v := range h {
		if v > m {
			m = v
		}
	}
	return m
}

func buildByPushUp(values []int) intHeap {
	h := make(intHeap, 0, len(values))
	for _, v := range values {
		h = append(h, v)
		PushUp(h, len(h)-1)
	}
	return h
}

func TestMinMaxHeap_PushUpMaintainsMinAtRoot(t *testing.T) {
	h := buildByPushUp([]int{5, 1, 9, 3, 7, 2, 8, 4, 6, 0})
	assert.Equal(t, h.min(), h[0], "index 0 (a min level) must hold the overall minimum")
}

func TestMinMaxHeap_SecondAndThirdIndicesHoldMaxCandidates(t *testing.T) {
	h := buildByPushUp([]int{5, 1, 9, 3, 7, 2, 8, 4, 6, 0})
	// the max must be among the root's direct children (index 1, 2): the
	// first max-level entries.
	require.True(t, h.Len() >= 2)
	candidate := h[1]
	if len(h) > 2 && h[2] > candidate {
		candidate = h[2]
	}
	assert.Equal(t, h.max(), candidate)
}

func TestMinMaxHeap_RepeatedRemoveTopYieldsSortedOrder(t *testing.T) {
	values := []int{42, 17, 8, 99, 3, 56, 1, 23, 77, 5, 64, 2}
	h := buildByPushUp(values)

	var drained []int
	for h.Len() > 0 {
		drained = append(drained, h[0])
		last := h.Len() - 1
		h.Swap(0, last)
		h = h[:last]
		if h.Len() > 0 {
			PushDown(h, 0)
		}
	}

	want := append([]int(nil), values...)
	sort.Ints(want)
	assert.Equal(t, want, drained, "draining the root repeatedly must yield ascending order")
}

func TestMinMaxHeap_FixAfterKeyDecreaseRestoresMin(t *testing.T) {
	h := buildByPushUp([]int{10, 20, 30, 40, 50, 60, 70})
	// lower some interior element below the current minimum and Fix it.
	idx := 4
	h[idx] = -5
	Fix(h, idx)
	assert.Equal(t, h.min(), h[0])
}

func TestMinMaxHeap_FixAfterKeyIncreaseRestoresInvariant(t *testing.T) {
	h := buildByPushUp([]int{10, 20, 30, 40, 50, 60, 70})
	idx := 0
	h[idx] = 1000
	Fix(h, idx)
	assert.Equal(t, h.min(), h[0])
}

func TestMinMaxHeap_RandomizedInvariantHolds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := r.Intn(50) + 1
		values := make([]int, n)
		for i := range values {
			values[i] = r.Intn(1000)
		}
		h := buildByPushUp(values)
		assert.Equal(t, h.min(), h[0])

		var drained []int
		for h.Len() > 0 {
			drained = append(drained, h[0])
			last := h.Len() - 1
			h.Swap(0, last)
			h = h[:last]
			if h.Len() > 0 {
				PushDown(h, 0)
			}
		}
		want := append([]int(nil), values...)
		sort.Ints(want)
		assert.Equal(t, want, drained)
	}
}

func TestMinMaxHeap_SingleElement(t *testing.T) {
	h := buildByPushUp([]int{42})
	assert.Equal(t, 42, h[0])
	PushDown(h, 0)
	Fix(h, 0)
	assert.Equal(t, 42, h[0])
}
