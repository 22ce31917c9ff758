package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeCoversEveryIndexOnce(t *testing.T) {
	for _, tc := range []struct {
		items, workers int
	}{
		{items: 1, workers: 4},
		{items: 10, workers: 3},
		{items: 700, workers: 8},
		{items: 5, workers: 0},
	} {
		hits := make([]int32, tc.items)
		ParallelizeN(tc.items, tc.workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			assert.Equal(t, int32(1), h, "items=%d workers=%d index=%d", tc.items, tc.workers, i)
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)

	ParallelizeWithThreshold(0, 100, func(start, end int) {
		t.Fatal("fn must not run for zero items")
	})

	var total int64
	ParallelizeWithThreshold(1000, 10, func(start, end int) {
		atomic.AddInt64(&total, int64(end-start))
	})
	assert.Equal(t, int64(1000), total)
}
