package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapOrdered_PreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	// later items finish first
	results := MapOrdered(context.Background(), items, 5, func(ctx context.Context, i int, item int) int {
		time.Sleep(time.Duration(len(items)-i) * 5 * time.Millisecond)
		return item * 10
	})

	assert.Equal(t, []int{10, 20, 30, 40, 50}, results)
}

func TestMapOrdered_RespectsLimit(t *testing.T) {
	var inFlight, peak int32
	items := make([]int, 12)

	MapOrdered(context.Background(), items, 3, func(ctx context.Context, _ int, _ int) struct{} {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}
	})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestMapOrdered_Empty(t *testing.T) {
	results := MapOrdered(context.Background(), []string{}, 2, func(ctx context.Context, _ int, s string) string {
		return s
	})
	assert.Nil(t, results)
}

func TestMapOrdered_FailuresStayInResults(t *testing.T) {
	var ran int32
	results := MapOrdered(context.Background(), []string{"a", "b", "c"}, 0, func(ctx context.Context, _ int, s string) error {
		atomic.AddInt32(&ran, 1)
		if s == "b" {
			return errors.New("image failed")
		}
		return nil
	})

	assert.Equal(t, int32(3), atomic.LoadInt32(&ran), "a failure must not stop siblings")
	assert.NoError(t, results[0])
	assert.EqualError(t, results[1], "image failed")
	assert.NoError(t, results[2])
}
