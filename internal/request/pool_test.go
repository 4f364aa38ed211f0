package request

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestPoolRunCallsEveryIndexExactlyOnce(t *testing.T) {
	pool := NewPool(context.Background())
	defer pool.Stop()

	const n = 50
	seen := make([]int32, n)
	pool.Run(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})

	for i, c := range seen {
		if c != 1 {
			t.Errorf("index %d was run %d times, want 1", i, c)
		}
	}
}

func TestPoolRunZeroIsNoop(t *testing.T) {
	pool := NewPool(context.Background())
	defer pool.Stop()
	pool.Run(0, func(i int) { t.Fatal("fn should not be called for n=0") })
}
