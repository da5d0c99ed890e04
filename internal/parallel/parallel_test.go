package parallel

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFor_CoversRangeOnce(t *testing.T) {
	cfgs := map[string]Config{
		"sequential": Sequential(),
		"parallel":   {Enabled: true, NumWorkers: 4, MinChunkSize: 10},
		"default":    DefaultConfig(),
	}

	for name, cfg := range cfgs {
		t.Run(name, func(t *testing.T) {
			const n = 1000
			var hits [n]int32
			For(n, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			}, cfg)

			for i, h := range hits {
				assert.Equal(t, int32(1), h, "index %d", i)
			}
		})
	}
}

func TestFor_SmallInputRunsInline(t *testing.T) {
	calls := 0
	For(5, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 5, end)
	}, Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64})
	assert.Equal(t, 1, calls)
}

func TestFor_Empty(t *testing.T) {
	For(0, func(int, int) { t.Fatal("should not be called") }, DefaultConfig())
}

func TestFor_BoundsWorkers(t *testing.T) {
	var running, peak int32
	For(64, func(start, end int) {
		cur := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
	}, Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1})

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}
