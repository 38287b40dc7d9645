package worker

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/textpool/internal/testutils"
	"github.com/jzx17/textpool/pkg/types"
)

func TestNewPool(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		expectError bool
	}{
		{name: "valid size", size: 4, expectError: false},
		{name: "single worker", size: 1, expectError: false},
		{name: "zero size should error", size: 0, expectError: true},
		{name: "negative size should error", size: -1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(tt.size)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, pool)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, pool)
				assert.Equal(t, tt.size, pool.Size())
				assert.Equal(t, StateRunning, pool.State())
				pool.Close()
			}
		})
	}
}

func TestPool_ExactlyOnceExecution(t *testing.T) {
	pool, err := NewPool(4)
	require.NoError(t, err)
	defer pool.Close()

	var counter int64
	numTasks := 100
	handles := make([]*Handle, numTasks)

	for i := 0; i < numTasks; i++ {
		handles[i], err = pool.Submit(func() (interface{}, error) {
			atomic.AddInt64(&counter, 1)
			return nil, nil
		})
		require.NoError(t, err)
	}

	for _, h := range handles {
		_, err := h.Result()
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(numTasks), atomic.LoadInt64(&counter))
}

func TestPool_HandleResolvesWithTaskResult(t *testing.T) {
	pool, err := NewPool(4)
	require.NoError(t, err)
	defer pool.Close()

	// tasks sleep briefly and return their index
	numTasks := 4
	handles := make([]*Handle, numTasks)
	for i := 0; i < numTasks; i++ {
		index := i
		handles[i], err = pool.Submit(func() (interface{}, error) {
			time.Sleep(10 * time.Millisecond)
			return index, nil
		})
		require.NoError(t, err)
	}

	for i, h := range handles {
		value, err := h.Result()
		require.NoError(t, err)
		assert.Equal(t, i, value)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)

	pool.Shutdown()

	handle, err := pool.Submit(func() (interface{}, error) {
		return nil, nil
	})
	assert.Nil(t, handle)
	assert.ErrorIs(t, err, types.ErrPoolClosed)

	pool.Close()
}

func TestPool_NilTask(t *testing.T) {
	pool, err := NewPool(1)
	require.NoError(t, err)
	defer pool.Close()

	handle, err := pool.Submit(nil)
	assert.Nil(t, handle)
	assert.Error(t, err)
}

func TestPool_ShutdownDrainsQueuedTasks(t *testing.T) {
	// single worker so most tasks are still queued when shutdown starts
	pool, err := NewPool(1)
	require.NoError(t, err)

	var counter int64
	numTasks := 100
	handles := make([]*Handle, numTasks)

	for i := 0; i < numTasks; i++ {
		handles[i], err = pool.Submit(func() (interface{}, error) {
			atomic.AddInt64(&counter, 1)
			return nil, nil
		})
		require.NoError(t, err)
	}

	pool.Shutdown()
	pool.Close()

	assert.Equal(t, StateTerminated, pool.State())
	assert.Equal(t, int64(numTasks), atomic.LoadInt64(&counter))
	for _, h := range handles {
		select {
		case <-h.Done():
		default:
			t.Fatal("handle unresolved after Close")
		}
	}
}

func TestPool_CloseIdempotent(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := pool.Submit(func() (interface{}, error) {
			time.Sleep(time.Millisecond)
			return nil, nil
		})
		require.NoError(t, err)
	}

	pool.Close()
	assert.Equal(t, StateTerminated, pool.State())

	// repeated shutdown and close must be no-ops
	pool.Shutdown()
	pool.Close()
	pool.Close()
	assert.Equal(t, StateTerminated, pool.State())
}

func TestPool_ConcurrentClose(t *testing.T) {
	pool, err := NewPool(4)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := pool.Submit(func() (interface{}, error) {
			time.Sleep(time.Millisecond)
			return nil, nil
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Close()
		}()
	}
	wg.Wait()
	assert.Equal(t, StateTerminated, pool.State())
}

func TestPool_TaskError(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	defer pool.Close()

	boom := fmt.Errorf("boom")
	handle, err := pool.Submit(func() (interface{}, error) {
		return nil, boom
	})
	require.NoError(t, err)

	value, err := handle.Result()
	assert.Nil(t, value)
	assert.ErrorIs(t, err, boom)
}

func TestPool_PanicRecovery(t *testing.T) {
	pool, err := NewPool(1)
	require.NoError(t, err)
	defer pool.Close()

	panicHandle, err := pool.Submit(func() (interface{}, error) {
		panic("test panic")
	})
	require.NoError(t, err)

	// the single worker must survive the panic and run the next task
	okHandle, err := pool.Submit(func() (interface{}, error) {
		return "still alive", nil
	})
	require.NoError(t, err)

	_, err = panicHandle.Result()
	require.Error(t, err)
	var taskErr *types.TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "worker", taskErr.Op)
	assert.Contains(t, taskErr.Context, "stack_trace")

	value, err := okHandle.Result()
	assert.NoError(t, err)
	assert.Equal(t, "still alive", value)
}

func TestPool_FIFODequeueOrder(t *testing.T) {
	// a single worker makes completion order equal dequeue order
	pool, err := NewPool(1)
	require.NoError(t, err)
	defer pool.Close()

	var mu sync.Mutex
	var order []int
	numTasks := 20
	handles := make([]*Handle, numTasks)

	for i := 0; i < numTasks; i++ {
		index := i
		handles[i], err = pool.Submit(func() (interface{}, error) {
			mu.Lock()
			order = append(order, index)
			mu.Unlock()
			return nil, nil
		})
		require.NoError(t, err)
	}

	for _, h := range handles {
		_, _ = h.Result()
	}

	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestPool_ConcurrentSubmit(t *testing.T) {
	pool, err := NewPool(8)
	require.NoError(t, err)
	defer pool.Close()

	var counter int64
	var wg sync.WaitGroup
	submitters := 16
	perSubmitter := 50

	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perSubmitter; j++ {
				h, err := pool.Submit(func() (interface{}, error) {
					atomic.AddInt64(&counter, 1)
					return nil, nil
				})
				if err != nil {
					t.Error(err)
					return
				}
				_, _ = h.Result()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(submitters*perSubmitter), atomic.LoadInt64(&counter))
}

func TestPool_Stats(t *testing.T) {
	clock := testutils.NewMockClockWrapper(t)
	pool, err := NewPoolWithClock(2, clock)
	require.NoError(t, err)
	defer pool.Close()

	stats := pool.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, StateRunning, stats.State)
	assert.Equal(t, int64(0), stats.TotalExecuted)

	okHandle, err := pool.Submit(func() (interface{}, error) { return nil, nil })
	require.NoError(t, err)
	failHandle, err := pool.Submit(func() (interface{}, error) { return nil, fmt.Errorf("fail") })
	require.NoError(t, err)

	_, _ = okHandle.Result()
	_, _ = failHandle.Result()

	stats = pool.Stats()
	assert.Equal(t, int64(1), stats.TotalExecuted)
	assert.Equal(t, int64(1), stats.TotalFailed)
	// mock time never advanced, so busy time stays at zero
	assert.Equal(t, int64(0), stats.TotalBusy)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "shutting-down", StateShuttingDown.String())
	assert.Equal(t, "terminated", StateTerminated.String())
	assert.Equal(t, "unknown", State(42).String())
}

func BenchmarkPool_Submit(b *testing.B) {
	pool, err := NewPool(8)
	require.NoError(b, err)
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, _ := pool.Submit(func() (interface{}, error) { return nil, nil })
		_, _ = h.Result()
	}
}
