package worker

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/jzx17/textpool/pkg/types"
)

// State defines the lifecycle state of a Pool
type State int32

const (
	// StateRunning accepts submissions and dispatches tasks
	StateRunning State = iota
	// StateShuttingDown rejects new submissions but drains queued tasks
	StateShuttingDown
	// StateTerminated means all workers joined and the queue is empty
	StateTerminated
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting-down"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// task pairs a TaskFunc with its result handle while queued.
type task struct {
	fn     TaskFunc
	handle *Handle
}

// Pool is a fixed-size worker pool over an unbounded FIFO task queue.
// Workers are long-lived goroutines spawned at construction; the queue and
// shutdown state share a single mutex with a condition variable for the
// idle-worker handoff. Lifecycle is construct-use-Close in one scope;
// Shutdown and Close are idempotent.
type Pool struct {
	size  int
	clock types.Clock

	mu    sync.Mutex
	cond  *sync.Cond
	queue []*task
	state State

	wg        sync.WaitGroup
	closeOnce sync.Once

	// statistics
	totalExecuted int64
	totalFailed   int64
	totalBusy     int64 // nanoseconds spent executing tasks
}

// NewPool creates a pool and spawns exactly size workers immediately.
func NewPool(size int) (*Pool, error) {
	return NewPoolWithClock(size, types.NewRealClock())
}

// NewPoolWithClock creates a pool with the specified clock for statistics.
func NewPoolWithClock(size int, clock types.Clock) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pool size must be positive, got %d", size)
	}
	if clock == nil {
		clock = types.NewRealClock()
	}

	p := &Pool{
		size:  size,
		clock: clock,
		state: StateRunning,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p, nil
}

// Submit appends a task to the queue and wakes one idle worker. The
// returned handle resolves once some worker finishes the task. Returns
// types.ErrPoolClosed if shutdown has already been initiated.
func (p *Pool) Submit(fn TaskFunc) (*Handle, error) {
	if fn == nil {
		return nil, fmt.Errorf("task cannot be nil")
	}

	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		return nil, types.ErrPoolClosed
	}
	h := newHandle()
	p.queue = append(p.queue, &task{fn: fn, handle: h})
	p.mu.Unlock()

	p.cond.Signal()
	return h, nil
}

// Shutdown initiates shutdown and wakes all workers. Tasks already queued
// are still executed; only new submissions are rejected. Idempotent.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.state == StateRunning {
		p.state = StateShuttingDown
	}
	p.mu.Unlock()

	p.cond.Broadcast()
}

// Close shuts the pool down and waits for every worker to finish its
// current and queued tasks. Safe to call any number of times; only the
// first call joins the workers.
func (p *Pool) Close() {
	p.Shutdown()
	p.closeOnce.Do(func() {
		p.wg.Wait()
		p.mu.Lock()
		p.state = StateTerminated
		p.mu.Unlock()
	})
}

// worker is the long-lived loop of a single pool goroutine: wait until the
// queue is non-empty or shutdown is requested, dequeue one task, execute
// it to completion.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && p.state == StateRunning {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// shutdown requested and nothing left to drain
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.execute(t)
	}
}

// execute runs one task with panic recovery and resolves its handle. A
// panic becomes a *types.TaskError on the handle; the worker survives.
func (p *Pool) execute(t *task) {
	start := p.clock.Now()

	var value interface{}
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				var buf [4096]byte
				n := runtime.Stack(buf[:], false)

				cause, ok := r.(error)
				if !ok {
					cause = fmt.Errorf("panic: %v", r)
				}
				err = types.NewTaskError("worker", cause).
					WithContext("stack_trace", string(buf[:n]))
			}
		}()
		value, err = t.fn()
	}()

	atomic.AddInt64(&p.totalBusy, int64(p.clock.Since(start)))
	if err != nil {
		atomic.AddInt64(&p.totalFailed, 1)
	} else {
		atomic.AddInt64(&p.totalExecuted, 1)
	}

	t.handle.complete(value, err)
}

// Size returns the number of workers in the pool
func (p *Pool) Size() int {
	return p.size
}

// State returns the current pool state
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// QueueLength returns the number of tasks waiting to be dequeued
func (p *Pool) QueueLength() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Stats defines pool statistics
type Stats struct {
	Size          int
	State         State
	QueueLength   int
	TotalExecuted int64
	TotalFailed   int64
	TotalBusy     int64 // nanoseconds
}

// Stats returns a snapshot of pool statistics
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	state := p.state
	queued := len(p.queue)
	p.mu.Unlock()

	return Stats{
		Size:          p.size,
		State:         state,
		QueueLength:   queued,
		TotalExecuted: atomic.LoadInt64(&p.totalExecuted),
		TotalFailed:   atomic.LoadInt64(&p.totalFailed),
		TotalBusy:     atomic.LoadInt64(&p.totalBusy),
	}
}
