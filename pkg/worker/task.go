// Package worker provides a fixed-size worker pool with future-style results
package worker

import "context"

// TaskFunc is a unit of work submitted to a Pool. Task bodies are
// synchronous; cancellation is not supported, so the function takes no
// context. Callers that need cancellation observe it inside the closure.
type TaskFunc func() (interface{}, error)

// Handle is the caller-held reference to a submitted task's eventual
// result. It resolves exactly once, when some worker finishes the task.
type Handle struct {
	done  chan struct{}
	value interface{}
	err   error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// complete resolves the handle. Called exactly once by the executing worker.
func (h *Handle) complete(value interface{}, err error) {
	h.value = value
	h.err = err
	close(h.done)
}

// Result blocks until the task has been executed and returns its value and
// error. A submitted task always runs to completion, so Result always
// returns eventually.
func (h *Handle) Result() (interface{}, error) {
	<-h.done
	return h.value, h.err
}

// Wait is like Result but abandons the wait when ctx is cancelled. The
// task itself keeps running; only this caller stops waiting.
func (h *Handle) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the task's result is available.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
