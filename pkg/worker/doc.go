/*
Package worker provides a fixed-size worker pool with a shared FIFO task
queue and future-style result delivery.

# Overview

The pool owns a bounded set of long-lived worker goroutines and an
unbounded FIFO of pending tasks. Each accepted task yields a Handle the
submitter can await for the task's result:

	pool, err := worker.NewPool(4)
	if err != nil {
		return err
	}
	defer pool.Close()

	handle, err := pool.Submit(func() (interface{}, error) {
		return expensiveWork(), nil
	})
	if err != nil {
		return err
	}
	value, err := handle.Result()

# Guarantees

  - Every submitted task executes exactly once, by exactly one worker.
  - Dequeue order is strict FIFO; completion order is unspecified.
  - Shutdown rejects new submissions but drains tasks already queued.
  - Shutdown and Close are idempotent; Close joins every worker once.
  - A panicking task resolves its handle with a *types.TaskError and
    leaves the worker and the queue intact.

The pool is a static-size, run-to-completion executor: no work-stealing,
no priorities, no resizing, no task cancellation.
*/
package worker
