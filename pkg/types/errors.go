// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrPoolClosed indicates a submission after pool shutdown was initiated
	ErrPoolClosed = errors.New("pool is closed")

	// ErrInvalidRange indicates a chunk request with invalid bounds
	ErrInvalidRange = errors.New("invalid range")
)

// TaskError represents a failure inside a single task. Worker panics and
// chunk-level faults are delivered through task handles as a TaskError so
// the worker goroutine itself never dies.
type TaskError struct {
	// Op is the name of the operation where the error occurred
	Op string

	// Chunk is the chunk index the task was processing, or -1 when the
	// task was not chunk-scoped
	Chunk int

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TaskError) Error() string {
	if e.Chunk >= 0 {
		return fmt.Sprintf("task error in %s (chunk %d): %v", e.Op, e.Chunk, e.Cause)
	}
	return fmt.Sprintf("task error in %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *TaskError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewTaskError creates a new task error not tied to any chunk
func NewTaskError(op string, cause error) *TaskError {
	return &TaskError{
		Op:      op,
		Chunk:   -1,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewChunkError creates a new task error for a specific chunk
func NewChunkError(op string, chunk int, cause error) *TaskError {
	return &TaskError{
		Op:      op,
		Chunk:   chunk,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	e.Context[key] = value
	return e
}
