// Package fanout implements the split-parallelize-merge pattern on top of
// the worker pool: partition an ordered input into contiguous chunks,
// process the chunks concurrently, and merge the partial results.
package fanout

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/jzx17/textpool/pkg/chunk"
	"github.com/jzx17/textpool/pkg/types"
	"github.com/jzx17/textpool/pkg/worker"
)

// Options configures a fan-out operation.
type Options struct {
	// Workers is the thread-count hint. Non-positive values and values
	// above the available hardware parallelism clamp to
	// runtime.NumCPU().
	Workers int

	// Name identifies the operation in errors and logs.
	Name string

	// Logger receives per-operation debug events. Nil disables logging.
	Logger *zerolog.Logger
}

// EffectiveWorkers resolves the thread-count hint against the available
// hardware parallelism.
func (o Options) EffectiveWorkers() int {
	max := runtime.NumCPU()
	if o.Workers <= 0 || o.Workers > max {
		return max
	}
	return o.Workers
}

func (o Options) name() string {
	if o.Name == "" {
		return "fanout"
	}
	return o.Name
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// ChunkFunc processes one contiguous chunk of the input. The slice is a
// shared read-only view into the original input; implementations must not
// mutate it.
type ChunkFunc[T, R any] func(ctx context.Context, items []T) (R, error)

// Map splits items into near-equal contiguous chunks, submits one task per
// chunk to a pool scoped to this call, and returns the partial results in
// chunk index order. The part count is the effective worker count clamped
// to [1, len(items)].
//
// If any chunk fails, Map still awaits every remaining handle before
// returning the first failure (wrapped with its chunk index); it never
// returns a partial result set alongside a nil error.
func Map[T, R any](ctx context.Context, items []T, fn ChunkFunc[T, R], opts Options) ([]R, error) {
	if fn == nil {
		return nil, fmt.Errorf("chunk function cannot be nil")
	}
	if len(items) == 0 {
		return nil, nil
	}

	ranges, err := chunk.Split(len(items), opts.EffectiveWorkers())
	if err != nil {
		return nil, err
	}

	pool, err := worker.NewPool(len(ranges))
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	opts.logger().Debug().
		Str("op", opts.name()).
		Int("items", len(items)).
		Int("chunks", len(ranges)).
		Msg("fan-out")

	handles := make([]*worker.Handle, len(ranges))
	for i, r := range ranges {
		sub := items[r.Start:r.End]
		handles[i], err = pool.Submit(func() (interface{}, error) {
			return fn(ctx, sub)
		})
		if err != nil {
			return nil, types.NewChunkError(opts.name(), i, err)
		}
	}
	pool.Shutdown()

	// collect every handle in submission order; out-of-order completion
	// is reordered here by chunk index
	partials := make([]R, len(ranges))
	var firstErr error
	for i, h := range handles {
		value, err := h.Result()
		if err != nil {
			if firstErr == nil {
				firstErr = types.NewChunkError(opts.name(), i, err)
			}
			continue
		}
		partial, ok := value.(R)
		if !ok && value != nil {
			if firstErr == nil {
				firstErr = types.NewChunkError(opts.name(), i,
					fmt.Errorf("unexpected partial result type %T", value))
			}
			continue
		}
		partials[i] = partial
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return partials, nil
}
