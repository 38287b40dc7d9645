package text

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jzx17/textpool/pkg/fanout"
)

// Options configures the parallel text operations.
type Options struct {
	// Workers is the thread-count hint; non-positive or above-hardware
	// values use all available parallelism.
	Workers int

	// Logger receives per-operation debug events. Nil disables logging.
	Logger *zerolog.Logger
}

func (o Options) fanout(name string) fanout.Options {
	return fanout.Options{Workers: o.Workers, Name: name, Logger: o.Logger}
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// BagOfWords counts token frequencies in parallel. Chunk counts merge
// commutatively, so the result is identical for any worker count.
func BagOfWords(ctx context.Context, tokens []string, opts Options) (map[string]int, error) {
	partials, err := fanout.Map(ctx, tokens,
		func(ctx context.Context, chunk []string) (map[string]int, error) {
			counts := make(map[string]int, len(chunk))
			for _, tok := range chunk {
				counts[tok]++
			}
			return counts, nil
		},
		opts.fanout("bag-of-words"))
	if err != nil {
		return nil, err
	}

	merged := fanout.SumCounts(partials)
	opts.logger().Debug().
		Str("op", "bag-of-words").
		Int("tokens", len(tokens)).
		Int("distinct", len(merged)).
		Msg("counted")
	return merged, nil
}

// Embeddings generates a random vector of the given size for every token,
// uniformly distributed in [-1, 1). Duplicate tokens across chunks resolve
// to the highest chunk's vector.
func Embeddings(ctx context.Context, tokens []string, size int, opts Options) (map[string][]float32, error) {
	if size <= 0 {
		return nil, fmt.Errorf("embedding size must be positive, got %d", size)
	}

	partials, err := fanout.Map(ctx, tokens,
		func(ctx context.Context, chunk []string) (map[string][]float32, error) {
			// chunk-local source so workers never share generator state
			rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			vectors := make(map[string][]float32, len(chunk))
			for _, tok := range chunk {
				vec := make([]float32, size)
				for i := range vec {
					vec[i] = rng.Float32()*2 - 1
				}
				vectors[tok] = vec
			}
			return vectors, nil
		},
		opts.fanout("embeddings"))
	if err != nil {
		return nil, err
	}

	merged := fanout.MergeKeyed(partials)
	opts.logger().Debug().
		Str("op", "embeddings").
		Int("tokens", len(tokens)).
		Int("size", size).
		Msg("generated")
	return merged, nil
}

// RemoveSpecialChars drops every rune contained in special from text,
// processing rune chunks in parallel and concatenating the filtered
// pieces in chunk order.
func RemoveSpecialChars(ctx context.Context, text string, special Set, opts Options) (string, error) {
	partials, err := fanout.Map(ctx, []rune(text),
		func(ctx context.Context, chunk []rune) (string, error) {
			var b strings.Builder
			b.Grow(len(chunk))
			for _, r := range chunk {
				if !special.Contains(string(r)) {
					b.WriteRune(r)
				}
			}
			return b.String(), nil
		},
		opts.fanout("remove-special-chars"))
	if err != nil {
		return "", err
	}

	merged := strings.Join(partials, "")
	opts.logger().Debug().
		Str("op", "remove-special-chars").
		Int("in", len(text)).
		Int("out", len(merged)).
		Msg("filtered")
	return merged, nil
}

// RemoveStopWords tokenizes text, drops stop words in parallel and
// re-joins the surviving tokens with single spaces, preserving their
// original order.
func RemoveStopWords(ctx context.Context, text string, stopWords Set, opts Options) (string, error) {
	tokens := Tokenize(text)

	partials, err := fanout.Map(ctx, tokens,
		func(ctx context.Context, chunk []string) ([]string, error) {
			kept := make([]string, 0, len(chunk))
			for _, tok := range chunk {
				if !stopWords.Contains(tok) {
					kept = append(kept, tok)
				}
			}
			return kept, nil
		},
		opts.fanout("remove-stop-words"))
	if err != nil {
		return "", err
	}

	filtered := fanout.Concat(partials)
	opts.logger().Debug().
		Str("op", "remove-stop-words").
		Int("in", len(tokens)).
		Int("out", len(filtered)).
		Msg("filtered")
	return strings.Join(filtered, " "), nil
}
