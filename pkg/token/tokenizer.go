// Package token maps tokens to vocabulary ids and back, with batch
// variants parallelized over the fan-out orchestrator.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/jzx17/textpool/pkg/fanout"
)

// UnknownToken is the vocabulary entry unknown tokens encode to.
const UnknownToken = "<UNK>"

// ErrInvalidID indicates a decode request for an id outside the vocabulary.
var ErrInvalidID = errors.New("invalid token id")

// Tokenizer encodes tokens to vocabulary ids and decodes them back. It is
// immutable after construction and safe for concurrent use.
type Tokenizer struct {
	tokenToID map[string]int
	idToToken []string
	unknownID int
}

// New builds a Tokenizer from a vocabulary list. Duplicate entries keep
// their first id. UnknownToken is appended when the vocabulary lacks it.
func New(vocab []string) *Tokenizer {
	t := &Tokenizer{
		tokenToID: make(map[string]int, len(vocab)+1),
		idToToken: make([]string, 0, len(vocab)+1),
	}

	t.idToToken = append(t.idToToken, vocab...)
	for i, tok := range vocab {
		if _, ok := t.tokenToID[tok]; !ok {
			t.tokenToID[tok] = i
		}
	}

	if id, ok := t.tokenToID[UnknownToken]; ok {
		t.unknownID = id
	} else {
		t.unknownID = len(t.idToToken)
		t.idToToken = append(t.idToToken, UnknownToken)
		t.tokenToID[UnknownToken] = t.unknownID
	}
	return t
}

// VocabSize returns the number of vocabulary entries, UnknownToken included.
func (t *Tokenizer) VocabSize() int {
	return len(t.idToToken)
}

// UnknownID returns the id unknown tokens encode to.
func (t *Tokenizer) UnknownID() int {
	return t.unknownID
}

// Encode maps every token to its vocabulary id. Tokens outside the
// vocabulary map to UnknownID; Encode never fails.
func (t *Tokenizer) Encode(tokens []string) []int {
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		if id, ok := t.tokenToID[tok]; ok {
			ids[i] = id
		} else {
			ids[i] = t.unknownID
		}
	}
	return ids
}

// Decode maps every id back to its token. Ids outside the vocabulary
// return ErrInvalidID.
func (t *Tokenizer) Decode(ids []int) ([]string, error) {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(t.idToToken) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
		}
		tokens[i] = t.idToToken[id]
	}
	return tokens, nil
}

// BatchEncode encodes a batch of sentences in parallel. Sentence order is
// preserved: chunk outputs are concatenated in chunk index order.
func (t *Tokenizer) BatchEncode(ctx context.Context, sentences [][]string, opts fanout.Options) ([][]int, error) {
	opts.Name = "batch-encode"
	partials, err := fanout.Map(ctx, sentences,
		func(ctx context.Context, chunk [][]string) ([][]int, error) {
			encoded := make([][]int, len(chunk))
			for i, sentence := range chunk {
				encoded[i] = t.Encode(sentence)
			}
			return encoded, nil
		},
		opts)
	if err != nil {
		return nil, err
	}
	return fanout.Concat(partials), nil
}

// BatchDecode decodes a batch of id sequences in parallel, preserving
// batch order. An invalid id anywhere fails the whole batch.
func (t *Tokenizer) BatchDecode(ctx context.Context, batches [][]int, opts fanout.Options) ([][]string, error) {
	opts.Name = "batch-decode"
	partials, err := fanout.Map(ctx, batches,
		func(ctx context.Context, chunk [][]int) ([][]string, error) {
			decoded := make([][]string, len(chunk))
			for i, ids := range chunk {
				tokens, err := t.Decode(ids)
				if err != nil {
					return nil, err
				}
				decoded[i] = tokens
			}
			return decoded, nil
		},
		opts)
	if err != nil {
		return nil, err
	}
	return fanout.Concat(partials), nil
}
