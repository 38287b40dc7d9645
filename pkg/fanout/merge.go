package fanout

// Concat merges list-valued partial results by order-preserving
// concatenation: the output is the chunk outputs joined in chunk index
// order, so relative input order survives chunking.
func Concat[E any](partials [][]E) []E {
	total := 0
	for _, p := range partials {
		total += len(p)
	}
	merged := make([]E, 0, total)
	for _, p := range partials {
		merged = append(merged, p...)
	}
	return merged
}

// SumCounts merges count-map partial results commutatively: the union of
// all maps with counts summed on key collision.
func SumCounts(partials []map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, p := range partials {
		for key, count := range p {
			merged[key] += count
		}
	}
	return merged
}

// MergeKeyed merges keyed partial results into a single map. Collisions
// resolve deterministically to the value from the highest chunk index
// (last writer wins). Chunk-distinct keys make collisions impossible in
// practice, but the tie-break is fixed regardless of completion order.
func MergeKeyed[V any](partials []map[string]V) map[string]V {
	merged := make(map[string]V)
	for _, p := range partials {
		for key, value := range p {
			merged[key] = value
		}
	}
	return merged
}
