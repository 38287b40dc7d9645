package text

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Set is a lookup set of words or single characters, loaded from a file
// or built in code. Sets are plain values passed into the operations that
// need them; there is no ambient wordlist state.
type Set map[string]struct{}

// NewSet builds a set from the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Contains reports whether item is in the set.
func (s Set) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

var wordSetGroup singleflight.Group

// LoadWordSet reads a set from a file with one entry per line. Blank
// lines are skipped. Concurrent loads of the same path are deduplicated
// and share one Set; callers must treat the result as read-only.
func LoadWordSet(path string) (Set, error) {
	v, err, _ := wordSetGroup.Do(path, func() (interface{}, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("load word set: %w", err)
		}
		defer f.Close()

		set := make(Set)
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if line == "" {
				continue
			}
			set[line] = struct{}{}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("load word set: %w", err)
		}
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Set), nil
}
