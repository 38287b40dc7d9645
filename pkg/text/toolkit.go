// Package text provides the text-processing operations built on the
// fan-out orchestrator: tokenization, normalization, stemming, n-grams,
// word counting, embeddings and wordlist filtering.
package text

import (
	"strings"
	"unicode"
)

// Tokenize splits text into tokens on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// ToLower converts text to lowercase.
func ToLower(text string) string {
	return strings.ToLower(text)
}

// RemovePunctuation strips punctuation and symbol runes from text.
func RemovePunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Stem applies naive suffix stemming: "ing" (with doubled-consonant
// collapsing), "ed", "es", "s" and "er", in that order. Words of three
// bytes or fewer are returned unchanged, as is any word whose stem would
// drop below three bytes.
func Stem(word string) string {
	if len(word) <= 3 {
		return word
	}

	stemmed := word
	switch {
	case strings.HasSuffix(word, "ing"):
		if len(word) > 4 && word[len(word)-4] == word[len(word)-5] {
			stemmed = word[:len(word)-4]
		} else {
			stemmed = word[:len(word)-3]
		}
	case strings.HasSuffix(word, "ed"):
		stemmed = word[:len(word)-2]
	case strings.HasSuffix(word, "es"):
		stemmed = word[:len(word)-2]
	case strings.HasSuffix(word, "s"):
		stemmed = word[:len(word)-1]
	case strings.HasSuffix(word, "er"):
		stemmed = word[:len(word)-2]
	}

	if len(stemmed) < 3 {
		return word
	}
	return stemmed
}

// NGrams groups n consecutive tokens into space-joined n-grams. Returns
// nil when tokens is empty, n is non-positive, or n exceeds the token
// count.
func NGrams(tokens []string, n int) []string {
	if len(tokens) == 0 || n <= 0 || n > len(tokens) {
		return nil
	}

	ngrams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		ngrams = append(ngrams, strings.Join(tokens[i:i+n], " "))
	}
	return ngrams
}
