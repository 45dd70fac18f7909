// Package textchunk splits transcripts into bounded word groups so that
// downstream translation respects the engine's sequence-length limit.
package textchunk

import (
	"iter"
	"strings"
)

// DefaultWords is the default maximum number of words per chunk.
const DefaultWords = 400

// Chunks yields consecutive groups of at most maxWords whitespace-delimited
// words from text, preserving word order. Joining the yielded chunks with
// single spaces reproduces the whitespace-normalized input. Empty input
// yields nothing. The sequence is lazy and can be ranged over repeatedly.
func Chunks(text string, maxWords int) iter.Seq[string] {
	if maxWords <= 0 {
		maxWords = DefaultWords
	}
	return func(yield func(string) bool) {
		words := strings.Fields(text)
		for start := 0; start < len(words); start += maxWords {
			end := min(start+maxWords, len(words))
			if !yield(strings.Join(words[start:end], " ")) {
				return
			}
		}
	}
}
