package huffman

import (
	"golang.org/x/exp/slices"
)

// FrequencyTable maps each distinct symbol of an input to its number of
// occurrences.  Every count is positive.
type FrequencyTable[S Symbol] map[S]uint64

// CountFrequencies tallies the occurrences of each symbol in the input.
func CountFrequencies[S Symbol](symbols []S) FrequencyTable[S] {
	freqs := make(FrequencyTable[S])
	for _, symbol := range symbols {
		freqs[symbol]++
	}
	return freqs
}

// Symbols returns the distinct symbols of the table in ascending order.
func (freqs FrequencyTable[S]) Symbols() []S {
	out := make([]S, 0, len(freqs))
	for symbol := range freqs {
		out = append(out, symbol)
	}
	slices.Sort(out)
	return out
}

// Total returns the sum of all counts, i.e. the length of the input.
func (freqs FrequencyTable[S]) Total() uint64 {
	var total uint64
	for _, freq := range freqs {
		total += freq
	}
	return total
}
