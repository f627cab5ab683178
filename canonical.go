package huffman

import (
	"golang.org/x/exp/slices"
)

// CanonicalCode maps each symbol to its canonical Huffman code.
type CanonicalCode[S Symbol] map[S]Code

// AssignCanonical transforms a table of code lengths into the canonical
// Huffman code with those lengths.  The shape of the tree the lengths came
// from plays no part.
func AssignCanonical[S Symbol](lengths CodeLengths[S]) CanonicalCode[S] {
	codes := make(CanonicalCode[S], len(lengths))
	if len(lengths) == 0 {
		return codes
	}

	// Step 1: sort the symbols by (size, symbol) ascending.

	sorted := SortBySize(lengths)

	// Step 2: assign the codes sequentially, per the algorithm detailed at
	// <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.

	lastSize := lengths[sorted[0]]
	nextCode := uint64(0)
	for _, symbol := range sorted {
		size := lengths[symbol]
		if size > lastSize {
			nextCode <<= (size - lastSize)
			lastSize = size
		}
		codes[symbol] = MakeCode(size, nextCode)
		nextCode++
	}
	return codes
}

// SortBySize returns the symbols of a length table sorted by (length, symbol)
// ascending, which is the order canonical codes are assigned in.
func SortBySize[S Symbol](lengths CodeLengths[S]) []S {
	sorted := make([]S, 0, len(lengths))
	for symbol := range lengths {
		sorted = append(sorted, symbol)
	}
	slices.SortFunc(sorted, func(a, b S) int {
		if ai, bi := lengths[a], lengths[b]; ai != bi {
			return int(ai) - int(bi)
		}
		return compareSymbols(a, b)
	})
	return sorted
}

// Lengths returns the length table of this code.
func (codes CanonicalCode[S]) Lengths() CodeLengths[S] {
	lengths := make(CodeLengths[S], len(codes))
	for symbol, hc := range codes {
		lengths[symbol] = hc.Size
	}
	return lengths
}
