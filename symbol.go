package huffman

import (
	"golang.org/x/exp/constraints"
)

// Symbol is the constraint for symbol alphabets.  Any integer or string type
// will do: the encoder only needs equality and a total order.
type Symbol interface {
	constraints.Integer | ~string
}

func minSymbol[S Symbol](a, b S) S {
	if b < a {
		return b
	}
	return a
}

func compareSymbols[S Symbol](a, b S) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
