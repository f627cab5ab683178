package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// CodeLengths maps each symbol to the bit length of its code.
type CodeLengths[S Symbol] map[S]uint8

// ExtractCodeLengths walks the tree depth-first and returns the depth of each
// leaf, together with the raw (tree-shaped, non-canonical) code for each
// symbol, where a left edge is 0 and a right edge is 1.
//
// A tree consisting of a lone leaf is treated as if that leaf were at depth
// 1, with raw code "0".
//
// The raw codes depend on merge order and are only useful for display; the
// canonical code is derived from the lengths alone.
//
func ExtractCodeLengths[S Symbol](t *Tree[S]) (CodeLengths[S], map[S]Code) {
	lengths := make(CodeLengths[S], (t.Len()+1)/2)
	raw := make(map[S]Code, (t.Len()+1)/2)

	root := t.Node(t.Root())
	if root.IsLeaf() {
		lengths[root.Symbol] = 1
		raw[root.Symbol] = MakeCode(1, 0)
		return lengths, raw
	}

	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// Only internal nodes are pushed, and stackItem.hc is the path from
	// the root to that node.

	type stackItem struct {
		id NodeID
		hc Code
		x  byte
	}

	stack := make([]stackItem, 0, 16)

	processChild := func(child NodeID, hc Code) {
		n := t.Node(child)
		if !n.IsLeaf() {
			stack = append(stack, stackItem{id: child, hc: hc})
			return
		}
		lengths[n.Symbol] = hc.Size
		raw[n.Symbol] = hc
	}

	stack = append(stack, stackItem{id: t.Root()})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			assert.Assertf(top.hc.Size < MaxCodeSize, "tree depth exceeds %d", MaxCodeSize)
			processChild(t.Node(top.id).Left, top.hc.Append(0))
		case 1:
			processChild(t.Node(top.id).Right, top.hc.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return lengths, raw
}

// MinSize is the bit length of the shortest code.
func (lengths CodeLengths[S]) MinSize() uint8 {
	var minSize uint8
	for _, size := range lengths {
		if minSize == 0 || size < minSize {
			minSize = size
		}
	}
	return minSize
}

// MaxSize is the bit length of the longest code.
func (lengths CodeLengths[S]) MaxSize() uint8 {
	var maxSize uint8
	for _, size := range lengths {
		if size > maxSize {
			maxSize = size
		}
	}
	return maxSize
}

// Validate checks that the lengths describe a complete prefix code, i.e. that
// Kraft's inequality holds with equality.  A lone symbol of length 1 is also
// permitted, as there is no way to construct a complete code for it.
//
func (lengths CodeLengths[S]) Validate() error {
	if len(lengths) == 0 {
		return fmt.Errorf("empty code: no symbols")
	}

	var countArray [MaxCodeSize + 1]uint64
	for symbol, size := range lengths {
		if size == 0 || size > MaxCodeSize {
			return fmt.Errorf("invalid bit length for symbol %v: got %d, want 1 .. %d", symbol, size, MaxCodeSize)
		}
		countArray[size]++
	}

	// permit degenerate code with 1 symbol
	if len(lengths) == 1 && countArray[1] == 1 {
		return nil
	}

	// available is the number of unused codes of the current size; remaining
	// is the number of symbols that still need one.
	available := uint64(1)
	remaining := uint64(len(lengths))
	for size := 1; size <= MaxCodeSize && remaining != 0; size++ {
		available <<= 1
		count := countArray[size]
		if count > available {
			return fmt.Errorf("over-subscribed Huffman code: %d codes of length %d, only %d available", count, size, available)
		}
		available -= count
		remaining -= count
		if available > remaining {
			return fmt.Errorf("incomplete Huffman code: %d codes of length %d left unused", available-remaining, size)
		}
	}
	if available != 0 {
		return fmt.Errorf("incomplete Huffman code: %d codes left unused", available)
	}
	return nil
}
