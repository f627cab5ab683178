package huffman

import (
	"container/heap"
	"math"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// NodeID addresses a Node within its Tree.
type NodeID int32

// NoNode is the child index of a leaf.
const NoNode = NodeID(-1)

// Node is one record of a Tree.  A leaf has Left == Right == NoNode and
// carries Symbol; an internal node owns Left and Right, and its Symbol field
// is meaningless.
type Node[S Symbol] struct {
	Freq      uint64
	MinSymbol S
	Symbol    S
	Left      NodeID
	Right     NodeID
}

// IsLeaf returns true iff this node has no children.
func (n Node[S]) IsLeaf() bool {
	return n.Left == NoNode
}

// Tree is a Huffman tree stored as an arena of Nodes.  Children are always
// stored before their parent, so the root is the last Node.
type Tree[S Symbol] struct {
	nodes []Node[S]
}

// BuildTree builds the Huffman tree for a non-empty frequency table.
//
// The two nodes with the lowest (Freq, MinSymbol) are repeatedly merged, the
// first one popped becoming the left child.  No two live nodes ever share a
// MinSymbol, so the order is strict and the tree is fully determined by the
// table.
//
func BuildTree[S Symbol](freqs FrequencyTable[S]) *Tree[S] {
	assert.Assertf(len(freqs) != 0, "BuildTree called with an empty frequency table")

	symbols := freqs.Symbols()
	numNodes := 2*len(symbols) - 1
	t := &Tree[S]{nodes: make([]Node[S], 0, numNodes)}

	h := nodeHeap[S]{tree: t, list: make([]NodeID, 0, len(symbols))}
	for _, symbol := range symbols {
		freq := freqs[symbol]
		assert.Assertf(freq != 0, "symbol %v has a frequency of 0", symbol)
		h.list = append(h.list, t.add(Node[S]{
			Freq:      freq,
			MinSymbol: symbol,
			Symbol:    symbol,
			Left:      NoNode,
			Right:     NoNode,
		}))
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)
		left, right := t.nodes[a], t.nodes[b]

		// Compute freqSum using saturating addition
		freqSum := left.Freq + right.Freq
		if freqSum < left.Freq {
			freqSum = math.MaxUint64
		}

		heap.Push(&h, t.add(Node[S]{
			Freq:      freqSum,
			MinSymbol: minSymbol(left.MinSymbol, right.MinSymbol),
			Left:      a,
			Right:     b,
		}))
	}

	assert.Assertf(len(t.nodes) == numNodes, "expected %d nodes, built %d", numNodes, len(t.nodes))
	return t
}

func (t *Tree[S]) add(n Node[S]) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

// Len returns the number of nodes in the tree.
func (t *Tree[S]) Len() int {
	return len(t.nodes)
}

// Root returns the id of the root node.
func (t *Tree[S]) Root() NodeID {
	return NodeID(len(t.nodes) - 1)
}

// Node returns the node with the given id.
func (t *Tree[S]) Node(id NodeID) Node[S] {
	return t.nodes[id]
}

// Shape converts the tree into a self-contained nested descriptor, suitable
// for serialization or display after the tree itself is discarded.
func (t *Tree[S]) Shape() *Shape[S] {
	shapes := make([]*Shape[S], len(t.nodes))
	for id, n := range t.nodes {
		if n.IsLeaf() {
			symbol := n.Symbol
			shapes[id] = &Shape[S]{Freq: n.Freq, Symbol: &symbol}
			continue
		}
		shapes[id] = &Shape[S]{
			Freq:  n.Freq,
			Left:  shapes[n.Left],
			Right: shapes[n.Right],
		}
	}
	return shapes[t.Root()]
}

// Shape is a nested description of a Huffman tree.  Leaves carry Symbol;
// internal nodes carry Left and Right.
type Shape[S Symbol] struct {
	Freq   uint64    `json:"freq" yaml:"freq"`
	Symbol *S        `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Left   *Shape[S] `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *Shape[S] `json:"right,omitempty" yaml:"right,omitempty"`
}

// IsLeaf returns true iff this shape is a leaf.
func (s *Shape[S]) IsLeaf() bool {
	return s.Symbol != nil
}

// Format renders the shape in preorder: a leaf renders as format(symbol), an
// internal node as its left and right subtrees wrapped in parentheses.
func (s *Shape[S]) Format(format func(S) string) string {
	type stackItem struct {
		shape *Shape[S]
		close bool
	}

	var buf strings.Builder
	stack := []stackItem{{shape: s}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch {
		case top.close:
			buf.WriteByte(')')
		case top.shape.IsLeaf():
			buf.WriteString(format(*top.shape.Symbol))
		default:
			buf.WriteByte('(')
			stack = append(stack,
				stackItem{close: true},
				stackItem{shape: top.shape.Right},
				stackItem{shape: top.shape.Left})
		}
	}
	return buf.String()
}

// type nodeHeap {{{

type nodeHeap[S Symbol] struct {
	tree *Tree[S]
	list []NodeID
}

func (h *nodeHeap[S]) Len() int {
	return len(h.list)
}

func (h *nodeHeap[S]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap[S]) Less(i, j int) bool {
	a, b := h.tree.nodes[h.list[i]], h.tree.nodes[h.list[j]]
	if a.Freq != b.Freq {
		return a.Freq < b.Freq
	}
	return a.MinSymbol < b.MinSymbol
}

func (h *nodeHeap[S]) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *nodeHeap[S]) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap[byte])(nil)

// }}}
