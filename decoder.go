package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	mathbits "math/bits"

	"golang.org/x/exp/slices"
)

var (
	// ErrInvalidCode is returned when the input contains a bit sequence
	// that no code starts with.
	ErrInvalidCode = errors.New("huffman: invalid code")

	// ErrTruncated is returned when the input ends in the middle of a code.
	ErrTruncated = errors.New("huffman: input ends in the middle of a code")
)

// Decoder implements a decoder for canonical Huffman codes.  It exists so
// that an encoding can be checked by decoding it again.
type Decoder[S Symbol] struct {
	table   map[Code]decoderData[S]
	minSize uint8
	maxSize uint8
}

// NewDecoderFromLengths reconstructs a canonical Huffman code from its bit
// lengths and returns a Decoder for it.
//
// Not all inputs are valid for constructing a canonical Huffman code.  In
// particular, this function will reject over-subscribed and incomplete
// codes.  A code consisting of exactly 1 symbol of length 1 is permitted,
// however, as there is no way to construct a complete code for it.
//
func NewDecoderFromLengths[S Symbol](lengths CodeLengths[S]) (*Decoder[S], error) {
	if err := lengths.Validate(); err != nil {
		return nil, err
	}
	return NewDecoder(AssignCanonical(lengths)), nil
}

// NewDecoder returns a Decoder for a prefix-free code table.
func NewDecoder[S Symbol](codes CanonicalCode[S]) *Decoder[S] {
	lengths := codes.Lengths()

	// len(table) is approximately n×log2(n) when filled.
	numSymbols := uint32(len(codes))
	numTableSlots := numSymbols * log2uint32(numSymbols)

	d := &Decoder[S]{
		table:   make(map[Code]decoderData[S], numTableSlots),
		minSize: lengths.MinSize(),
		maxSize: lengths.MaxSize(),
	}
	for _, symbol := range SortBySize(lengths) {
		fillTable(d.table, symbol, codes[symbol])
	}
	return d
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, ok is true and minSize == maxSize
// == hc.Size.
//
// If the Decode fails due to insufficient bits, ok is false and at least
// (minSize - hc.Size) additional bits are required to decode this symbol.  No
// more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, ok is false and minSize ==
// maxSize == 0.
//
func (d *Decoder[S]) Decode(hc Code) (symbol S, ok bool, minSize uint8, maxSize uint8) {
	dd, found := d.table[hc]
	if !found {
		return symbol, false, 0, 0
	}
	return dd.symbol, dd.leaf, dd.minSize, dd.maxSize
}

// DecodeAll decodes a whole bit sequence by greedy prefix matching.
func (d *Decoder[S]) DecodeAll(bits Bits) ([]S, error) {
	out := make([]S, 0, bits.Len()/int(max(d.minSize, 1)))
	r := bits.Reader()

	var hc Code
	for i := 0; i < bits.Len(); i++ {
		bit, err := r.ReadBits(1)
		if err != nil {
			return out, fmt.Errorf("huffman: reading bit %d: %w", i, err)
		}
		hc = hc.Append(uint(bit))

		symbol, ok, minSize, _ := d.Decode(hc)
		switch {
		case ok:
			out = append(out, symbol)
			hc = Code{}
		case minSize == 0:
			return out, fmt.Errorf("%w: %s ending at bit %d", ErrInvalidCode, hc, i)
		}
	}
	if hc.Size != 0 {
		return out, fmt.Errorf("%w: %d bits left over", ErrTruncated, hc.Size)
	}
	return out, nil
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder[S]) MinSize() uint8 {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder[S]) MaxSize() uint8 {
	return d.maxSize
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make([]Code, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	slices.SortFunc(keys, compareCodes)
	for _, hc := range keys {
		dd := d.table[hc]
		if dd.leaf {
			fmt.Fprintf(&buf, "\tDecode(%s) = {%v, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
		} else {
			fmt.Fprintf(&buf, "\tDecode(%s) = {-, %d, %d}\n", hc, dd.minSize, dd.maxSize)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData[S Symbol] struct {
	symbol  S
	leaf    bool
	minSize uint8
	maxSize uint8
}

func fillTable[S Symbol](table map[Code]decoderData[S], symbol S, hc Code) {
	dd := decoderData[S]{symbol, true, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", compute "...xxxA" where A = NOT a.

		sibling := hc.Sibling()

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData[S]{minSize: dd.minSize, maxSize: dd.maxSize}
		if ddSibling, found := table[sibling]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxa" to "...xxx".

		hc = hc.Parent()

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}

func compareCodes(a, b Code) int {
	if a.Size != b.Size {
		return int(a.Size) - int(b.Size)
	}
	switch {
	case a.Bits < b.Bits:
		return -1
	case a.Bits > b.Bits:
		return 1
	default:
		return 0
	}
}

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}
