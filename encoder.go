package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/exp/slices"
)

// Encoder implements an encoder for canonical Huffman codes.
type Encoder[S Symbol] struct {
	lengths CodeLengths[S]
	codes   CanonicalCode[S]
	raw     map[S]Code
	shape   *Shape[S]
	minSize uint8
	maxSize uint8
}

// NewEncoder builds the canonical Huffman code for a non-empty frequency
// table.  The Huffman tree is only needed while the code lengths are being
// extracted; afterward, only its Shape is retained.
func NewEncoder[S Symbol](freqs FrequencyTable[S]) *Encoder[S] {
	tree := BuildTree(freqs)
	lengths, raw := ExtractCodeLengths(tree)
	codes := AssignCanonical(lengths)
	return &Encoder[S]{
		lengths: lengths,
		codes:   codes,
		raw:     raw,
		shape:   tree.Shape(),
		minSize: lengths.MinSize(),
		maxSize: lengths.MaxSize(),
	}
}

// Encode encodes a Symbol into a Huffman-coded bit string.  The second
// return value is false if the symbol is not in the code's alphabet.
func (e *Encoder[S]) Encode(symbol S) (Code, bool) {
	hc, found := e.codes[symbol]
	return hc, found
}

// Pack encodes a whole sequence of symbols.
func (e *Encoder[S]) Pack(symbols []S) Bits {
	return Pack(symbols, e.codes)
}

// MinSize is the bit length of the shortest legal code.
func (e *Encoder[S]) MinSize() uint8 {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e *Encoder[S]) MaxSize() uint8 {
	return e.maxSize
}

// Lengths returns the bit length for each Symbol in the alphabet.  This table
// can be transmitted to another party and used by NewDecoderFromLengths to
// reconstruct this Huffman code on the receiving end.
//
func (e *Encoder[S]) Lengths() CodeLengths[S] {
	return e.lengths
}

// Codes returns the canonical code table.
func (e *Encoder[S]) Codes() CanonicalCode[S] {
	return e.codes
}

// RawTreeCodes returns the codes read straight off the Huffman tree, before
// canonical renumbering.  They are for display only.
func (e *Encoder[S]) RawTreeCodes() map[S]Code {
	return e.raw
}

// Shape returns the shape of the Huffman tree the code was built from.
func (e *Encoder[S]) Shape() *Shape[S] {
	return e.shape
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e *Encoder[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	symbols := make([]S, 0, len(e.codes))
	for symbol := range e.codes {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	for _, symbol := range symbols {
		fmt.Fprintf(&buf, "\tEncode(%v) = %s\n", symbol, e.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Result is everything Encode computes for one input.
type Result[S Symbol] struct {
	Frequencies    FrequencyTable[S] `json:"frequencies" yaml:"frequencies"`
	CodeLengths    CodeLengths[S]    `json:"codeLengths" yaml:"codeLengths"`
	CanonicalCodes CanonicalCode[S]  `json:"canonicalCodes" yaml:"canonicalCodes"`
	RawTreeCodes   map[S]Code        `json:"rawTreeCodes" yaml:"rawTreeCodes"`
	TreeShape      *Shape[S]         `json:"treeShape" yaml:"treeShape"`
	CompressedBits Bits              `json:"compressedBits" yaml:"compressedBits"`
	CompressedHex  string            `json:"compressedHex" yaml:"compressedHex"`
	Metrics        Metrics           `json:"metrics" yaml:"metrics"`
}

// Encode runs the whole pipeline over a non-empty input.  Validating the
// input (alphabet, minimum length) is the caller's job; Encode itself cannot
// fail.
func Encode[S Symbol](symbols []S) *Result[S] {
	assert.Assertf(len(symbols) != 0, "Encode called with an empty input")

	freqs := CountFrequencies(symbols)
	e := NewEncoder(freqs)
	bits := e.Pack(symbols)

	return &Result[S]{
		Frequencies:    freqs,
		CodeLengths:    e.Lengths(),
		CanonicalCodes: e.Codes(),
		RawTreeCodes:   e.RawTreeCodes(),
		TreeShape:      e.Shape(),
		CompressedBits: bits,
		CompressedHex:  bits.Hex(),
		Metrics:        NewMetrics(len(symbols), bits.Len()),
	}
}

// Metrics compares the size of the encoded payload against a baseline of
// one byte per input symbol.
type Metrics struct {
	OriginalBits   int     `json:"originalBits" yaml:"originalBits"`
	CompressedBits int     `json:"compressedBits" yaml:"compressedBits"`
	Ratio          float64 `json:"ratio" yaml:"ratio"`
	Reduction      float64 `json:"reduction" yaml:"reduction"`
}

// NewMetrics computes the size metrics for an input of inputLen symbols that
// encoded to compressedBits bits.
func NewMetrics(inputLen int, compressedBits int) Metrics {
	m := Metrics{
		OriginalBits:   8 * inputLen,
		CompressedBits: compressedBits,
	}
	if m.OriginalBits != 0 {
		m.Ratio = float64(m.CompressedBits) / float64(m.OriginalBits)
		m.Reduction = 1 - m.Ratio
	}
	return m
}
