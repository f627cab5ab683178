package huffman

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Bits is a packed sequence of bits together with its exact length.  Bits
// are packed most significant first; the unused low-order bits of the final
// byte are always zero.
type Bits struct {
	data []byte
	n    int
}

// Pack concatenates the codes of the given symbols, in input order.  Every
// symbol must have a code.
func Pack[S Symbol](symbols []S, codes CanonicalCode[S]) Bits {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	n := 0
	for _, symbol := range symbols {
		hc, found := codes[symbol]
		assert.Assertf(found, "symbol %v has no code", symbol)
		// Writes to a bytes.Buffer never fail.
		_ = w.WriteBits(hc.Bits, hc.Size)
		n += int(hc.Size)
	}
	_ = w.Close()

	return Bits{data: buf.Bytes(), n: n}
}

// BitsFromBytes wraps n bits of packed data.  Bits beyond n are cleared.
func BitsFromBytes(data []byte, n int) (Bits, error) {
	if n < 0 || n > 8*len(data) {
		return Bits{}, fmt.Errorf("bit count %d out of range for %d bytes", n, len(data))
	}
	numBytes := (n + 7) / 8
	out := make([]byte, numBytes)
	copy(out, data[:numBytes])
	if rem := n % 8; rem != 0 {
		out[numBytes-1] &= byte(0xff << (8 - rem))
	}
	return Bits{data: out, n: n}, nil
}

// BitsFromHex reverses Bits.Hex.  The exact bit count must be supplied,
// since the hex rendering alone cannot express it.  Padding bits in the hex
// string must be zero.
func BitsFromHex(str string, n int) (Bits, error) {
	if want := (n + 3) / 4; n < 0 || len(str) != want {
		return Bits{}, fmt.Errorf("hex string has %d digits, want %d for %d bits", len(str), want, n)
	}
	if len(str)%2 != 0 {
		str += "0"
	}
	data, err := hex.DecodeString(str)
	if err != nil {
		return Bits{}, fmt.Errorf("invalid hex string: %w", err)
	}
	b, err := BitsFromBytes(data, n)
	if err != nil {
		return Bits{}, err
	}
	if !bytes.Equal(b.data, data[:len(b.data)]) {
		return Bits{}, fmt.Errorf("hex string has non-zero padding bits")
	}
	return b, nil
}

// Len returns the number of bits.
func (b Bits) Len() int {
	return b.n
}

// Bytes returns the packed bits.  The caller must not modify the result.
func (b Bits) Bytes() []byte {
	return b.data
}

// At returns the i'th bit.
func (b Bits) At(i int) uint {
	if i < 0 || i >= b.n {
		panic(fmt.Errorf("huffman: bit index %d out of range [0, %d)", i, b.n))
	}
	return uint(b.data[i/8]>>(7-uint(i%8))) & 1
}

// Reader returns a bit reader positioned at the first bit.
func (b Bits) Reader() *bitio.Reader {
	return bitio.NewReader(bytes.NewReader(b.data))
}

// String renders the bits as '0' and '1' characters.
func (b Bits) String() string {
	var buf strings.Builder
	buf.Grow(b.n)
	for i := 0; i < b.n; i++ {
		buf.WriteByte('0' + byte(b.At(i)))
	}
	return buf.String()
}

// Hex renders the bits as uppercase hexadecimal, one digit per 4-bit group
// starting from the most significant end.  A final group of fewer than 4
// bits is padded on the right with zeroes.
func (b Bits) Hex() string {
	str := strings.ToUpper(hex.EncodeToString(b.data))
	return str[:(b.n+3)/4]
}

// MarshalText renders the bits as '0' and '1' characters.
func (b Bits) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a string of '0' and '1' characters.
func (b *Bits) UnmarshalText(text []byte) error {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i, ch := range text {
		switch ch {
		case '0', '1':
			_ = w.WriteBool(ch == '1')
		default:
			return fmt.Errorf("bits: invalid character %q at offset %d", ch, i)
		}
	}
	_ = w.Close()
	*b = Bits{data: buf.Bytes(), n: len(text)}
	return nil
}

var _ fmt.Stringer = Bits{}
