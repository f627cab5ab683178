package huffman

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest code, in bits, that a Code can hold.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size uint8

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant of the Size low-order bits of Bits.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size uint8, bits uint64) Code {
	assert.Assertf(size <= MaxCodeSize, "size %d > MaxCodeSize %d", size, MaxCodeSize)
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is too long: %d bits, max %d", str, len(str), MaxCodeSize)
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("code %q: invalid character %q at offset %d", str, str[i], i)
		}
	}
	return hc, nil
}

// Append returns this Code extended by one more bit.
func (hc Code) Append(bit uint) Code {
	return MakeCode(hc.Size+1, (hc.Bits<<1)|uint64(bit&1))
}

// Parent returns this Code with its last bit removed.
func (hc Code) Parent() Code {
	return Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}
}

// Sibling returns the Code that differs from this one only in its last bit.
func (hc Code) Sibling() Code {
	return Code{Size: hc.Size, Bits: hc.Bits ^ 1}
}

// IsPrefixOf returns true iff hc is a (possibly equal) prefix of other.
func (hc Code) IsPrefixOf(other Code) bool {
	if hc.Size > other.Size {
		return false
	}
	return other.Bits>>(other.Size-hc.Size) == hc.Bits
}

// BitString returns the bits of this Code as a string of '0' and '1'
// characters, most significant first.
func (hc Code) BitString() string {
	if hc.Size == 0 {
		return ""
	}
	str := strconv.FormatUint(hc.Bits, 2)
	if pad := int(hc.Size) - len(str); pad > 0 {
		str = strings.Repeat("0", pad) + str
	}
	return str
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.BitString())
}

// MarshalText renders the Code as its bare bit string.
func (hc Code) MarshalText() ([]byte, error) {
	return []byte(hc.BitString()), nil
}

// UnmarshalText parses a bare bit string.
func (hc *Code) UnmarshalText(text []byte) error {
	parsed, err := ParseCode(string(text))
	if err != nil {
		return err
	}
	*hc = parsed
	return nil
}

var _ fmt.Stringer = Code{}
