package huffman_test

import (
	"fmt"
	"strings"

	huffman "github.com/chronos-tachyon/huffreport"
)

func ExampleEncode() {
	input := []byte(strings.Repeat("a", 20) + strings.Repeat("b", 10))
	result := huffman.Encode(input)

	fmt.Println(result.CanonicalCodes['a'], result.CanonicalCodes['b'])
	fmt.Println(result.CompressedBits.Len(), result.CompressedHex)
	// Output:
	// "0" "1"
	// 30 00000FFC
}

func ExampleNewDecoderFromLengths() {
	d, err := huffman.NewDecoderFromLengths(huffman.CodeLengths[byte]{'x': 1, 'y': 2, 'z': 2})
	if err != nil {
		panic(err)
	}
	bits, err := huffman.BitsFromHex("68", 7)
	if err != nil {
		panic(err)
	}
	symbols, err := d.DecodeAll(bits)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(symbols))
	// Output:
	// xzxyx
}
