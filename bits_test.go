package huffman

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func parseBits(t *testing.T, str string) Bits {
	t.Helper()
	var b Bits
	if err := b.UnmarshalText([]byte(str)); err != nil {
		t.Fatalf("UnmarshalText(%q) failed: %v", str, err)
	}
	return b
}

func TestBits_Hex(t *testing.T) {
	type testRow struct {
		bits string
		hex  string
	}

	testData := [...]testRow{
		{bits: "", hex: ""},
		{bits: "1", hex: "8"},
		{bits: "1011", hex: "B"},
		{bits: "10110", hex: "B0"},
		{bits: "11111111", hex: "FF"},
		{bits: "000000001", hex: "008"},
		{bits: strings.Repeat("0", 30), hex: "00000000"},
	}
	for _, row := range testData {
		t.Run(row.bits, func(t *testing.T) {
			b := parseBits(t, row.bits)
			if b.Len() != len(row.bits) {
				t.Errorf("expected %d bits, got %d", len(row.bits), b.Len())
			}
			if actual := b.String(); actual != row.bits {
				t.Errorf("wrong bits:\n\texpect: %s\n\tactual: %s", row.bits, actual)
			}
			if actual := b.Hex(); actual != row.hex {
				t.Errorf("wrong hex:\n\texpect: %s\n\tactual: %s", row.hex, actual)
			}

			back, err := BitsFromHex(row.hex, len(row.bits))
			if err != nil {
				t.Fatalf("BitsFromHex failed: %v", err)
			}
			if back.String() != row.bits {
				t.Errorf("BitsFromHex: expected %s, got %s", row.bits, back.String())
			}
		})
	}
}

func TestBitsFromHex_Errors(t *testing.T) {
	type testRow struct {
		name string
		hex  string
		n    int
	}

	testData := [...]testRow{
		{name: "too-short", hex: "FF", n: 10},
		{name: "too-long", hex: "FFC0", n: 10},
		{name: "negative", hex: "", n: -1},
		{name: "not-hex", hex: "FG", n: 8},
		{name: "dirty-padding", hex: "FFE", n: 10},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			if _, err := BitsFromHex(row.hex, row.n); err == nil {
				t.Errorf("expected an error, got none")
			}
		})
	}
}

func TestBitsFromBytes(t *testing.T) {
	b, err := BitsFromBytes([]byte{0xff, 0xff}, 10)
	if err != nil {
		t.Fatalf("BitsFromBytes failed: %v", err)
	}
	if !bytes.Equal(b.Bytes(), []byte{0xff, 0xc0}) {
		t.Errorf("expected padding bits to be cleared, got %x", b.Bytes())
	}
	if _, err := BitsFromBytes([]byte{0xff}, 9); err == nil {
		t.Errorf("expected an error for 9 bits of 1 byte, got none")
	}
}

func TestPack(t *testing.T) {
	codes := AssignCanonical(CodeLengths[byte]{'a': 1, 'b': 2, 'c': 2})
	b := Pack([]byte("abcab"), codes)

	if expect, actual := "01011010", b.String(); expect != actual {
		t.Errorf("wrong bits:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
	if b.At(1) != 1 || b.At(2) != 0 {
		t.Errorf("wrong bits from At: %d %d", b.At(1), b.At(2))
	}
}

func TestBits_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(parseBits(t, "10110"))
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if expect, actual := `"10110"`, string(raw); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}

	var b Bits
	if err := json.Unmarshal([]byte(`"10x"`), &b); err == nil {
		t.Errorf("expected an error for invalid bits, got none")
	}
}

func TestCode(t *testing.T) {
	hc, err := ParseCode("0010")
	if err != nil {
		t.Fatalf("ParseCode failed: %v", err)
	}
	if hc != MakeCode(4, 2) {
		t.Errorf("expected {4, 2}, got %+v", hc)
	}
	if expect, actual := `"0010"`, hc.String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
	if !hc.Parent().IsPrefixOf(hc) || !(Code{}).IsPrefixOf(hc) {
		t.Errorf("expected prefixes of %s to be recognized", hc)
	}
	if hc.Sibling().IsPrefixOf(hc) || hc.IsPrefixOf(hc.Parent()) {
		t.Errorf("unexpected prefix relation for %s", hc)
	}
	if _, err := ParseCode("012"); err == nil {
		t.Errorf("expected an error for invalid code, got none")
	}
	if _, err := ParseCode(strings.Repeat("1", MaxCodeSize+1)); err == nil {
		t.Errorf("expected an error for an overlong code, got none")
	}

	raw, err := json.Marshal(map[string]Code{"x": hc})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if expect, actual := `{"x":"0010"}`, string(raw); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}
