package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	huffman "github.com/chronos-tachyon/huffreport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()

	for _, tc := range []struct {
		name      string
		input     string
		expectErr string
	}{
		{
			name:      "too short",
			input:     strings.Repeat("a", 29),
			expectErr: "Input must contain at least 30 characters.",
		},
		{
			name:      "empty",
			input:     "",
			expectErr: "Input must contain at least 30 characters.",
		},
		{
			name:      "tab",
			input:     strings.Repeat("a", 30) + "\t",
			expectErr: "Invalid character detected (ASCII 9).",
		},
		{
			name:      "delete",
			input:     "\x7f" + strings.Repeat("a", 30),
			expectErr: "Invalid character detected (ASCII 127).",
		},
		{
			name:  "printable",
			input: "Hello, World! ~ 0123456789 {}[] ABC",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			symbols, err := Validate(tc.input, cfg)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.expectErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, string(symbols))
		})
	}
}

func TestValidate_InvalidCharOffset(t *testing.T) {
	_, err := Validate(strings.Repeat("b", 31)+"\n", DefaultConfig())

	var charErr *InvalidCharError
	require.True(t, errors.As(err, &charErr))
	assert.Equal(t, byte('\n'), charErr.Char)
	assert.Equal(t, 31, charErr.Offset)
}

func TestRender_Text(t *testing.T) {
	input := []byte(strings.Repeat("a", 30))
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, input, huffman.Encode(input), DefaultConfig()))

	expect := strings.Join([]string{
		"",
		"=== Huffman Coding Report ===",
		"Input length (characters): 30",
		"Original size (bits): 240",
		"Compressed size (bits): 30",
		"Compression ratio: 0.1250",
		"Reduction: 87.5000%",
		"",
		"Frequency table (sorted by symbol):",
		"Symbol  ASCII  Freq",
		"   a     97     30",
		"",
		"Symbol details (sorted by code length then symbol):",
		"Symbol  Freq  Length  TreeCode  Canonical",
		"   a     30       1         0          0",
		"",
		"Huffman tree (preorder with parentheses):",
		"a",
		"",
		"Compressed output (first 128 bits):",
		strings.Repeat("0", 30),
		"Total compressed bits: 30",
		"Compressed output (hex):",
		"00000000",
		"",
	}, "\n")
	assert.Equal(t, expect, buf.String())
}

func TestRender_TextTruncatesAndUsesPlaceholder(t *testing.T) {
	input := []byte(strings.Repeat("ab c", 100))
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, input, huffman.Encode(input), DefaultConfig()))

	out := buf.String()
	assert.Contains(t, out, "<sp>     32    100\n")
	assert.NotContains(t, out, "( ")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		switch line {
		case "Compressed output (first 128 bits):":
			assert.Len(t, lines[i+1], 128+len("..."))
			assert.True(t, strings.HasSuffix(lines[i+1], "..."))
		case "Compressed output (hex):":
			assert.Len(t, lines[i+1], 64+len("..."))
			assert.True(t, strings.HasSuffix(lines[i+1], "..."))
		}
	}
}

func TestRender_JSON(t *testing.T) {
	input := []byte(strings.Repeat("a", 20) + strings.Repeat("b", 10))
	cfg := DefaultConfig()
	cfg.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, input, huffman.Encode(input), cfg))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 30, doc.InputLength)
	assert.Equal(t, 30, doc.CompressedBitCount)
	assert.Equal(t, "00000FFC", doc.CompressedHex)
	assert.Equal(t, "(ba)", doc.Tree)
	assert.Nil(t, doc.ZstdBaselineBits)
	require.Len(t, doc.Symbols, 2)
	assert.Equal(t, SymbolRow{Symbol: "a", ASCII: 97, Freq: 20, Length: 1, TreeCode: "1", Canonical: "0"}, doc.Symbols[0])
	assert.Equal(t, SymbolRow{Symbol: "b", ASCII: 98, Freq: 10, Length: 1, TreeCode: "0", Canonical: "1"}, doc.Symbols[1])
}

func TestRender_YAML(t *testing.T) {
	input := []byte(strings.Repeat("hello world ", 10))
	cfg := DefaultConfig()
	cfg.Format = FormatYAML
	cfg.ZstdBaseline = true

	result := huffman.Encode(input)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, input, result, cfg))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, result.CompressedBits.String(), doc.CompressedBits)
	assert.Equal(t, result.CompressedBits.Len(), doc.CompressedBitCount)
	assert.Equal(t, result.Metrics, doc.Metrics)
	require.NotNil(t, doc.ZstdBaselineBits)
	assert.Positive(t, *doc.ZstdBaselineBits)
	assert.Len(t, doc.Frequencies, len(result.Frequencies))
}

func TestRender_UnknownFormat(t *testing.T) {
	input := []byte(strings.Repeat("a", 30))
	cfg := DefaultConfig()
	cfg.Format = "xml"
	assert.Error(t, Render(&bytes.Buffer{}, input, huffman.Encode(input), cfg))
}

func TestZstdBaselineBits(t *testing.T) {
	bits, err := ZstdBaselineBits([]byte(strings.Repeat("abcd", 1000)))
	require.NoError(t, err)
	assert.Equal(t, 0, bits%8)
	assert.Less(t, bits, 8*4000)
}
