package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	huffman "github.com/chronos-tachyon/huffreport"
	"gopkg.in/yaml.v3"
)

// SymbolRow is one line of the symbol tables.
type SymbolRow struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	ASCII     int    `json:"ascii" yaml:"ascii"`
	Freq      uint64 `json:"freq" yaml:"freq"`
	Length    uint8  `json:"length" yaml:"length"`
	TreeCode  string `json:"treeCode" yaml:"treeCode"`
	Canonical string `json:"canonical" yaml:"canonical"`
}

// Document is the format-independent content of a report.
type Document struct {
	InputLength        int             `json:"inputLength" yaml:"inputLength"`
	Metrics            huffman.Metrics `json:"metrics" yaml:"metrics"`
	ZstdBaselineBits   *int            `json:"zstdBaselineBits,omitempty" yaml:"zstdBaselineBits,omitempty"`
	Frequencies        []SymbolRow     `json:"frequencies" yaml:"frequencies"`
	Symbols            []SymbolRow     `json:"symbols" yaml:"symbols"`
	Tree               string          `json:"tree" yaml:"tree"`
	CompressedBits     string          `json:"compressedBits" yaml:"compressedBits"`
	CompressedBitCount int             `json:"compressedBitCount" yaml:"compressedBitCount"`
	CompressedHex      string          `json:"compressedHex" yaml:"compressedHex"`
}

// Build assembles the report for an input and its encoding.
func Build(input []byte, result *huffman.Result[byte], cfg Config) (*Document, error) {
	doc := &Document{
		InputLength:        len(input),
		Metrics:            result.Metrics,
		Tree:               result.TreeShape.Format(cfg.symbolName),
		CompressedBits:     result.CompressedBits.String(),
		CompressedBitCount: result.CompressedBits.Len(),
		CompressedHex:      result.CompressedHex,
	}

	row := func(symbol byte) SymbolRow {
		return SymbolRow{
			Symbol:    cfg.symbolName(symbol),
			ASCII:     int(symbol),
			Freq:      result.Frequencies[symbol],
			Length:    result.CodeLengths[symbol],
			TreeCode:  result.RawTreeCodes[symbol].BitString(),
			Canonical: result.CanonicalCodes[symbol].BitString(),
		}
	}
	for _, symbol := range result.Frequencies.Symbols() {
		doc.Frequencies = append(doc.Frequencies, row(symbol))
	}
	for _, symbol := range huffman.SortBySize(result.CodeLengths) {
		doc.Symbols = append(doc.Symbols, row(symbol))
	}

	if cfg.ZstdBaseline {
		bits, err := ZstdBaselineBits(input)
		if err != nil {
			return nil, err
		}
		doc.ZstdBaselineBits = &bits
	}
	return doc, nil
}

// Render writes the report for an input and its encoding in cfg.Format.
func Render(w io.Writer, input []byte, result *huffman.Result[byte], cfg Config) error {
	doc, err := Build(input, result, cfg)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()

	case FormatText, "":
		_, err := doc.WriteText(w, cfg)
		return err

	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
}

// WriteText writes the human-readable report.
func (doc *Document) WriteText(w io.Writer, cfg Config) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("\n=== Huffman Coding Report ===\n")
	fmt.Fprintf(&buf, "Input length (characters): %d\n", doc.InputLength)
	fmt.Fprintf(&buf, "Original size (bits): %d\n", doc.Metrics.OriginalBits)
	fmt.Fprintf(&buf, "Compressed size (bits): %d\n", doc.Metrics.CompressedBits)
	fmt.Fprintf(&buf, "Compression ratio: %.4f\n", doc.Metrics.Ratio)
	fmt.Fprintf(&buf, "Reduction: %.4f%%\n", doc.Metrics.Reduction*100)
	if doc.ZstdBaselineBits != nil {
		fmt.Fprintf(&buf, "Reference zstd size (bits): %d\n", *doc.ZstdBaselineBits)
	}

	buf.WriteString("\nFrequency table (sorted by symbol):\n")
	buf.WriteString("Symbol  ASCII  Freq\n")
	for _, row := range doc.Frequencies {
		fmt.Fprintf(&buf, "%4s%7d%7d\n", row.Symbol, row.ASCII, row.Freq)
	}

	buf.WriteString("\nSymbol details (sorted by code length then symbol):\n")
	buf.WriteString("Symbol  Freq  Length  TreeCode  Canonical\n")
	for _, row := range doc.Symbols {
		fmt.Fprintf(&buf, "%4s%7d%8d%10s%11s\n", row.Symbol, row.Freq, row.Length, row.TreeCode, row.Canonical)
	}

	buf.WriteString("\nHuffman tree (preorder with parentheses):\n")
	buf.WriteString(doc.Tree)
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "\nCompressed output (first %d bits):\n", cfg.PreviewBits)
	buf.WriteString(preview(doc.CompressedBits, cfg.PreviewBits))
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "Total compressed bits: %d\n", doc.CompressedBitCount)

	buf.WriteString("Compressed output (hex):\n")
	buf.WriteString(preview(doc.CompressedHex, cfg.PreviewHex))
	buf.WriteString("\n")
	return buf.WriteTo(w)
}

func (cfg Config) symbolName(symbol byte) string {
	if symbol == ' ' && cfg.SpacePlaceholder != "" {
		return cfg.SpacePlaceholder
	}
	return string(rune(symbol))
}

func preview(str string, limit int) string {
	if len(str) <= limit {
		return str
	}
	return str[:limit] + "..."
}
