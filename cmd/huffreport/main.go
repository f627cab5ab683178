// Command huffreport reads one line of text from stdin, encodes it with a
// canonical Huffman code, and prints a report of the code and the payload.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	huffman "github.com/chronos-tachyon/huffreport"
	"github.com/chronos-tachyon/huffreport/internal/report"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to huffreport.yaml (optional)")
	format := flag.String("format", "", "output format: text, json or yaml")
	zstdBaseline := flag.Bool("zstd", false, "also report the zstd-compressed size of the input")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this directory")
	verbose := flag.Bool("v", false, "log debugging information to stderr")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.Quiet).Stop()
	}

	cfg, err := report.LoadFromPath(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *zstdBaseline {
		cfg.ZstdBaseline = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(os.Stdin, os.Stdout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(r io.Reader, w io.Writer, cfg report.Config) error {
	line, err := readLine(r)
	if err != nil {
		return err
	}

	symbols, err := report.Validate(line, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result := huffman.Encode(symbols)
	log.WithFields(log.Fields{
		"symbols":  len(result.Frequencies),
		"bits":     result.CompressedBits.Len(),
		"duration": time.Since(start),
	}).Debug("encoded input")

	return report.Render(w, symbols, result, cfg)
}

// readLine returns the first line of r without its line terminator.
func readLine(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
