package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the input policy and layout of a report.
type Config struct {
	// MinLength is the minimum number of input characters.
	MinLength int

	// MinChar and MaxChar bound the accepted alphabet, inclusive.
	MinChar byte
	MaxChar byte

	// PreviewBits and PreviewHex cap how much of the payload the text
	// report shows.  JSON and YAML reports are never truncated.
	PreviewBits int
	PreviewHex  int

	// SpacePlaceholder is shown instead of a bare space character.
	SpacePlaceholder string

	Format string

	// ZstdBaseline adds the zstd-compressed size of the input, for
	// comparison.
	ZstdBaseline bool
}

// DefaultConfig returns the default policy: at least 30 printable ASCII
// characters.
func DefaultConfig() Config {
	return Config{
		MinLength:        30,
		MinChar:          32,
		MaxChar:          126,
		PreviewBits:      128,
		PreviewHex:       64,
		SpacePlaceholder: "<sp>",
		Format:           FormatText,
	}
}

// FileConfig is the on-disk layout of a config file.
type FileConfig struct {
	Report ReportFileConfig `yaml:"report"`
}

type ReportFileConfig struct {
	MinLength        int    `yaml:"minLength"`
	MinChar          *int   `yaml:"minChar"`
	MaxChar          *int   `yaml:"maxChar"`
	PreviewBits      int    `yaml:"previewBits"`
	PreviewHex       int    `yaml:"previewHex"`
	SpacePlaceholder string `yaml:"spacePlaceholder"`
	Format           string `yaml:"format"`
	ZstdBaseline     *bool  `yaml:"zstdBaseline"`
}

// LoadFromPath builds a Config from the defaults, the first readable config
// file, and the environment, in increasing order of precedence.  With an
// empty configPath, a few conventional locations are tried.
func LoadFromPath(configPath string) (Config, error) {
	cfg := DefaultConfig()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates,
			"huffreport.yaml",
			"configs/huffreport.yaml",
		)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if configPath != "" {
				return cfg, fmt.Errorf("reading config: %w", err)
			}
			log.Debugf("config %s not loaded: %v", path, err)
			continue
		}

		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}

		log.Debugf("loaded config %s", path)
		Merge(&cfg, parsed.Report)
		break
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func Merge(dst *Config, src ReportFileConfig) {
	if src.MinLength != 0 {
		dst.MinLength = src.MinLength
	}
	if src.MinChar != nil {
		dst.MinChar = byte(*src.MinChar)
	}
	if src.MaxChar != nil {
		dst.MaxChar = byte(*src.MaxChar)
	}
	if src.PreviewBits != 0 {
		dst.PreviewBits = src.PreviewBits
	}
	if src.PreviewHex != 0 {
		dst.PreviewHex = src.PreviewHex
	}
	if src.SpacePlaceholder != "" {
		dst.SpacePlaceholder = src.SpacePlaceholder
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.ZstdBaseline != nil {
		dst.ZstdBaseline = *src.ZstdBaseline
	}
}

func ApplyEnvOverrides(cfg *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"HUFFREPORT_MIN_LENGTH", &cfg.MinLength},
		{"HUFFREPORT_PREVIEW_BITS", &cfg.PreviewBits},
		{"HUFFREPORT_PREVIEW_HEX", &cfg.PreviewHex},
	}
	for _, item := range ints {
		raw := strings.TrimSpace(os.Getenv(item.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", item.name, err)
		}
		*item.dst = v
	}

	if format := strings.TrimSpace(os.Getenv("HUFFREPORT_FORMAT")); format != "" {
		cfg.Format = format
	}
	return nil
}

// Validate rejects configurations that cannot describe a usable policy.
func (cfg Config) Validate() error {
	if cfg.MinLength < 1 {
		return fmt.Errorf("minLength must be at least 1, got %d", cfg.MinLength)
	}
	if cfg.MinChar > cfg.MaxChar {
		return fmt.Errorf("empty alphabet: minChar %d > maxChar %d", cfg.MinChar, cfg.MaxChar)
	}
	if cfg.PreviewBits < 0 || cfg.PreviewHex < 0 {
		return fmt.Errorf("preview limits must not be negative")
	}
	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q, want %s, %s or %s", cfg.Format, FormatText, FormatJSON, FormatYAML)
	}
}
