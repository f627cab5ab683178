package report

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when there is nothing to encode.
	ErrEmpty = errors.New("No valid characters to encode.")
)

// TooShortError is returned for inputs below the minimum length.
type TooShortError struct {
	Length    int
	MinLength int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("Input must contain at least %d characters.", e.MinLength)
}

// InvalidCharError is returned for a character outside the alphabet.
type InvalidCharError struct {
	Char   byte
	Offset int
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("Invalid character detected (ASCII %d).", int(int8(e.Char)))
}

// Validate applies the input policy of cfg and returns the input as symbols.
func Validate(input string, cfg Config) ([]byte, error) {
	if len(input) < cfg.MinLength {
		return nil, &TooShortError{Length: len(input), MinLength: cfg.MinLength}
	}
	symbols := []byte(input)
	for i, ch := range symbols {
		if ch < cfg.MinChar || ch > cfg.MaxChar {
			return nil, &InvalidCharError{Char: ch, Offset: i}
		}
	}
	if len(symbols) == 0 {
		return nil, ErrEmpty
	}
	return symbols, nil
}
