package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "CIVICNAV_MAX_INPUT_SIZE"
	// MaxIdentifierSize bounds issue IDs, session IDs and other single-token values.
	MaxIdentifierSize = 64
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans user input by enforcing size limits,
// validating UTF-8, and stripping dangerous control characters.
// Newlines, tabs and carriage returns are kept.
func SanitizeInput(input string) (string, error) {
	return sanitize(input, getMaxInputSize(), isSafeControl)
}

// SanitizeIdentifier is SanitizeInput for single-token values such as issue IDs.
// Every control character is stripped and surrounding whitespace trimmed.
func SanitizeIdentifier(input string) (string, error) {
	clean, err := sanitize(input, MaxIdentifierSize, func(rune) bool { return false })
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(clean), nil
}

func sanitize(input string, limit int, keep func(rune) bool) (string, error) {
	// Reject rather than truncate, so state stays deterministic.
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !keep(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

// SanitizePayload runs SanitizeIdentifier over every string value of raw, in place.
// Event payloads only carry single-token values (screens, roles, languages, issue IDs).
func SanitizePayload(raw map[string]any) error {
	for k, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		clean, err := SanitizeIdentifier(str)
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		raw[k] = clean
	}
	return nil
}
