package logstore

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/imishinist/logger-dev/internal/apierr"
)

var controlReplacer = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// SanitizeSuffix turns free text into a filename fragment made of letters,
// digits, '.', '_', '-' and spaces. Anything else becomes '_'.
func SanitizeSuffix(suffix string) string {
	s := controlReplacer.Replace(strings.TrimSpace(suffix))

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r):
			b.WriteRune(r)
		case r == '.', r == '_', r == ' ', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimSpace(b.String())
}

// ValidateName rejects run identifiers that would escape the store directory.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == "." || trimmed == ".." {
		return fmt.Errorf("invalid run name %q: %w", name, apierr.ErrInvalidArgument)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid run name %q: %w", name, apierr.ErrInvalidArgument)
	}
	return nil
}
