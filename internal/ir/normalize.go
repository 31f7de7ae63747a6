package ir

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims surrounding whitespace and applies NFC normalization,
// so that "Fluoride Glass" typed on different platforms compares equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
