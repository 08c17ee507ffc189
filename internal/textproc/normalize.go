// Package textproc prepares raw text for sentence-level practice.
package textproc

import (
	"regexp"
	"strings"
)

var (
	hyphenBreakRe = regexp.MustCompile(`([\p{L}\p{N}_])-\r?\n([\p{L}\p{N}_])`)
	whitespaceRe  = regexp.MustCompile(`[\s\p{Z}]+`)
)

// Normalize rejoins words split by a hyphenated line break and collapses
// every whitespace run into a single space.
func Normalize(text string) string {
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
