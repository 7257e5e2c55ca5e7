// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

var (
	blankRuns = regexp.MustCompile(`\n\s*\n`)
	spaceRuns = regexp.MustCompile(` +`)
)

// Normalize cleans raw extracted page text: any run of blank lines
// (newlines with interspersed whitespace) collapses to exactly one blank
// line, runs of spaces collapse to a single space, and the result is
// trimmed of leading and trailing whitespace. Normalize is idempotent.
func Normalize(s string) string {
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
