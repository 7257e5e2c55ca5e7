// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"strings"

	"github.com/pdiddy/aeo-corpus/pkg/types"
)

// Classify maps a filename to a document type by case-insensitive substring
// matching. Rules are checked in a fixed priority order and the first match
// wins; a filename matching nothing classifies as Other.
func Classify(filename string) types.DocType {
	name := strings.ToLower(filename)

	switch {
	case strings.Contains(name, "impact"),
		strings.Contains(name, "sustainability"),
		strings.Contains(name, "esg"):
		return types.DocImpactReport
	case strings.Contains(name, "assurance"):
		return types.DocAssurance
	case strings.Contains(name, "proxy"):
		return types.DocProxyStatement
	case strings.Contains(name, "10k"), strings.Contains(name, "10-k"):
		return types.DocForm10K
	case strings.Contains(name, "carbon"):
		return types.DocCarbonDisclosure
	default:
		return types.DocOther
	}
}
