package plan

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// foldText prepares cell text for keyword comparison: NFC composition so
// that a decomposed "ё" equals the precomposed one, lower case, outer
// whitespace removed.
func foldText(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
