package oracle

import (
	"fmt"
	"strings"
)

// Parse converts a card's Oracle text into its intermediate representation.
// It is a pure function and never panics: malformed input yields an empty
// ability list, and unrecognized clauses degrade to unknown steps that keep
// the raw text for coverage tracking. Output is deterministic for identical
// input, so callers may cache results by card name and text.
func Parse(oracleText, cardName string) ParseResult {
	norm := Normalize(oracleText, cardName)
	if strings.TrimSpace(norm) == "" {
		return ParseResult{}
	}
	abilities := segment(norm)
	for i := range abilities {
		abilities[i].ID = fmt.Sprintf("a%d", i+1)
	}
	return ParseResult{Abilities: abilities}
}
