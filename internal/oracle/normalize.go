package oracle

import (
	"regexp"
	"strings"
)

// SelfToken is the placeholder rules text uses for the card's own name.
const SelfToken = "~"

var (
	curlyQuoteReplacer = strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
		"—", "-",
		"–", "-",
	)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankLineRe   = regexp.MustCompile(`\n{2,}`)
	bulletStartRe = regexp.MustCompile(`(?m)^[ \t]*•[ \t]*`)
)

// Normalize canonicalizes punctuation, expands the self-reference token to
// the card name and collapses whitespace. Ability boundaries (newlines,
// modal bullets, saga chapter markers) are preserved. It is a pure, total
// function: unrecognized punctuation passes through unchanged, and
// normalizing already-normalized text is a no-op.
func Normalize(text, cardName string) string {
	if text == "" {
		return ""
	}
	out := curlyQuoteReplacer.Replace(text)
	if cardName != "" {
		out = strings.ReplaceAll(out, SelfToken, cardName)
	}
	out = bulletStartRe.ReplaceAllString(out, "• ")
	out = spaceRunRe.ReplaceAllString(out, " ")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	out = strings.Join(lines, "\n")
	out = blankLineRe.ReplaceAllString(out, "\n")
	return strings.TrimSpace(out)
}

// splitClauses splits effect text into clauses on sentence boundaries and
// semicolons, without splitting inside parentheses (reminder text carries
// its own punctuation). The returned clauses keep their original casing.
func splitClauses(text string) []string {
	var clauses []string
	var b strings.Builder
	depth := 0
	flush := func() {
		c := strings.TrimSpace(b.String())
		if c != "" {
			clauses = append(clauses, c)
		}
		b.Reset()
	}
	for _, r := range text {
		switch r {
		case '(':
			depth++
			b.WriteRune(r)
		case ')':
			if depth > 0 {
				depth--
			}
			b.WriteRune(r)
		case '.', ';':
			if depth > 0 {
				b.WriteRune(r)
			} else {
				flush()
			}
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return clauses
}
