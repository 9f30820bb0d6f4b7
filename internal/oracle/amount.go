package oracle

import (
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20,
}

// ParseAmount normalizes a "how many" phrase: a number word or digit string
// becomes a number, a lone "X" stays symbolic, and anything else is recorded
// unparsed with the literal source phrase preserved.
func ParseAmount(phrase string) Amount {
	raw := strings.TrimSpace(phrase)
	s := strings.ToLower(raw)
	if s == "" {
		return Amount{Kind: AmountNumber, Value: 1}
	}
	if s == "x" {
		return Amount{Kind: AmountX}
	}
	if n, ok := numberWords[s]; ok {
		return Amount{Kind: AmountNumber, Value: n}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Amount{Kind: AmountNumber, Value: n}
	}
	if strings.HasPrefix(s, "an additional ") {
		rest := ParseAmount(s[len("an additional "):])
		if rest.Kind == AmountNumber {
			return rest
		}
	}
	return Amount{Kind: AmountUnknown, Raw: raw}
}

// wordOrDigits matches the phrases ParseAmount turns into numbers; used by
// clause templates to keep their capture groups tight.
const wordOrDigits = `(?:a|an|x|\d+|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty)`
