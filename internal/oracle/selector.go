package oracle

import "strings"

// ParseSelector normalizes a "who" phrase to one of the enumerated selector
// kinds. Possessive forms ("each opponent's") resolve the same as their
// subject forms. Anything unrecognized yields an unknown selector carrying
// the raw phrase.
func ParseSelector(phrase string) Selector {
	raw := strings.TrimSpace(phrase)
	s := strings.ToLower(raw)
	s = strings.TrimSuffix(s, "'s")
	s = strings.TrimSpace(s)

	switch s {
	case "you", "your", "yours":
		return Selector{Kind: SelectorYou}
	case "each opponent", "each of your opponents", "your opponents", "all opponents":
		return Selector{Kind: SelectorEachOpponent}
	case "each player", "each of the players", "all players":
		return Selector{Kind: SelectorEachPlayer}
	case "target player":
		return Selector{Kind: SelectorTargetPlayer}
	case "target opponent":
		return Selector{Kind: SelectorTargetOpponent}
	case "each of those opponents", "those opponents", "each of those players":
		return Selector{Kind: SelectorThoseOpponents}
	}
	if raw == "" {
		raw = phrase
	}
	return Selector{Kind: SelectorUnknown, Raw: raw}
}

// selectorYou is the implicit subject of imperative clauses ("Draw a card").
func selectorYou() Selector {
	return Selector{Kind: SelectorYou}
}
