// Package mana parses mana symbol strings. The oracle parser uses it to
// validate the symbol groups it captures ("add {R}{R}") and to tell a real
// activation cost ("{T}, Sacrifice an artifact:") from effect text that
// merely contains a colon.
package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ManaType identifies one kind of mana.
type ManaType string

const (
	ManaWhite     ManaType = "W"
	ManaBlue      ManaType = "U"
	ManaBlack     ManaType = "B"
	ManaRed       ManaType = "R"
	ManaGreen     ManaType = "G"
	ManaColorless ManaType = "C"
	ManaGeneric   ManaType = "generic"
)

// ManaCost represents a parsed symbol string. Tap, Untap and Snow are not
// mana but appear in the same brace notation inside activation costs.
type ManaCost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	Snow      int
	X         bool
	Tap       bool
	Untap     bool
	Hybrid    []HybridCost
	Phyrexian []ManaType
}

// HybridCost represents a hybrid symbol (e.g. {W/U}, {2/B}).
type HybridCost struct {
	Options [][]ManaType
}

var symbolRe = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a brace-delimited symbol string such as "{1}{G}",
// "{X}{R}", "{T}" or "{W/U}{W/U}". Unknown symbols are an error so that
// callers can reject text that only looks like a cost.
func ParseCost(costStr string) (*ManaCost, error) {
	cost := &ManaCost{}
	if costStr == "" {
		return cost, nil
	}

	for _, match := range symbolRe.FindAllStringSubmatch(costStr, -1) {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
		case "X":
			cost.X = true
		case "T":
			cost.Tap = true
		case "Q":
			cost.Untap = true
		case "S":
			cost.Snow++
		case "W":
			cost.White++
		case "U":
			cost.Blue++
		case "B":
			cost.Black++
		case "R":
			cost.Red++
		case "G":
			cost.Green++
		case "C":
			cost.Colorless++
		default:
			if num, err := strconv.Atoi(symbol); err == nil {
				cost.Generic += num
				continue
			}
			if strings.Contains(symbol, "/") {
				if hybrid, phyrexian := parseSlashSymbol(symbol); hybrid != nil {
					cost.Hybrid = append(cost.Hybrid, *hybrid)
					continue
				} else if phyrexian != "" {
					cost.Phyrexian = append(cost.Phyrexian, phyrexian)
					continue
				}
			}
			return nil, fmt.Errorf("unknown mana symbol: {%s}", symbol)
		}
	}

	return cost, nil
}

// parseSlashSymbol parses hybrid ({W/U}, {2/B}) and Phyrexian ({G/P})
// symbols.
func parseSlashSymbol(symbol string) (*HybridCost, ManaType) {
	parts := strings.Split(symbol, "/")
	if len(parts) != 2 {
		return nil, ""
	}
	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])

	if right == "P" {
		if types := parseManaTypes(left); len(types) == 1 {
			return nil, types[0]
		}
		return nil, ""
	}

	hybrid := &HybridCost{}
	leftTypes := parseManaTypes(left)
	rightTypes := parseManaTypes(right)
	if len(leftTypes) == 0 || len(rightTypes) == 0 {
		return nil, ""
	}
	hybrid.Options = append(hybrid.Options, leftTypes, rightTypes)
	return hybrid, ""
}

// parseManaTypes parses one side of a slash symbol ("W", "2").
func parseManaTypes(s string) []ManaType {
	switch s {
	case "W":
		return []ManaType{ManaWhite}
	case "U":
		return []ManaType{ManaBlue}
	case "B":
		return []ManaType{ManaBlack}
	case "R":
		return []ManaType{ManaRed}
	case "G":
		return []ManaType{ManaGreen}
	case "C":
		return []ManaType{ManaColorless}
	}
	if num, err := strconv.Atoi(s); err == nil && num > 0 {
		return []ManaType{ManaGeneric}
	}
	return nil
}

// ManaValue returns the cost's contribution to mana value. X counts as zero;
// hybrid and Phyrexian symbols count as one each.
func (mc *ManaCost) ManaValue() int {
	return mc.Generic + mc.White + mc.Blue + mc.Black + mc.Red + mc.Green +
		mc.Colorless + mc.Snow + len(mc.Hybrid) + len(mc.Phyrexian)
}

// String returns the canonical symbol string for the cost.
func (mc *ManaCost) String() string {
	var parts []string
	if mc.X {
		parts = append(parts, "{X}")
	}
	if mc.Generic > 0 {
		parts = append(parts, fmt.Sprintf("{%d}", mc.Generic))
	}
	appendN := func(n int, sym string) {
		for i := 0; i < n; i++ {
			parts = append(parts, sym)
		}
	}
	appendN(mc.Snow, "{S}")
	appendN(mc.White, "{W}")
	appendN(mc.Blue, "{U}")
	appendN(mc.Black, "{B}")
	appendN(mc.Red, "{R}")
	appendN(mc.Green, "{G}")
	appendN(mc.Colorless, "{C}")
	for _, hybrid := range mc.Hybrid {
		if len(hybrid.Options) == 2 && len(hybrid.Options[0]) > 0 && len(hybrid.Options[1]) > 0 {
			parts = append(parts, fmt.Sprintf("{%s/%s}", hybrid.Options[0][0], hybrid.Options[1][0]))
		}
	}
	for _, p := range mc.Phyrexian {
		parts = append(parts, fmt.Sprintf("{%s/P}", p))
	}
	if mc.Tap {
		parts = append(parts, "{T}")
	}
	if mc.Untap {
		parts = append(parts, "{Q}")
	}
	return strings.Join(parts, "")
}
