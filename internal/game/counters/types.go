// Package counters defines counter kinds and counter collections. The parser
// records "with N <kind> counters" token modifiers as counter maps, and the
// clause evaluator reads the same maps for counter presence and threshold
// checks.
package counters

import "strings"

// CounterType represents a type of counter. The type is an open string so
// unrecognized counter names from card text still round-trip; the constants
// cover the kinds the rest of the module refers to by name.
type CounterType string

const (
	CounterTypeP1P1 CounterType = "+1/+1"
	CounterTypeM1M1 CounterType = "-1/-1"

	CounterTypeLoyalty    CounterType = "loyalty"
	CounterTypePoison     CounterType = "poison"
	CounterTypeEnergy     CounterType = "energy"
	CounterTypeExperience CounterType = "experience"

	CounterTypeAge       CounterType = "age"
	CounterTypeCharge    CounterType = "charge"
	CounterTypeDepletion CounterType = "depletion"
	CounterTypeFade      CounterType = "fade"
	CounterTypeLore      CounterType = "lore"
	CounterTypeOil       CounterType = "oil"
	CounterTypeQuest     CounterType = "quest"
	CounterTypeShield    CounterType = "shield"
	CounterTypeStun      CounterType = "stun"
	CounterTypeTime      CounterType = "time"
)

// FromName normalizes a counter name from card text ("Quest", "+1/+1") into
// a CounterType.
func FromName(name string) CounterType {
	return CounterType(strings.ToLower(strings.TrimSpace(name)))
}
