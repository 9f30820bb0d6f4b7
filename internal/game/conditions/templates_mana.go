package conditions

import "regexp"

var manaTemplates = []clauseTemplate{
	{
		name: "mana_spent_threshold",
		re:   regexp.MustCompile(`^` + threshPat + ` mana was spent to cast (?:it|this spell|that spell)$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			item, res := ec.triggeringStackItem()
			if res != True {
				return res
			}
			if item.ManaSpent == nil {
				return Unknown
			}
			return FromBool(th.holds(item.ManaSpent.Total))
		},
	},
	{
		name: "creature_mana_threshold",
		re:   regexp.MustCompile(`^` + threshPat + ` mana from creatures was spent to cast (?:it|this spell|that spell)$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			return ec.creatureManaSpent(th)
		},
	},
	{
		name: "creature_mana_any",
		re:   regexp.MustCompile(`^mana from a creature was spent to cast (?:it|this spell|that spell)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.creatureManaSpent(threshold{n: 1, op: "ge"})
		},
	},
	{
		name: "was_kicked",
		re:   regexp.MustCompile(`^(?:it|this spell|that spell) (was|wasn't) kicked$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.WasKicked == nil {
				return Unknown
			}
			r := FromBool(*ec.refs.WasKicked)
			if m[1] == "wasn't" {
				return r.Negate()
			}
			return r
		},
	},
	{
		name: "was_cast",
		re:   regexp.MustCompile(`^(?:it|this spell|that spell) (was|wasn't) cast$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.WasCast == nil {
				return Unknown
			}
			r := FromBool(*ec.refs.WasCast)
			if m[1] == "wasn't" {
				return r.Negate()
			}
			return r
		},
	},
	{
		name: "you_cast_it",
		re:   regexp.MustCompile(`^you (cast|didn't cast) it$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.WasCast == nil {
				return Unknown
			}
			r := FromBool(*ec.refs.WasCast)
			if m[1] == "didn't cast" {
				return r.Negate()
			}
			return r
		},
	},
}

func (ec *evalContext) triggeringStackItem() (StackItem, Result) {
	if ec.refs.TriggeringStackItemID == "" {
		return StackItem{}, Unknown
	}
	item, ok := ec.state.StackItemView(ec.refs.TriggeringStackItemID)
	if !ok {
		return StackItem{}, Unknown
	}
	return item, True
}

// creatureManaSpent answers "mana from creatures" thresholds. When the
// payment breakdown attributed mana to sources the answer is definite.
// Otherwise the creatures tapped for convoke give a lower bound: meeting the
// threshold that way is True, but falling short stays Unknown because
// creature mana abilities are not attributed.
func (ec *evalContext) creatureManaSpent(th threshold) Result {
	item, res := ec.triggeringStackItem()
	if res != True {
		return res
	}
	if item.ManaSpent != nil && item.ManaSpent.FromCreatures != nil {
		return FromBool(th.holds(*item.ManaSpent.FromCreatures))
	}
	if item.ConvokeTapped == nil {
		return Unknown
	}
	if th.holds(len(item.ConvokeTapped)) && (th.op == "ge" || th.op == "gt") {
		return True
	}
	return Unknown
}
