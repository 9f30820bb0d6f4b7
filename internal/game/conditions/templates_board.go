package conditions

import (
	"regexp"
	"strings"
)

// threshPat matches the numeric comparison phrases parseThreshold accepts.
const threshPat = `((?:[a-z\d]+|[a-z]+-[a-z]+) or (?:more|greater|fewer|less)|exactly (?:[a-z\d]+|[a-z]+-[a-z]+)|(?:more|fewer|less) than (?:[a-z\d]+|[a-z]+-[a-z]+)|no)`

var boardTemplates = []clauseTemplate{
	{
		name: "you_control_named",
		re:   regexp.MustCompile(`^you control (?:a|an|another) (?:permanent|creature|artifact|enchantment|land) named (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			battlefield, tracked := ec.state.BattlefieldView()
			if !tracked {
				return Unknown
			}
			for i := range battlefield {
				p := &battlefield[i]
				if p.Controller == ec.controller && strings.EqualFold(p.Name, m[1]) && p.ID != ec.sourceID() {
					return True
				}
			}
			return False
		},
	},
	{
		name: "you_control_threshold",
		re:   regexp.MustCompile(`^you control ` + threshPat + ` (?:other )?(.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.controlThreshold(ec.controller, m[1], m[2], "")
		},
	},
	{
		name: "you_control_another",
		re:   regexp.MustCompile(`^you control another (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.controlAtLeastOne(ec.controller, m[1], ec.sourceID())
		},
	},
	{
		name: "you_control_a",
		re:   regexp.MustCompile(`^you control (?:a|an) (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.controlAtLeastOne(ec.controller, m[1], "")
		},
	},
	{
		name: "you_control_none",
		re:   regexp.MustCompile(`^you (?:don't|do not) control (?:a|an|any) (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.controlAtLeastOne(ec.controller, m[1], "").Negate()
		},
	},
	{
		name: "opponent_controls_threshold",
		re:   regexp.MustCompile(`^an opponent controls ` + threshPat + ` (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.anyOpponentThreshold(m[1], m[2])
		},
	},
	{
		name: "opponent_controls_a",
		re:   regexp.MustCompile(`^an opponent controls (?:a|an) (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.anyOpponentThreshold("1 or more", m[1])
		},
	},
	{
		name: "no_opponent_controls",
		re:   regexp.MustCompile(`^no opponent controls (?:a|an|any) (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.anyOpponentThreshold("1 or more", m[1]).Negate()
		},
	},
	{
		name: "opponent_controls_more_than_you",
		re:   regexp.MustCompile(`^an opponent controls more (.+) than you$`),
		eval: func(m []string, ec *evalContext) Result {
			pred, ok := permanentPredicate(m[1])
			if !ok {
				return Unknown
			}
			mine, tracked := ec.countMatching(ec.controller, pred, "")
			if !tracked {
				return Unknown
			}
			for _, opp := range ec.opponentsOf(ec.controller) {
				theirs, _ := ec.countMatching(opp, pred, "")
				if theirs > mine {
					return True
				}
			}
			return False
		},
	},
	{
		name: "team_controls_another",
		re:   regexp.MustCompile(`^your team controls another (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			self, ok := ec.state.PlayerView(ec.controller)
			if !ok || self.Team == "" {
				return Unknown
			}
			pred, predOK := permanentPredicate(m[1])
			if !predOK {
				return Unknown
			}
			battlefield, tracked := ec.state.BattlefieldView()
			if !tracked {
				return Unknown
			}
			for i := range battlefield {
				p := &battlefield[i]
				if p.ID == ec.sourceID() || !pred(p) {
					continue
				}
				if owner, found := ec.state.PlayerView(p.Controller); found && owner.Team == self.Team {
					return True
				}
			}
			return False
		},
	},
	{
		name: "named_permanent_type",
		re:   regexp.MustCompile(`^(.+?) is (?:a|an) (artifact|creature|enchantment|land|planeswalker|battle)$`),
		eval: func(m []string, ec *evalContext) Result {
			subj, res := ec.subject(m[1])
			if subj == nil {
				return res
			}
			return FromBool(subj.HasType(m[2]))
		},
	},
}

func (ec *evalContext) controlAtLeastOne(controller, desc, excludeID string) Result {
	pred, ok := permanentPredicate(desc)
	if !ok {
		return Unknown
	}
	count, tracked := ec.countMatching(controller, pred, excludeID)
	if !tracked {
		return Unknown
	}
	return FromBool(count >= 1)
}

func (ec *evalContext) controlThreshold(controller, threshPhrase, desc, excludeID string) Result {
	th, thOK := parseThreshold(threshPhrase)
	if !thOK {
		return Unknown
	}
	pred, predOK := permanentPredicate(desc)
	if !predOK {
		return Unknown
	}
	count, tracked := ec.countMatching(controller, pred, excludeID)
	if !tracked {
		return Unknown
	}
	return FromBool(th.holds(count))
}

func (ec *evalContext) anyOpponentThreshold(threshPhrase, desc string) Result {
	th, thOK := parseThreshold(threshPhrase)
	if !thOK {
		return Unknown
	}
	pred, predOK := permanentPredicate(desc)
	if !predOK {
		return Unknown
	}
	if _, tracked := ec.state.BattlefieldView(); !tracked {
		return Unknown
	}
	for _, opp := range ec.opponentsOf(ec.controller) {
		count, _ := ec.countMatching(opp, pred, "")
		if th.holds(count) {
			return True
		}
	}
	return False
}
