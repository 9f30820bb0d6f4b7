package conditions

import (
	"regexp"
	"strings"
)

var turnTemplates = []clauseTemplate{
	{
		name: "your_turn",
		re:   regexp.MustCompile(`^it(?:'s| is) your turn$`),
		eval: func(m []string, ec *evalContext) Result {
			turn, tracked := ec.state.TurnView()
			if !tracked || turn.ActivePlayer == "" {
				return Unknown
			}
			return FromBool(turn.ActivePlayer == ec.controller)
		},
	},
	{
		name: "not_your_turn",
		re:   regexp.MustCompile(`^it(?:'s| is) not your turn$`),
		eval: func(m []string, ec *evalContext) Result {
			turn, tracked := ec.state.TurnView()
			if !tracked || turn.ActivePlayer == "" {
				return Unknown
			}
			return FromBool(turn.ActivePlayer != ec.controller)
		},
	},
	{
		name: "opponents_turn",
		re:   regexp.MustCompile(`^it(?:'s| is) an opponent's turn$`),
		eval: func(m []string, ec *evalContext) Result {
			turn, tracked := ec.state.TurnView()
			if !tracked || turn.ActivePlayer == "" {
				return Unknown
			}
			for _, opp := range ec.opponentsOf(ec.controller) {
				if turn.ActivePlayer == opp {
					return True
				}
			}
			return False
		},
	},
	{
		name: "your_main_phase",
		re:   regexp.MustCompile(`^it(?:'s| is) your (precombat |postcombat )?main phase$`),
		eval: func(m []string, ec *evalContext) Result {
			turn, tracked := ec.state.TurnView()
			if !tracked || turn.ActivePlayer == "" || turn.Phase == "" {
				return Unknown
			}
			if turn.ActivePlayer != ec.controller {
				return False
			}
			if !strings.Contains(turn.Phase, "main") {
				return False
			}
			if want := strings.TrimSpace(m[1]); want != "" {
				return FromBool(strings.HasPrefix(turn.Phase, want))
			}
			return True
		},
	},
	{
		name: "your_turn_step",
		re:   regexp.MustCompile(`^it(?:'s| is) your (upkeep|draw step|end step)$`),
		eval: func(m []string, ec *evalContext) Result {
			turn, tracked := ec.state.TurnView()
			if !tracked || turn.ActivePlayer == "" || turn.Step == "" {
				return Unknown
			}
			if turn.ActivePlayer != ec.controller {
				return False
			}
			// Exact comparison against the canonical step name: "end" must
			// not match the end-of-combat step.
			want := map[string]string{
				"upkeep":    "upkeep",
				"draw step": "draw",
				"end step":  "end",
			}[m[1]]
			return FromBool(turn.Step == want)
		},
	},
	{
		name: "you_dealt_damage",
		re:   regexp.MustCompile(`^you (?:were|have been) dealt damage this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			damage := ec.state.TrackerView().DamageToPlayers
			if damage == nil {
				return Unknown
			}
			return FromBool(damage[ec.controller] > 0)
		},
	},
	{
		name: "subject_dealt_damage",
		re:   regexp.MustCompile(`^(.+?) (?:was|has been) dealt damage this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			subj, res := ec.subject(m[1])
			if subj == nil {
				return res
			}
			damage := ec.state.TrackerView().DamageToPermanents
			if damage == nil {
				return Unknown
			}
			return FromBool(damage[subj.ID] > 0)
		},
	},
	{
		name: "you_discarded",
		re:   regexp.MustCompile(`^you(?:'ve| have)? discarded a card this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			discarded := ec.state.TrackerView().DiscardedThisTurn
			if discarded == nil {
				return Unknown
			}
			return FromBool(discarded[ec.controller] > 0)
		},
	},
	{
		name: "opponent_discarded",
		re:   regexp.MustCompile(`^an opponent (?:has )?discarded a card this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			discarded := ec.state.TrackerView().DiscardedThisTurn
			if discarded == nil {
				return Unknown
			}
			for _, opp := range ec.opponentsOf(ec.controller) {
				if discarded[opp] > 0 {
					return True
				}
			}
			return False
		},
	},
	{
		name: "player_discarded",
		re:   regexp.MustCompile(`^a player (?:has )?discarded a card this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			discarded := ec.state.TrackerView().DiscardedThisTurn
			if discarded == nil {
				return Unknown
			}
			for _, n := range discarded {
				if n > 0 {
					return True
				}
			}
			return False
		},
	},
	{
		name: "you_gained_life_threshold",
		re:   regexp.MustCompile(`^you(?:'ve| have)? gained ` + threshPat + ` life this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			gained := ec.state.TrackerView().LifeGainedThisTurn
			if gained == nil {
				return Unknown
			}
			return FromBool(th.holds(gained[ec.controller]))
		},
	},
	{
		name: "you_gained_life",
		re:   regexp.MustCompile(`^you(?:'ve| have)? gained life this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			gained := ec.state.TrackerView().LifeGainedThisTurn
			if gained == nil {
				return Unknown
			}
			return FromBool(gained[ec.controller] > 0)
		},
	},
	{
		name: "team_gained_life",
		re:   regexp.MustCompile(`^your team gained life this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			self, ok := ec.state.PlayerView(ec.controller)
			if !ok || self.Team == "" {
				return Unknown
			}
			gained := ec.state.TrackerView().LifeGainedThisTurn
			if gained == nil {
				return Unknown
			}
			for _, id := range ec.state.PlayerIDs() {
				if p, found := ec.state.PlayerView(id); found && p.Team == self.Team && gained[id] > 0 {
					return True
				}
			}
			return False
		},
	},
	{
		name: "chosen_number",
		re:   regexp.MustCompile(`^the (?:last )?chosen number is ` + threshPat + `$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			chosen := ec.state.TrackerView().ChosenNumbers
			if chosen == nil {
				return Unknown
			}
			n, recorded := chosen[ec.sourceID()]
			if !recorded {
				return Unknown
			}
			return FromBool(th.holds(n))
		},
	},
	{
		name: "planeswalked",
		re:   regexp.MustCompile(`^you(?:'ve| have)? planeswalked this turn$`),
		eval: func(m []string, ec *evalContext) Result {
			// Outside a Planechase game the clause can never be satisfied.
			if !ec.state.Rules().PlanechaseEnabled {
				return False
			}
			walked := ec.state.TrackerView().Planeswalked
			if walked == nil {
				return Unknown
			}
			return FromBool(walked[ec.controller])
		},
	},
	{
		name: "would_draw",
		re:   regexp.MustCompile(`^you would draw a card$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.WouldDrawCard == nil {
				return Unknown
			}
			return FromBool(*ec.refs.WouldDrawCard)
		},
	},
}
