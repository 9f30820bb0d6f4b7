package conditions

import "regexp"

var combatTemplates = []clauseTemplate{
	{
		name: "attacking_alone",
		re:   regexp.MustCompile(`^(.+?)(?:'s| is) attacking alone$`),
		eval: func(m []string, ec *evalContext) Result {
			subj, res := ec.subject(m[1])
			if subj == nil {
				return res
			}
			if !subj.Attacking {
				return False
			}
			battlefield, tracked := ec.state.BattlefieldView()
			if !tracked {
				return Unknown
			}
			attackers := 0
			for i := range battlefield {
				if battlefield[i].Attacking {
					attackers++
				}
			}
			return FromBool(attackers == 1)
		},
	},
	{
		name: "exactly_one_attacking",
		re:   regexp.MustCompile(`^exactly one creature is attacking$`),
		eval: func(m []string, ec *evalContext) Result {
			count, tracked := ec.countAttackers()
			if !tracked {
				return Unknown
			}
			return FromBool(count == 1)
		},
	},
	{
		name: "attackers_threshold",
		re:   regexp.MustCompile(`^` + threshPat + ` creatures are attacking$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			count, tracked := ec.countAttackers()
			if !tracked {
				return Unknown
			}
			return FromBool(th.holds(count))
		},
	},
	{
		name: "subject_attached_to",
		re:   regexp.MustCompile(`^(.+?) is attached to (?:a|an) (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			subj, res := ec.subject(m[1])
			if subj == nil {
				return res
			}
			if subj.AttachedTo == "" {
				return False
			}
			host, hostRes := ec.permanentByID(subj.AttachedTo)
			if host == nil {
				return hostRes
			}
			pred, ok := permanentPredicate(m[2])
			if !ok {
				return Unknown
			}
			return FromBool(pred(host))
		},
	},
	{
		name: "subject_state",
		re:   regexp.MustCompile(`^(.+?)(?:'s| is) (attacking|blocking|tapped|untapped|enchanted|equipped)$`),
		eval: func(m []string, ec *evalContext) Result {
			subj, res := ec.subject(m[1])
			if subj == nil {
				return res
			}
			return ec.permanentState(subj, m[2])
		},
	},
	{
		name: "defending_player_hand",
		re:   regexp.MustCompile(`^defending player has ` + threshPat + ` cards? in (?:their )?hand$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			player, res := ec.defendingPlayer()
			if res != True {
				return res
			}
			if player.CardsInHand == nil {
				return Unknown
			}
			return FromBool(th.holds(*player.CardsInHand))
		},
	},
	{
		name: "defending_player_no_hand",
		re:   regexp.MustCompile(`^defending player has no cards in (?:their )?hand$`),
		eval: func(m []string, ec *evalContext) Result {
			player, res := ec.defendingPlayer()
			if res != True {
				return res
			}
			if player.CardsInHand == nil {
				return Unknown
			}
			return FromBool(*player.CardsInHand == 0)
		},
	},
	{
		name: "defending_player_poison",
		re:   regexp.MustCompile(`^defending player has ` + threshPat + ` poison counters?$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			player, res := ec.defendingPlayer()
			if res != True {
				return res
			}
			if player.Poison == nil {
				return Unknown
			}
			return FromBool(th.holds(*player.Poison))
		},
	},
	{
		name: "defending_player_controls_threshold",
		re:   regexp.MustCompile(`^defending player controls ` + threshPat + ` (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.DefendingPlayerID == "" {
				return Unknown
			}
			return ec.controlThreshold(ec.refs.DefendingPlayerID, m[1], m[2], "")
		},
	},
	{
		name: "defending_player_controls_a",
		re:   regexp.MustCompile(`^defending player controls (?:a|an) (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.DefendingPlayerID == "" {
				return Unknown
			}
			return ec.controlAtLeastOne(ec.refs.DefendingPlayerID, m[1], "")
		},
	},
	{
		name: "defending_player_controls_none",
		re:   regexp.MustCompile(`^defending player (?:controls no|doesn't control a|doesn't control any) (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.DefendingPlayerID == "" {
				return Unknown
			}
			return ec.controlAtLeastOne(ec.refs.DefendingPlayerID, m[1], "").Negate()
		},
	},
}

func (ec *evalContext) countAttackers() (int, bool) {
	battlefield, tracked := ec.state.BattlefieldView()
	if !tracked {
		return 0, false
	}
	count := 0
	for i := range battlefield {
		if battlefield[i].Attacking {
			count++
		}
	}
	return count, true
}

func (ec *evalContext) defendingPlayer() (Player, Result) {
	if ec.refs.DefendingPlayerID == "" {
		return Player{}, Unknown
	}
	player, ok := ec.state.PlayerView(ec.refs.DefendingPlayerID)
	if !ok {
		return Player{}, Unknown
	}
	return player, True
}

// permanentState answers a single-word state predicate about a battlefield
// permanent. Enchanted and equipped are read off the attachment list.
func (ec *evalContext) permanentState(p *Permanent, state string) Result {
	switch state {
	case "attacking":
		return FromBool(p.Attacking)
	case "blocking":
		return FromBool(p.Blocking)
	case "tapped":
		return FromBool(p.Tapped)
	case "untapped":
		return FromBool(!p.Tapped)
	case "enchanted":
		return ec.hasAttachmentOfType(p, "enchantment", "")
	case "equipped":
		return ec.hasAttachmentOfType(p, "", "equipment")
	}
	return Unknown
}

func (ec *evalContext) hasAttachmentOfType(p *Permanent, cardType, subtype string) Result {
	if len(p.Attachments) == 0 {
		return False
	}
	sawUnknown := false
	for _, id := range p.Attachments {
		att, res := ec.permanentByID(id)
		if att == nil {
			if res == Unknown {
				sawUnknown = true
			}
			continue
		}
		if cardType != "" && att.HasType(cardType) {
			return True
		}
		if subtype != "" && att.HasSubtype(subtype) {
			return True
		}
	}
	if sawUnknown {
		return Unknown
	}
	return False
}
