package oracle

import (
	"regexp"
	"strings"
)

// durationPattern maps one family of surface phrasings to its canonical
// duration. Patterns are tried in order; longer, more specific phrasings
// come before the shorter ones they contain.
type durationPattern struct {
	re  *regexp.Regexp
	dur Duration
}

var durationPatterns = []durationPattern{
	{regexp.MustCompile(`(?:until|through) (?:the )?end of (?:your )?next turn`), DurationUntilEndOfNextTurn},
	{regexp.MustCompile(`(?:until|through) (?:the )?end of (?:(?:this|the|that) )?turn`), DurationThisTurn},
	{regexp.MustCompile(`until (?:your|the) next end step`), DurationUntilNextEndStep},
	{regexp.MustCompile(`until (?:your|the) next upkeep`), DurationUntilNextUpkeep},
	{regexp.MustCompile(`until (?:your|the) next turn`), DurationUntilNextTurn},
	{regexp.MustCompile(`(?:during|on) your next turn`), DurationDuringNextTurn},
	{regexp.MustCompile(`for as long as (?:it|that card|they|those cards) remains? exiled`), DurationWhileExiled},
	{regexp.MustCompile(`for as long as you control`), DurationWhileControlSource},
	{regexp.MustCompile(`until you exile another card`), DurationUntilExileAnother},
	{regexp.MustCompile(`this turn`), DurationThisTurn},
}

// normalizeDuration canonicalizes a free-form time phrase. The phrase must
// include its framing keyword ("until ...", "for as long as ...").
func normalizeDuration(phrase string) (Duration, bool) {
	s := strings.ToLower(strings.TrimSpace(phrase))
	for _, p := range durationPatterns {
		if p.re.MatchString(s) {
			return p.dur, true
		}
	}
	return "", false
}

// permissionGrant is the parsed form of a "you may play/cast ..." clause.
type permissionGrant struct {
	permission Permission
	duration   Duration
	condition  *PlayCondition
}

var (
	grantLeadRe = regexp.MustCompile(`^((?:until|through|during|for as long as) [^,]+), (.+)$`)
	grantBodyRe = regexp.MustCompile(`^you may (play|cast)\b(.*)$`)
	grantRefRe  = regexp.MustCompile(`\b(?:that card|those cards|them|it|one of them|any of them|the exiled cards?|cards? exiled (?:this way|with))\b`)

	grantCondColorRe  = regexp.MustCompile(`\bif (?:it's|it is|they're|they are) (?:a |an )?(white|blue|black|red|green|colorless|multicolored)(?: cards?)?\b`)
	grantCondTypeRe   = regexp.MustCompile(`\bif (?:it's|it is|they're|they are) (?:a |an )?(artifact|creature|enchantment|instant|sorcery|land|planeswalker|battle)(?: cards?| spells?)?\b`)
	grantCondAttackRe = regexp.MustCompile(`\bif you attacked (?:with .+|this turn)`)
)

// parsePermissionGrant recognizes the permission half of an impulse effect.
// Duration preference: a leading time phrase wins over a trailing one; a
// grant with no time phrase at all is a one-shot permission that only lasts
// during the granting ability's resolution.
func parsePermissionGrant(raw string) (*permissionGrant, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, ".")

	lead := ""
	if m := grantLeadRe.FindStringSubmatch(s); m != nil {
		lead = m[1]
		s = m[2]
	}
	m := grantBodyRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	body := m[2]
	if !grantRefRe.MatchString(body) && !strings.Contains(body, "from among them") {
		return nil, false
	}

	g := &permissionGrant{permission: Permission(m[1])}
	// "play lands and cast spells from among them" grants both verbs; play
	// governs the broader card set.
	if strings.Contains(s, "play") && strings.Contains(s, "cast") {
		g.permission = PermissionPlay
	}

	if lead != "" {
		if d, ok := normalizeDuration(lead); ok {
			g.duration = d
		}
	}
	if g.duration == "" {
		if d, ok := normalizeDuration(body); ok {
			g.duration = d
		}
	}
	if g.duration == "" {
		g.duration = DurationDuringResolution
	}

	g.condition = parsePlayCondition(body)
	return g, true
}

func parsePlayCondition(body string) *PlayCondition {
	if m := grantCondColorRe.FindStringSubmatch(body); m != nil {
		return &PlayCondition{Kind: PlayConditionColor, Color: m[1]}
	}
	if m := grantCondTypeRe.FindStringSubmatch(body); m != nil {
		return &PlayCondition{Kind: PlayConditionType, Type: m[1]}
	}
	if m := grantCondAttackRe.FindString(body); m != "" {
		return &PlayCondition{Kind: PlayConditionAttackedWith, Raw: m}
	}
	// Unrecognized predicates are dropped, never guessed.
	return nil
}

// upgradeImpulse scans the clauses after each exile_top step for a
// permission grant and fuses the two into a single impulse_exile_top step.
// Deterministic clauses between the exile and the grant stay in place as
// their own steps; only the grant clause itself is absorbed. The lookahead
// never crosses into a later exile_top step's territory, a different modal
// bullet, or a different saga chapter.
func upgradeImpulse(steps []Step) []Step {
	out := steps
	for i := 0; i < len(out); i++ {
		if out[i].Kind != StepExileTop {
			continue
		}
		for j := i + 1; j < len(out); j++ {
			if out[j].Kind == StepExileTop || out[j].Kind == StepImpulseExile {
				break
			}
			if out[j].Mode != out[i].Mode || out[j].Chapter != out[i].Chapter {
				break
			}
			if out[j].Kind != StepUnknown {
				continue
			}
			grant, ok := parsePermissionGrant(out[j].Raw)
			if !ok {
				continue
			}
			upgraded := out[i]
			upgraded.Kind = StepImpulseExile
			upgraded.Permission = grant.permission
			upgraded.Duration = grant.duration
			upgraded.Condition = grant.condition
			out[i] = upgraded
			out = append(out[:j], out[j+1:]...)
			break
		}
	}
	return out
}
