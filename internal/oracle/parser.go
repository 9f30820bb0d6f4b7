package oracle

import (
	"regexp"
	"strings"

	"github.com/magefree/mage-oracle-go/internal/game/mana"
)

// Clause templates are tried in declaration order: more specific families
// before generic fallbacks. A template matches only a prefix of the clause;
// the unconsumed remainder (after a list separator) is fed back through the
// table, so compound clauses like "Create a Treasure token and a Clue token"
// yield one step per part. A template whose remainder does not start at a
// separator declines the clause entirely rather than half-consuming it.
type clauseTemplate struct {
	name  string
	re    *regexp.Regexp
	build func(m []string, ctx *parseContext) []Step
}

// parseContext carries cross-clause bindings needed by a few templates.
type parseContext struct {
	// lastLook remembers a "look at the top N cards of <whose> library"
	// clause so a following "exile it face down" can resolve its subject.
	lastLook *lookRef
	// thoseOpponents is set once a clause has bound "those opponents",
	// letting later possessive "their" resolve to the same player set.
	thoseOpponents bool
}

type lookRef struct {
	who    Selector
	amount Amount
}

const (
	subjPat  = `(you|each opponent|each of your opponents|your opponents|each player|target player|target opponent|each of those opponents|those opponents)`
	whosePat = `(your|their|each opponent's|each of your opponents'|each player's|target player's|target opponent's|each of those opponents'|those opponents'|that player's|that opponent's)`
)

// The table is populated in init: the create_token builder re-enters
// matchTemplates, which reads this table, so a package-level composite
// literal would form an initialization cycle.
var clauseTemplates []clauseTemplate

func init() {
	clauseTemplates = []clauseTemplate{
		{
			name: "scry",
			re:   regexp.MustCompile(`(?i)^scry (` + wordOrDigits + `)\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{Kind: StepScry, Who: selectorYou(), Amount: ParseAmount(m[1])}}
			},
		},
		{
			name: "surveil",
			re:   regexp.MustCompile(`(?i)^surveil (` + wordOrDigits + `)\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{Kind: StepSurveil, Who: selectorYou(), Amount: ParseAmount(m[1])}}
			},
		},
		{
			name: "exile_top",
			re:   regexp.MustCompile(`(?i)^exile the top (?:(` + wordOrDigits + `) )?cards? of ` + whosePat + ` librar(?:y|ies)(,? face down)?\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{
					Kind:     StepExileTop,
					Who:      resolveWhose(m[2], ctx),
					Amount:   ParseAmount(m[1]),
					FaceDown: m[3] != "",
				}}
			},
		},
		{
			name: "exile_top_put",
			re:   regexp.MustCompile(`(?i)^put the top (?:(` + wordOrDigits + `) )?cards? of ` + whosePat + ` library into exile(,? face down)?\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{
					Kind:     StepExileTop,
					Who:      resolveWhose(m[2], ctx),
					Amount:   ParseAmount(m[1]),
					FaceDown: m[3] != "",
				}}
			},
		},
		{
			name: "exile_top_equal",
			re:   regexp.MustCompile(`(?i)^exile cards equal to (.+?) from the top of ` + whosePat + ` librar(?:y|ies)\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{
					Kind:   StepExileTop,
					Who:    resolveWhose(m[2], ctx),
					Amount: Amount{Kind: AmountUnknown, Raw: m[1]},
				}}
			},
		},
		{
			name: "exile_top_that_many",
			re:   regexp.MustCompile(`(?i)^exile that many cards from the top of ` + whosePat + ` librar(?:y|ies)\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{
					Kind:   StepExileTop,
					Who:    resolveWhose(m[1], ctx),
					Amount: Amount{Kind: AmountUnknown, Raw: "that many"},
				}}
			},
		},
		{
			name: "exile_top_until",
			re:   regexp.MustCompile(`(?i)^exile cards from the top of ` + whosePat + ` library until (.+)$`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{
					Kind:   StepExileTop,
					Who:    resolveWhose(m[1], ctx),
					Amount: Amount{Kind: AmountUnknown, Raw: "until " + m[2]},
				}}
			},
		},
		{
			name: "exile_looked_at",
			re:   regexp.MustCompile(`(?i)^exile (?:it|that card|them|those cards)( face down)?$`),
			build: func(m []string, ctx *parseContext) []Step {
				if ctx.lastLook == nil {
					return nil
				}
				return []Step{{
					Kind:     StepExileTop,
					Who:      ctx.lastLook.who,
					Amount:   ctx.lastLook.amount,
					FaceDown: m[1] != "",
				}}
			},
		},
		{
			name: "draw",
			re:   regexp.MustCompile(`(?i)^draw (` + wordOrDigits + `) cards?\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{Kind: StepDraw, Who: selectorYou(), Amount: ParseAmount(m[1])}}
			},
		},
		{
			name: "draw_subject",
			re:   regexp.MustCompile(`(?i)^` + subjPat + ` (?:each )?draws? (` + wordOrDigits + `) cards?\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{Kind: StepDraw, Who: resolveSubject(m[1], ctx), Amount: ParseAmount(m[2])}}
			},
		},
		{
			name: "discard",
			re:   regexp.MustCompile(`(?i)^discard (` + wordOrDigits + `) cards?(?: at random)?\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{Kind: StepDiscard, Who: selectorYou(), Amount: ParseAmount(m[1])}}
			},
		},
		{
			name: "discard_subject",
			re:   regexp.MustCompile(`(?i)^` + subjPat + ` (?:each )?discards? (` + wordOrDigits + `) cards?(?: at random)?\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{Kind: StepDiscard, Who: resolveSubject(m[1], ctx), Amount: ParseAmount(m[2])}}
			},
		},
		{
			name: "mill",
			re:   regexp.MustCompile(`(?i)^mill (` + wordOrDigits + `) cards?\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{Kind: StepMill, Who: selectorYou(), Amount: ParseAmount(m[1])}}
			},
		},
		{
			name: "mill_subject",
			re:   regexp.MustCompile(`(?i)^` + subjPat + ` (?:each )?mills? (` + wordOrDigits + `) cards?\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{{Kind: StepMill, Who: resolveSubject(m[1], ctx), Amount: ParseAmount(m[2])}}
			},
		},
		{
			name: "life",
			re:   regexp.MustCompile(`(?i)^(?:you )?(lose|gain) (` + wordOrDigits + `) life\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{lifeStep(m[1], selectorYou(), ParseAmount(m[2]))}
			},
		},
		{
			name: "life_subject",
			re:   regexp.MustCompile(`(?i)^` + subjPat + ` (?:each )?(loses|gains) (` + wordOrDigits + `) life\b`),
			build: func(m []string, ctx *parseContext) []Step {
				return []Step{lifeStep(m[2], resolveSubject(m[1], ctx), ParseAmount(m[3]))}
			},
		},
		{
			name: "add_mana",
			re:   regexp.MustCompile(`(?i)^add ((?:\{[^}]+\})+)`),
			build: func(m []string, _ *parseContext) []Step {
				if _, err := mana.ParseCost(m[1]); err != nil {
					return nil
				}
				return []Step{{Kind: StepAddMana, Who: selectorYou(), Mana: m[1]}}
			},
		},
		{
			name: "add_mana_any",
			re:   regexp.MustCompile(`(?i)^add (` + wordOrDigits + `) mana of any (?:one )?color\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{
					Kind:   StepAddMana,
					Who:    selectorYou(),
					Amount: ParseAmount(m[1]),
					Mana:   "any",
				}}
			},
		},
		{
			name: "create_token",
			re:   regexp.MustCompile(`(?i)^(?:` + subjPat + ` )?creates? (.+)$`),
			build: buildCreateToken,
		},
		{
			name: "return_zone",
			re:   regexp.MustCompile(`(?i)^return (.+?) to (?:its owner's |their owners' |their owner's |your )?(hand|battlefield|library|graveyard)\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{Kind: StepMoveZone, Who: selectorYou(), Zone: strings.ToLower(m[2]), Raw: m[1]}}
			},
		},
		{
			name: "put_zone",
			re:   regexp.MustCompile(`(?i)^put (.+?) (?:in|on)?to (?:its owner's |their owners' |your |their )?(hand|graveyard|library|battlefield|command zone)\b`),
			build: func(m []string, _ *parseContext) []Step {
				return []Step{{Kind: StepMoveZone, Who: selectorYou(), Zone: strings.ToLower(m[2]), Raw: m[1]}}
			},
		},
	}
}

func lifeStep(verb string, who Selector, amount Amount) Step {
	kind := StepGainLife
	if strings.EqualFold(verb, "lose") || strings.EqualFold(verb, "loses") {
		kind = StepLoseLife
	}
	return Step{Kind: kind, Who: who, Amount: amount}
}

// resolveSubject maps a subject phrase to a selector, binding "those
// opponents" into the context for later possessives.
func resolveSubject(phrase string, ctx *parseContext) Selector {
	sel := ParseSelector(phrase)
	if sel.Kind == SelectorThoseOpponents {
		ctx.thoseOpponents = true
	}
	return sel
}

// resolveWhose maps a possessive phrase ("each opponent's", "their") to the
// owning selector. A contextual "their" resolves to a live "those opponents"
// binding when one exists; otherwise it stays unknown with the raw phrase.
func resolveWhose(phrase string, ctx *parseContext) Selector {
	s := strings.ToLower(strings.TrimSpace(phrase))
	s = strings.TrimSuffix(s, "'s")
	s = strings.TrimSuffix(s, "'")
	if s == "their" {
		if ctx.thoseOpponents {
			return Selector{Kind: SelectorThoseOpponents}
		}
		return Selector{Kind: SelectorUnknown, Raw: phrase}
	}
	sel := ParseSelector(s)
	if sel.Kind == SelectorThoseOpponents {
		ctx.thoseOpponents = true
	}
	if sel.Kind == SelectorUnknown {
		sel.Raw = phrase
	}
	return sel
}

var (
	tokenItemRe    = regexp.MustCompile(`(?i)^(that many|` + wordOrDigits + `) (tapped )?(.+?) tokens?\b(.*)$`)
	tokenCounterRe = regexp.MustCompile(`(?i)with (an additional|` + wordOrDigits + `) (.+?) counters? on (?:it|them|each of them)`)
)

// buildCreateToken expands a token-creation list into one create_token step
// per listed item. List items that are not token phrases are re-fed through
// the template table, so "Create a Treasure token and draw a card" still
// yields a draw step.
func buildCreateToken(m []string, ctx *parseContext) []Step {
	who := selectorYou()
	if m[1] != "" {
		who = resolveSubject(m[1], ctx)
	}
	var steps []Step
	for _, item := range splitTokenList(strings.TrimSpace(m[2])) {
		if step, ok := parseTokenItem(item, who); ok {
			steps = append(steps, step)
			continue
		}
		// Trailing modifiers split off by a comma ("..., with a +1/+1
		// counter on each of them") fold back onto the previous token step.
		if len(steps) > 0 && steps[len(steps)-1].Kind == StepCreateToken {
			last := &steps[len(steps)-1]
			if rest, ok := applyTokenModifiers(last, item); ok && rest == "" {
				continue
			}
		}
		if more := matchTemplates(item, ctx, false); more != nil {
			steps = append(steps, more...)
			continue
		}
		steps = append(steps, unknownStep(item))
	}
	if len(steps) == 0 {
		return nil
	}
	return steps
}

var listItemStartRe = regexp.MustCompile(`(?i)^(?:a|an|that many|x|\d+|one|two|three|four|five|six|seven|eight|nine|ten)\b`)

// splitTokenList splits a token-creation list on commas and on "and", but
// only where the next word starts a new list item. RE2 has no lookahead, so
// the scan is done by hand.
func splitTokenList(s string) []string {
	var items []string
	for _, piece := range strings.Split(s, ", ") {
		piece = strings.TrimSpace(piece)
		if p := strings.TrimPrefix(strings.ToLower(piece), "and "); len(p) != len(piece) {
			piece = strings.TrimSpace(piece[4:])
		}
		items = append(items, splitOnItemAnd(piece)...)
	}
	return items
}

func splitOnItemAnd(s string) []string {
	lower := strings.ToLower(s)
	from := 0
	for {
		idx := strings.Index(lower[from:], " and ")
		if idx < 0 {
			break
		}
		at := from + idx
		after := s[at+len(" and "):]
		if listItemStartRe.MatchString(after) {
			head := strings.TrimSpace(s[:at])
			out := []string{head}
			return append(out, splitOnItemAnd(strings.TrimSpace(after))...)
		}
		from = at + len(" and ")
	}
	if s == "" {
		return nil
	}
	return []string{s}
}

func parseTokenItem(item string, who Selector) (Step, bool) {
	m := tokenItemRe.FindStringSubmatch(item)
	if m == nil {
		return Step{}, false
	}
	step := Step{
		Kind:   StepCreateToken,
		Who:    who,
		Amount: ParseAmount(m[1]),
	}
	if strings.EqualFold(m[1], "that many") {
		step.Amount = Amount{Kind: AmountUnknown, Raw: "that many"}
	}
	if m[2] != "" {
		step.EntersTapped = true
	}
	step.Token = strings.TrimSpace(m[3])
	trailing := strings.TrimSpace(m[4])
	if trailing != "" {
		rest, ok := applyTokenModifiers(&step, trailing)
		if !ok || strings.TrimSpace(rest) != "" {
			return Step{}, false
		}
	}
	return step, true
}

// applyTokenModifiers consumes trailing "tapped" and "with N <type> counters
// on it/them" modifiers in either order.
func applyTokenModifiers(step *Step, text string) (string, bool) {
	rest := strings.TrimSpace(text)
	for rest != "" {
		lower := strings.ToLower(rest)
		switch {
		case strings.HasPrefix(lower, "tapped"):
			step.EntersTapped = true
			rest = strings.TrimSpace(rest[len("tapped"):])
		case strings.HasPrefix(lower, "and "):
			rest = strings.TrimSpace(rest[len("and "):])
		default:
			m := tokenCounterRe.FindStringSubmatchIndex(rest)
			if m == nil || m[0] != 0 {
				return rest, false
			}
			addCounter(step, rest[m[2]:m[3]], rest[m[4]:m[5]])
			rest = strings.TrimSpace(rest[m[1]:])
		}
	}
	return "", true
}

// parseSteps converts one ability's effect text into an ordered step list.
func parseSteps(text string) []Step {
	ctx := &parseContext{}
	var steps []Step
	for _, clause := range splitClauses(text) {
		steps = append(steps, parseClause(clause, ctx)...)
	}
	return steps
}

var (
	thenPrefixRe = regexp.MustCompile(`(?i)^then,? `)
	youMayRe     = regexp.MustCompile(`(?i)^you may `)
	lookTopRe    = regexp.MustCompile(`(?i)^(?:you may )?look at the top (?:(` + wordOrDigits + `) )?cards? of ` + whosePat + ` librar(?:y|ies)\b`)
)

func parseClause(clause string, ctx *parseContext) []Step {
	work := clause
	sequenced := false
	if loc := thenPrefixRe.FindStringIndex(work); loc != nil {
		work = strings.TrimSpace(work[loc[1]:])
		sequenced = true
	}

	steps := matchTemplates(work, ctx, false)
	if steps == nil {
		if loc := youMayRe.FindStringIndex(work); loc != nil {
			steps = matchTemplates(strings.TrimSpace(work[loc[1]:]), ctx, true)
		}
	}
	if steps == nil {
		// The primary safety valve: anything unmatched is preserved as an
		// unknown step so it is never silently misread. A "look at the top
		// ..." clause additionally records its subject so a later "exile it
		// face down" can attach to it.
		if m := lookTopRe.FindStringSubmatch(work); m != nil {
			ctx.lastLook = &lookRef{who: resolveWhose(m[2], ctx), amount: ParseAmount(m[1])}
		}
		steps = []Step{unknownStep(clause)}
	}
	if sequenced && len(steps) > 0 {
		steps[0].Sequence = "then"
	}
	return steps
}

func unknownStep(raw string) Step {
	return Step{
		Kind: StepUnknown,
		Who:  Selector{Kind: SelectorUnknown, Raw: raw},
		Raw:  raw,
	}
}

// matchTemplates tries every clause template in priority order. It returns
// nil when nothing matched; the caller decides how to degrade.
func matchTemplates(clause string, ctx *parseContext, optional bool) []Step {
	for _, t := range clauseTemplates {
		loc := t.re.FindStringSubmatchIndex(clause)
		if loc == nil || loc[0] != 0 {
			continue
		}
		rest := strings.TrimSpace(clause[loc[1]:])
		if rest != "" {
			trimmed, ok := trimListSeparator(rest)
			if !ok {
				continue
			}
			rest = trimmed
		}
		steps := t.build(submatches(t.re, clause, loc), ctx)
		if steps == nil {
			continue
		}
		for i := range steps {
			if optional {
				steps[i].Optional = true
			}
			if steps[i].Raw == "" {
				steps[i].Raw = clause[loc[0]:loc[1]]
			}
		}
		if rest != "" {
			more := matchTemplates(rest, ctx, optional)
			if more == nil {
				more = []Step{unknownStep(rest)}
			}
			steps = append(steps, more...)
		}
		return steps
	}
	return nil
}

// trimListSeparator strips a leading list separator from a template's
// unconsumed remainder. A remainder without a separator means the template
// stopped mid-phrase, so the match is rejected.
func trimListSeparator(rest string) (string, bool) {
	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, ", and "):
		return strings.TrimSpace(rest[6:]), true
	case strings.HasPrefix(lower, "and "):
		return strings.TrimSpace(rest[4:]), true
	case strings.HasPrefix(lower, ", "):
		return strings.TrimSpace(rest[2:]), true
	case strings.HasPrefix(lower, ","):
		return strings.TrimSpace(rest[1:]), true
	}
	return rest, false
}

func submatches(re *regexp.Regexp, s string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] >= 0 {
			out[i/2] = s[loc[i]:loc[i+1]]
		}
	}
	return out
}
