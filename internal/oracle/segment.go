package oracle

import (
	"regexp"
	"strings"

	"github.com/magefree/mage-oracle-go/internal/game/mana"
)

var (
	triggerRe     = regexp.MustCompile(`(?i)^(when|whenever|at) (.+)$`)
	abilityWordRe = regexp.MustCompile(`^[A-Z][\w']*(?:[ -][\w']+)* - (.+)$`)
	replacementRe = regexp.MustCompile(`(?i)\bif\b.+\bwould\b.+\binstead\b`)
	modalHeadRe   = regexp.MustCompile(`(?i)^(.*?)choose (one|two|three|four|one or more|up to one|up to two|up to three)(?: or more)? -$`)
	sagaLineRe    = regexp.MustCompile(`^((?:I|II|III|IV|V|VI)(?:, ?(?:I|II|III|IV|V|VI))*) - (.+)$`)
	costVerbRe    = regexp.MustCompile(`(?i)^(tap|untap|pay|sacrifice|discard|exile|remove|return|reveal|put)\b`)
)

var romanNumerals = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6,
}

// keywordSet covers the common evergreen keywords so a bare keyword line
// ("Flying, vigilance") classifies as a static ability instead of an
// unrecognized one.
var keywordSet = map[string]struct{}{
	"flying": {}, "first strike": {}, "double strike": {}, "deathtouch": {},
	"lifelink": {}, "trample": {}, "vigilance": {}, "haste": {}, "reach": {},
	"menace": {}, "defender": {}, "hexproof": {}, "indestructible": {},
	"flash": {}, "ward": {}, "prowess": {}, "fear": {},
	"shadow": {}, "intimidate": {}, "banding": {},
}

// segment splits normalized text into classified abilities. It never fails:
// text with no recognizable ability-opening pattern becomes a single static
// ability.
func segment(norm string) []Ability {
	if norm == "" {
		return nil
	}
	var abilities []Ability
	var modal *Ability // ability currently collecting modal bullets
	modeIdx := 0

	for _, line := range strings.Split(norm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "• ") || line == "•" {
			if modal == nil {
				// A stray bullet with no modal header still contributes its
				// effect rather than being dropped.
				a := classifyLine(strings.TrimPrefix(line, "• "))
				abilities = append(abilities, a)
				continue
			}
			modeIdx++
			text := strings.TrimPrefix(line, "• ")
			for _, s := range buildSteps(text) {
				s.Mode = modeIdx
				modal.Steps = append(modal.Steps, s)
			}
			continue
		}
		modal = nil
		modeIdx = 0

		if m := sagaLineRe.FindStringSubmatch(line); m != nil {
			abilities = append(abilities, sagaAbility(m[1], m[2]))
			continue
		}

		if m := modalHeadRe.FindStringSubmatch(line); m != nil {
			a := modalHeader(strings.TrimSpace(m[1]))
			a.Raw = line
			abilities = append(abilities, a)
			modal = &abilities[len(abilities)-1]
			modeIdx = 0
			continue
		}

		abilities = append(abilities, classifyLine(line))
	}
	return abilities
}

// modalHeader classifies the text preceding "choose one —". An empty head
// means the modes belong to a spell or static ability; a trigger head keeps
// its classification and collects the modes as its steps.
func modalHeader(head string) Ability {
	head = strings.TrimSuffix(head, ",")
	head = strings.TrimSpace(head)
	if head == "" {
		return Ability{Type: AbilityStatic}
	}
	a := classifyLine(head)
	a.Steps = nil
	return a
}

func sagaAbility(marker, text string) Ability {
	var chapters []int
	for _, numeral := range strings.Split(marker, ",") {
		if n, ok := romanNumerals[strings.TrimSpace(numeral)]; ok {
			chapters = append(chapters, n)
		}
	}
	a := Ability{
		Type:             AbilityTriggered,
		TriggerWord:      "at",
		TriggerCondition: "chapter " + marker,
		Raw:              marker + " - " + text,
	}
	parsed := buildSteps(text)
	for _, ch := range chapters {
		for _, s := range parsed {
			s.Chapter = ch
			a.Steps = append(a.Steps, s)
		}
	}
	return a
}

func classifyLine(line string) Ability {
	body := line
	if m := abilityWordRe.FindStringSubmatch(line); m != nil && triggerRe.MatchString(m[1]) {
		body = m[1]
	}

	if m := triggerRe.FindStringSubmatch(body); m != nil {
		return triggeredAbility(strings.ToLower(m[1]), m[2], line)
	}

	if cost, effect, ok := splitActivated(body); ok {
		a := Ability{Type: AbilityActivated, Cost: cost, Raw: line}
		a.Steps = buildSteps(effect)
		return a
	}

	if replacementRe.MatchString(body) {
		return Ability{Type: AbilityReplacement, Raw: line}
	}

	if isKeywordLine(body) {
		return Ability{Type: AbilityStatic, Raw: line}
	}

	// No recognizable ability-opening pattern: a static ability whose steps
	// carry whatever the step parser made of the text. Unmatched text stays
	// as unknown steps so coverage reporting sees it.
	a := Ability{Type: AbilityStatic, Raw: line}
	a.Steps = buildSteps(body)
	return a
}

// triggeredAbility extracts the event description up to the first comma and
// pulls out an intervening-if clause when one immediately follows it. The
// clause is recorded verbatim, "if" included.
func triggeredAbility(word, rest, raw string) Ability {
	a := Ability{Type: AbilityTriggered, TriggerWord: word, Raw: raw}
	cond, after, found := strings.Cut(rest, ", ")
	a.TriggerCondition = strings.TrimSpace(cond)
	if !found {
		return a
	}
	if clause, effect, ok := cutInterveningIf(after); ok {
		a.HasInterveningIf = true
		a.InterveningIfClause = clause
		after = effect
	} else if strings.HasPrefix(strings.ToLower(after), "if ") {
		// A condition with no effect clause after it still gates the
		// trigger.
		a.HasInterveningIf = true
		a.InterveningIfClause = strings.TrimSuffix(strings.TrimSpace(after), ".")
		return a
	}
	a.Steps = buildSteps(after)
	return a
}

// cutInterveningIf splits "if <condition>, <effect>" at the comma closing
// the condition. The structural position (directly after the trigger
// condition's comma) is what distinguishes a conditional "if" from an "if"
// inside an effect or cost.
func cutInterveningIf(text string) (clause, effect string, ok bool) {
	lower := strings.ToLower(text)
	if !strings.HasPrefix(lower, "if ") {
		return "", "", false
	}
	cond, rest, found := strings.Cut(text, ", ")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(cond), strings.TrimSpace(rest), true
}

// splitActivated detects a leading cost-then-colon pattern. Each
// comma-separated cost part must be a mana symbol group or start with a
// cost verb; that keeps effect text containing a colon (flavor words,
// "choose one:") from being misread as a cost.
func splitActivated(line string) (cost, effect string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	if dot := strings.Index(line, "."); dot >= 0 && dot < idx {
		return "", "", false
	}
	cost = strings.TrimSpace(line[:idx])
	for _, part := range strings.Split(cost, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return "", "", false
		}
		if strings.HasPrefix(part, "{") {
			if _, err := mana.ParseCost(part); err != nil {
				return "", "", false
			}
			continue
		}
		if !costVerbRe.MatchString(part) {
			return "", "", false
		}
	}
	return cost, strings.TrimSpace(line[idx+1:]), true
}

func isKeywordLine(line string) bool {
	trimmed := strings.TrimSuffix(strings.TrimSpace(line), ".")
	if trimmed == "" {
		return false
	}
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		// Keywords with a cost or number rider ("ward {2}", "toxic 1").
		if i := strings.IndexAny(part, "{0123456789"); i > 0 {
			part = strings.TrimSpace(part[:i])
		}
		if _, found := keywordSet[part]; !found {
			return false
		}
	}
	return true
}

// buildSteps runs the step parser and both merge passes over effect text.
func buildSteps(effect string) []Step {
	effect = strings.TrimSpace(effect)
	if effect == "" {
		return nil
	}
	steps := parseSteps(effect)
	steps = upgradeImpulse(steps)
	steps = mergeFollowUps(steps)
	return steps
}
