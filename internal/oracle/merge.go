package oracle

import (
	"regexp"
	"strings"

	"github.com/magefree/mage-oracle-go/internal/game/counters"
)

var followUpRe = regexp.MustCompile(`(?i)^(it|that token|this token|they|those tokens|these tokens|the tokens?) enters?(?: the battlefield)? (.+)$`)

// mergeFollowUps folds deferred token modifiers ("It enters tapped", "They
// enter with two +1/+1 counters on them") back onto the create_token step(s)
// they refer to. A singular referent targets the nearest preceding token
// step; a plural referent targets every token step back to the last
// non-token step. A merged sentence is removed so it never also surfaces as
// an unknown step.
func mergeFollowUps(steps []Step) []Step {
	out := steps
	for j := 1; j < len(out); j++ {
		if out[j].Kind != StepUnknown {
			continue
		}
		m := followUpRe.FindStringSubmatch(strings.TrimSuffix(strings.TrimSpace(out[j].Raw), "."))
		if m == nil {
			continue
		}
		if out[j-1].Kind != StepCreateToken {
			continue
		}
		plural := isPluralReferent(m[1])

		first := j - 1
		if plural {
			for first > 0 && out[first-1].Kind == StepCreateToken {
				first--
			}
		}

		merged := make([]Step, j-first)
		copy(merged, out[first:j])
		for i := range merged {
			if merged[i].WithCounters != nil {
				cloned := make(map[counters.CounterType]int, len(merged[i].WithCounters))
				for k, v := range merged[i].WithCounters {
					cloned[k] = v
				}
				merged[i].WithCounters = cloned
			}
		}
		ok := true
		for i := range merged {
			if rest, applied := applyTokenModifiers(&merged[i], m[2]); !applied || rest != "" {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		copy(out[first:j], merged)
		out = append(out[:j], out[j+1:]...)
		j--
	}
	return out
}

func isPluralReferent(ref string) bool {
	switch strings.ToLower(ref) {
	case "they", "those tokens", "these tokens", "the tokens":
		return true
	}
	return false
}

// addCounter records a "with N <type> counters" modifier on a token step.
// "an additional" counts as one.
func addCounter(step *Step, amountWord, name string) {
	n := 1
	if a := ParseAmount(amountWord); a.Kind == AmountNumber {
		n = a.Value
	}
	if step.WithCounters == nil {
		step.WithCounters = make(map[counters.CounterType]int)
	}
	step.WithCounters[counters.FromName(name)] += n
}
