package conditions

import (
	"regexp"

	"github.com/magefree/mage-oracle-go/internal/game/counters"
)

var counterTemplates = []clauseTemplate{
	{
		name: "subject_has_counter",
		re:   regexp.MustCompile(`^(.+?) has (?:a|an) (.+?) counter on it$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.counterThreshold(m[1], threshold{n: 1, op: "ge"}, m[2])
		},
	},
	{
		name: "subject_has_no_counters",
		re:   regexp.MustCompile(`^(.+?) has no (.+?) counters? on it$`),
		eval: func(m []string, ec *evalContext) Result {
			return ec.counterThreshold(m[1], threshold{n: 0, op: "eq"}, m[2])
		},
	},
	{
		name: "subject_counter_threshold",
		re:   regexp.MustCompile(`^(.+?) has ` + threshPat + ` (.+?) counters? on it$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[2])
			if !ok {
				return Unknown
			}
			return ec.counterThreshold(m[1], th, m[3])
		},
	},
	{
		name: "counters_on_subject_threshold",
		re:   regexp.MustCompile(`^there are ` + threshPat + ` (.+?) counters? on (.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			th, ok := parseThreshold(m[1])
			if !ok {
				return Unknown
			}
			return ec.counterThreshold(m[3], th, m[2])
		},
	},
}

// counterThreshold checks a counter count on a subject permanent. A nil
// counter map on the subject means counter state was not captured for it.
func (ec *evalContext) counterThreshold(subjPhrase string, th threshold, counterName string) Result {
	subj, res := ec.subject(subjPhrase)
	if subj == nil {
		return res
	}
	if subj.Counters == nil {
		return Unknown
	}
	return FromBool(th.holds(subj.Counters[counters.FromName(counterName)]))
}
