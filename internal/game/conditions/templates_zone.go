package conditions

import (
	"regexp"
	"strings"
)

var zoneTemplates = []clauseTemplate{
	{
		name: "referent_exiled",
		re:   regexp.MustCompile(`^(?:it|that card|the exiled card) is (?:still )?(?:in exile|exiled)$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.ExiledCardID == "" {
				return Unknown
			}
			exile, tracked := ec.state.ExileView()
			if !tracked {
				return Unknown
			}
			for _, card := range exile {
				if card.ID == ec.refs.ExiledCardID {
					return True
				}
			}
			return False
		},
	},
	{
		name: "named_card_exiled",
		re:   regexp.MustCompile(`^(?:a card named )?(.+?) is (?:in exile|exiled)$`),
		eval: func(m []string, ec *evalContext) Result {
			exile, tracked := ec.state.ExileView()
			if !tracked {
				return Unknown
			}
			for _, card := range exile {
				if strings.EqualFold(card.Name, m[1]) {
					return True
				}
			}
			return False
		},
	},
	{
		name: "referent_exiled_with",
		re:   regexp.MustCompile(`^(?:it|that card) was exiled with (?:it|this permanent|.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			if ec.refs.ExiledCardID == "" {
				return Unknown
			}
			exile, tracked := ec.state.ExileView()
			if !tracked {
				return Unknown
			}
			for _, card := range exile {
				if card.ID != ec.refs.ExiledCardID {
					continue
				}
				if card.ExiledWith == "" {
					return Unknown
				}
				return FromBool(card.ExiledWith == ec.sourceID())
			}
			return False
		},
	},
	{
		name: "card_exiled_with_source",
		re:   regexp.MustCompile(`^a card is exiled with (?:it|this permanent|.+)$`),
		eval: func(m []string, ec *evalContext) Result {
			exile, tracked := ec.state.ExileView()
			if !tracked {
				return Unknown
			}
			sourceID := ec.sourceID()
			if sourceID == "" {
				return Unknown
			}
			sawUntracked := false
			for _, card := range exile {
				if card.ExiledWith == sourceID {
					return True
				}
				if card.ExiledWith == "" {
					sawUntracked = true
				}
			}
			if sawUntracked {
				return Unknown
			}
			return False
		},
	},
	{
		name: "subject_printing",
		re:   regexp.MustCompile(`^(.+?) is from the (.+?)(?: set| expansion)?$`),
		eval: func(m []string, ec *evalContext) Result {
			subj, res := ec.subject(m[1])
			if subj == nil {
				return res
			}
			if subj.SetCode == "" {
				return Unknown
			}
			return FromBool(strings.EqualFold(subj.SetCode, m[2]))
		},
	},
}
