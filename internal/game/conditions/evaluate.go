package conditions

import (
	"regexp"
	"strings"

	"github.com/magefree/mage-oracle-go/internal/oracle"
)

// clauseTemplate pairs a clause pattern with its evaluation. Templates are
// tried in registration order against the normalized clause; the first match
// wins.
type clauseTemplate struct {
	name string
	re   *regexp.Regexp
	eval func(m []string, ec *evalContext) Result
}

var clauseTemplates []clauseTemplate

func init() {
	clauseTemplates = append(clauseTemplates, manaTemplates...)
	clauseTemplates = append(clauseTemplates, counterTemplates...)
	clauseTemplates = append(clauseTemplates, zoneTemplates...)
	clauseTemplates = append(clauseTemplates, turnTemplates...)
	clauseTemplates = append(clauseTemplates, combatTemplates...)
	clauseTemplates = append(clauseTemplates, boardTemplates...)
}

type evalContext struct {
	controller string
	source     *Permanent
	refs       Refs
	state      StateReader
}

// Evaluate answers an intervening-if clause against the given state. The
// clause is taken as the parser records it, leading "if" included. A clause
// no template recognizes yields Unknown.
func Evaluate(clause, controllerID string, source *Permanent, refs Refs, state StateReader) Result {
	return EvaluateDetailed(clause, controllerID, source, refs, state).Value
}

// EvaluateDetailed is Evaluate plus match metadata, for callers that log
// clause coverage.
func EvaluateDetailed(clause, controllerID string, source *Permanent, refs Refs, state StateReader) Detailed {
	ec := &evalContext{controller: controllerID, source: source, refs: refs, state: state}
	c := normalizeClause(clause)
	if c == "" {
		return Detailed{Fallback: true, Value: Unknown}
	}
	for _, t := range clauseTemplates {
		if m := t.re.FindStringSubmatch(c); m != nil {
			return Detailed{Matched: true, Value: t.eval(m, ec)}
		}
	}
	return Detailed{Fallback: true, Value: Unknown}
}

func normalizeClause(clause string) string {
	c := strings.ToLower(strings.TrimSpace(clause))
	c = strings.ReplaceAll(c, "’", "'")
	c = strings.TrimSuffix(c, ".")
	c = strings.TrimSuffix(c, ",")
	c = strings.TrimPrefix(c, "if ")
	return strings.Join(strings.Fields(c), " ")
}

// subject resolves a clause subject phrase to a battlefield permanent.
// Pronouns resolve through the trigger refs, then the source permanent.
// A plain name resolves only when exactly one battlefield permanent bears
// it; zero matches is a definite miss and two or more is ambiguous.
func (ec *evalContext) subject(phrase string) (*Permanent, Result) {
	switch phrase {
	case "it", "this creature", "this permanent", "this artifact",
		"this enchantment", "this land", "this aura", "this equipment":
		if id := firstNonEmpty(ec.refs.ThisCreatureID, ec.refs.SourcePermanentID); id != "" {
			return ec.permanentByID(id)
		}
		if ec.source != nil {
			return ec.source, True
		}
		return nil, Unknown
	}

	battlefield, tracked := ec.state.BattlefieldView()
	if !tracked {
		return nil, Unknown
	}
	var found *Permanent
	for i := range battlefield {
		if strings.EqualFold(battlefield[i].Name, phrase) {
			if found != nil {
				return nil, Unknown
			}
			found = &battlefield[i]
		}
	}
	if found == nil {
		if ec.source != nil && strings.EqualFold(ec.source.Name, phrase) {
			return ec.source, True
		}
		return nil, False
	}
	return found, True
}

func (ec *evalContext) permanentByID(id string) (*Permanent, Result) {
	battlefield, tracked := ec.state.BattlefieldView()
	if !tracked {
		if ec.source != nil && ec.source.ID == id {
			return ec.source, True
		}
		return nil, Unknown
	}
	for i := range battlefield {
		if battlefield[i].ID == id {
			return &battlefield[i], True
		}
	}
	return nil, False
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// threshold is a parsed numeric comparison ("three or more", "2 or fewer",
// "exactly one", "more than two").
type threshold struct {
	n  int
	op string
}

func parseThreshold(phrase string) (threshold, bool) {
	phrase = strings.TrimSpace(phrase)
	switch {
	case strings.HasPrefix(phrase, "exactly "):
		if n, ok := parseCount(strings.TrimPrefix(phrase, "exactly ")); ok {
			return threshold{n: n, op: "eq"}, true
		}
		return threshold{}, false
	case strings.HasPrefix(phrase, "more than "):
		if n, ok := parseCount(strings.TrimPrefix(phrase, "more than ")); ok {
			return threshold{n: n, op: "gt"}, true
		}
		return threshold{}, false
	case strings.HasPrefix(phrase, "fewer than "), strings.HasPrefix(phrase, "less than "):
		rest := strings.TrimPrefix(strings.TrimPrefix(phrase, "fewer than "), "less than ")
		if n, ok := parseCount(rest); ok {
			return threshold{n: n, op: "lt"}, true
		}
		return threshold{}, false
	}
	if num, cmp, found := cutLast(phrase, " or "); found {
		n, ok := parseCount(num)
		if !ok {
			return threshold{}, false
		}
		switch cmp {
		case "more", "greater":
			return threshold{n: n, op: "ge"}, true
		case "fewer", "less":
			return threshold{n: n, op: "le"}, true
		}
		return threshold{}, false
	}
	if n, ok := parseCount(phrase); ok {
		return threshold{n: n, op: "eq"}, true
	}
	return threshold{}, false
}

func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

func parseCount(s string) (int, bool) {
	switch s {
	case "no", "none":
		return 0, true
	}
	a := oracle.ParseAmount(s)
	if a.Kind != oracle.AmountNumber {
		return 0, false
	}
	return a.Value, true
}

func (t threshold) holds(count int) bool {
	switch t.op {
	case "ge":
		return count >= t.n
	case "le":
		return count <= t.n
	case "gt":
		return count > t.n
	case "lt":
		return count < t.n
	default:
		return count == t.n
	}
}

var colorWords = map[string]string{
	"white": "white", "blue": "blue", "black": "black",
	"red": "red", "green": "green",
}

var typeWords = map[string]string{
	"artifact": "artifact", "creature": "creature", "enchantment": "enchantment",
	"land": "land", "planeswalker": "planeswalker", "battle": "battle",
}

// adjectives the read view has no field for; a predicate using one cannot be
// decided either way.
var untrackedAdjectives = map[string]struct{}{
	"legendary": {}, "basic": {}, "snow": {}, "token": {}, "nontoken": {},
	"historic": {}, "modified": {},
}

// permanentPredicate matches permanents against a description such as
// "creature", "untapped artifact" or "artifact or enchantment". The second
// return is false when the description uses a property the view does not
// carry.
func permanentPredicate(desc string) (func(*Permanent) bool, bool) {
	alternatives := strings.Split(strings.TrimSpace(desc), " or ")
	type clause struct {
		colors   []string
		types    []string
		nonTypes []string
		subtypes []string
		tapped   *bool
	}
	clauses := make([]clause, 0, len(alternatives))
	for _, alt := range alternatives {
		var c clause
		for _, word := range strings.Fields(alt) {
			word = singular(word)
			if _, bad := untrackedAdjectives[word]; bad {
				return nil, false
			}
			switch {
			case word == "permanent":
				// matches anything on the battlefield
			case word == "tapped":
				v := true
				c.tapped = &v
			case word == "untapped":
				v := false
				c.tapped = &v
			case colorWords[word] != "":
				c.colors = append(c.colors, word)
			case typeWords[word] != "":
				c.types = append(c.types, word)
			case strings.HasPrefix(word, "non") && typeWords[strings.TrimPrefix(word, "non")] != "":
				c.nonTypes = append(c.nonTypes, strings.TrimPrefix(word, "non"))
			default:
				c.subtypes = append(c.subtypes, word)
			}
		}
		clauses = append(clauses, c)
	}

	return func(p *Permanent) bool {
		for _, c := range clauses {
			if matchesClause(p, c.colors, c.types, c.nonTypes, c.subtypes, c.tapped) {
				return true
			}
		}
		return false
	}, true
}

func matchesClause(p *Permanent, colors, types, nonTypes, subtypes []string, tapped *bool) bool {
	for _, col := range colors {
		if !p.HasColor(col) {
			return false
		}
	}
	for _, t := range types {
		if !p.HasType(t) {
			return false
		}
	}
	for _, t := range nonTypes {
		if p.HasType(t) {
			return false
		}
	}
	for _, st := range subtypes {
		if !p.HasSubtype(st) {
			return false
		}
	}
	if tapped != nil && p.Tapped != *tapped {
		return false
	}
	return true
}

func singular(word string) string {
	if len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// countMatching counts battlefield permanents the predicate accepts,
// restricted to the given controller ("" for any) and excluding excludeID.
func (ec *evalContext) countMatching(controller string, pred func(*Permanent) bool, excludeID string) (int, bool) {
	battlefield, tracked := ec.state.BattlefieldView()
	if !tracked {
		return 0, false
	}
	count := 0
	for i := range battlefield {
		p := &battlefield[i]
		if controller != "" && p.Controller != controller {
			continue
		}
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		if pred(p) {
			count++
		}
	}
	return count, true
}

// opponentsOf lists every player ID other than the given player and their
// teammates.
func (ec *evalContext) opponentsOf(playerID string) []string {
	team := ""
	if p, ok := ec.state.PlayerView(playerID); ok {
		team = p.Team
	}
	var out []string
	for _, id := range ec.state.PlayerIDs() {
		if id == playerID {
			continue
		}
		if team != "" {
			if p, ok := ec.state.PlayerView(id); ok && p.Team == team {
				continue
			}
		}
		out = append(out, id)
	}
	return out
}

func (ec *evalContext) sourceID() string {
	if ec.refs.SourcePermanentID != "" {
		return ec.refs.SourcePermanentID
	}
	if ec.source != nil {
		return ec.source.ID
	}
	return ""
}
