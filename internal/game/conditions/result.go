// Package conditions evaluates the natural-language conditional clauses
// ("intervening if" clauses) that gate triggered abilities. Evaluation is
// three-valued: a clause whose answer the game state does not track yields
// Unknown, which callers must never treat as False — for trigger gating it
// means "conservatively do not assume the condition holds".
package conditions

// Result is the three-valued outcome of evaluating a clause.
type Result int

const (
	// Unknown means the clause was recognized but the state does not track
	// the fact needed to answer it, or a referent was ambiguous.
	Unknown Result = iota
	// False means the needed tracking exists and no entity satisfies the
	// clause.
	False
	// True means the needed tracking exists and the clause holds.
	True
)

func (r Result) String() string {
	switch r {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// FromBool lifts a definite answer into a Result.
func FromBool(b bool) Result {
	if b {
		return True
	}
	return False
}

// Negate flips True and False and leaves Unknown alone.
func (r Result) Negate() Result {
	switch r {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// Detailed is the result of EvaluateDetailed. Matched reports whether any
// clause template recognized the clause; Fallback is set when none did, so
// callers can log the coverage gap.
type Detailed struct {
	Matched  bool
	Value    Result
	Fallback bool
}
