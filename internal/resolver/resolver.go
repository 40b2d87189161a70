package resolver

import "strings"

// DefaultTable is the built-in command table: a comma-separated list of
// entries positionally paired with the Action enum, where an entry may
// list multiple aliases for the same Action separated by ':'.
const DefaultTable = "i,a,R,J,C,cw,x,p,P,U,.,o,h,j,k,l,w,b,$,G,yy,yw,dd,dw,dt,q,0:^,n"

// Status classifies the outcome of a lookup.
type Status int

const (
	// Resolved means the needle exactly matched one alias of an entry;
	// its Action is returned alongside.
	Resolved Status = iota
	// Unterminated means the needle is a strict prefix of at least one
	// alias — the caller should keep accumulating keystrokes.
	Unterminated
	// Unknown means the needle matches no alias, complete or partial.
	Unknown
)

// Resolver resolves accumulated keystrokes to an Action via longest-prefix
// match over a command table. After New, only AddAlias changes it; it
// holds no per-keystroke state, and callers own the accumulation buffer.
type Resolver struct {
	entries [][]string
}

// New parses table (in the same comma/colon syntax as DefaultTable) into
// a Resolver.
func New(table string) *Resolver {
	r := &Resolver{}
	for _, entry := range strings.Split(table, ",") {
		r.entries = append(r.entries, strings.Split(entry, ":"))
	}
	return r
}

// AddAlias registers lhs as an additional way to invoke whatever action
// rhs already resolves to, used by the scripting layer's keymap
// bindings. rhs must be a complete, resolvable command; ok is false if
// it isn't.
func (r *Resolver) AddAlias(lhs, rhs string) (ok bool) {
	action, status := r.Lookup(rhs)
	if status != Resolved {
		return false
	}
	r.entries[action] = append(r.entries[action], lhs)
	return true
}

// Lookup resolves s against the table. On Resolved it also returns the
// matched Action; the Action return value is meaningless for the other
// two statuses.
func (r *Resolver) Lookup(s string) (Action, Status) {
	if s == "" {
		return 0, Unterminated
	}
	unterminated := false
	for idx, aliases := range r.entries {
		for _, alias := range aliases {
			if alias == s {
				return Action(idx), Resolved
			}
			if len(s) < len(alias) && strings.HasPrefix(alias, s) {
				unterminated = true
			}
		}
	}
	if unterminated {
		return 0, Unterminated
	}
	return 0, Unknown
}
