// core/constraint/set.go
package constraint

import (
	"github.com/pkg/errors"
)

// Result pairs a constraint with its status.
type Result struct {
	Constraint Constraint
	Status     Status
}

// Set is an ordered list of puzzle constraints.
type Set []Constraint

// ParseSet reads the flat persistence form: NAME, param, NAME, param, ...
func ParseSet(tokens []string) (Set, error) {
	if len(tokens)%2 != 0 {
		return nil, errors.Wrapf(ErrBadParameter, "odd token count %d", len(tokens))
	}
	out := make(Set, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		c, err := Parse(tokens[i], tokens[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i/2+1)
		}
		out = append(out, c)
	}
	return out, nil
}

// Serialize flattens the set into its persistence form.
func (s Set) Serialize() []string {
	out := make([]string, 0, 2*len(s))
	for _, c := range s {
		name, param := c.Serialize()
		out = append(out, name, param)
	}
	return out
}

// EvaluateAll evaluates every constraint in order. It stops at the first
// error; ok is true only when every constraint is satisfied.
func (s Set) EvaluateAll(ctx *Context) (results []Result, ok bool, err error) {
	results = make([]Result, 0, len(s))
	ok = true
	for i, c := range s {
		st, evalErr := Evaluate(c, ctx)
		if evalErr != nil {
			name, param := c.Serialize()
			return nil, false, errors.Wrapf(evalErr, "constraint %d (%s %s)", i+1, name, param)
		}
		results = append(results, Result{Constraint: c, Status: st})
		ok = ok && st.Satisfied
	}
	return results, ok, nil
}
