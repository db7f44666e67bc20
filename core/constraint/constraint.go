// Package constraint evaluates puzzle objectives against folded states.
//
// The set of constraint kinds is closed: Mutation, Shape and AntiShape are
// the only implementations of Constraint, and Evaluate switches over them
// exhaustively. Each kind carries exactly the configuration it needs.
package constraint

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrMissingMetadata is returned when the context lacks data a kind requires.
	ErrMissingMetadata   = errors.New("missing constraint metadata")
	ErrUnknownConstraint = errors.New("unknown constraint")
	ErrBadParameter      = errors.New("bad constraint parameter")
)

// Kind is the stable serialized name of a constraint.
type Kind string

const (
	KindMutation  Kind = "MUTATION"
	KindShape     Kind = "SHAPE"
	KindAntiShape Kind = "ANTISHAPE"
)

// Status is the outcome of one evaluation.
type Status struct {
	Kind      Kind
	Satisfied bool
	// WrongPairs is set for shape kinds: 1 mismatch, -1 match, 0 irrelevant.
	WrongPairs []int
	// Mutations is set for KindMutation.
	Mutations int
}

// Constraint is implemented only by the kinds in this package.
type Constraint interface {
	Kind() Kind
	// Serialize returns the (name, parameter) persistence form.
	Serialize() (string, string)
	Evaluate(ctx *Context) (Status, error)
	sealed()
}

// Mutation limits how many positions may differ from the beginning sequence.
type Mutation struct {
	Max int
}

// Shape requires state State to fold into its target structure.
type Shape struct {
	State int
}

// AntiShape requires state State to not fold into its anti-target.
type AntiShape struct {
	State int
}

func (Mutation) sealed()  {}
func (Shape) sealed()     {}
func (AntiShape) sealed() {}

func (Mutation) Kind() Kind  { return KindMutation }
func (Shape) Kind() Kind     { return KindShape }
func (AntiShape) Kind() Kind { return KindAntiShape }

func (c Mutation) Serialize() (string, string)  { return string(KindMutation), strconv.Itoa(c.Max) }
func (c Shape) Serialize() (string, string)     { return string(KindShape), strconv.Itoa(c.State) }
func (c AntiShape) Serialize() (string, string) { return string(KindAntiShape), strconv.Itoa(c.State) }

// Evaluate dispatches to the concrete kind.
func Evaluate(c Constraint, ctx *Context) (Status, error) {
	switch v := c.(type) {
	case Mutation:
		return v.Evaluate(ctx)
	case Shape:
		return v.Evaluate(ctx)
	case AntiShape:
		return v.Evaluate(ctx)
	default:
		return Status{}, errors.Wrapf(ErrUnknownConstraint, "%T", c)
	}
}

// Parse is the inverse of Serialize.
func Parse(name, param string) (Constraint, error) {
	n, err := strconv.Atoi(param)
	if err != nil {
		return nil, errors.Wrapf(ErrBadParameter, "%s %q", name, param)
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrBadParameter, "%s %d is negative", name, n)
	}
	switch Kind(name) {
	case KindMutation:
		return Mutation{Max: n}, nil
	case KindShape:
		return Shape{State: n}, nil
	case KindAntiShape:
		return AntiShape{State: n}, nil
	}
	return nil, errors.Wrapf(ErrUnknownConstraint, "%q", name)
}
