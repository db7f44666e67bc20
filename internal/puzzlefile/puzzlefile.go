// internal/puzzlefile/puzzlefile.go
package puzzlefile

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"foldlab-core/constraint"
	"foldlab-core/rna"
)

// Version is the only puzzle file version understood.
const Version = 1

// ErrBadPuzzle wraps every structural problem in a puzzle file.
var ErrBadPuzzle = errors.New("bad puzzle file")

// File is the on-disk puzzle document.
type File struct {
	Version     int         `yaml:"version"`
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Beginning   string      `yaml:"beginning"`
	Barcode     []int       `yaml:"barcode"`
	Constraints [][2]string `yaml:"constraints"`
	States      []StateSpec `yaml:"states"`
}

// StateSpec carries one state's target conditions.
type StateSpec struct {
	Type                     string        `yaml:"type"`
	SecStruct                string        `yaml:"secstruct"`
	StructureConstraints     []bool        `yaml:"structure_constraints"`
	AntiSecStruct            string        `yaml:"anti_secstruct"`
	AntiStructureConstraints []bool        `yaml:"anti_structure_constraints"`
	CustomLayout             [][2]*float64 `yaml:"custom_layout"`
	OligoOrder               []int         `yaml:"oligo_order"`
	TargetOligoOrder         []int         `yaml:"target_oligo_order"`
}

// Load reads and validates a puzzle file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read puzzle")
	}
	f, err := Parse(b)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return f, nil
}

// Parse decodes and validates a puzzle document.
func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(ErrBadPuzzle, err.Error())
	}
	if f.Version != Version {
		return nil, errors.Wrapf(ErrBadPuzzle, "unsupported puzzle version: %d", f.Version)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.ID == "" {
		return errors.Wrap(ErrBadPuzzle, "id is required")
	}
	if len(f.States) == 0 {
		return errors.Wrap(ErrBadPuzzle, "at least one state is required")
	}
	for i, s := range f.States {
		switch s.Type {
		case "", constraint.TypeSingle, constraint.TypePseudoknot:
		default:
			return errors.Wrapf(ErrBadPuzzle, "state %d: unknown type %q", i, s.Type)
		}
		if s.SecStruct == "" {
			return errors.Wrapf(ErrBadPuzzle, "state %d: secstruct is required", i)
		}
		pk := s.Type == constraint.TypePseudoknot
		if err := rna.ValidateDotBracket(s.SecStruct, pk, 0); err != nil {
			return errors.Wrapf(ErrBadPuzzle, "state %d: secstruct: %v", i, err)
		}
		if m := s.StructureConstraints; m != nil && len(m) != len(s.SecStruct) {
			return errors.Wrapf(ErrBadPuzzle, "state %d: structure_constraints has %d entries for %d positions", i, len(m), len(s.SecStruct))
		}
		if s.AntiSecStruct != "" {
			if len(s.AntiSecStruct) != len(s.SecStruct) {
				return errors.Wrapf(ErrBadPuzzle, "state %d: anti_secstruct length differs from secstruct", i)
			}
			if err := rna.ValidateDotBracket(s.AntiSecStruct, pk, 0); err != nil {
				return errors.Wrapf(ErrBadPuzzle, "state %d: anti_secstruct: %v", i, err)
			}
		}
		if m := s.AntiStructureConstraints; m != nil && len(m) != len(s.SecStruct) {
			return errors.Wrapf(ErrBadPuzzle, "state %d: anti_structure_constraints has %d entries for %d positions", i, len(m), len(s.SecStruct))
		}
	}
	set, err := f.ConstraintSet()
	if err != nil {
		return err
	}
	for _, c := range set {
		if idx, ok := stateOf(c); ok && idx >= len(f.States) {
			name, _ := c.Serialize()
			return errors.Wrapf(ErrBadPuzzle, "%s constraint names state %d, puzzle has %d", name, idx, len(f.States))
		}
	}
	return nil
}

func stateOf(c constraint.Constraint) (int, bool) {
	switch v := c.(type) {
	case constraint.Shape:
		return v.State, true
	case constraint.AntiShape:
		return v.State, true
	}
	return 0, false
}

// ConstraintSet parses the constraint tuples.
func (f *File) ConstraintSet() (constraint.Set, error) {
	tokens := make([]string, 0, 2*len(f.Constraints))
	for _, c := range f.Constraints {
		tokens = append(tokens, c[0], c[1])
	}
	set, err := constraint.ParseSet(tokens)
	if err != nil {
		return nil, errors.Wrap(ErrBadPuzzle, err.Error())
	}
	return set, nil
}

// TargetConditions converts the state specs for the evaluator.
func (f *File) TargetConditions() []*constraint.TargetConditions {
	out := make([]*constraint.TargetConditions, len(f.States))
	for i, s := range f.States {
		typ := s.Type
		if typ == "" {
			typ = constraint.TypeSingle
		}
		out[i] = &constraint.TargetConditions{
			Type:                     typ,
			SecStruct:                s.SecStruct,
			StructureConstraints:     s.StructureConstraints,
			AntiSecStruct:            s.AntiSecStruct,
			AntiStructureConstraints: s.AntiStructureConstraints,
			CustomLayout:             s.CustomLayout,
			OligoOrder:               s.OligoOrder,
			TargetOligoOrder:         s.TargetOligoOrder,
		}
	}
	return out
}

// Puzzle returns the constraint-facing puzzle metadata. A puzzle without a
// beginning sequence yields a nil Beginning, which mutation constraints
// report as missing.
func (f *File) Puzzle() (*constraint.Puzzle, error) {
	p := &constraint.Puzzle{Barcode: append([]int(nil), f.Barcode...)}
	if f.Beginning != "" {
		seq, err := rna.ParseSequence(f.Beginning)
		if err != nil {
			return nil, errors.Wrap(err, "beginning sequence")
		}
		p.Beginning = seq
	}
	return p, nil
}
