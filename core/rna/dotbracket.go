// core/rna/dotbracket.go
package rna

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnbalanced is returned for dot-bracket strings whose brackets don't close.
	ErrUnbalanced = errors.New("unbalanced dot-bracket")
	// ErrBadStructure is returned by ValidateDotBracket for rejected inputs.
	ErrBadStructure = errors.New("invalid structure")
)

// Bracket classes. Only the first is used unless pseudoknots are allowed.
var bracketPairs = [...][2]byte{{'(', ')'}, {'[', ']'}, {'{', '}'}, {'<', '>'}}

// ParseDotBracket converts dot-bracket notation to a SecStruct. With
// pseudoknots set, [] {} and <> are additional independent bracket classes.
// '.' and '&' are unpaired positions.
func ParseDotBracket(s string, pseudoknots bool) (SecStruct, error) {
	classes := 1
	if pseudoknots {
		classes = len(bracketPairs)
	}
	out := NewSecStruct(len(s))
	stacks := make([][]int, classes)

outer:
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' || c == '&' {
			continue
		}
		for k := 0; k < classes; k++ {
			switch c {
			case bracketPairs[k][0]:
				stacks[k] = append(stacks[k], i)
				continue outer
			case bracketPairs[k][1]:
				if len(stacks[k]) == 0 {
					return SecStruct{}, errors.Wrapf(ErrUnbalanced, "unmatched %q at %d", c, i+1)
				}
				open := stacks[k][len(stacks[k])-1]
				stacks[k] = stacks[k][:len(stacks[k])-1]
				out.pairs[open] = i
				out.pairs[i] = open
				continue outer
			}
		}
		return SecStruct{}, errors.Wrapf(ErrBadStructure, "unexpected %q at %d", c, i+1)
	}
	for k := range stacks {
		if len(stacks[k]) > 0 {
			return SecStruct{}, errors.Wrapf(ErrUnbalanced, "unclosed %q at %d", bracketPairs[k][0], stacks[k][0]+1)
		}
	}
	return out, nil
}

// MustParseDotBracket is ParseDotBracket without pseudoknots, panicking on error.
func MustParseDotBracket(s string) SecStruct {
	ss, err := ParseDotBracket(s, false)
	if err != nil {
		panic(err)
	}
	return ss
}

// DotBracket renders s. Crossing pairs get the next bracket class.
func (s SecStruct) DotBracket() string {
	n := len(s.pairs)
	out := make([]byte, n)
	for i := range out {
		out[i] = '.'
	}
	// open pairs per class, innermost last
	stacks := make([][]int, len(bracketPairs))
	for i, j := range s.pairs {
		if j < 0 || j < i {
			continue
		}
		placed := false
		for k := range stacks {
			// a pair fits class k if it nests inside every still-open pair there
			for len(stacks[k]) > 0 && s.pairs[stacks[k][len(stacks[k])-1]] < i {
				stacks[k] = stacks[k][:len(stacks[k])-1]
			}
			if len(stacks[k]) == 0 || s.pairs[stacks[k][len(stacks[k])-1]] > j {
				stacks[k] = append(stacks[k], i)
				out[i] = bracketPairs[k][0]
				out[j] = bracketPairs[k][1]
				placed = true
				break
			}
		}
		if !placed {
			out[i], out[j] = '.', '.'
		}
	}
	return string(out)
}

// DotBracketOn renders s with '&' at the cut positions of seq. seq must be
// indexed like s.
func (s SecStruct) DotBracketOn(seq Sequence) (string, error) {
	if seq.Len() != s.Len() {
		return "", errors.Wrapf(ErrLengthMismatch, "structure %d, sequence %d", s.Len(), seq.Len())
	}
	out := []byte(s.DotBracket())
	for i, b := range seq {
		if b == Cut {
			out[i] = '&'
		}
	}
	return string(out), nil
}

// NormalizeDotBracket strips everything but structure characters and widens
// empty hairpins "()" to "(.)".
func NormalizeDotBracket(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '.', '(', ')', '[', ']', '{', '}', '<', '>', '&':
			b.WriteByte(c)
		}
	}
	return strings.ReplaceAll(b.String(), "()", "(.)")
}

// ValidateDotBracket checks a structure before it is used as a target:
// length limit (0 = none), no empty hairpins, balanced brackets.
func ValidateDotBracket(s string, pseudoknots bool, maxLen int) error {
	if maxLen > 0 && len(s) > maxLen {
		return errors.Wrapf(ErrBadStructure, "length %d exceeds %d", len(s), maxLen)
	}
	if i := strings.Index(s, "()"); i >= 0 {
		return errors.Wrapf(ErrBadStructure, "empty hairpin at %d", i+1)
	}
	_, err := ParseDotBracket(s, pseudoknots)
	return err
}
