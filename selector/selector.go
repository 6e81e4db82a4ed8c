// Package selector implements the small expression language script code uses
// to pick an entity out of the world: PLAYER, KIND(ship), LABEL("Eagle-1"),
// DOCKED(<expr>), negation, & and |, and parentheses.
package selector

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"

	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

var ErrMalformedSelector = eris.New("malformed selector")

type selOperator int

const (
	opAnd selOperator = iota
	opOr
)

var operatorMap = map[string]selOperator{"&": opAnd, "|": opOr}

// Capture tells the parser how to turn a parsed operator token into the
// operator type.
func (o *selOperator) Capture(s []string) error {
	if len(s) == 0 {
		return eris.New("invalid operator")
	}
	operator, ok := operatorMap[s[0]]
	if !ok {
		return eris.New("invalid operator")
	}
	*o = operator
	return nil
}

type selPlayer struct{}

func (p *selPlayer) Capture(values []string) error {
	if values[0] == "PLAYER" {
		*p = selPlayer{}
	}
	return nil
}

type selKind struct {
	Name string `parser:"'KIND' '(' @Ident ')'"`
}

type selLabel struct {
	Label string `parser:"'LABEL' '(' @String ')'"`
}

type selDocked struct {
	SubExpression *selTerm `parser:"'DOCKED' '(' @@ ')'"`
}

type selNot struct {
	SubExpression *selValue `parser:"'!' @@"`
}

type selValue struct {
	Player        *selPlayer `parser:"@('PLAYER')"`
	Kind          *selKind   `parser:"| @@"`
	Label         *selLabel  `parser:"| @@"`
	Docked        *selDocked `parser:"| @@"`
	Not           *selNot    `parser:"| @@"`
	Subexpression *selTerm   `parser:"| '(' @@ ')'"`
}

type selFactor struct {
	Base *selValue `parser:"@@"`
}

type selOpFactor struct {
	Operator selOperator `parser:"@('&' | '|')"`
	Factor   *selFactor  `parser:"@@"`
}

type selTerm struct {
	Left  *selFactor     `parser:"@@"`
	Right []*selOpFactor `parser:"@@*"`
}

var internalSelectorParser = participle.MustBuild[selTerm](participle.Unquote("String"))

// Predicate decides whether a live entity matches a parsed selector.
type Predicate func(w *sim.World, e *sim.Entity) bool

// Selector is a parsed, validated selector expression.
type Selector struct {
	src   string
	match Predicate
}

// Parse compiles src into a Selector. Syntax errors and unknown kind names
// fail with ErrMalformedSelector.
func Parse(src string) (*Selector, error) {
	term, err := internalSelectorParser.ParseString("", src)
	if err != nil {
		return nil, eris.Wrap(ErrMalformedSelector, err.Error())
	}
	match, err := termToPredicate(term)
	if err != nil {
		return nil, err
	}
	return &Selector{src: src, match: match}, nil
}

// Matches reports whether e satisfies the selector in w.
func (s *Selector) Matches(w *sim.World, e *sim.Entity) bool {
	return s.match(w, e)
}

func (s *Selector) String() string { return s.src }

func valueToPredicate(value *selValue) (Predicate, error) {
	switch {
	case value.Player != nil:
		return func(w *sim.World, e *sim.Entity) bool {
			return w.Player() == e
		}, nil
	case value.Kind != nil:
		kind, ok := types.ParseKind(value.Kind.Name)
		if !ok {
			return nil, eris.Wrap(ErrMalformedSelector, "unknown kind "+value.Kind.Name)
		}
		return func(_ *sim.World, e *sim.Entity) bool {
			return e.Kind() == kind
		}, nil
	case value.Label != nil:
		label := value.Label.Label
		return func(_ *sim.World, e *sim.Entity) bool {
			return e.Label() == label
		}, nil
	case value.Docked != nil:
		sub, err := termToPredicate(value.Docked.SubExpression)
		if err != nil {
			return nil, err
		}
		return func(w *sim.World, e *sim.Entity) bool {
			return e.DockedWith() != nil && sub(w, e.DockedWith())
		}, nil
	case value.Not != nil:
		sub, err := valueToPredicate(value.Not.SubExpression)
		if err != nil {
			return nil, err
		}
		return func(w *sim.World, e *sim.Entity) bool {
			return !sub(w, e)
		}, nil
	case value.Subexpression != nil:
		return termToPredicate(value.Subexpression)
	default:
		return nil, eris.Wrap(ErrMalformedSelector, "empty value")
	}
}

func termToPredicate(term *selTerm) (Predicate, error) {
	if term.Left == nil {
		return nil, eris.Wrap(ErrMalformedSelector, "not enough values in expression")
	}
	acc, err := valueToPredicate(term.Left.Base)
	if err != nil {
		return nil, err
	}
	for _, opFactor := range term.Right {
		next, err := valueToPredicate(opFactor.Factor.Base)
		if err != nil {
			return nil, err
		}
		prev := acc
		switch opFactor.Operator {
		case opAnd:
			acc = func(w *sim.World, e *sim.Entity) bool { return prev(w, e) && next(w, e) }
		case opOr:
			acc = func(w *sim.World, e *sim.Entity) bool { return prev(w, e) || next(w, e) }
		default:
			return nil, eris.Wrap(ErrMalformedSelector, fmt.Sprintf("invalid operator %q", opFactor.Operator))
		}
	}
	return acc, nil
}

// Display helpers, mostly for error messages and logging.

func (o selOperator) String() string {
	switch o {
	case opAnd:
		return "&"
	case opOr:
		return "|"
	}
	return "?"
}

func (t *selTerm) String() string {
	out := []string{t.Left.String()}
	for _, r := range t.Right {
		out = append(out, fmt.Sprintf("%s %s", r.Operator, r.Factor))
	}
	return strings.Join(out, " ")
}

func (f *selFactor) String() string {
	v := f.Base
	switch {
	case v.Player != nil:
		return "PLAYER"
	case v.Kind != nil:
		return "KIND(" + v.Kind.Name + ")"
	case v.Label != nil:
		return fmt.Sprintf("LABEL(%q)", v.Label.Label)
	case v.Docked != nil:
		return "DOCKED(" + v.Docked.SubExpression.String() + ")"
	case v.Not != nil:
		return "!(" + (&selFactor{Base: v.Not.SubExpression}).String() + ")"
	case v.Subexpression != nil:
		return "(" + v.Subexpression.String() + ")"
	}
	return "?"
}
