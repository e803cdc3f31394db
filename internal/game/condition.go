package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Facts answers the quantity lookups a Condition performs.
// Unknown quantities read as zero; an unknown maximum never matches.
type Facts interface {
	Quantity(subject, field string) int
	Maximum(subject, field string) (int, bool)
}

// Condition is a parsed predicate such as
//
//	target.burn >= 3 and not self.charge == max
//
// It serializes as its source text.
type Condition struct {
	src  string
	root *condOr
}

var condLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Op", Pattern: `<=|>=|==|!=|<|>`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[().]`},
})

var condParser = participle.MustBuild[condOr](
	participle.Lexer(condLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

type condOr struct {
	Terms []*condAnd `parser:"@@ ( 'or' @@ )*"`
}

type condAnd struct {
	Terms []*condUnary `parser:"@@ ( 'and' @@ )*"`
}

type condUnary struct {
	Not   *condUnary `parser:"  'not' @@"`
	Group *condOr    `parser:"| '(' @@ ')'"`
	Cmp   *condCmp   `parser:"| @@"`
}

type condCmp struct {
	Subject string   `parser:"@('self' | 'target' | 'turn')"`
	Field   string   `parser:"'.' @Ident"`
	Rhs     *condRhs `parser:"@@?"`
}

type condRhs struct {
	Op    string   `parser:"@Op"`
	Value *condVal `parser:"@@"`
}

type condVal struct {
	Max bool `parser:"  @'max'"`
	Num *int `parser:"| @Int"`
}

// ParseCondition compiles a predicate expression.
func ParseCondition(src string) (Condition, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Condition{}, nil
	}
	root, err := condParser.ParseString("", src)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: %w", src, err)
	}
	return Condition{src: src, root: root}, nil
}

// MustCondition is ParseCondition for static content; it panics on error.
func MustCondition(src string) Condition {
	c, err := ParseCondition(src)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Condition) String() string { return c.src }

// IsZero reports whether the condition is empty. An empty condition holds.
func (c Condition) IsZero() bool { return c.root == nil }

func (c Condition) Holds(f Facts) bool {
	if c.root == nil {
		return true
	}
	return c.root.eval(f)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.src)
}

func (c *Condition) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("condition: %w", err)
	}
	parsed, err := ParseCondition(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (o *condOr) eval(f Facts) bool {
	for _, t := range o.Terms {
		if t.eval(f) {
			return true
		}
	}
	return false
}

func (a *condAnd) eval(f Facts) bool {
	for _, t := range a.Terms {
		if !t.eval(f) {
			return false
		}
	}
	return true
}

func (u *condUnary) eval(f Facts) bool {
	switch {
	case u.Not != nil:
		return !u.Not.eval(f)
	case u.Group != nil:
		return u.Group.eval(f)
	case u.Cmp != nil:
		return u.Cmp.eval(f)
	}
	return false
}

func (c *condCmp) eval(f Facts) bool {
	left := f.Quantity(c.Subject, c.Field)
	if c.Rhs == nil {
		return left != 0
	}
	var right int
	if c.Rhs.Value.Max {
		m, ok := f.Maximum(c.Subject, c.Field)
		if !ok {
			return false
		}
		right = m
	} else if c.Rhs.Value.Num != nil {
		right = *c.Rhs.Value.Num
	}
	switch c.Rhs.Op {
	case "<":
		return left < right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case ">=":
		return left >= right
	case "==":
		return left == right
	case "!=":
		return left != right
	}
	return false
}
