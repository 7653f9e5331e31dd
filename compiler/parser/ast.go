package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldmeta-lang/fieldmeta/compiler/lexer"
)

// SourceLocation represents a location in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// TokenToLocation converts a token to a source location
func TokenToLocation(tok lexer.Token) SourceLocation {
	return SourceLocation{
		File:   tok.File,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// Program is the root node of the AST. Declarations keep their source
// order; kinds and chains must be declared before the records that use them.
type Program struct {
	Decls    []Decl
	Location SourceLocation
}

// Decl is implemented by all top-level declarations
type Decl interface {
	declNode()
	Loc() SourceLocation
}

// KindNode represents a metadata kind declaration
// kind bounds = (1e-7, 1.0)
type KindNode struct {
	Name     string
	Default  *ValueExpr
	Location SourceLocation
}

// ChainNode represents a combined-extension declaration
// chain describe = label | units
type ChainNode struct {
	Name     string
	Links    []string // component extension names, left to right as declared
	Location SourceLocation
}

// RecordNode represents an annotated record declaration (the bare form)
// @default record Model { ... }
type RecordNode struct {
	Name       string
	Extensions []string // extension markers, left to right as written
	Fields     []*FieldNode
	Location   SourceLocation
}

// ExtendNode represents an overrides-only declaration (the typed form)
// @bounds extend Model { a | (1, 4) }
type ExtendNode struct {
	TypeName   string
	Extensions []string
	Fields     []*FieldNode
	Location   SourceLocation
}

func (*KindNode) declNode()   {}
func (*ChainNode) declNode()  {}
func (*RecordNode) declNode() {}
func (*ExtendNode) declNode() {}

func (n *KindNode) Loc() SourceLocation   { return n.Location }
func (n *ChainNode) Loc() SourceLocation  { return n.Location }
func (n *RecordNode) Loc() SourceLocation { return n.Location }
func (n *ExtendNode) Loc() SourceLocation { return n.Location }

// FieldNode represents a field declaration. The annotation chain holds every
// pipe-separated value after the field head, left to right as written.
// HasDefault records whether the chain was introduced by '=' (surface form a)
// rather than a bare '|' after the type (surface form b).
type FieldNode struct {
	Name       string
	Type       *TypeNode // nil inside extend blocks
	HasDefault bool
	Chain      []*ValueExpr
	Location   SourceLocation
}

// TypeNode represents a field type annotation
type TypeNode struct {
	Name     string // Int, Float, String, Bool
	Location SourceLocation
}

// ValueKind discriminates literal value expressions
type ValueKind int

const (
	IntValue ValueKind = iota
	FloatValue
	StringValue
	BoolValue
	TupleValue
	PlaceholderValue
)

// ValueExpr is a literal annotation value: a scalar, a tuple of values, or
// the reserved placeholder marker
type ValueExpr struct {
	Kind     ValueKind
	Int      int64
	Float    float64
	Str      string
	Bool     bool
	Tuple    []*ValueExpr
	Location SourceLocation
}

// IsPlaceholder reports whether the value is the placeholder marker
func (v *ValueExpr) IsPlaceholder() bool {
	return v != nil && v.Kind == PlaceholderValue
}

// Value returns the plain Go value for registry loading.
// Tuples become []interface{}; the placeholder has no value and returns nil.
func (v *ValueExpr) Value() interface{} {
	switch v.Kind {
	case IntValue:
		return v.Int
	case FloatValue:
		return v.Float
	case StringValue:
		return v.Str
	case BoolValue:
		return v.Bool
	case TupleValue:
		elems := make([]interface{}, len(v.Tuple))
		for i, e := range v.Tuple {
			elems[i] = e.Value()
		}
		return elems
	default:
		return nil
	}
}

// String renders the value the way it is written in schema source
func (v *ValueExpr) String() string {
	switch v.Kind {
	case IntValue:
		return strconv.FormatInt(v.Int, 10)
	case FloatValue:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case StringValue:
		return strconv.Quote(v.Str)
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	case TupleValue:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case PlaceholderValue:
		return "_"
	default:
		return fmt.Sprintf("<value kind %d>", v.Kind)
	}
}

// NewProgram creates a new Program node
func NewProgram(decls []Decl, loc SourceLocation) *Program {
	return &Program{Decls: decls, Location: loc}
}

// NewFieldNode creates a new FieldNode
func NewFieldNode(name string, typ *TypeNode, loc SourceLocation) *FieldNode {
	return &FieldNode{
		Name:     name,
		Type:     typ,
		Chain:    []*ValueExpr{},
		Location: loc,
	}
}
