package expand

import "github.com/fieldmeta-lang/fieldmeta/compiler/parser"

// Peel removes one layer from an annotation chain: the outermost element,
// which is the one most recently appended when the chain was written left to
// right. It returns the removed value and the chain one layer thinner.
// Peeling an empty chain returns nil, meaning the kind default stays in
// force.
func Peel(chain []*parser.ValueExpr) (*parser.ValueExpr, []*parser.ValueExpr) {
	if len(chain) == 0 {
		return nil, chain
	}
	return chain[len(chain)-1], chain[:len(chain)-1]
}

// PeelField applies one extension layer to a field declaration: it peels the
// outermost chain value and returns it together with the rewritten field.
// The input field is not modified.
func PeelField(field *parser.FieldNode) (*parser.ValueExpr, *parser.FieldNode) {
	value, rest := Peel(field.Chain)

	rewritten := &parser.FieldNode{
		Name:       field.Name,
		Type:       field.Type,
		HasDefault: field.HasDefault,
		Chain:      rest,
		Location:   field.Location,
	}
	if len(rest) == 0 {
		rewritten.HasDefault = false
		rewritten.Chain = nil
	}
	return value, rewritten
}
