package expand

import (
	"fmt"

	"github.com/fieldmeta-lang/fieldmeta/compiler/errors"
	"github.com/fieldmeta-lang/fieldmeta/compiler/parser"
)

// Expander applies extension syntax to parsed declarations, producing the
// expanded schema. Declarations are processed in source order, so kinds and
// chains must appear before the records that use them.
type Expander struct {
	schema *Schema
	kinds  map[string]struct{}
	chains map[string][]string // chain name -> flattened kind list
	errors []errors.CompilerError
}

// Expand expands a parsed program. On return the error list contains every
// declaration-level failure; declarations that failed contribute nothing to
// the schema.
func Expand(program *parser.Program) (*Schema, []errors.CompilerError) {
	e := &Expander{
		schema: NewSchema(),
		kinds:  make(map[string]struct{}),
		chains: make(map[string][]string),
	}

	for _, decl := range program.Decls {
		switch node := decl.(type) {
		case *parser.KindNode:
			e.expandKind(node)
		case *parser.ChainNode:
			e.expandChain(node)
		case *parser.RecordNode:
			e.expandRecord(node)
		case *parser.ExtendNode:
			e.expandExtend(node)
		}
	}

	return e.schema, e.errors
}

// expandKind registers a metadata kind declaration
func (e *Expander) expandKind(node *parser.KindNode) {
	if _, exists := e.kinds[node.Name]; exists {
		e.addError(errors.CodeDuplicateKind,
			fmt.Sprintf("kind already defined: %s", node.Name),
			node.Location, errors.Error)
		return
	}
	if _, exists := e.chains[node.Name]; exists {
		e.addError(errors.CodeDuplicateKind,
			fmt.Sprintf("name already used by a chain: %s", node.Name),
			node.Location, errors.Error)
		return
	}

	e.kinds[node.Name] = struct{}{}
	e.schema.Kinds = append(e.schema.Kinds, &KindDef{
		Name:    node.Name,
		Default: node.Default,
	})
}

// expandChain registers a combined extension. Links are resolved eagerly:
// referencing an undefined extension is fatal at chain-definition time.
func (e *Expander) expandChain(node *parser.ChainNode) {
	if _, exists := e.chains[node.Name]; exists {
		e.addError(errors.CodeDuplicateChain,
			fmt.Sprintf("chain already defined: %s", node.Name),
			node.Location, errors.Error)
		return
	}
	if _, exists := e.kinds[node.Name]; exists {
		e.addError(errors.CodeDuplicateChain,
			fmt.Sprintf("name already used by a kind: %s", node.Name),
			node.Location, errors.Error)
		return
	}

	flattened := []string{}
	for _, link := range node.Links {
		kinds, ok := e.resolveExtension(link)
		if !ok {
			e.addError(errors.CodeUnknownExtension,
				fmt.Sprintf("chain %s references undefined extension: %s", node.Name, link),
				node.Location, errors.Fatal)
			return
		}
		flattened = append(flattened, kinds...)
	}

	e.chains[node.Name] = flattened
}

// resolveExtension resolves one extension name to its kind list: a kind is
// itself, a chain is its flattened links
func (e *Expander) resolveExtension(name string) ([]string, bool) {
	if _, ok := e.kinds[name]; ok {
		return []string{name}, true
	}
	if kinds, ok := e.chains[name]; ok {
		return kinds, true
	}
	return nil, false
}

// resolveMarkers flattens a declaration's extension markers into one kind
// list, left to right. Stacked markers behave exactly like an anonymous
// chain declared in that order.
func (e *Expander) resolveMarkers(markers []string, loc parser.SourceLocation) ([]string, bool) {
	flattened := []string{}
	for _, marker := range markers {
		kinds, ok := e.resolveExtension(marker)
		if !ok {
			e.addError(errors.CodeUnknownExtension,
				fmt.Sprintf("unknown extension: @%s", marker),
				loc, errors.Error)
			return nil, false
		}
		flattened = append(flattened, kinds...)
	}
	return flattened, true
}

// expandRecord expands the bare form: a full record declaration carrying
// annotation chains. The record and its overrides are emitted together; any
// failure aborts the whole declaration and emits neither.
func (e *Expander) expandRecord(node *parser.RecordNode) {
	if e.schema.Record(node.Name) != nil {
		e.addError(errors.CodeDuplicateRecord,
			fmt.Sprintf("record already defined: %s", node.Name),
			node.Location, errors.Error)
		return
	}

	kinds, ok := e.resolveMarkers(node.Extensions, node.Location)
	if !ok {
		return
	}

	record := &RecordDef{Name: node.Name}
	seen := make(map[string]struct{}, len(node.Fields))
	perKind := make([][]fieldValue, len(kinds))

	for _, field := range node.Fields {
		if _, dup := seen[field.Name]; dup {
			e.addError(errors.CodeDuplicateField,
				fmt.Sprintf("record %s: duplicate field %s", node.Name, field.Name),
				field.Location, errors.Error)
			return
		}
		seen[field.Name] = struct{}{}

		assignments, remaining := Assign(kinds, field.Chain)

		def, ok := e.survivingDefault(node.Name, field, remaining)
		if !ok {
			return
		}

		for i, a := range assignments {
			perKind[i] = append(perKind[i], fieldValue{field: field.Name, value: a.Value})
		}

		record.Fields = append(record.Fields, &FieldDef{
			Name:    field.Name,
			Type:    field.Type.Name,
			Default: def,
		})
	}

	e.schema.Records = append(e.schema.Records, record)

	// Extensions run innermost first: the last-listed kind before the
	// first-listed one
	for i := len(kinds) - 1; i >= 0; i-- {
		e.schema.emitOverrides(node.Name, kinds[i], perKind[i])
	}
}

// survivingDefault validates what is left of a field's chain after all
// extensions consumed their layer. At most one value may survive, and only
// when the chain was introduced by '='; that value is the field's ordinary
// default. Anything else is residual annotation syntax.
func (e *Expander) survivingDefault(record string, field *parser.FieldNode, remaining []*parser.ValueExpr) (*parser.ValueExpr, bool) {
	switch {
	case len(remaining) == 0:
		return nil, true
	case field.HasDefault && len(remaining) == 1:
		if remaining[0].IsPlaceholder() {
			e.addError(errors.CodeResidualChain,
				fmt.Sprintf("record %s, field %s: the placeholder cannot be an ordinary default", record, field.Name),
				field.Location, errors.Error)
			return nil, false
		}
		return remaining[0], true
	default:
		e.addError(errors.CodeResidualChain,
			fmt.Sprintf("record %s, field %s: %d annotation value(s) left after applying all extensions", record, field.Name, len(remaining)),
			field.Location, errors.Error)
		return nil, false
	}
}

// expandExtend expands the typed form: overrides for an existing record, no
// type emitted. The record and every named field must already be declared.
func (e *Expander) expandExtend(node *parser.ExtendNode) {
	kinds, ok := e.resolveMarkers(node.Extensions, node.Location)
	if !ok {
		return
	}

	record := e.schema.Record(node.TypeName)
	if record == nil {
		e.addError(errors.CodeUnknownRecord,
			fmt.Sprintf("extend references undefined record: %s", node.TypeName),
			node.Location, errors.Error)
		return
	}

	perKind := make([][]fieldValue, len(kinds))

	for _, field := range node.Fields {
		if record.Field(field.Name) == nil {
			e.addError(errors.CodeUnknownField,
				fmt.Sprintf("record %s has no field %s", node.TypeName, field.Name),
				field.Location, errors.Error)
			return
		}

		assignments, remaining := Assign(kinds, field.Chain)
		if len(remaining) > 0 {
			e.addError(errors.CodeResidualChain,
				fmt.Sprintf("record %s, field %s: %d annotation value(s) left after applying all extensions", node.TypeName, field.Name, len(remaining)),
				field.Location, errors.Error)
			return
		}

		for i, a := range assignments {
			perKind[i] = append(perKind[i], fieldValue{field: field.Name, value: a.Value})
		}
	}

	for i := len(kinds) - 1; i >= 0; i-- {
		e.schema.emitOverrides(node.TypeName, kinds[i], perKind[i])
	}
}

// addError records an expansion error
func (e *Expander) addError(code, message string, loc parser.SourceLocation, severity errors.Severity) {
	e.errors = append(e.errors, errors.New("expand", code, message, errors.SourceLocation{
		File:   loc.File,
		Line:   loc.Line,
		Column: loc.Column,
	}, severity))
}
