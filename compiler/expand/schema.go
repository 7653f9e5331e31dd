// Package expand turns a parsed schema AST into its expanded form: cleaned
// record shapes with all annotation syntax consumed, plus the override
// bindings each extension application produced.
package expand

import "github.com/fieldmeta-lang/fieldmeta/compiler/parser"

// Schema is the expanded schema: what code generation and registry loading
// consume. All slices preserve declaration order.
type Schema struct {
	Kinds    []*KindDef
	Records  []*RecordDef
	Bindings []*Binding

	bindingIndex map[bindingKey]int
}

// KindDef is one declared metadata kind
type KindDef struct {
	Name    string
	Default *parser.ValueExpr
}

// RecordDef is one record with every annotation layer consumed
type RecordDef struct {
	Name   string
	Fields []*FieldDef
}

// FieldDef is one cleaned field: name, type, and the ordinary default that
// survived expansion (nil if none)
type FieldDef struct {
	Name    string
	Type    string
	Default *parser.ValueExpr
}

// Binding is one registered override: (record, field, kind) -> literal value
type Binding struct {
	Record string
	Field  string
	Kind   string
	Value  *parser.ValueExpr
}

type bindingKey struct {
	Record string
	Field  string
	Kind   string
}

// NewSchema creates an empty expanded schema
func NewSchema() *Schema {
	return &Schema{
		bindingIndex: make(map[bindingKey]int),
	}
}

// Kind returns a declared kind by name
func (s *Schema) Kind(name string) *KindDef {
	for _, k := range s.Kinds {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// Record returns an expanded record by name
func (s *Schema) Record(name string) *RecordDef {
	for _, r := range s.Records {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Field returns a record field by name
func (r *RecordDef) Field(name string) *FieldDef {
	for _, f := range r.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FieldNames returns the record's field names in declared order
func (r *RecordDef) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}
