package expand

import (
	"github.com/fieldmeta-lang/fieldmeta/compiler/parser"
	"github.com/fieldmeta-lang/fieldmeta/runtime/metadata"
)

// emitOverrides registers the bindings produced by one extension application
// on one declaration. Placeholder assignments and assignments that ran past
// the end of a field's chain never create bindings; the kind default stays
// authoritative for them.
func (s *Schema) emitOverrides(record, kind string, pairs []fieldValue) {
	for _, pair := range pairs {
		if pair.value == nil || pair.value.IsPlaceholder() {
			continue
		}
		s.addBinding(record, pair.field, kind, pair.value)
	}
}

// fieldValue is one (fieldName, value) pair extracted by the annotation
// parser for a single extension application
type fieldValue struct {
	field string
	value *parser.ValueExpr
}

// addBinding appends or replaces one override binding. Keys are unique per
// (record, field, kind): re-registering overwrites the prior value in place,
// keeping the original position so repeated expansion stays deterministic.
func (s *Schema) addBinding(record, field, kind string, value *parser.ValueExpr) {
	key := bindingKey{Record: record, Field: field, Kind: kind}
	if i, ok := s.bindingIndex[key]; ok {
		s.Bindings[i].Value = value
		return
	}
	s.bindingIndex[key] = len(s.Bindings)
	s.Bindings = append(s.Bindings, &Binding{
		Record: record,
		Field:  field,
		Kind:   kind,
		Value:  value,
	})
}

// Load registers the expanded schema into a metadata registry: kinds with
// their default expressions, records with their declared field order, and
// every override binding. The caller decides when to freeze.
func (s *Schema) Load(r *metadata.Registry) error {
	for _, kind := range s.Kinds {
		def := kind.Default
		if err := r.DefineKind(kind.Name, func() interface{} { return def.Value() }); err != nil {
			return err
		}
	}
	for _, record := range s.Records {
		if err := r.RegisterRecord(record.Name, record.FieldNames()...); err != nil {
			return err
		}
	}
	for _, b := range s.Bindings {
		if err := r.RegisterOverride(b.Record, b.Field, b.Kind, b.Value.Value()); err != nil {
			return err
		}
	}
	return nil
}
