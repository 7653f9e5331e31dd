package metadata

import (
	"fmt"
	"sync/atomic"
)

// bindingKey identifies one override binding. Keys are unique per
// (record, field, kind); re-registering replaces the prior value.
type bindingKey struct {
	Record string
	Field  string
	Kind   string
}

// Registry holds kinds, record shapes, and override bindings.
// It is mutable during the single-threaded load phase and read-only after
// Freeze; concurrent loading is not supported and not locked against.
type Registry struct {
	kinds       map[string]*Kind
	kindOrder   []string
	fieldOrder  map[string][]string
	fieldSet    map[string]map[string]struct{}
	recordOrder []string
	overrides   map[bindingKey]interface{}
	frozen      atomic.Bool
}

// NewRegistry creates an empty, unfrozen registry
func NewRegistry() *Registry {
	return &Registry{
		kinds:      make(map[string]*Kind),
		fieldOrder: make(map[string][]string),
		fieldSet:   make(map[string]map[string]struct{}),
		overrides:  make(map[bindingKey]interface{}),
	}
}

// DefineKind registers a metadata kind with its default expression.
// Kinds are immutable once defined; defining the same name twice is an error.
func (r *Registry) DefineKind(name string, def DefaultFunc) error {
	if r.frozen.Load() {
		return fmt.Errorf("registry is frozen")
	}
	if def == nil {
		return fmt.Errorf("kind %s: default function must not be nil", name)
	}
	if _, exists := r.kinds[name]; exists {
		return fmt.Errorf("kind already defined: %s", name)
	}
	r.kinds[name] = &Kind{Name: name, Default: def}
	r.kindOrder = append(r.kindOrder, name)
	return nil
}

// RegisterRecord declares a record and its fields in declared order.
// Re-declaring a record replaces its field list; existing override bindings
// are kept and resolved against the new shape.
func (r *Registry) RegisterRecord(name string, fields ...string) error {
	if r.frozen.Load() {
		return fmt.Errorf("registry is frozen")
	}
	if _, exists := r.fieldOrder[name]; !exists {
		r.recordOrder = append(r.recordOrder, name)
	}
	order := make([]string, len(fields))
	copy(order, fields)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	r.fieldOrder[name] = order
	r.fieldSet[name] = set
	return nil
}

// RegisterOverride registers one override binding. The kind, record, and
// field must already be known. Registration is append/replace: a later
// registration for the same key overwrites the earlier one.
func (r *Registry) RegisterOverride(record, field, kind string, value interface{}) error {
	if r.frozen.Load() {
		return fmt.Errorf("registry is frozen")
	}
	if _, ok := r.kinds[kind]; !ok {
		return fmt.Errorf("kind not found: %s", kind)
	}
	set, ok := r.fieldSet[record]
	if !ok {
		return fmt.Errorf("record not found: %s", record)
	}
	if _, ok := set[field]; !ok {
		return fmt.Errorf("record %s has no field %s", record, field)
	}
	r.overrides[bindingKey{Record: record, Field: field, Kind: kind}] = value
	return nil
}

// Freeze ends the load phase. After Freeze all mutation attempts fail and
// queries may run concurrently.
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

// Frozen reports whether the load phase has ended
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Lookup returns the metadata value of the given kind for (record, field):
// the exact override binding if one exists, otherwise the kind default
// evaluated fresh. There is no partial or hierarchical matching.
func (r *Registry) Lookup(kind, record, field string) (interface{}, error) {
	k, ok := r.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("kind not found: %s", kind)
	}
	set, ok := r.fieldSet[record]
	if !ok {
		return nil, fmt.Errorf("record not found: %s", record)
	}
	if _, ok := set[field]; !ok {
		return nil, fmt.Errorf("record %s has no field %s", record, field)
	}

	if value, ok := r.overrides[bindingKey{Record: record, Field: field, Kind: kind}]; ok {
		return value, nil
	}
	return k.Default(), nil
}

// All returns the metadata values of the given kind for every field of the
// record, in exact declared field order. A record with no fields yields an
// empty slice.
func (r *Registry) All(kind, record string) ([]interface{}, error) {
	if _, ok := r.kinds[kind]; !ok {
		return nil, fmt.Errorf("kind not found: %s", kind)
	}
	order, ok := r.fieldOrder[record]
	if !ok {
		return nil, fmt.Errorf("record not found: %s", record)
	}

	values := make([]interface{}, 0, len(order))
	for _, field := range order {
		value, err := r.Lookup(kind, record, field)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// Kinds returns the defined kind names in definition order
func (r *Registry) Kinds() []string {
	out := make([]string, len(r.kindOrder))
	copy(out, r.kindOrder)
	return out
}

// Records returns the declared record names in declaration order
func (r *Registry) Records() []string {
	out := make([]string, len(r.recordOrder))
	copy(out, r.recordOrder)
	return out
}

// Fields returns the declared field order of a record
func (r *Registry) Fields(record string) ([]string, error) {
	order, ok := r.fieldOrder[record]
	if !ok {
		return nil, fmt.Errorf("record not found: %s", record)
	}
	out := make([]string, len(order))
	copy(out, order)
	return out, nil
}

// reset clears the registry and reopens the load phase
func (r *Registry) reset() {
	r.kinds = make(map[string]*Kind)
	r.kindOrder = nil
	r.fieldOrder = make(map[string][]string)
	r.fieldSet = make(map[string]map[string]struct{})
	r.recordOrder = nil
	r.overrides = make(map[bindingKey]interface{})
	r.frozen.Store(false)
}
