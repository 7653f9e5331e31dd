package metadata

import (
	"fmt"
	"reflect"
)

// LookupInstance resolves the metadata value of a kind for a field of the
// instance's dynamic type. Pointers are dereferenced; the record is matched
// by type name, so metadata lookups never touch instance data.
func (r *Registry) LookupInstance(kind string, instance interface{}, field string) (interface{}, error) {
	name, err := recordName(instance)
	if err != nil {
		return nil, err
	}
	return r.Lookup(kind, name, field)
}

// AllInstance returns all metadata values of a kind for the instance's
// dynamic type, in declared field order.
func (r *Registry) AllInstance(kind string, instance interface{}) ([]interface{}, error) {
	name, err := recordName(instance)
	if err != nil {
		return nil, err
	}
	return r.All(kind, name)
}

// recordName derives the registry record name from an instance's type
func recordName(instance interface{}) (string, error) {
	if instance == nil {
		return "", fmt.Errorf("instance is nil")
	}
	t := reflect.TypeOf(instance)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "", fmt.Errorf("instance type %s is unnamed", t)
	}
	return t.Name(), nil
}

// Global registry instance, populated by generated init() functions
var globalRegistry = NewRegistry()

// Global returns the process-wide registry
func Global() *Registry {
	return globalRegistry
}

// DefineKind registers a kind in the global registry
func DefineKind(name string, def DefaultFunc) error {
	return globalRegistry.DefineKind(name, def)
}

// RegisterRecord declares a record in the global registry
func RegisterRecord(name string, fields ...string) error {
	return globalRegistry.RegisterRecord(name, fields...)
}

// RegisterOverride registers an override binding in the global registry
func RegisterOverride(record, field, kind string, value interface{}) error {
	return globalRegistry.RegisterOverride(record, field, kind, value)
}

// Freeze ends the global registry's load phase
func Freeze() {
	globalRegistry.Freeze()
}

// Lookup queries the global registry
func Lookup(kind, record, field string) (interface{}, error) {
	return globalRegistry.Lookup(kind, record, field)
}

// LookupInstance queries the global registry by instance type
func LookupInstance(kind string, instance interface{}, field string) (interface{}, error) {
	return globalRegistry.LookupInstance(kind, instance, field)
}

// All queries the global registry for a whole record
func All(kind, record string) ([]interface{}, error) {
	return globalRegistry.All(kind, record)
}

// Reset clears the global registry (used for testing)
func Reset() {
	globalRegistry.reset()
}

// MustDefineKind is DefineKind that panics on error. Generated registration
// code uses the Must variants: a load failure is a build defect, not a
// recoverable condition.
func MustDefineKind(name string, def DefaultFunc) {
	if err := globalRegistry.DefineKind(name, def); err != nil {
		panic(fmt.Sprintf("metadata: %v", err))
	}
}

// MustRegisterRecord is RegisterRecord that panics on error
func MustRegisterRecord(name string, fields ...string) {
	if err := globalRegistry.RegisterRecord(name, fields...); err != nil {
		panic(fmt.Sprintf("metadata: %v", err))
	}
}

// MustRegisterOverride is RegisterOverride that panics on error
func MustRegisterOverride(record, field, kind string, value interface{}) {
	if err := globalRegistry.RegisterOverride(record, field, kind, value); err != nil {
		panic(fmt.Sprintf("metadata: %v", err))
	}
}
