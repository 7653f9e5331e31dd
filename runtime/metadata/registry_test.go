package metadata

import (
	"reflect"
	"testing"
)

func loadBasicRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()

	if err := r.DefineKind("default", func() interface{} { return int64(0) }); err != nil {
		t.Fatalf("DefineKind failed: %v", err)
	}
	if err := r.RegisterRecord("Model", "a", "b"); err != nil {
		t.Fatalf("RegisterRecord failed: %v", err)
	}
	return r
}

func TestLookup_DefaultWhenNoOverride(t *testing.T) {
	r := loadBasicRegistry(t)

	value, err := r.Lookup("default", "Model", "a")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if value != int64(0) {
		t.Errorf("Expected default 0, got %v", value)
	}
}

func TestLookup_OverrideWins(t *testing.T) {
	r := loadBasicRegistry(t)

	if err := r.RegisterOverride("Model", "a", "default", int64(4)); err != nil {
		t.Fatalf("RegisterOverride failed: %v", err)
	}

	value, err := r.Lookup("default", "Model", "a")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if value != int64(4) {
		t.Errorf("Expected override 4, got %v", value)
	}

	// Field b has no binding and keeps the default
	value, err = r.Lookup("default", "Model", "b")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if value != int64(0) {
		t.Errorf("Expected default 0 for b, got %v", value)
	}
}

func TestRegisterOverride_Replaces(t *testing.T) {
	r := loadBasicRegistry(t)

	if err := r.RegisterOverride("Model", "a", "default", int64(4)); err != nil {
		t.Fatalf("RegisterOverride failed: %v", err)
	}
	if err := r.RegisterOverride("Model", "a", "default", int64(7)); err != nil {
		t.Fatalf("RegisterOverride failed: %v", err)
	}

	value, _ := r.Lookup("default", "Model", "a")
	if value != int64(7) {
		t.Errorf("Expected replaced value 7, got %v", value)
	}

	all, _ := r.All("default", "Model")
	if len(all) != 2 {
		t.Errorf("Expected 2 values, got %d", len(all))
	}
}

func TestDefault_EvaluatedFreshPerLookup(t *testing.T) {
	r := NewRegistry()

	calls := 0
	if err := r.DefineKind("counter", func() interface{} {
		calls++
		return calls
	}); err != nil {
		t.Fatalf("DefineKind failed: %v", err)
	}
	if err := r.RegisterRecord("Model", "a"); err != nil {
		t.Fatalf("RegisterRecord failed: %v", err)
	}

	first, _ := r.Lookup("counter", "Model", "a")
	second, _ := r.Lookup("counter", "Model", "a")

	if first == second {
		t.Errorf("Expected fresh default evaluation per lookup, got %v twice", first)
	}
	if calls != 2 {
		t.Errorf("Expected 2 default evaluations, got %d", calls)
	}
}

func TestDefineKind_Duplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.DefineKind("label", func() interface{} { return "" }); err != nil {
		t.Fatalf("DefineKind failed: %v", err)
	}
	if err := r.DefineKind("label", func() interface{} { return "" }); err == nil {
		t.Error("Expected error for duplicate kind")
	}
}

func TestLookup_UnknownKind(t *testing.T) {
	r := loadBasicRegistry(t)

	if _, err := r.Lookup("bounds", "Model", "a"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestLookup_UnknownRecord(t *testing.T) {
	r := loadBasicRegistry(t)

	if _, err := r.Lookup("default", "Missing", "a"); err == nil {
		t.Error("Expected error for unknown record")
	}
}

func TestLookup_UnknownField(t *testing.T) {
	r := loadBasicRegistry(t)

	if _, err := r.Lookup("default", "Model", "missing"); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestAll_DeclaredFieldOrder(t *testing.T) {
	r := NewRegistry()

	if err := r.DefineKind("default", func() interface{} { return int64(0) }); err != nil {
		t.Fatalf("DefineKind failed: %v", err)
	}
	// Deliberately non-alphabetical declaration order
	if err := r.RegisterRecord("Model", "z", "a", "m"); err != nil {
		t.Fatalf("RegisterRecord failed: %v", err)
	}
	if err := r.RegisterOverride("Model", "a", "default", int64(4)); err != nil {
		t.Fatalf("RegisterOverride failed: %v", err)
	}

	all, err := r.All("default", "Model")
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}

	want := []interface{}{int64(0), int64(4), int64(0)}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("Expected %v, got %v", want, all)
	}
}

func TestAll_EmptyRecord(t *testing.T) {
	r := NewRegistry()

	if err := r.DefineKind("default", func() interface{} { return int64(0) }); err != nil {
		t.Fatalf("DefineKind failed: %v", err)
	}
	if err := r.RegisterRecord("Empty"); err != nil {
		t.Fatalf("RegisterRecord failed: %v", err)
	}

	all, err := r.All("default", "Empty")
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected empty slice, got %v", all)
	}
}

func TestFreeze_RejectsMutation(t *testing.T) {
	r := loadBasicRegistry(t)
	r.Freeze()

	if !r.Frozen() {
		t.Fatal("Expected registry to be frozen")
	}
	if err := r.DefineKind("late", func() interface{} { return nil }); err == nil {
		t.Error("Expected error defining kind after freeze")
	}
	if err := r.RegisterRecord("Late"); err == nil {
		t.Error("Expected error registering record after freeze")
	}
	if err := r.RegisterOverride("Model", "a", "default", 1); err == nil {
		t.Error("Expected error registering override after freeze")
	}

	// Queries still work
	if _, err := r.Lookup("default", "Model", "a"); err != nil {
		t.Errorf("Lookup after freeze failed: %v", err)
	}
}

func TestRegisterRecord_RedeclareReplacesShape(t *testing.T) {
	r := loadBasicRegistry(t)

	if err := r.RegisterRecord("Model", "a"); err != nil {
		t.Fatalf("RegisterRecord failed: %v", err)
	}

	fields, err := r.Fields("Model")
	if err != nil {
		t.Fatalf("Fields failed: %v", err)
	}
	if len(fields) != 1 || fields[0] != "a" {
		t.Errorf("Expected fields [a], got %v", fields)
	}

	// Still a single entry in Records
	if got := r.Records(); len(got) != 1 {
		t.Errorf("Expected 1 record, got %v", got)
	}
}

func TestKindsAndRecordsOrder(t *testing.T) {
	r := NewRegistry()

	r.DefineKind("default", func() interface{} { return nil })
	r.DefineKind("bounds", func() interface{} { return nil })
	r.RegisterRecord("B")
	r.RegisterRecord("A")

	if got := r.Kinds(); !reflect.DeepEqual(got, []string{"default", "bounds"}) {
		t.Errorf("Expected definition order, got %v", got)
	}
	if got := r.Records(); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("Expected declaration order, got %v", got)
	}
}
