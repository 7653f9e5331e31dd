package expand

import (
	"testing"

	"github.com/fieldmeta-lang/fieldmeta/compiler/parser"
)

func intVal(v int64) *parser.ValueExpr {
	return &parser.ValueExpr{Kind: parser.IntValue, Int: v}
}

func strVal(s string) *parser.ValueExpr {
	return &parser.ValueExpr{Kind: parser.StringValue, Str: s}
}

func placeholder() *parser.ValueExpr {
	return &parser.ValueExpr{Kind: parser.PlaceholderValue}
}

func TestAssign_SingleKindConsumesRightmost(t *testing.T) {
	// a: Int = 1 | 4 under @default: the extension consumes 4,
	// the surviving 1 belongs to the field declaration
	assignments, remaining := Assign([]string{"default"}, []*parser.ValueExpr{intVal(1), intVal(4)})

	if len(assignments) != 1 {
		t.Fatalf("Expected 1 assignment, got %d", len(assignments))
	}
	if assignments[0].Kind != "default" || assignments[0].Value.Int != 4 {
		t.Errorf("Expected default=4, got %s=%v", assignments[0].Kind, assignments[0].Value)
	}
	if len(remaining) != 1 || remaining[0].Int != 1 {
		t.Errorf("Expected remaining [1], got %v", remaining)
	}
}

func TestAssign_TwoKindsRightAligned(t *testing.T) {
	// chain describe = label | units on x = "n" | "lab" | "m":
	// units runs first and takes "m", label takes "lab", "n" survives
	kinds := []string{"label", "units"}
	written := []*parser.ValueExpr{strVal("n"), strVal("lab"), strVal("m")}

	assignments, remaining := Assign(kinds, written)

	if assignments[0].Kind != "label" || assignments[0].Value.Str != "lab" {
		t.Errorf("Expected label=\"lab\", got %v", assignments[0].Value)
	}
	if assignments[1].Kind != "units" || assignments[1].Value.Str != "m" {
		t.Errorf("Expected units=\"m\", got %v", assignments[1].Value)
	}
	if len(remaining) != 1 || remaining[0].Str != "n" {
		t.Errorf("Expected remaining [\"n\"], got %v", remaining)
	}
}

func TestAssign_ShortChainLeavesEarlyKindsUnassigned(t *testing.T) {
	// Fewer values than kinds: the first-declared kinds (which run last)
	// find the chain empty and keep their defaults
	kinds := []string{"label", "units", "description"}
	written := []*parser.ValueExpr{strVal("m")}

	assignments, remaining := Assign(kinds, written)

	if assignments[0].Value != nil {
		t.Errorf("Expected no value for label, got %v", assignments[0].Value)
	}
	if assignments[1].Value != nil {
		t.Errorf("Expected no value for units, got %v", assignments[1].Value)
	}
	if assignments[2].Kind != "description" || assignments[2].Value.Str != "m" {
		t.Errorf("Expected description=\"m\", got %v", assignments[2].Value)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected nothing remaining, got %v", remaining)
	}
}

func TestAssign_EmptyChain(t *testing.T) {
	assignments, remaining := Assign([]string{"label"}, nil)

	if len(assignments) != 1 || assignments[0].Value != nil {
		t.Errorf("Expected one empty assignment, got %v", assignments)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected nothing remaining, got %v", remaining)
	}
}

func TestAssign_NoKinds(t *testing.T) {
	written := []*parser.ValueExpr{intVal(1)}
	assignments, remaining := Assign(nil, written)

	if len(assignments) != 0 {
		t.Errorf("Expected no assignments, got %v", assignments)
	}
	if len(remaining) != 1 {
		t.Errorf("Expected untouched values, got %v", remaining)
	}
}

func TestAssign_PlaceholderIsCarriedThrough(t *testing.T) {
	assignments, _ := Assign([]string{"label"}, []*parser.ValueExpr{placeholder()})

	if !assignments[0].Value.IsPlaceholder() {
		t.Errorf("Expected placeholder assignment, got %v", assignments[0].Value)
	}
}

func TestPeel_RemovesOutermost(t *testing.T) {
	chain := []*parser.ValueExpr{intVal(1), intVal(4), intVal(9)}

	value, rest := Peel(chain)
	if value.Int != 9 {
		t.Errorf("Expected 9, got %v", value)
	}
	if len(rest) != 2 || rest[1].Int != 4 {
		t.Errorf("Expected [1 4], got %v", rest)
	}
}

func TestPeel_EmptyChain(t *testing.T) {
	value, rest := Peel(nil)
	if value != nil {
		t.Errorf("Expected nil value, got %v", value)
	}
	if len(rest) != 0 {
		t.Errorf("Expected empty rest, got %v", rest)
	}
}

func TestPeelField_RewritesDeclaration(t *testing.T) {
	field := &parser.FieldNode{
		Name:       "a",
		Type:       &parser.TypeNode{Name: "Int"},
		HasDefault: true,
		Chain:      []*parser.ValueExpr{intVal(1), intVal(4)},
	}

	value, rewritten := PeelField(field)
	if value.Int != 4 {
		t.Errorf("Expected peeled value 4, got %v", value)
	}
	if !rewritten.HasDefault || len(rewritten.Chain) != 1 || rewritten.Chain[0].Int != 1 {
		t.Errorf("Expected rewritten field to keep '= 1', got %+v", rewritten)
	}

	// One more layer leaves a bare field
	value, bare := PeelField(rewritten)
	if value.Int != 1 {
		t.Errorf("Expected peeled value 1, got %v", value)
	}
	if bare.HasDefault || len(bare.Chain) != 0 {
		t.Errorf("Expected bare field, got %+v", bare)
	}

	// The input field is untouched
	if len(field.Chain) != 2 {
		t.Errorf("PeelField must not modify its input, chain is %v", field.Chain)
	}
}
