package parser

import (
	"testing"

	"github.com/fieldmeta-lang/fieldmeta/compiler/lexer"
)

// Helper function to parse source and return AST and errors
func parseSource(t *testing.T, source string) (*Program, []ParseError) {
	t.Helper()
	l := lexer.New(source, "test.fm")
	tokens, lexErrors := l.ScanTokens()

	if len(lexErrors) > 0 {
		t.Fatalf("Lexer errors: %v", lexErrors)
	}

	p := New(tokens)
	return p.Parse()
}

// mustParse parses source and fails the test on any parse error
func mustParse(t *testing.T, source string) *Program {
	t.Helper()
	program, errors := parseSource(t, source)
	if len(errors) > 0 {
		t.Fatalf("Expected no errors, got: %v", errors)
	}
	return program
}

func TestParser_KindDeclaration(t *testing.T) {
	program := mustParse(t, `kind default = 0`)

	if len(program.Decls) != 1 {
		t.Fatalf("Expected 1 declaration, got %d", len(program.Decls))
	}

	kind, ok := program.Decls[0].(*KindNode)
	if !ok {
		t.Fatalf("Expected KindNode, got %T", program.Decls[0])
	}
	if kind.Name != "default" {
		t.Errorf("Expected kind name 'default', got '%s'", kind.Name)
	}
	if kind.Default.Kind != IntValue || kind.Default.Int != 0 {
		t.Errorf("Expected default 0, got %s", kind.Default)
	}
}

func TestParser_KindWithTupleDefault(t *testing.T) {
	program := mustParse(t, `kind bounds = (1e-7, 1.0)`)

	kind := program.Decls[0].(*KindNode)
	if kind.Default.Kind != TupleValue {
		t.Fatalf("Expected tuple default, got %s", kind.Default)
	}
	if len(kind.Default.Tuple) != 2 {
		t.Fatalf("Expected 2 tuple elements, got %d", len(kind.Default.Tuple))
	}
	if kind.Default.Tuple[0].Float != 1e-7 {
		t.Errorf("Expected first element 1e-7, got %v", kind.Default.Tuple[0].Float)
	}
}

func TestParser_KindDefaultRejectsPlaceholder(t *testing.T) {
	_, errors := parseSource(t, `kind label = _`)
	if len(errors) == 0 {
		t.Fatal("Expected error for placeholder kind default")
	}
}

func TestParser_ChainDeclaration(t *testing.T) {
	program := mustParse(t, `
kind label = ""
kind units = ""
chain describe = label | units
`)

	if len(program.Decls) != 3 {
		t.Fatalf("Expected 3 declarations, got %d", len(program.Decls))
	}

	chain, ok := program.Decls[2].(*ChainNode)
	if !ok {
		t.Fatalf("Expected ChainNode, got %T", program.Decls[2])
	}
	if chain.Name != "describe" {
		t.Errorf("Expected chain name 'describe', got '%s'", chain.Name)
	}
	if len(chain.Links) != 2 || chain.Links[0] != "label" || chain.Links[1] != "units" {
		t.Errorf("Expected links [label units], got %v", chain.Links)
	}
}

func TestParser_AnnotatedRecord(t *testing.T) {
	program := mustParse(t, `
@default
record Model {
  a: Int = 1 | 4
  b: Int = 4 | 9
}
`)

	record, ok := program.Decls[0].(*RecordNode)
	if !ok {
		t.Fatalf("Expected RecordNode, got %T", program.Decls[0])
	}
	if record.Name != "Model" {
		t.Errorf("Expected record name 'Model', got '%s'", record.Name)
	}
	if len(record.Extensions) != 1 || record.Extensions[0] != "default" {
		t.Errorf("Expected extensions [default], got %v", record.Extensions)
	}
	if len(record.Fields) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(record.Fields))
	}

	a := record.Fields[0]
	if a.Name != "a" {
		t.Errorf("Expected field name 'a', got '%s'", a.Name)
	}
	if a.Type.Name != "Int" {
		t.Errorf("Expected type 'Int', got '%s'", a.Type.Name)
	}
	if !a.HasDefault {
		t.Error("Expected field a to carry a default expression")
	}
	if len(a.Chain) != 2 || a.Chain[0].Int != 1 || a.Chain[1].Int != 4 {
		t.Errorf("Expected chain [1 4], got %v", a.Chain)
	}
}

func TestParser_FieldChainWithoutDefault(t *testing.T) {
	program := mustParse(t, `
@bounds
record Model {
  a: Int | (1, 4)
}
`)

	record := program.Decls[0].(*RecordNode)
	a := record.Fields[0]
	if a.HasDefault {
		t.Error("Expected no ordinary default for field a")
	}
	if len(a.Chain) != 1 || a.Chain[0].Kind != TupleValue {
		t.Fatalf("Expected a single tuple chain value, got %v", a.Chain)
	}
}

func TestParser_PlaceholderInChain(t *testing.T) {
	program := mustParse(t, `
@label
record Sensor {
  temp: Float | _
}
`)

	record := program.Decls[0].(*RecordNode)
	temp := record.Fields[0]
	if len(temp.Chain) != 1 || !temp.Chain[0].IsPlaceholder() {
		t.Fatalf("Expected a placeholder chain value, got %v", temp.Chain)
	}
}

func TestParser_StackedMarkers(t *testing.T) {
	program := mustParse(t, `
@label @units
record Sensor {
  temp: Float = 0.0 | "temperature" | "celsius"
}
`)

	record := program.Decls[0].(*RecordNode)
	if len(record.Extensions) != 2 || record.Extensions[0] != "label" || record.Extensions[1] != "units" {
		t.Errorf("Expected extensions [label units], got %v", record.Extensions)
	}
	if len(record.Fields[0].Chain) != 3 {
		t.Errorf("Expected 3 chain values, got %d", len(record.Fields[0].Chain))
	}
}

func TestParser_PlainRecord(t *testing.T) {
	program := mustParse(t, `
record Point {
  x: Float
  y: Float
}
`)

	record := program.Decls[0].(*RecordNode)
	if len(record.Extensions) != 0 {
		t.Errorf("Expected no extensions, got %v", record.Extensions)
	}
	for _, f := range record.Fields {
		if len(f.Chain) != 0 {
			t.Errorf("Field %s: expected no chain, got %v", f.Name, f.Chain)
		}
	}
}

func TestParser_ExtendDeclaration(t *testing.T) {
	program := mustParse(t, `
@bounds
extend Model {
  a | (1, 4)
  b | _
}
`)

	extend, ok := program.Decls[0].(*ExtendNode)
	if !ok {
		t.Fatalf("Expected ExtendNode, got %T", program.Decls[0])
	}
	if extend.TypeName != "Model" {
		t.Errorf("Expected type name 'Model', got '%s'", extend.TypeName)
	}
	if len(extend.Fields) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(extend.Fields))
	}
	if extend.Fields[0].Type != nil {
		t.Error("Extend fields must not carry type annotations")
	}
	if !extend.Fields[1].Chain[0].IsPlaceholder() {
		t.Error("Expected placeholder for field b")
	}
}

func TestParser_ExtendRequiresMarker(t *testing.T) {
	_, errors := parseSource(t, `
extend Model {
  a | 4
}
`)
	if len(errors) == 0 {
		t.Fatal("Expected error for extend without extension marker")
	}
}

func TestParser_NegativeValues(t *testing.T) {
	program := mustParse(t, `
@bounds
record Model {
  a: Float | (-1.5, 2)
}
`)

	record := program.Decls[0].(*RecordNode)
	tuple := record.Fields[0].Chain[0]
	if tuple.Tuple[0].Float != -1.5 {
		t.Errorf("Expected -1.5, got %v", tuple.Tuple[0].Float)
	}
	if tuple.Tuple[1].Int != 2 {
		t.Errorf("Expected 2, got %v", tuple.Tuple[1].Int)
	}
}

func TestParser_MissingType(t *testing.T) {
	_, errors := parseSource(t, `
record Model {
  a = 1 | 4
}
`)
	if len(errors) == 0 {
		t.Fatal("Expected error for field without type annotation")
	}
}

func TestParser_RecoversAfterBadDeclaration(t *testing.T) {
	program, errors := parseSource(t, `
kind default =
kind label = ""
`)
	if len(errors) == 0 {
		t.Fatal("Expected error for kind without default expression")
	}

	// The second kind should still parse
	found := false
	for _, d := range program.Decls {
		if k, ok := d.(*KindNode); ok && k.Name == "label" {
			found = true
		}
	}
	if !found {
		t.Error("Expected parser to recover and parse the following kind")
	}
}

func TestParser_ValueExprString(t *testing.T) {
	program := mustParse(t, `kind bounds = (1e-7, 1.0)`)
	kind := program.Decls[0].(*KindNode)

	got := kind.Default.String()
	want := "(1e-07, 1)"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
