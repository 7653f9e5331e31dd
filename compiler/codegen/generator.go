// Package codegen generates Go code from an expanded schema: plain structs
// for the cleaned record shapes, and a registration file that loads every
// kind, record, and override binding into the runtime registry at init time.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fieldmeta-lang/fieldmeta/compiler/expand"
)

// metadataImport is the runtime package generated registration code loads
// its bindings into
const metadataImport = "github.com/fieldmeta-lang/fieldmeta/runtime/metadata"

// generatedHeader marks generated files per the Go convention recognized by
// tooling
const generatedHeader = "// Code generated by fieldmeta. DO NOT EDIT."

// Generator transforms an expanded schema into Go source files
type Generator struct {
	buf    *bytes.Buffer
	indent int
}

// NewGenerator creates a new code generator
func NewGenerator() *Generator {
	return &Generator{
		buf: &bytes.Buffer{},
	}
}

// GenerateSchema generates all output files for a schema, keyed by file
// name: types.go with the record structs and constructors, register.go with
// the init-time registry loading.
func (g *Generator) GenerateSchema(schema *expand.Schema, pkg string) (map[string]string, error) {
	if pkg == "" {
		return nil, fmt.Errorf("codegen: package name cannot be empty")
	}

	files := make(map[string]string)

	types, err := g.GenerateTypes(schema, pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate types: %w", err)
	}
	files["types.go"] = types

	register, err := g.GenerateRegister(schema, pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to generate registration: %w", err)
	}
	files["register.go"] = register

	return files, nil
}

// GenerateTypes generates the record structs with their ordinary defaults
// applied by per-record constructors
func (g *Generator) GenerateTypes(schema *expand.Schema, pkg string) (string, error) {
	g.reset()

	g.writeLine(generatedHeader)
	g.writeLine("")
	g.writeLine("package %s", pkg)

	for _, record := range schema.Records {
		g.writeLine("")
		if err := g.generateStruct(record); err != nil {
			return "", err
		}
		g.writeLine("")
		g.generateConstructor(record)
	}

	return g.buf.String(), nil
}

// generateStruct generates the Go struct for one cleaned record
func (g *Generator) generateStruct(record *expand.RecordDef) error {
	if record.Name == "" {
		return fmt.Errorf("codegen: record name cannot be empty")
	}

	g.writeLine("type %s struct {", record.Name)
	g.indent++

	type fieldInfo struct {
		name string
		typ  string
		tag  string
	}
	fields := make([]fieldInfo, len(record.Fields))
	maxNameLen, maxTypeLen := 0, 0
	for i, f := range record.Fields {
		info := fieldInfo{
			name: toGoFieldName(f.Name),
			typ:  toGoType(f.Type),
			tag:  fmt.Sprintf("`json:%q`", f.Name),
		}
		fields[i] = info
		if len(info.name) > maxNameLen {
			maxNameLen = len(info.name)
		}
		if len(info.typ) > maxTypeLen {
			maxTypeLen = len(info.typ)
		}
	}

	for _, f := range fields {
		g.writeLine("%s%s %s%s %s",
			f.name,
			strings.Repeat(" ", maxNameLen-len(f.name)),
			f.typ,
			strings.Repeat(" ", maxTypeLen-len(f.typ)),
			f.tag)
	}

	g.indent--
	g.writeLine("}")
	return nil
}

// generateConstructor generates the NewX constructor applying the ordinary
// defaults that survived expansion
func (g *Generator) generateConstructor(record *expand.RecordDef) {
	g.writeLine("// New%s returns a %s with its declared defaults applied",
		record.Name, record.Name)
	g.writeLine("func New%s() *%s {", record.Name, record.Name)
	g.indent++

	var defaulted []*expand.FieldDef
	for _, f := range record.Fields {
		if f.Default != nil {
			defaulted = append(defaulted, f)
		}
	}

	if len(defaulted) == 0 {
		g.writeLine("return &%s{}", record.Name)
	} else {
		g.writeLine("return &%s{", record.Name)
		g.indent++
		for _, f := range defaulted {
			g.writeLine("%s: %s,", toGoFieldName(f.Name), fieldLiteral(f.Default))
		}
		g.indent--
		g.writeLine("}")
	}

	g.indent--
	g.writeLine("}")
}

// GenerateRegister generates the registration file: an init function that
// defines every kind, declares every record shape, registers every override
// binding, and freezes the registry.
func (g *Generator) GenerateRegister(schema *expand.Schema, pkg string) (string, error) {
	g.reset()

	g.writeLine(generatedHeader)
	g.writeLine("")
	g.writeLine("package %s", pkg)
	g.writeLine("")
	g.writeLine("import %q", metadataImport)
	g.writeLine("")
	g.writeLine("func init() {")
	g.indent++

	for _, kind := range schema.Kinds {
		g.writeLine("metadata.MustDefineKind(%q, func() interface{} { return %s })",
			kind.Name, goLiteral(kind.Default))
	}

	for _, record := range schema.Records {
		args := make([]string, 0, len(record.Fields)+1)
		args = append(args, fmt.Sprintf("%q", record.Name))
		for _, f := range record.Fields {
			args = append(args, fmt.Sprintf("%q", f.Name))
		}
		g.writeLine("metadata.MustRegisterRecord(%s)", strings.Join(args, ", "))
	}

	for _, b := range schema.Bindings {
		g.writeLine("metadata.MustRegisterOverride(%q, %q, %q, %s)",
			b.Record, b.Field, b.Kind, goLiteral(b.Value))
	}

	g.writeLine("metadata.Freeze()")
	g.indent--
	g.writeLine("}")

	return g.buf.String(), nil
}

// reset clears the generator state
func (g *Generator) reset() {
	g.buf.Reset()
	g.indent = 0
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("\t")
	}

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}
