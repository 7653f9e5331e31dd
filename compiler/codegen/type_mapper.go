package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldmeta-lang/fieldmeta/compiler/parser"
)

// toGoType converts a schema field type to its Go type
func toGoType(typeName string) string {
	switch typeName {
	case "Int":
		return "int64"
	case "Float":
		return "float64"
	case "String":
		return "string"
	case "Bool":
		return "bool"
	default:
		// The parser only admits the four scalar types; anything else is a
		// codegen caller bug
		return typeName
	}
}

// Common initialisms that should be all caps in Go
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"uuid": "UUID",
	"api":  "API",
	"http": "HTTP",
	"json": "JSON",
	"xml":  "XML",
	"html": "HTML",
	"sql":  "SQL",
	"ip":   "IP",
}

// toGoFieldName converts a snake_case field name to an exported PascalCase
// Go field name
func toGoFieldName(name string) string {
	parts := strings.Split(name, "_")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		if upper, ok := initialisms[strings.ToLower(part)]; ok {
			out = append(out, upper)
			continue
		}
		out = append(out, strings.ToUpper(part[0:1])+part[1:])
	}
	return strings.Join(out, "")
}

// goLiteral renders a value expression as a Go expression with an explicit
// dynamic type, for use as an interface{} argument. Scalars carry the int64
// and float64 conversions the runtime registry expects; tuples become fresh
// []interface{} composite literals.
func goLiteral(v *parser.ValueExpr) string {
	switch v.Kind {
	case parser.IntValue:
		return fmt.Sprintf("int64(%d)", v.Int)
	case parser.FloatValue:
		return fmt.Sprintf("float64(%s)", formatFloat(v.Float))
	case parser.StringValue:
		return strconv.Quote(v.Str)
	case parser.BoolValue:
		return strconv.FormatBool(v.Bool)
	case parser.TupleValue:
		elems := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			elems[i] = goLiteral(e)
		}
		return "[]interface{}{" + strings.Join(elems, ", ") + "}"
	default:
		// Placeholders never survive expansion
		return "nil"
	}
}

// fieldLiteral renders a value expression as an untyped Go literal for a
// struct field initializer, where the field type drives conversion
func fieldLiteral(v *parser.ValueExpr) string {
	switch v.Kind {
	case parser.IntValue:
		return strconv.FormatInt(v.Int, 10)
	case parser.FloatValue:
		return formatFloat(v.Float)
	case parser.StringValue:
		return strconv.Quote(v.Str)
	case parser.BoolValue:
		return strconv.FormatBool(v.Bool)
	default:
		return "nil"
	}
}

// formatFloat renders a float so it reads back as the same value, always
// with a decimal point or exponent so the literal stays a float
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
