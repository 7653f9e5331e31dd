package expand

import "github.com/fieldmeta-lang/fieldmeta/compiler/parser"

// Assignment pairs one kind with the written chain value it consumes.
// Value is nil when the chain ran out before this kind's turn; the kind then
// keeps its default, exactly as if the placeholder had been written.
type Assignment struct {
	Kind  string
	Value *parser.ValueExpr
}

// Assign maps declared kinds onto the values of one field's annotation
// chain. Kinds are listed left to right as the client declared them; values
// are listed left to right as written in the field declaration.
//
// Extensions expand in reverse declared order: the last-declared kind runs
// first (innermost) and consumes the outermost remaining value, which is the
// rightmost value as written. Each subsequent kind consumes the next value
// inward. The net correspondence therefore right-aligns the declared kinds
// against the written values:
//
//	chain describe = label | units
//	a: Int = 1 | "lab" | "m"
//
// units consumes "m", label consumes "lab", and the surviving prefix [1]
// belongs to the field declaration itself.
//
// Assignments are returned in declared kind order. The second result is the
// unconsumed prefix of the written values.
func Assign(declaredKinds []string, written []*parser.ValueExpr) ([]Assignment, []*parser.ValueExpr) {
	assignments := make([]Assignment, len(declaredKinds))
	rest := written

	// Walk kinds in application order (reverse declared), peeling the
	// outermost remaining value for each.
	for i := len(declaredKinds) - 1; i >= 0; i-- {
		var value *parser.ValueExpr
		value, rest = Peel(rest)
		assignments[i] = Assignment{Kind: declaredKinds[i], Value: value}
	}

	return assignments, rest
}
