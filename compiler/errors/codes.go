package errors

// Error codes by phase. The numeric suffix is stable across releases so
// tooling can match on it.
const (
	// Lexer
	CodeLex = "LEX001"

	// Parser
	CodeSyntax = "SYN001"

	// Expansion
	CodeUnknownExtension = "EXP001" // marker or chain link names no kind or chain
	CodeResidualChain    = "EXP002" // annotation values left after all extensions ran
	CodeDuplicateKind    = "EXP003"
	CodeDuplicateChain   = "EXP004"
	CodeDuplicateRecord  = "EXP005"
	CodeUnknownRecord    = "EXP006" // extend names a record that was never declared
	CodeUnknownField     = "EXP007" // extend names a field the record does not have
	CodeDuplicateField   = "EXP008"

	// Code generation
	CodeGen = "GEN001"
)
