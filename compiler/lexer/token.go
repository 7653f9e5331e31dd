package lexer

import "fmt"

// TokenType represents the type of token in a fieldmeta schema
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR
	TOKEN_COMMENT
	TOKEN_NEWLINE

	// Keywords - declarations
	TOKEN_KIND
	TOKEN_CHAIN
	TOKEN_RECORD
	TOKEN_EXTEND

	// Type keywords
	TOKEN_INT
	TOKEN_FLOAT
	TOKEN_STRING
	TOKEN_BOOL

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_INT_LITERAL
	TOKEN_FLOAT_LITERAL
	TOKEN_STRING_LITERAL
	TOKEN_TRUE
	TOKEN_FALSE

	// Operators
	TOKEN_PIPE        // |
	TOKEN_COLON       // :
	TOKEN_EQUAL       // =
	TOKEN_COMMA       // ,
	TOKEN_AT          // @
	TOKEN_MINUS       // -
	TOKEN_PLACEHOLDER // _

	// Delimiters
	TOKEN_LBRACE // {
	TOKEN_RBRACE // }
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
)

// Token represents a single lexical token
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // For literals (numbers, strings, etc.)
	Line    int
	Column  int
	File    string // Source file path
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_ERROR:
		return "ERROR"
	case TOKEN_COMMENT:
		return "COMMENT"
	case TOKEN_NEWLINE:
		return "NEWLINE"
	case TOKEN_KIND:
		return "KIND"
	case TOKEN_CHAIN:
		return "CHAIN"
	case TOKEN_RECORD:
		return "RECORD"
	case TOKEN_EXTEND:
		return "EXTEND"
	case TOKEN_INT:
		return "INT"
	case TOKEN_FLOAT:
		return "FLOAT"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_BOOL:
		return "BOOL"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_INT_LITERAL:
		return "INT_LITERAL"
	case TOKEN_FLOAT_LITERAL:
		return "FLOAT_LITERAL"
	case TOKEN_STRING_LITERAL:
		return "STRING_LITERAL"
	case TOKEN_TRUE:
		return "TRUE"
	case TOKEN_FALSE:
		return "FALSE"
	case TOKEN_PIPE:
		return "PIPE"
	case TOKEN_COLON:
		return "COLON"
	case TOKEN_EQUAL:
		return "EQUAL"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_AT:
		return "AT"
	case TOKEN_MINUS:
		return "MINUS"
	case TOKEN_PLACEHOLDER:
		return "PLACEHOLDER"
	case TOKEN_LBRACE:
		return "LBRACE"
	case TOKEN_RBRACE:
		return "RBRACE"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s(%v) [%d:%d]", t.Type, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a lexical analysis error
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
