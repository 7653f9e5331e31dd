package lexer

// keywords maps keyword strings to their token types for O(1) lookup
var keywords = map[string]TokenType{
	// Declarations
	"kind":   TOKEN_KIND,
	"chain":  TOKEN_CHAIN,
	"record": TOKEN_RECORD,
	"extend": TOKEN_EXTEND,

	// Type keywords
	"Int":    TOKEN_INT,
	"Float":  TOKEN_FLOAT,
	"String": TOKEN_STRING,
	"Bool":   TOKEN_BOOL,

	// Literals
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,

	// The reserved placeholder marker
	"_": TOKEN_PLACEHOLDER,
}

// lookupKeyword checks if an identifier is a keyword
// Returns the token type and true if it's a keyword, TOKEN_IDENTIFIER and false otherwise
func lookupKeyword(identifier string) (TokenType, bool) {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType, true
	}
	return TOKEN_IDENTIFIER, false
}
