package parser

import (
	"fmt"

	"github.com/fieldmeta-lang/fieldmeta/compiler/lexer"
)

// Parser transforms token streams into a schema AST
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a new Parser from a token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
		errors:  []ParseError{},
	}
}

// Parse parses the token stream and returns the AST and any errors
func (p *Parser) Parse() (*Program, []ParseError) {
	program := p.parseProgram()
	return program, p.errors
}

// parseProgram parses the top-level schema
func (p *Parser) parseProgram() *Program {
	decls := []Decl{}
	startToken := p.peek()

	for !p.isAtEnd() {
		p.skipNewlines()
		if p.isAtEnd() {
			break
		}

		switch {
		case p.check(lexer.TOKEN_KIND):
			if d := p.parseKind(); d != nil {
				decls = append(decls, d)
			}
		case p.check(lexer.TOKEN_CHAIN):
			if d := p.parseChain(); d != nil {
				decls = append(decls, d)
			}
		case p.check(lexer.TOKEN_AT), p.check(lexer.TOKEN_RECORD), p.check(lexer.TOKEN_EXTEND):
			if d := p.parseAnnotatedDecl(); d != nil {
				decls = append(decls, d)
			}
		default:
			p.addError(ParseError{
				Message:  fmt.Sprintf("Unexpected token: %s. Expected 'kind', 'chain', 'record', 'extend', or '@'.", p.peek().Lexeme),
				Location: TokenToLocation(p.peek()),
			})
			p.synchronize()
		}
	}

	return NewProgram(decls, TokenToLocation(startToken))
}

// Helper methods for token manipulation

// isAtEnd checks if we're at the end of the token stream
func (p *Parser) isAtEnd() bool {
	if p.current >= len(p.tokens) {
		return true
	}
	return p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Return EOF
	}
	return p.tokens[p.current]
}

// previous returns the previous token
func (p *Parser) previous() lexer.Token {
	if p.current > 0 {
		return p.tokens[p.current-1]
	}
	return p.tokens[0]
}

// advance consumes and returns the current token
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check checks if the current token is of the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match checks if the current token matches any of the given types
// If it matches, consumes the token and returns true
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// consume consumes a token of the given type or adds an error
func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, bool) {
	if p.check(tokenType) {
		return p.advance(), true
	}

	p.addError(ParseError{
		Message:  message,
		Location: TokenToLocation(p.peek()),
	})
	return lexer.Token{}, false
}

// skipNewlines skips any newline tokens
func (p *Parser) skipNewlines() {
	for p.match(lexer.TOKEN_NEWLINE) {
		// Keep skipping
	}
}

// expectEndOfDecl requires a newline, closing brace, or EOF after a declaration
func (p *Parser) expectEndOfDecl() {
	if p.check(lexer.TOKEN_NEWLINE) {
		p.advance()
		return
	}
	if p.check(lexer.TOKEN_RBRACE) || p.isAtEnd() {
		return
	}
	p.addError(ParseError{
		Message:  fmt.Sprintf("Unexpected token after declaration: %s", p.peek().Lexeme),
		Location: TokenToLocation(p.peek()),
	})
	p.skipUntilNewlineOrBrace()
}

// addError records a parse error
func (p *Parser) addError(err ParseError) {
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until the start of the next top-level declaration
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_KIND, lexer.TOKEN_CHAIN, lexer.TOKEN_RECORD, lexer.TOKEN_EXTEND, lexer.TOKEN_AT:
			return
		}
		p.advance()
	}
}

// skipUntilNewlineOrBrace skips tokens until a newline or closing brace
func (p *Parser) skipUntilNewlineOrBrace() {
	for !p.isAtEnd() && !p.check(lexer.TOKEN_NEWLINE) && !p.check(lexer.TOKEN_RBRACE) {
		p.advance()
	}
	p.match(lexer.TOKEN_NEWLINE)
}

// parseIdentifier parses an identifier token
func (p *Parser) parseIdentifier() (string, bool) {
	if p.check(lexer.TOKEN_IDENTIFIER) {
		return p.advance().Lexeme, true
	}

	p.addError(ParseError{
		Message:  fmt.Sprintf("Expected identifier, got %s", p.peek().Lexeme),
		Location: TokenToLocation(p.peek()),
	})
	return "", false
}
