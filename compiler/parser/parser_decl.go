package parser

import (
	"fmt"

	"github.com/fieldmeta-lang/fieldmeta/compiler/lexer"
)

// parseKind parses a metadata kind declaration
// kind bounds = (1e-7, 1.0)
func (p *Parser) parseKind() *KindNode {
	kindToken, _ := p.consume(lexer.TOKEN_KIND, "Expected 'kind' keyword")

	name, ok := p.parseIdentifier()
	if !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	if _, ok := p.consume(lexer.TOKEN_EQUAL, fmt.Sprintf("Expected '=' after kind name '%s'", name)); !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	// The placeholder marker is not a value; a kind default must be a literal
	def := p.parseValue(false)
	if def == nil {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	p.expectEndOfDecl()

	return &KindNode{
		Name:     name,
		Default:  def,
		Location: TokenToLocation(kindToken),
	}
}

// parseChain parses a combined-extension declaration
// chain describe = label | units
func (p *Parser) parseChain() *ChainNode {
	chainToken, _ := p.consume(lexer.TOKEN_CHAIN, "Expected 'chain' keyword")

	name, ok := p.parseIdentifier()
	if !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	if _, ok := p.consume(lexer.TOKEN_EQUAL, fmt.Sprintf("Expected '=' after chain name '%s'", name)); !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	links := []string{}
	for {
		link, ok := p.parseIdentifier()
		if !ok {
			p.skipUntilNewlineOrBrace()
			return nil
		}
		links = append(links, link)

		if !p.match(lexer.TOKEN_PIPE) {
			break
		}
	}

	p.expectEndOfDecl()

	return &ChainNode{
		Name:     name,
		Links:    links,
		Location: TokenToLocation(chainToken),
	}
}

// parseAnnotatedDecl parses extension markers followed by a record or extend
// declaration
// @default @bounds record Model { ... }
func (p *Parser) parseAnnotatedDecl() Decl {
	markers := []string{}
	for p.check(lexer.TOKEN_AT) {
		p.advance() // consume @
		name, ok := p.parseIdentifier()
		if !ok {
			p.synchronize()
			return nil
		}
		markers = append(markers, name)
		p.skipNewlines()
	}

	switch {
	case p.check(lexer.TOKEN_RECORD):
		return p.parseRecord(markers)
	case p.check(lexer.TOKEN_EXTEND):
		return p.parseExtend(markers)
	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected 'record' or 'extend' after extension markers, got %s", p.peek().Lexeme),
			Location: TokenToLocation(p.peek()),
		})
		p.synchronize()
		return nil
	}
}

// parseRecord parses a record declaration (the bare form)
func (p *Parser) parseRecord(markers []string) *RecordNode {
	recordToken, _ := p.consume(lexer.TOKEN_RECORD, "Expected 'record' keyword")

	name, ok := p.parseIdentifier()
	if !ok {
		p.synchronize()
		return nil
	}

	record := &RecordNode{
		Name:       name,
		Extensions: markers,
		Fields:     []*FieldNode{},
		Location:   TokenToLocation(recordToken),
	}

	if _, ok := p.consume(lexer.TOKEN_LBRACE, "Expected '{' after record name"); !ok {
		p.synchronize()
		return nil
	}

	p.skipNewlines()

	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		if field := p.parseRecordField(); field != nil {
			record.Fields = append(record.Fields, field)
		}
		p.skipNewlines()
	}

	if _, ok := p.consume(lexer.TOKEN_RBRACE, "Expected '}' after record body"); !ok {
		return record // Return partial AST
	}

	return record
}

// parseExtend parses an overrides-only declaration (the typed form)
func (p *Parser) parseExtend(markers []string) *ExtendNode {
	extendToken, _ := p.consume(lexer.TOKEN_EXTEND, "Expected 'extend' keyword")

	if len(markers) == 0 {
		p.addError(ParseError{
			Message:  "An 'extend' declaration requires at least one extension marker (@name)",
			Location: TokenToLocation(extendToken),
		})
	}

	name, ok := p.parseIdentifier()
	if !ok {
		p.synchronize()
		return nil
	}

	extend := &ExtendNode{
		TypeName:   name,
		Extensions: markers,
		Fields:     []*FieldNode{},
		Location:   TokenToLocation(extendToken),
	}

	if _, ok := p.consume(lexer.TOKEN_LBRACE, "Expected '{' after record name"); !ok {
		p.synchronize()
		return nil
	}

	p.skipNewlines()

	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		if field := p.parseExtendField(); field != nil {
			extend.Fields = append(extend.Fields, field)
		}
		p.skipNewlines()
	}

	if _, ok := p.consume(lexer.TOKEN_RBRACE, "Expected '}' after extend body"); !ok {
		return extend
	}

	if len(markers) == 0 {
		return nil
	}
	return extend
}

// parseRecordField parses one field declaration inside a record body.
// Two annotated surface forms exist:
//
//	a: Int = 1 | 4     default expression carrying the annotation chain
//	a: Int | (1, 4)    no ordinary default, chain follows the type
func (p *Parser) parseRecordField() *FieldNode {
	fieldStart := p.peek()

	name, ok := p.parseFieldName()
	if !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	if _, ok := p.consume(lexer.TOKEN_COLON, fmt.Sprintf("Expected ':' after field name '%s'", name)); !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	fieldType, ok := p.parseType()
	if !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	field := NewFieldNode(name, fieldType, TokenToLocation(fieldStart))

	switch {
	case p.match(lexer.TOKEN_EQUAL):
		field.HasDefault = true
		chain, ok := p.parseChainValues()
		if !ok {
			p.skipUntilNewlineOrBrace()
			return nil
		}
		field.Chain = chain
	case p.match(lexer.TOKEN_PIPE):
		chain, ok := p.parseChainValues()
		if !ok {
			p.skipUntilNewlineOrBrace()
			return nil
		}
		field.Chain = chain
	}

	p.expectEndOfDecl()
	return field
}

// parseExtendField parses one field override inside an extend body
//
//	a | (1, 4)
func (p *Parser) parseExtendField() *FieldNode {
	fieldStart := p.peek()

	name, ok := p.parseFieldName()
	if !ok {
		p.skipUntilNewlineOrBrace()
		return nil
	}

	field := NewFieldNode(name, nil, TokenToLocation(fieldStart))

	if p.match(lexer.TOKEN_PIPE) {
		chain, ok := p.parseChainValues()
		if !ok {
			p.skipUntilNewlineOrBrace()
			return nil
		}
		field.Chain = chain
	}

	p.expectEndOfDecl()
	return field
}

// parseFieldName parses a field name, which is an ordinary identifier
func (p *Parser) parseFieldName() (string, bool) {
	if p.check(lexer.TOKEN_IDENTIFIER) {
		return p.advance().Lexeme, true
	}

	p.addError(ParseError{
		Message:  fmt.Sprintf("Expected field name, got %s", p.peek().Lexeme),
		Location: TokenToLocation(p.peek()),
	})
	return "", false
}

// parseType parses a field type annotation
func (p *Parser) parseType() (*TypeNode, bool) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INT, lexer.TOKEN_FLOAT, lexer.TOKEN_STRING, lexer.TOKEN_BOOL:
		p.advance()
		return &TypeNode{Name: tok.Lexeme, Location: TokenToLocation(tok)}, true
	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected field type (Int, Float, String, Bool), got %s", tok.Lexeme),
			Location: TokenToLocation(tok),
		})
		return nil, false
	}
}

// parseChainValues parses a pipe-separated annotation chain
func (p *Parser) parseChainValues() ([]*ValueExpr, bool) {
	values := []*ValueExpr{}
	for {
		value := p.parseValue(true)
		if value == nil {
			return nil, false
		}
		values = append(values, value)

		if !p.match(lexer.TOKEN_PIPE) {
			break
		}
	}
	return values, true
}

// parseValue parses a literal value expression. The placeholder marker is
// only legal inside annotation chains.
func (p *Parser) parseValue(allowPlaceholder bool) *ValueExpr {
	tok := p.peek()

	switch tok.Type {
	case lexer.TOKEN_INT_LITERAL:
		p.advance()
		return &ValueExpr{Kind: IntValue, Int: tok.Literal.(int64), Location: TokenToLocation(tok)}

	case lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		return &ValueExpr{Kind: FloatValue, Float: tok.Literal.(float64), Location: TokenToLocation(tok)}

	case lexer.TOKEN_STRING_LITERAL:
		p.advance()
		return &ValueExpr{Kind: StringValue, Str: tok.Literal.(string), Location: TokenToLocation(tok)}

	case lexer.TOKEN_TRUE:
		p.advance()
		return &ValueExpr{Kind: BoolValue, Bool: true, Location: TokenToLocation(tok)}

	case lexer.TOKEN_FALSE:
		p.advance()
		return &ValueExpr{Kind: BoolValue, Bool: false, Location: TokenToLocation(tok)}

	case lexer.TOKEN_MINUS:
		p.advance()
		num := p.peek()
		switch num.Type {
		case lexer.TOKEN_INT_LITERAL:
			p.advance()
			return &ValueExpr{Kind: IntValue, Int: -num.Literal.(int64), Location: TokenToLocation(tok)}
		case lexer.TOKEN_FLOAT_LITERAL:
			p.advance()
			return &ValueExpr{Kind: FloatValue, Float: -num.Literal.(float64), Location: TokenToLocation(tok)}
		default:
			p.addError(ParseError{
				Message:  "Expected number after '-'",
				Location: TokenToLocation(num),
			})
			return nil
		}

	case lexer.TOKEN_PLACEHOLDER:
		p.advance()
		if !allowPlaceholder {
			p.addError(ParseError{
				Message:  "The placeholder '_' is only allowed inside annotation chains",
				Location: TokenToLocation(tok),
			})
			return nil
		}
		return &ValueExpr{Kind: PlaceholderValue, Location: TokenToLocation(tok)}

	case lexer.TOKEN_LPAREN:
		return p.parseTuple(allowPlaceholder)

	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected literal value, got %s", tok.Lexeme),
			Location: TokenToLocation(tok),
		})
		return nil
	}
}

// parseTuple parses a parenthesized tuple of values
// (1e-7, 1.0)
func (p *Parser) parseTuple(allowPlaceholder bool) *ValueExpr {
	lparen, _ := p.consume(lexer.TOKEN_LPAREN, "Expected '('")

	tuple := &ValueExpr{Kind: TupleValue, Location: TokenToLocation(lparen)}

	if p.match(lexer.TOKEN_RPAREN) {
		return tuple // empty tuple
	}

	for {
		elem := p.parseValue(allowPlaceholder)
		if elem == nil {
			return nil
		}
		tuple.Tuple = append(tuple.Tuple, elem)

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if _, ok := p.consume(lexer.TOKEN_RPAREN, "Expected ')' after tuple elements"); !ok {
		return nil
	}

	return tuple
}
