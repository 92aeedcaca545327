package parser

import (
	"strconv"
)

// Binding powers, lowest first
const (
	precLowest = iota
	precAssign
	precOr
	precAnd
	precBitOr
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precPrefix
	precPostfix
)

var binaryPrecedence = map[TokenType]int{
	TOKEN_OR:      precOr,
	TOKEN_AND:     precAnd,
	TOKEN_BITOR:   precBitOr,
	TOKEN_BITAND:  precBitAnd,
	TOKEN_EQ:      precEquality,
	TOKEN_NE:      precEquality,
	TOKEN_LT:      precRelational,
	TOKEN_GT:      precRelational,
	TOKEN_LE:      precRelational,
	TOKEN_GE:      precRelational,
	TOKEN_LSHIFT:  precShift,
	TOKEN_RSHIFT:  precShift,
	TOKEN_PLUS:    precAdditive,
	TOKEN_MINUS:   precAdditive,
	TOKEN_STAR:    precMultiplicative,
	TOKEN_SLASH:   precMultiplicative,
	TOKEN_PERCENT: precMultiplicative,
}

// ParseExpression parses an expression whose operators bind at least as
// tightly as minPrec. ParseExpression(0) parses a full expression,
// assignment included.
func (p *Parser) ParseExpression(minPrec int) (Expr, error) {
	if minPrec <= precAssign {
		return p.parseAssignment()
	}
	return p.parseBinary(minPrec)
}

// parseAssignment handles the right-associative = operator
func (p *Parser) parseAssignment() (Expr, error) {
	left, err := p.parseBinary(precOr)
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_ASSIGN {
		return left, nil
	}

	opTok := p.current
	if !isLvalue(left) {
		return nil, p.errorf(opTok, "invalid assignment target")
	}
	p.nextToken()

	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &AssignExpr{Pos: left.Span().To(value.Span()), Target: left, Value: value}, nil
}

// parseBinary is the precedence-climbing loop for left-associative
// binary operators
func (p *Parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binaryPrecedence[p.current.Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		op := p.current.Type
		p.nextToken()

		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: left.Span().To(right.Span()), Left: left, Operator: op, Right: right}
	}
}

// parseUnary handles prefix operators
func (p *Parser) parseUnary() (Expr, error) {
	switch p.current.Type {
	case TOKEN_NOT, TOKEN_PLUS, TOKEN_MINUS, TOKEN_INC, TOKEN_DEC:
		opTok := p.current
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr := &UnaryExpr{Pos: opTok.Span.To(operand.Span()), Operator: opTok.Type, Operand: operand}
		if expr.IsUpdate() && !isLvalue(operand) {
			return nil, p.errorf(opTok, "operand of '%s' must be a variable or member", opTok.Type)
		}
		return expr, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles calls, member access and postfix ++/--
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current.Type {
		case TOKEN_LPAREN:
			args, end, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Pos: expr.Span().To(end.Span), Callee: expr, Args: args}

		case TOKEN_DOT:
			p.nextToken()
			nameTok, err := p.memberName()
			if err != nil {
				return nil, err
			}
			expr = &MemberExpr{Pos: expr.Span().To(nameTok.Span), Object: expr, Property: nameTok.Value}

		case TOKEN_INC, TOKEN_DEC:
			opTok := p.current
			if !isLvalue(expr) {
				return nil, p.errorf(opTok, "operand of '%s' must be a variable or member", opTok.Type)
			}
			p.nextToken()
			expr = &UnaryExpr{Pos: expr.Span().To(opTok.Span), Operator: opTok.Type, Operand: expr, Postfix: true}

		default:
			return expr, nil
		}
	}
}

// memberName accepts an identifier or a keyword after '.', so that
// members such as obj.default stay reachable
func (p *Parser) memberName() (Token, error) {
	tok := p.current
	if tok.Type == TOKEN_IDENTIFIER {
		p.nextToken()
		return tok, nil
	}
	if _, ok := keywords[tok.Value]; ok && tok.Value != "" {
		p.nextToken()
		return tok, nil
	}
	return tok, p.errorf(tok, "expected member name after '.', got %s", describe(tok))
}

// parseArguments parses ( expr, expr, ... ) and returns the closing paren
func (p *Parser) parseArguments() ([]Expr, Token, error) {
	p.nextToken() // consume '('

	var args []Expr
	if p.current.Type == TOKEN_RPAREN {
		end := p.current
		p.nextToken()
		return args, end, nil
	}

	for {
		arg, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, Token{}, err
		}
		args = append(args, arg)
		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}

	end, err := p.expect(TOKEN_RPAREN, "after arguments")
	if err != nil {
		return nil, Token{}, err
	}
	return args, end, nil
}

// parsePrimary parses literals, identifiers, parenthesized expressions,
// clone expressions and method literals
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.current

	switch tok.Type {
	case TOKEN_INT:
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf(tok, "integer literal %s out of range", tok.Value)
		}
		p.nextToken()
		return &LiteralExpr{Pos: tok.Span, Value: v}, nil

	case TOKEN_FLOAT:
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid float literal %s", tok.Value)
		}
		p.nextToken()
		return &LiteralExpr{Pos: tok.Span, Value: v}, nil

	case TOKEN_STRING:
		p.nextToken()
		return &LiteralExpr{Pos: tok.Span, Value: tok.Literal}, nil

	case TOKEN_TRUE, TOKEN_FALSE:
		p.nextToken()
		return &LiteralExpr{Pos: tok.Span, Value: tok.Type == TOKEN_TRUE}, nil

	case TOKEN_NULL:
		p.nextToken()
		return &LiteralExpr{Pos: tok.Span}, nil

	case TOKEN_IDENTIFIER:
		p.nextToken()
		return &IdentifierExpr{Pos: tok.Span, Name: tok.Value}, nil

	case TOKEN_LPAREN:
		p.nextToken()
		inner, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_RPAREN, "to close '('"); err != nil {
			return nil, err
		}
		return inner, nil

	case TOKEN_CLONE:
		return p.parseClone()

	case TOKEN_METHOD:
		return p.parseMethodLiteral()

	case TOKEN_ILLEGAL:
		if tok.Value != "" && tok.Value[0] == '"' {
			return nil, p.errorf(tok, "unterminated string literal")
		}
	}

	return nil, p.errorf(tok, "unexpected %s", describe(tok))
}

// parseClone parses clone proto { key = expr, ... }
func (p *Parser) parseClone() (Expr, error) {
	start := p.current
	p.nextToken() // consume 'clone'

	nameTok, err := p.expect(TOKEN_IDENTIFIER, "after 'clone'")
	if err != nil {
		return nil, err
	}
	var proto Expr = &IdentifierExpr{Pos: nameTok.Span, Name: nameTok.Value}
	for p.current.Type == TOKEN_DOT {
		p.nextToken()
		member, err := p.memberName()
		if err != nil {
			return nil, err
		}
		proto = &MemberExpr{Pos: proto.Span().To(member.Span), Object: proto, Property: member.Value}
	}

	if _, err := p.expect(TOKEN_LBRACE, "after clone prototype"); err != nil {
		return nil, err
	}

	var overrides []Override
	for p.current.Type != TOKEN_RBRACE {
		keyTok, err := p.memberName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_ASSIGN, "after override key"); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, Override{Pos: keyTok.Span.To(value.Span()), Key: keyTok.Value, Value: value})

		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}

	end, err := p.expect(TOKEN_RBRACE, "to close clone overrides")
	if err != nil {
		return nil, err
	}
	return &CloneExpr{Pos: start.Span.To(end.Span), Prototype: proto, Overrides: overrides}, nil
}

// parseMethodLiteral parses method (a, b) { body }. Loop and case context
// do not extend into the body.
func (p *Parser) parseMethodLiteral() (Expr, error) {
	start := p.current
	p.nextToken() // consume 'method'

	if _, err := p.expect(TOKEN_LPAREN, "after 'method'"); err != nil {
		return nil, err
	}

	var params []string
	seen := make(map[string]bool)
	for p.current.Type != TOKEN_RPAREN {
		tok, err := p.expect(TOKEN_IDENTIFIER, "in parameter list")
		if err != nil {
			return nil, err
		}
		if seen[tok.Value] {
			return nil, p.errorf(tok, "duplicate parameter '%s'", tok.Value)
		}
		seen[tok.Value] = true
		params = append(params, tok.Value)

		if p.current.Type != TOKEN_COMMA {
			break
		}
		p.nextToken()
	}
	if _, err := p.expect(TOKEN_RPAREN, "after parameters"); err != nil {
		return nil, err
	}

	saved := p.state
	p.state = parseState{methodDepth: saved.methodDepth + 1}
	body, err := p.parseBlock()
	p.state = saved
	if err != nil {
		return nil, err
	}

	return &MethodExpr{Pos: start.Span.To(body.Pos), Params: params, Body: body}, nil
}
