package parser

// parseStatement parses a single statement
func (p *Parser) parseStatement() (Stmt, error) {
	switch p.current.Type {
	case TOKEN_LET, TOKEN_CONST:
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_SEMICOLON, "after declaration"); err != nil {
			return nil, err
		}
		return decl, nil
	case TOKEN_IF:
		return p.parseIfStatement()
	case TOKEN_WHILE:
		return p.parseWhileStatement()
	case TOKEN_FOR:
		return p.parseForStatement()
	case TOKEN_CASE:
		return p.parseCaseStatement()
	case TOKEN_RETURN:
		return p.parseReturnStatement()
	case TOKEN_BREAK:
		return p.parseBreakStatement()
	case TOKEN_CONTINUE:
		return p.parseContinueStatement()
	case TOKEN_IMPORT:
		return p.parseImportStatement()
	case TOKEN_EXPORT:
		return p.parseExportStatement()
	case TOKEN_LBRACE:
		return p.parseBlock()
	case TOKEN_SEMICOLON:
		// Empty statement
		span := p.current.Span
		p.nextToken()
		return &ExprStmt{Pos: span}, nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (Stmt, error) {
	expr, err := p.ParseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(TOKEN_SEMICOLON, "after expression")
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: expr.Span().To(end.Span), Expr: expr}, nil
}

// parseVarDecl parses let/const name [= expr] without the trailing ';'
func (p *Parser) parseVarDecl() (*VarDecl, error) {
	kw := p.current
	p.nextToken() // consume 'let' / 'const'

	nameTok, err := p.expect(TOKEN_IDENTIFIER, "after '"+kw.Type.String()+"'")
	if err != nil {
		return nil, err
	}

	decl := &VarDecl{Pos: kw.Span.To(nameTok.Span), Const: kw.Type == TOKEN_CONST, Name: nameTok.Value}
	if p.current.Type == TOKEN_ASSIGN {
		p.nextToken()
		init, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		decl.Init = init
		decl.Pos = kw.Span.To(init.Span())
	}

	if err := p.validateVarDecl(decl); err != nil {
		return nil, err
	}
	return decl, nil
}

// validateVarDecl rejects declarations the evaluator could never honor
func (p *Parser) validateVarDecl(decl *VarDecl) error {
	if decl.Const && decl.Init == nil {
		return &SyntaxError{
			Message: "const declaration of '" + decl.Name + "' requires an initializer",
			Span:    decl.Pos,
			Path:    p.path,
		}
	}
	return nil
}

// parseBlock parses { statements }
func (p *Parser) parseBlock() (*BlockStmt, error) {
	start, err := p.expect(TOKEN_LBRACE, "to open block")
	if err != nil {
		return nil, err
	}

	block := &BlockStmt{}
	for p.current.Type != TOKEN_RBRACE {
		if p.current.Type == TOKEN_EOF {
			return nil, p.errorf(p.current, "expected '}' to close block, got end of input")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	end := p.current
	p.nextToken() // consume '}'
	block.Pos = start.Span.To(end.Span)
	return block, nil
}

// parseCondition parses ( expr )
func (p *Parser) parseCondition(keyword string) (Expr, error) {
	if _, err := p.expect(TOKEN_LPAREN, "after '"+keyword+"'"); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_RPAREN, "after "+keyword+" condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseLoopBody parses a block with break/continue enabled
func (p *Parser) parseLoopBody() (*BlockStmt, error) {
	p.state.loopDepth++
	body, err := p.parseBlock()
	p.state.loopDepth--
	return body, err
}

// parseIfStatement parses if (cond) { } [else if ... | else { }]
func (p *Parser) parseIfStatement() (Stmt, error) {
	start := p.current
	p.nextToken() // consume 'if'

	cond, err := p.parseCondition("if")
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Pos: start.Span.To(then.Pos), Condition: cond, Then: then}
	if p.current.Type != TOKEN_ELSE {
		return stmt, nil
	}
	p.nextToken() // consume 'else'

	if p.current.Type == TOKEN_IF {
		elseIf, err := p.parseIfStatement()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseIf
	} else {
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
	}
	stmt.Pos = start.Span.To(stmt.Else.Span())
	return stmt, nil
}

// parseWhileStatement parses while (cond) { body }
func (p *Parser) parseWhileStatement() (Stmt, error) {
	start := p.current
	p.nextToken() // consume 'while'

	cond, err := p.parseCondition("while")
	if err != nil {
		return nil, err
	}
	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Pos: start.Span.To(body.Pos), Condition: cond, Body: body}, nil
}

// parseForStatement parses for (init; cond; update) { body }. The
// parentheses are optional, each clause may be empty and both ';' are
// required.
func (p *Parser) parseForStatement() (Stmt, error) {
	start := p.current
	p.nextToken() // consume 'for'

	parenthesized := p.current.Type == TOKEN_LPAREN
	if parenthesized {
		p.nextToken()
	}

	stmt := &ForStmt{}

	switch p.current.Type {
	case TOKEN_SEMICOLON:
	case TOKEN_LET, TOKEN_CONST:
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		stmt.Init = decl
	default:
		expr, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Init = &ExprStmt{Pos: expr.Span(), Expr: expr}
	}
	if _, err := p.expect(TOKEN_SEMICOLON, "after for initializer"); err != nil {
		return nil, err
	}

	if p.current.Type != TOKEN_SEMICOLON {
		cond, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Condition = cond
	}
	if _, err := p.expect(TOKEN_SEMICOLON, "after for condition"); err != nil {
		return nil, err
	}

	closer := TOKEN_LBRACE
	if parenthesized {
		closer = TOKEN_RPAREN
	}
	if p.current.Type != closer {
		update, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if parenthesized {
		if _, err := p.expect(TOKEN_RPAREN, "after for clauses"); err != nil {
			return nil, err
		}
	}

	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	stmt.Pos = start.Span.To(body.Pos)
	return stmt, nil
}

// parseCaseStatement parses
//
//	case (expr) { of expr -> stmt ... default -> stmt }
func (p *Parser) parseCaseStatement() (Stmt, error) {
	start := p.current
	p.nextToken() // consume 'case'

	disc, err := p.parseCondition("case")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_LBRACE, "to open case arms"); err != nil {
		return nil, err
	}

	stmt := &CaseStmt{Discriminant: disc}
	sawDefault := false

	p.state.caseDepth++
	defer func() { p.state.caseDepth-- }()

	for p.current.Type != TOKEN_RBRACE {
		armTok := p.current
		arm := &CaseTest{}

		switch armTok.Type {
		case TOKEN_OF:
			p.nextToken()
			test, err := p.ParseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			arm.Test = test
		case TOKEN_DEFAULT:
			if sawDefault {
				return nil, p.errorf(armTok, "case has more than one default arm")
			}
			sawDefault = true
			arm.Default = true
			p.nextToken()
		default:
			return nil, p.errorf(armTok, "expected 'of' or 'default' in case, got %s", describe(armTok))
		}

		if _, err := p.expect(TOKEN_ARROW, "after case test"); err != nil {
			return nil, err
		}
		body, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		arm.Body = body
		arm.Pos = armTok.Span.To(body.Span())
		stmt.Tests = append(stmt.Tests, arm)
	}

	end := p.current
	p.nextToken() // consume '}'
	stmt.Pos = start.Span.To(end.Span)
	return stmt, nil
}

func (p *Parser) parseReturnStatement() (Stmt, error) {
	tok := p.current
	if p.state.methodDepth == 0 {
		return nil, p.errorf(tok, "return outside of method")
	}
	p.nextToken() // consume 'return'

	stmt := &ReturnStmt{Pos: tok.Span}
	if p.current.Type != TOKEN_SEMICOLON {
		value, err := p.ParseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	end, err := p.expect(TOKEN_SEMICOLON, "after return")
	if err != nil {
		return nil, err
	}
	stmt.Pos = tok.Span.To(end.Span)
	return stmt, nil
}

func (p *Parser) parseBreakStatement() (Stmt, error) {
	tok := p.current
	if p.state.loopDepth == 0 && p.state.caseDepth == 0 {
		return nil, p.errorf(tok, "break outside of loop or case")
	}
	p.nextToken()
	end, err := p.expect(TOKEN_SEMICOLON, "after break")
	if err != nil {
		return nil, err
	}
	return &BreakStmt{Pos: tok.Span.To(end.Span)}, nil
}

func (p *Parser) parseContinueStatement() (Stmt, error) {
	tok := p.current
	if p.state.loopDepth == 0 {
		return nil, p.errorf(tok, "continue outside of loop")
	}
	p.nextToken()
	end, err := p.expect(TOKEN_SEMICOLON, "after continue")
	if err != nil {
		return nil, err
	}
	return &ContinueStmt{Pos: tok.Span.To(end.Span)}, nil
}

// parseImportStatement parses import "path"; or import name;
func (p *Parser) parseImportStatement() (Stmt, error) {
	tok := p.current
	p.nextToken() // consume 'import'

	var path string
	switch p.current.Type {
	case TOKEN_STRING:
		path = p.current.Literal
	case TOKEN_IDENTIFIER:
		path = p.current.Value
	default:
		return nil, p.errorf(p.current, "expected module path after 'import', got %s", describe(p.current))
	}
	p.nextToken()

	end, err := p.expect(TOKEN_SEMICOLON, "after import")
	if err != nil {
		return nil, err
	}
	return &ImportStmt{Pos: tok.Span.To(end.Span), Path: path}, nil
}

// parseExportStatement parses export let|const ...;
func (p *Parser) parseExportStatement() (Stmt, error) {
	tok := p.current
	p.nextToken() // consume 'export'

	if p.current.Type != TOKEN_LET && p.current.Type != TOKEN_CONST {
		return nil, p.errorf(p.current, "expected declaration after 'export', got %s", describe(p.current))
	}
	decl, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(TOKEN_SEMICOLON, "after declaration")
	if err != nil {
		return nil, err
	}
	return &ExportStmt{Pos: tok.Span.To(end.Span), Decl: decl}, nil
}
