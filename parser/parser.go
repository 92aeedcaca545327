package parser

import (
	"fmt"
)

// parseState records which constructs are open while parsing, so that
// break/continue/return can be validated without running the program
type parseState struct {
	loopDepth   int
	caseDepth   int
	methodDepth int
}

// Parser turns a token stream into a Program
type Parser struct {
	tokens  []Token
	pos     int
	current Token
	peek    Token
	path    string
	state   parseState
	errors  ErrorList
}

// New creates a Parser over a token stream. A stream without a trailing
// TOKEN_EOF gets one appended.
func New(tokens []Token, path string) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TOKEN_EOF {
		var end Span
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1].Span.End
			end = Span{Start: last, End: last}
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Type: TOKEN_EOF, Span: end})
	}
	p := &Parser{tokens: tokens, path: path}
	p.current = p.tokens[0]
	p.peek = p.at(1)
	return p
}

// NewParser lexes input and creates a Parser for it
func NewParser(input string) *Parser {
	return New(Tokenize(input), "")
}

// Parse parses a token stream. When any syntax error was found the
// Program is nil and the error is an ErrorList holding all of them.
func Parse(tokens []Token, path string) (*Program, error) {
	return New(tokens, path).ParseProgram()
}

// ParseString lexes and parses source text
func ParseString(input, path string) (*Program, error) {
	return Parse(Tokenize(input), path)
}

func (p *Parser) at(i int) Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

// nextToken advances to the next token; it never moves past EOF
func (p *Parser) nextToken() {
	if p.current.Type == TOKEN_EOF {
		return
	}
	p.pos++
	p.current = p.at(p.pos)
	p.peek = p.at(p.pos + 1)
}

// Errors returns the syntax errors queued so far
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// ParseProgram parses top-level statements until EOF. A failed statement
// is discarded, its error queued, and parsing resumes at the next token
// that can start a statement outside the blocks the failed statement
// opened.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{Path: p.path}

	for p.current.Type != TOKEN_EOF {
		start := p.pos
		stmt, err := p.parseStatement()
		if err != nil {
			p.recordError(err)
			p.synchronize(start)
			continue
		}
		prog.Statements = append(prog.Statements, stmt)
	}

	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return prog, nil
}

func (p *Parser) recordError(err error) {
	if se, ok := err.(*SyntaxError); ok {
		p.errors = append(p.errors, se)
		return
	}
	p.errors = append(p.errors, &SyntaxError{Message: err.Error(), Span: p.current.Span, Path: p.path})
}

// statementStarts is the resynchronization set
var statementStarts = map[TokenType]bool{
	TOKEN_LET:      true,
	TOKEN_CONST:    true,
	TOKEN_IF:       true,
	TOKEN_WHILE:    true,
	TOKEN_FOR:      true,
	TOKEN_CASE:     true,
	TOKEN_RETURN:   true,
	TOKEN_BREAK:    true,
	TOKEN_CONTINUE: true,
	TOKEN_IMPORT:   true,
	TOKEN_EXPORT:   true,
	TOKEN_EOF:      true,
}

// synchronize skips at least one token, then everything up to the next
// statement keyword at the brace depth of the statement that began at
// token start, or EOF
func (p *Parser) synchronize(start int) {
	p.state = parseState{}

	depth := 0
	for i := start; i < p.pos; i++ {
		depth += braceDelta(p.tokens[i].Type)
	}
	for {
		depth += braceDelta(p.current.Type)
		p.nextToken()
		if p.current.Type == TOKEN_EOF || (depth <= 0 && statementStarts[p.current.Type]) {
			return
		}
	}
}

func braceDelta(tt TokenType) int {
	switch tt {
	case TOKEN_LBRACE:
		return 1
	case TOKEN_RBRACE:
		return -1
	}
	return 0
}

// errorf builds a syntax error located at tok
func (p *Parser) errorf(tok Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Span:    tok.Span,
		Path:    p.path,
	}
}

// expect consumes the current token if it has type tt
func (p *Parser) expect(tt TokenType, context string) (Token, error) {
	tok := p.current
	if tok.Type != tt {
		return tok, p.errorf(tok, "expected '%s' %s, got %s", tt, context, describe(tok))
	}
	p.nextToken()
	return tok, nil
}

// describe renders a token for error messages
func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_IDENTIFIER:
		return fmt.Sprintf("identifier '%s'", tok.Value)
	case TOKEN_INT, TOKEN_FLOAT, TOKEN_STRING:
		return fmt.Sprintf("literal %s", tok.Value)
	case TOKEN_ILLEGAL:
		return fmt.Sprintf("illegal character %q", tok.Value)
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}

// isLvalue reports whether e may appear on the left of = or under ++/--
func isLvalue(e Expr) bool {
	switch e.(type) {
	case *IdentifierExpr, *MemberExpr:
		return true
	}
	return false
}
