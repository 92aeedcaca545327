package parser

import (
	"unicode/utf8"
)

// Lexer tokenizes Golosina source code
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Tokenize lexes the whole input. The returned stream always ends with a
// TOKEN_EOF token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			return tokens
		}
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

// skipTrivia skips whitespace, // line comments and /* block */ comments
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// twoCharOps holds the operators spelled with two characters
var twoCharOps = map[string]TokenType{
	"++": TOKEN_INC,
	"--": TOKEN_DEC,
	"==": TOKEN_EQ,
	"!=": TOKEN_NE,
	"<=": TOKEN_LE,
	">=": TOKEN_GE,
	"&&": TOKEN_AND,
	"||": TOKEN_OR,
	"<<": TOKEN_LSHIFT,
	">>": TOKEN_RSHIFT,
	"->": TOKEN_ARROW,
}

var oneCharOps = map[byte]TokenType{
	'=': TOKEN_ASSIGN,
	'+': TOKEN_PLUS,
	'-': TOKEN_MINUS,
	'*': TOKEN_STAR,
	'/': TOKEN_SLASH,
	'%': TOKEN_PERCENT,
	'!': TOKEN_NOT,
	'<': TOKEN_LT,
	'>': TOKEN_GT,
	'&': TOKEN_BITAND,
	'|': TOKEN_BITOR,
	'.': TOKEN_DOT,
	'(': TOKEN_LPAREN,
	')': TOKEN_RPAREN,
	'{': TOKEN_LBRACE,
	'}': TOKEN_RBRACE,
	',': TOKEN_COMMA,
	';': TOKEN_SEMICOLON,
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	start := l.pos()

	switch {
	case l.ch == 0:
		return Token{Type: TOKEN_EOF, Span: Span{Start: start, End: start}}
	case l.ch == '"':
		return l.readString()
	case isDigit(l.ch):
		return l.readNumber()
	case isLetter(l.ch):
		begin := l.position
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		word := l.input[begin:l.position]
		return Token{Type: LookupKeyword(word), Value: word, Span: Span{Start: start, End: l.pos()}}
	}

	if l.readPosition < len(l.input) {
		pair := l.input[l.position : l.readPosition+1]
		if tt, ok := twoCharOps[pair]; ok {
			l.readChar()
			l.readChar()
			return Token{Type: tt, Value: pair, Span: Span{Start: start, End: l.pos()}}
		}
	}

	if l.ch >= utf8.RuneSelf {
		// a non-ASCII rune is reported whole
		_, size := utf8.DecodeRuneInString(l.input[l.position:])
		begin := l.position
		for i := 0; i < size; i++ {
			l.readChar()
		}
		return Token{Type: TOKEN_ILLEGAL, Value: l.input[begin:l.position], Span: Span{Start: start, End: l.pos()}}
	}

	tok := Token{Type: TOKEN_ILLEGAL, Value: string(l.ch)}
	if tt, ok := oneCharOps[l.ch]; ok {
		tok.Type = tt
	}
	l.readChar()
	tok.Span = Span{Start: start, End: l.pos()}
	return tok
}

// readNumber reads an integer or a float literal (digits '.' digits)
func (l *Lexer) readNumber() Token {
	start := l.pos()
	begin := l.position
	tokType := TOKEN_INT

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokType = TOKEN_FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return Token{Type: tokType, Value: l.input[begin:l.position], Span: Span{Start: start, End: l.pos()}}
}

// isLetter returns true if the character is an ASCII letter or underscore
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
