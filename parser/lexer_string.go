package parser

import "strings"

// stringEscapes maps the character after a backslash to its decoded byte
var stringEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
}

// readString scans a double-quoted literal. Value keeps the source text,
// Literal the decoded contents. An unterminated literal comes back as
// TOKEN_ILLEGAL.
func (l *Lexer) readString() Token {
	start := l.position
	tok := Token{Type: TOKEN_STRING, Span: Span{Start: l.pos()}}
	l.readChar()

	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch != '\\' {
			sb.WriteByte(l.ch)
			l.readChar()
			continue
		}
		l.readChar()
		if l.ch == 0 {
			break
		}
		if decoded, ok := stringEscapes[l.ch]; ok {
			sb.WriteByte(decoded)
		} else {
			// unknown escapes are kept verbatim
			sb.WriteByte('\\')
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.ch == 0 {
		tok.Type = TOKEN_ILLEGAL
		tok.Value = l.input[start:l.position]
		tok.Span.End = l.pos()
		return tok
	}
	l.readChar()

	tok.Value = l.input[start:l.position]
	tok.Literal = sb.String()
	tok.Span.End = l.pos()
	return tok
}
