package parser

import "fmt"

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_INT    // 42
	TOKEN_FLOAT  // 3.14
	TOKEN_STRING // "hello"

	TOKEN_IDENTIFIER

	// Keywords
	TOKEN_LET
	TOKEN_CONST
	TOKEN_METHOD
	TOKEN_FOR
	TOKEN_WHILE
	TOKEN_IF
	TOKEN_ELSE
	TOKEN_RETURN
	TOKEN_CASE
	TOKEN_OF
	TOKEN_DEFAULT
	TOKEN_BREAK
	TOKEN_CONTINUE
	TOKEN_CLONE
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL
	TOKEN_IMPORT
	TOKEN_EXPORT

	// Operators
	TOKEN_ASSIGN  // =
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_PERCENT // %
	TOKEN_INC     // ++
	TOKEN_DEC     // --
	TOKEN_NOT     // !

	TOKEN_EQ // ==
	TOKEN_NE // !=
	TOKEN_LT // <
	TOKEN_GT // >
	TOKEN_LE // <=
	TOKEN_GE // >=

	TOKEN_AND    // &&
	TOKEN_OR     // ||
	TOKEN_BITAND // &
	TOKEN_BITOR  // |
	TOKEN_LSHIFT // <<
	TOKEN_RSHIFT // >>

	TOKEN_ARROW // ->
	TOKEN_DOT   // .

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:        "EOF",
	TOKEN_ILLEGAL:    "ILLEGAL",
	TOKEN_INT:        "INT",
	TOKEN_FLOAT:      "FLOAT",
	TOKEN_STRING:     "STRING",
	TOKEN_IDENTIFIER: "IDENTIFIER",
	TOKEN_LET:        "let",
	TOKEN_CONST:      "const",
	TOKEN_METHOD:     "method",
	TOKEN_FOR:        "for",
	TOKEN_WHILE:      "while",
	TOKEN_IF:         "if",
	TOKEN_ELSE:       "else",
	TOKEN_RETURN:     "return",
	TOKEN_CASE:       "case",
	TOKEN_OF:         "of",
	TOKEN_DEFAULT:    "default",
	TOKEN_BREAK:      "break",
	TOKEN_CONTINUE:   "continue",
	TOKEN_CLONE:      "clone",
	TOKEN_TRUE:       "true",
	TOKEN_FALSE:      "false",
	TOKEN_NULL:       "null",
	TOKEN_IMPORT:     "import",
	TOKEN_EXPORT:     "export",
	TOKEN_ASSIGN:     "=",
	TOKEN_PLUS:       "+",
	TOKEN_MINUS:      "-",
	TOKEN_STAR:       "*",
	TOKEN_SLASH:      "/",
	TOKEN_PERCENT:    "%",
	TOKEN_INC:        "++",
	TOKEN_DEC:        "--",
	TOKEN_NOT:        "!",
	TOKEN_EQ:         "==",
	TOKEN_NE:         "!=",
	TOKEN_LT:         "<",
	TOKEN_GT:         ">",
	TOKEN_LE:         "<=",
	TOKEN_GE:         ">=",
	TOKEN_AND:        "&&",
	TOKEN_OR:         "||",
	TOKEN_BITAND:     "&",
	TOKEN_BITOR:      "|",
	TOKEN_LSHIFT:     "<<",
	TOKEN_RSHIFT:     ">>",
	TOKEN_ARROW:      "->",
	TOKEN_DOT:        ".",
	TOKEN_LPAREN:     "(",
	TOKEN_RPAREN:     ")",
	TOKEN_LBRACE:     "{",
	TOKEN_RBRACE:     "}",
	TOKEN_COMMA:      ",",
	TOKEN_SEMICOLON:  ";",
}

// String returns the operator or keyword spelling of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open source range [Start, End) covered by a token or node
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return s.Start.String()
}

// To returns a span running from the start of s to the end of other
func (s Span) To(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

// Token represents a lexical token. Tokens are immutable once produced.
type Token struct {
	Type    TokenType
	Value   string // lexeme as written in the source
	Literal string // decoded value (TOKEN_STRING only)
	Span    Span
}

// Keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"let":      TOKEN_LET,
	"const":    TOKEN_CONST,
	"method":   TOKEN_METHOD,
	"for":      TOKEN_FOR,
	"while":    TOKEN_WHILE,
	"if":       TOKEN_IF,
	"else":     TOKEN_ELSE,
	"return":   TOKEN_RETURN,
	"case":     TOKEN_CASE,
	"of":       TOKEN_OF,
	"default":  TOKEN_DEFAULT,
	"break":    TOKEN_BREAK,
	"continue": TOKEN_CONTINUE,
	"clone":    TOKEN_CLONE,
	"true":     TOKEN_TRUE,
	"false":    TOKEN_FALSE,
	"null":     TOKEN_NULL,
	"import":   TOKEN_IMPORT,
	"export":   TOKEN_EXPORT,
}

// LookupKeyword checks if an identifier is a keyword
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}
