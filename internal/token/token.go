package token

import "fmt"

// Type is the type of a token.
type Type string

// Token represents a lexical token and where it starts in the source.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Literal == "" || t.Literal == string(t.Type) {
		return string(t.Type)
	}
	return fmt.Sprintf("%s (%q)", t.Type, t.Literal)
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Literals
	IDENT  Type = "IDENT"  // a, key, name
	INT    Type = "INT"    // 12345
	FLOAT  Type = "FLOAT"  // 123.45
	STRING Type = "STRING" // "hello world"

	// Delimiters
	LBRACE Type = "{"
	RBRACE Type = "}"
	LBRACK Type = "["
	RBRACK Type = "]"
	COMMA  Type = ","
	COLON  Type = ":"

	// Keywords
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
	NULL  Type = "NULL"

	NEWLINE Type = "NEWLINE"
)

var keywords = map[string]Type{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a
// keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether s would be read back as a keyword rather than an
// identifier.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
