package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF     TokenType = iota // sentinel: end of input
	UNKNOWN                  // any character the lexer has no rule for

	// Words
	KEYWORD    // reserved word found in the keyword trie (func, cin, cout, true, ...)
	IDENTIFIER // variable / function name

	// Literals
	INT_LIT     // 42
	FLOAT_LIT   // 4.2
	STRING_LIT  // "..."
	CHAR_LIT    // 'c'
	COMMENT_LIT // /* ... */

	// Type names
	INT    // "int"
	FLOAT  // "float"
	CHAR   // "char"
	BOOL   // "bool"
	VOID   // "void"
	STRING // "string"
	ARRAY  // "array"

	// Control keywords
	IF       // "if"
	ELSE     // "else"
	SWITCH   // "switch"
	CASE     // "case"
	DEFAULT  // "default"
	FOR      // "for"
	WHILE    // "while"
	RETURN   // "return"
	BREAK    // "break"
	CONTINUE // "continue"

	// Operators
	ASSIGN      // =
	PLUS        // +
	MINUS       // -
	STAR        // *
	SLASH       // /
	LESS        // <
	GREATER     // >
	EQUALS      // ==
	NOT_EQ      // !=
	AND_LOGICAL // &&
	OR_LOGICAL  // ||
	NOT         // !
	STREAM_IN   // >>
	STREAM_OUT  // <<

	// Punctuation
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:         "EOF",
	UNKNOWN:     "UNKNOWN",
	KEYWORD:     "KEYWORD",
	IDENTIFIER:  "IDENTIFIER",
	INT_LIT:     "INT_LIT",
	FLOAT_LIT:   "FLOAT_LIT",
	STRING_LIT:  "STRING_LIT",
	CHAR_LIT:    "CHAR_LIT",
	COMMENT_LIT: "COMMENT_LIT",
	INT:         "INT",
	FLOAT:       "FLOAT",
	CHAR:        "CHAR",
	BOOL:        "BOOL",
	VOID:        "VOID",
	STRING:      "STRING",
	ARRAY:       "ARRAY",
	IF:          "IF",
	ELSE:        "ELSE",
	SWITCH:      "SWITCH",
	CASE:        "CASE",
	DEFAULT:     "DEFAULT",
	FOR:         "FOR",
	WHILE:       "WHILE",
	RETURN:      "RETURN",
	BREAK:       "BREAK",
	CONTINUE:    "CONTINUE",
	ASSIGN:      "ASSIGN",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	SLASH:       "SLASH",
	LESS:        "LESS",
	GREATER:     "GREATER",
	EQUALS:      "EQUALS",
	NOT_EQ:      "NOT_EQ",
	AND_LOGICAL: "AND_LOGICAL",
	OR_LOGICAL:  "OR_LOGICAL",
	NOT:         "NOT",
	STREAM_IN:   "STREAM_IN",
	STREAM_OUT:  "STREAM_OUT",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	COMMA:       "COMMA",
	SEMICOLON:   "SEMICOLON",
	COLON:       "COLON",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) && tokenNames[tt] != "" {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsTypeName reports whether tt starts a type (int, float, ..., array).
func (tt TokenType) IsTypeName() bool {
	return tt >= INT && tt <= ARRAY
}

// IsLiteral reports whether tt is a value literal. Comments are not.
func (tt TokenType) IsLiteral() bool {
	return tt >= INT_LIT && tt <= CHAR_LIT
}

// grammarKeywords are recognised by direct comparison, before the trie.
var grammarKeywords = map[string]TokenType{
	"int":      INT,
	"float":    FLOAT,
	"char":     CHAR,
	"bool":     BOOL,
	"void":     VOID,
	"string":   STRING,
	"array":    ARRAY,
	"if":       IF,
	"else":     ELSE,
	"switch":   SWITCH,
	"case":     CASE,
	"default":  DEFAULT,
	"for":      FOR,
	"while":    WHILE,
	"return":   RETURN,
	"break":    BREAK,
	"continue": CONTINUE,
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // source text; literal value for strings, chars and comments
	Line   int    // 1-based source line
	Column int    // 1-based source column
}

// Is reports whether t is the reserved word kw (e.g. "cin").
func (t Token) Is(kw string) bool {
	return t.Type == KEYWORD && t.Lexeme == kw
}

func (t Token) String() string {
	return fmt.Sprintf("%-12s %-14q  %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}
