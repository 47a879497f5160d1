package compiler

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src      []rune
	pos      int // index of the next rune to consume
	line     int // current 1-based source line
	col      int // current 1-based source column
	keywords *Trie

	prev       TokenType // type of the last emitted token
	angleDepth int       // open '<' of array type arguments
}

func newLexer(src string, keywords *Trie) *Lexer {
	return &Lexer{src: decodeSource(src), line: 1, col: 1, keywords: keywords, prev: EOF}
}

// decodeSource splits src into characters. Bytes that are not valid UTF-8
// become the character of the same value (Latin-1) instead of U+FFFD, so
// every input byte survives as one character.
func decodeSource(src string) []rune {
	out := make([]rune, 0, len(src))
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			r = rune(src[i])
		}
		out = append(out, r)
		i += size
	}
	return out
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

// advance consumes one rune and returns it. "\r\n" counts as one line break.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	switch {
	case r == '\n':
		l.line++
		l.col = 1
	case r == '\r' && l.peek() != '\n':
		l.line++
		l.col = 1
	case r == '\r':
		// the following '\n' ends the line
	default:
		l.col++
	}
	return r
}

func (l *Lexer) errorAt(line, col int, text, format string, args ...any) error {
	return &LexError{Line: line, Col: col, Text: text, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\v' || r == '\f'
}

func isEnter(r rune) bool {
	return r == '\n' || r == '\r'
}

func isAlpha(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentChar(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && (isSpace(l.peek()) || isEnter(l.peek())) {
		l.advance()
	}
}

// scanIdent collects an identifier, a grammar keyword or a reserved word.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	line, col := l.line, l.col
	start := l.pos
	for !l.atEnd() && isIdentChar(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	tt := IDENTIFIER
	if kw, ok := grammarKeywords[lexeme]; ok {
		tt = kw
	} else if l.keywords.Contains(lexeme) {
		tt = KEYWORD
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line, Column: col}
}

// scanNumber collects digits with at most one embedded '.'. A second '.'
// ends the literal; a letter right after it is an error.
func (l *Lexer) scanNumber() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	seenDot := false
	for !l.atEnd() {
		r := l.peek()
		if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
			l.advance()
			continue
		}
		if !isDigit(r) {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	if r := l.peek(); isAlpha(r) || r == '_' {
		return Token{}, l.errorAt(line, col, lexeme+string(r), "invalid numeric literal %q", lexeme+string(r))
	}
	if seenDot {
		return Token{Type: FLOAT_LIT, Lexeme: lexeme, Line: line, Column: col}, nil
	}
	return Token{Type: INT_LIT, Lexeme: lexeme, Line: line, Column: col}, nil
}

// scanComment collects a block comment. The opening "/*" must still be at
// l.peek(); the token holds the text between the delimiters.
func (l *Lexer) scanComment() (Token, error) {
	line, col := l.line, l.col
	l.advance() // /
	l.advance() // *
	start := l.pos
	for !l.atEnd() {
		if l.peek() == '*' && l.peek2() == '/' {
			text := string(l.src[start:l.pos])
			l.advance() // *
			l.advance() // /
			return Token{Type: COMMENT_LIT, Lexeme: text, Line: line, Column: col}, nil
		}
		l.advance()
	}
	return Token{}, l.errorAt(line, col, "/*", "unterminated comment (opened at %d:%d)", line, col)
}

// scanEscape consumes the character after a backslash and returns it raw.
// The backslash must already have been consumed.
func (l *Lexer) scanEscape(line, col int) (rune, error) {
	next := l.peek()
	if l.atEnd() || isSpace(next) || isEnter(next) {
		return 0, l.errorAt(line, col, "\\", "unknown escape sequence")
	}
	l.advance()
	return next, nil
}

// scanString collects a string literal. Backslashes are dropped and the
// escaped character is kept as-is.
func (l *Lexer) scanString() (Token, error) {
	line, col := l.line, l.col
	l.advance() // opening "
	var val []rune
	for !l.atEnd() {
		r := l.peek()
		if r == '"' {
			l.advance() // closing "
			return Token{Type: STRING_LIT, Lexeme: string(val), Line: line, Column: col}, nil
		}
		if r == '\\' {
			escLine, escCol := l.line, l.col
			l.advance()
			esc, err := l.scanEscape(escLine, escCol)
			if err != nil {
				return Token{}, err
			}
			val = append(val, esc)
			continue
		}
		val = append(val, r)
		l.advance()
	}
	return Token{}, l.errorAt(line, col, "\"", "unterminated string literal")
}

// scanChar collects a character literal holding exactly one character.
func (l *Lexer) scanChar() (Token, error) {
	line, col := l.line, l.col
	l.advance() // opening '
	if l.atEnd() || isEnter(l.peek()) {
		return Token{}, l.errorAt(line, col, "'", "unterminated character literal")
	}
	r := l.peek()
	if r == '\'' {
		return Token{}, l.errorAt(line, col, "''", "empty character literal")
	}
	l.advance()
	if r == '\\' {
		esc, err := l.scanEscape(line, col)
		if err != nil {
			return Token{}, err
		}
		r = esc
	}
	if l.peek() != '\'' {
		return Token{}, l.errorAt(line, col, "'", "unterminated character literal: missing closing quote")
	}
	l.advance() // closing '
	return Token{Type: CHAR_LIT, Lexeme: string(r), Line: line, Column: col}, nil
}

// scanAngle handles '<' and '>'. Outside array type arguments the operator
// must be doubled (stream op) or followed by whitespace or end of input.
func (l *Lexer) scanAngle(ch rune) (Token, error) {
	line, col := l.line, l.col
	l.advance()

	if ch == '<' && l.prev == ARRAY {
		l.angleDepth++
		return Token{LESS, "<", line, col}, nil
	}
	if ch == '>' && l.angleDepth > 0 {
		l.angleDepth--
		return Token{GREATER, ">", line, col}, nil
	}

	next := l.peek()
	if next == ch {
		l.advance()
		if ch == '<' {
			return Token{STREAM_OUT, "<<", line, col}, nil
		}
		return Token{STREAM_IN, ">>", line, col}, nil
	}
	if !l.atEnd() && !isSpace(next) && !isEnter(next) {
		text := string([]rune{ch, next})
		return Token{}, l.errorAt(line, col, text, "impossible to use %q", text)
	}
	if ch == '<' {
		return Token{LESS, "<", line, col}, nil
	}
	return Token{GREATER, ">", line, col}, nil
}

// nextToken skips whitespace and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()
	if l.atEnd() {
		return Token{Type: EOF, Lexeme: "", Line: l.line, Column: l.col}, nil
	}

	ch := l.peek()
	line, col := l.line, l.col

	switch {
	case isDigit(ch):
		return l.scanNumber()
	case isAlpha(ch) || ch == '_':
		return l.scanIdent(), nil
	case ch == '/' && l.peek2() == '*':
		return l.scanComment()
	case ch == '"':
		return l.scanString()
	case ch == '\'':
		return l.scanChar()
	case ch == '<' || ch == '>':
		return l.scanAngle(ch)
	}

	l.advance() // consume the character before the switch
	switch ch {
	case '(':
		return Token{LPAREN, "(", line, col}, nil
	case ')':
		return Token{RPAREN, ")", line, col}, nil
	case '{':
		return Token{LBRACE, "{", line, col}, nil
	case '}':
		return Token{RBRACE, "}", line, col}, nil
	case '[':
		return Token{LBRACKET, "[", line, col}, nil
	case ']':
		return Token{RBRACKET, "]", line, col}, nil
	case ',':
		return Token{COMMA, ",", line, col}, nil
	case ';':
		return Token{SEMICOLON, ";", line, col}, nil
	case ':':
		return Token{COLON, ":", line, col}, nil
	case '+':
		return Token{PLUS, "+", line, col}, nil
	case '-':
		return Token{MINUS, "-", line, col}, nil
	case '*':
		return Token{STAR, "*", line, col}, nil
	case '/':
		return Token{SLASH, "/", line, col}, nil
	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return Token{EQUALS, "==", line, col}, nil
		}
		return Token{ASSIGN, "=", line, col}, nil
	case '!':
		if l.peek() == '=' {
			l.advance()
			return Token{NOT_EQ, "!=", line, col}, nil
		}
		return Token{NOT, "!", line, col}, nil
	case '&':
		if l.peek() == '&' {
			l.advance()
			return Token{AND_LOGICAL, "&&", line, col}, nil
		}
		return Token{}, l.errorAt(line, col, "&", "impossible to use single '&'")
	case '|':
		if l.peek() == '|' {
			l.advance()
			return Token{OR_LOGICAL, "||", line, col}, nil
		}
		return Token{}, l.errorAt(line, col, "|", "impossible to use single '|'")
	default:
		return Token{UNKNOWN, string(ch), line, col}, nil
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// Identifiers found in keywords become KEYWORD tokens; a nil trie means no
// reserved words at all. Lexing stops at the first error.
func Lex(src string, keywords *Trie) ([]Token, error) {
	l := newLexer(src, keywords)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
		if tok.Type != COMMENT_LIT {
			l.prev = tok.Type
		}
	}
}

// Detokenize joins token texts with single spaces, requoting literals, so
// that lexing the result yields the same token types and lexemes.
func Detokenize(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == EOF {
			continue
		}
		parts = append(parts, tokenText(tok))
	}
	return strings.Join(parts, " ")
}

// tokenText is the source spelling of tok, with quotes and escapes restored.
func tokenText(tok Token) string {
	switch tok.Type {
	case STRING_LIT:
		return `"` + escapeLiteral(tok.Lexeme, '"') + `"`
	case CHAR_LIT:
		return "'" + escapeLiteral(tok.Lexeme, '\'') + "'"
	case COMMENT_LIT:
		return "/*" + tok.Lexeme + "*/"
	}
	return tok.Lexeme
}

func escapeLiteral(s string, quote rune) string {
	var sb strings.Builder
	for _, r := range s {
		if r == quote || r == '\\' {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
