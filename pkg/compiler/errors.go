package compiler

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Stage names the pipeline stage an error came from.
type Stage int

const (
	StageNone Stage = iota
	StageLexical
	StageSyntax
	StageSemantic
)

func (s Stage) String() string {
	switch s {
	case StageLexical:
		return "lexical"
	case StageSyntax:
		return "syntax"
	case StageSemantic:
		return "semantic"
	default:
		return "none"
	}
}

var (
	// ErrScopeUnderflow is returned when a scope is popped from an empty stack.
	ErrScopeUnderflow = errors.New("exit from empty scope stack")
	// ErrUnexpectedEnd is returned when the parser advances past EOF.
	ErrUnexpectedEnd = errors.New("unexpected end of input")
)

// LexError is a tokenizer failure at a source position.
type LexError struct {
	Line int
	Col  int
	Text string // offending character(s)
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// SyntaxError is a grammar violation. Rule is the parser production that
// rejected the token.
type SyntaxError struct {
	Line     int
	Col      int
	Got      Token
	Expected string
	Rule     string
	Err      error // optional cause, e.g. ErrUnexpectedEnd
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "syntax error at %d:%d: unexpected %s", e.Line, e.Col, e.Got.Type)
	if e.Got.Lexeme != "" {
		fmt.Fprintf(&sb, " %q", e.Got.Lexeme)
	}
	if e.Expected != "" {
		fmt.Fprintf(&sb, ", expected %s", e.Expected)
	}
	if e.Rule != "" {
		fmt.Fprintf(&sb, " (in %s)", e.Rule)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// SemanticError is a failed check on declarations, uses or types.
type SemanticError struct {
	Line     int
	Col      int
	Name     string // identifier involved, if any
	Expected string // expected type, for mismatches
	Actual   string // actual type, for mismatches
	Msg      string
	Err      error
}

func (e *SemanticError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("semantic error at %d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return "semantic error: " + e.Msg
}

func (e *SemanticError) Unwrap() error { return e.Err }

// StageOf reports which stage produced err.
func StageOf(err error) Stage {
	var lexErr *LexError
	var synErr *SyntaxError
	var semErr *SemanticError
	switch {
	case err == nil:
		return StageNone
	case errors.As(err, &lexErr):
		return StageLexical
	case errors.As(err, &synErr):
		return StageSyntax
	case errors.As(err, &semErr):
		return StageSemantic
	}
	return StageNone
}

// IsIncomplete reports whether err only says the input ended too early.
// More text could turn the same source into a valid program.
func IsIncomplete(err error) bool {
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Got.Type == EOF
	}
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return strings.HasPrefix(lexErr.Msg, "unterminated")
	}
	return false
}

// WrapErrorWithSource returns err with a caret snippet of src appended.
// Errors without a position are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	var (
		lexErr *LexError
		synErr *SyntaxError
		semErr *SemanticError
		line   int
		col    int
	)
	switch {
	case errors.As(err, &lexErr):
		line, col = lexErr.Line, lexErr.Col
	case errors.As(err, &synErr):
		line, col = synErr.Line, synErr.Col
	case errors.As(err, &semErr):
		line, col = semErr.Line, semErr.Col
	}
	if line < 1 {
		return err
	}
	return &snippetError{err: err, snippet: snippet(src, line, col)}
}

type snippetError struct {
	err     error
	snippet string
}

func (e *snippetError) Error() string { return e.err.Error() + "\n" + e.snippet }
func (e *snippetError) Unwrap() error { return e.err }

// snippet renders the offending line with one line of context on each side
// and a caret under col. Out-of-range positions are clamped.
func snippet(src string, line, col int) string {
	lines := sourceLines(src)
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}
	width := len(fmt.Sprint(line + 1))

	var sb strings.Builder
	for n := line - 1; n <= line+1; n++ {
		if n < 1 || n > len(lines) {
			continue
		}
		text := lines[n-1]
		fmt.Fprintf(&sb, "  %*d | %s\n", width, n, text)
		if n == line {
			if runes := utf8.RuneCountInString(text); col > runes+1 {
				col = runes + 1
			}
			fmt.Fprintf(&sb, "  %*s | %s^\n", width, "", strings.Repeat(" ", col-1))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// sourceLines splits src at "\r\n", "\n" or a lone "\r", the same breaks
// the lexer counts.
func sourceLines(src string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			lines = append(lines, src[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, src[start:i])
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, src[start:])
}
