package compiler

import (
	"fmt"
	"log"
)

// Options configures Compile.
type Options struct {
	// Logger, when set, receives a trace of each stage and of every
	// declaration and scope change.
	Logger *log.Logger
}

// ExprRPN is the postfix form of one source expression.
type ExprRPN struct {
	Line   int
	Column int
	Source string
	Code   []string
}

func (e ExprRPN) String() string {
	return fmt.Sprintf("%d:%d  %s  =>  %v", e.Line, e.Column, e.Source, e.Code)
}

// Result collects the output of every stage. Fields of stages that ran
// before a failure are still set.
type Result struct {
	Tokens  []Token
	Program *Node
	Table   *IdentifierTable
	RPN     []ExprRPN
}

// Compile runs the whole front end over src:
// Lex -> Parse (with inline semantic checks) -> ValidateExpression -> GenerateRPN.
// A nil keyword trie means the builtin keyword set.
func Compile(src string, keywords *Trie, opts Options) (*Result, error) {
	if keywords == nil {
		keywords = NewKeywords()
	}
	logf := func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger.Printf(format, args...)
		}
	}

	res := &Result{}
	tokens, err := Lex(src, keywords)
	if err != nil {
		return res, err
	}
	res.Tokens = tokens
	logf("lexed %d tokens", len(tokens))

	sem := NewAnalyzer()
	sem.SetLogger(opts.Logger)
	res.Table = sem.Table()
	prog, err := NewParser(tokens, sem).ParseProgram()
	if err != nil {
		return res, err
	}
	res.Program = prog
	logf("parsed %d top-level declarations, %d identifiers", len(prog.Children), res.Table.Len())

	for _, expr := range prog.Expressions() {
		if err := ValidateExpression(expr.Tokens); err != nil {
			return res, err
		}
		code, err := GenerateRPN(expr.Tokens)
		if err != nil {
			return res, err
		}
		first := expr.Tokens[0]
		res.RPN = append(res.RPN, ExprRPN{
			Line:   first.Line,
			Column: first.Column,
			Source: Detokenize(significant(expr.Tokens)),
			Code:   code,
		})
	}
	logf("generated RPN for %d expressions", len(res.RPN))
	return res, nil
}
