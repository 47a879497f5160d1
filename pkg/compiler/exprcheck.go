package compiler

import "errors"

// ErrIncompleteExpression is the cause of a SyntaxError raised when an
// expression ends while an operand is still expected.
var ErrIncompleteExpression = errors.New("incomplete expression")

func isBinaryOperator(tt TokenType) bool {
	switch tt {
	case PLUS, MINUS, STAR, SLASH, LESS, GREATER, EQUALS, NOT_EQ,
		AND_LOGICAL, OR_LOGICAL, COMMA:
		return true
	}
	return false
}

func isIndexToken(tok Token) bool {
	return tok.Type == IDENTIFIER || tok.Type == INT_LIT
}

// significant drops comments and EOF from an expression span.
func significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != COMMENT_LIT && tok.Type != EOF {
			out = append(out, tok)
		}
	}
	return out
}

// matchParen returns the index of the ")" closing the "(" at open, or -1.
func matchParen(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Type {
		case LPAREN:
			depth++
		case RPAREN:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// endOf is a synthetic EOF positioned just after the last token.
func endOf(toks []Token) Token {
	if len(toks) == 0 {
		return Token{Type: EOF}
	}
	last := toks[len(toks)-1]
	return Token{Type: EOF, Line: last.Line, Column: last.Column + len([]rune(tokenText(last)))}
}

func exprError(tok Token, expected string) error {
	return &SyntaxError{Line: tok.Line, Col: tok.Column, Got: tok, Expected: expected, Rule: "ValidateExpression"}
}

// ValidateExpression checks that tokens form a well-formed expression by
// alternating between expecting an operand and expecting an operator.
// Parenthesised groups are checked recursively.
func ValidateExpression(tokens []Token) error {
	toks := significant(tokens)
	return validateOperands(toks, endOf(toks))
}

func validateOperands(toks []Token, end Token) error {
	wantOperand := true
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if !wantOperand {
			if !isBinaryOperator(tok.Type) {
				return exprError(tok, "operator")
			}
			wantOperand = true
			continue
		}

		switch {
		case tok.Type == NOT || tok.Type == MINUS:
			continue // prefix operator, operand still expected
		case tok.Type == IDENTIFIER:
			for i+1 < len(toks) && toks[i+1].Type == LBRACKET {
				if i+2 >= len(toks) || !isIndexToken(toks[i+2]) {
					return exprError(tokenAt(toks, i+2, end), "IDENTIFIER or INT_LIT")
				}
				if i+3 >= len(toks) || toks[i+3].Type != RBRACKET {
					return exprError(tokenAt(toks, i+3, end), RBRACKET.String())
				}
				i += 3
			}
		case tok.Type.IsLiteral() || tok.Is("true") || tok.Is("false"):
		case tok.Type == LPAREN:
			closing := matchParen(toks, i)
			if closing < 0 {
				return exprError(end, RPAREN.String())
			}
			if err := validateOperands(toks[i+1:closing], toks[closing]); err != nil {
				return err
			}
			i = closing
		default:
			return exprError(tok, "operand")
		}
		wantOperand = false
	}
	if wantOperand {
		return &SyntaxError{Line: end.Line, Col: end.Column, Got: end, Expected: "operand",
			Rule: "ValidateExpression", Err: ErrIncompleteExpression}
	}
	return nil
}

func tokenAt(toks []Token, i int, end Token) Token {
	if i < len(toks) {
		return toks[i]
	}
	return end
}
