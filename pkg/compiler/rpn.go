package compiler

// rpnPrecedence ranks operators for GenerateRPN. Arithmetic keeps the
// classic 1/2 levels; comparison and logic sit below them, prefix
// operators above.
var rpnPrecedence = map[string]int{
	",":   -4,
	"||":  -3,
	"&&":  -2,
	"==":  -1,
	"!=":  -1,
	"<":   0,
	">":   0,
	"+":   1,
	"-":   1,
	"*":   2,
	"/":   2,
	"!":   3,
	"neg": 3, // unary minus
}

type rpnOp struct {
	text string
	tok  Token
}

func rpnError(tok Token, msg string) error {
	return &SemanticError{Line: tok.Line, Col: tok.Column, Name: tok.Lexeme, Msg: msg}
}

// GenerateRPN converts an infix expression to reverse Polish notation with
// the shunting-yard algorithm. Operands are emitted in source spelling,
// unary minus as "neg" and an indexing a[i] as "a i []".
func GenerateRPN(tokens []Token) ([]string, error) {
	toks := significant(tokens)
	out := make([]string, 0, len(toks))
	var stack []rpnOp

	wantOperand := true
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.Type == LPAREN:
			stack = append(stack, rpnOp{"(", tok})
			wantOperand = true

		case tok.Type == RPAREN:
			for {
				if len(stack) == 0 {
					return nil, rpnError(tok, "mismatched parentheses: unexpected ')'")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.text == "(" {
					break
				}
				out = append(out, top.text)
			}
			wantOperand = false

		case wantOperand && (tok.Type == NOT || tok.Type == MINUS):
			text := "!"
			if tok.Type == MINUS {
				text = "neg"
			}
			stack = append(stack, rpnOp{text, tok})

		case isBinaryOperator(tok.Type):
			prec := rpnPrecedence[tok.Lexeme]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.text == "(" || rpnPrecedence[top.text] < prec {
					break
				}
				out = append(out, top.text)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, rpnOp{tok.Lexeme, tok})
			wantOperand = true

		case tok.Type == IDENTIFIER:
			out = append(out, tok.Lexeme)
			for i+1 < len(toks) && toks[i+1].Type == LBRACKET {
				if i+3 >= len(toks) || !isIndexToken(toks[i+2]) || toks[i+3].Type != RBRACKET {
					return nil, rpnError(toks[i+1], "malformed array index")
				}
				out = append(out, toks[i+2].Lexeme, "[]")
				i += 3
			}
			wantOperand = false

		case tok.Type.IsLiteral() || tok.Is("true") || tok.Is("false"):
			out = append(out, tokenText(tok))
			wantOperand = false

		default:
			return nil, rpnError(tok, "unexpected "+tok.Type.String()+" in expression")
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.text == "(" {
			return nil, rpnError(top.tok, "mismatched parentheses: unclosed '('")
		}
		out = append(out, top.text)
	}
	return out, nil
}
