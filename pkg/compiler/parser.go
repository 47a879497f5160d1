package compiler

// Parser consumes the token slice produced by the Lexer, builds an AST and
// reports every declaration and use to its Analyzer as it goes.
//
// Grammar:
//
//	program     = declaration* EOF
//	declaration = function | varDecl ";"
//	function    = "func" type IDENTIFIER "(" [param ("," param)*] ")" block
//	param       = type IDENTIFIER
//	block       = "{" instruction* "}"
//	instruction = block | input | output | if | loop | switch | ("break" | "continue") ";"
//	            | varDecl ";" | assignment ";" | return | ";" | expression ";"
//	varDecl     = type IDENTIFIER ("[" index "]")* ["=" expression]
//	assignment  = IDENTIFIER ("[" index "]")* "=" expression
//	input       = "cin" (">>" IDENTIFIER)+ ";"
//	output      = "cout" ("<<" expression)+ ";"
//	if          = "if" "(" expression ")" block ["else" (block | if)]
//	loop        = "while" "(" expression ")" block
//	            | "for" "(" (varDecl | assignment) ";" expression ";" assignment ")" block
//	switch      = "switch" "(" expression ")" "{" ("case" literal ":" instruction* "break" ";")*
//	              "default" ":" instruction* "}"
//	return      = "return" [expression] ";"
//	type        = "int" | "float" | "char" | "bool" | "void" | "string" | "array" "<" type ">"
//	index       = IDENTIFIER | INT_LIT
//
//	expression     = logical_or ("," logical_or)*
//	logical_or     = logical_and ("||" logical_and)*
//	logical_and    = equality ("&&" equality)*
//	equality       = relational (("==" | "!=") relational)*
//	relational     = additive (("<" | ">") additive)*
//	additive       = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = unary (("*" | "/") unary)*
//	unary          = ("!" | "-") unary | atom
//	atom           = "true" | "false" | IDENTIFIER ("[" index "]")* | "(" expression ")" | literal
type Parser struct {
	stream *TokenStream
	sem    *Analyzer
}

// NewParser returns a parser over tokens. A nil analyzer gets a fresh one.
func NewParser(tokens []Token, sem *Analyzer) *Parser {
	if sem == nil {
		sem = NewAnalyzer()
	}
	return &Parser{stream: NewTokenStream(tokens), sem: sem}
}

// Parse parses a whole program with a fresh Analyzer. The analyzer is
// returned even on failure so callers can inspect the partial table.
func Parse(tokens []Token) (*Node, *Analyzer, error) {
	sem := NewAnalyzer()
	prog, err := NewParser(tokens, sem).ParseProgram()
	return prog, sem, err
}

// Analyzer returns the semantic collaborator.
func (p *Parser) Analyzer() *Analyzer { return p.sem }

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.stream.Current()
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	return p.stream.Peek(offset)
}

// advance consumes and returns the current token. Advancing past EOF fails.
func (p *Parser) advance() (Token, error) {
	tok, ok := p.stream.Next()
	if !ok {
		return tok, &SyntaxError{Line: tok.Line, Col: tok.Column, Got: tok, Rule: "advance", Err: ErrUnexpectedEnd}
	}
	return tok, nil
}

func (p *Parser) errorf(tok Token, expected, rule string) error {
	return &SyntaxError{Line: tok.Line, Col: tok.Column, Got: tok, Expected: expected, Rule: rule}
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType, rule string) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorf(tok, tt.String(), rule)
	}
	return p.advance()
}

// ParseProgram parses declarations until EOF.
func (p *Parser) ParseProgram() (*Node, error) {
	prog := NewNode(NodeProgram, "", p.peek())
	for p.peek().Type != EOF {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		prog.Add(decl)
	}
	return prog, nil
}

func (p *Parser) parseDeclaration() (*Node, error) {
	tok := p.peek()
	switch {
	case tok.Is("func"):
		return p.parseFunction()
	case tok.Type.IsTypeName():
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON, "parseDeclaration"); err != nil {
			return nil, err
		}
		return decl, nil
	default:
		return nil, p.errorf(tok, "function or variable declaration", "parseDeclaration")
	}
}

// parseType parses a scalar type name or array<type> and returns its spelling.
func (p *Parser) parseType(rule string) (string, Token, error) {
	tok := p.peek()
	if !tok.Type.IsTypeName() {
		return "", tok, p.errorf(tok, "type", rule)
	}
	p.advance()
	if tok.Type != ARRAY {
		return tok.Lexeme, tok, nil
	}
	if _, err := p.expect(LESS, "parseType"); err != nil {
		return "", tok, err
	}
	inner, _, err := p.parseType("parseType")
	if err != nil {
		return "", tok, err
	}
	if _, err := p.expect(GREATER, "parseType"); err != nil {
		return "", tok, err
	}
	return "array<" + inner + ">", tok, nil
}

// parseFunction parses func type name(params) { ... }. The function is
// declared globally before its body so it may refer to itself.
func (p *Parser) parseFunction() (*Node, error) {
	p.advance() // func
	retType, retTok, err := p.parseType("parseFunction")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENTIFIER, "parseFunction")
	if err != nil {
		return nil, err
	}
	if err := p.sem.DeclareFunction(nameTok, retType); err != nil {
		return nil, err
	}

	fn := NewNode(NodeFunction, nameTok.Lexeme, nameTok)
	fn.Add(NewNode(NodeIdentifier, retType, retTok))

	p.sem.EnterScope(nameTok.Lexeme, ScopeFunction)
	if _, err := p.expect(LPAREN, "parseFunction"); err != nil {
		return nil, err
	}
	if p.peek().Type != RPAREN {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			fn.Add(param)
			if p.peek().Type != COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN, "parseFunction"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Add(body)
	if err := p.sem.ExitScope(); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parseParameter() (*Node, error) {
	spelling, typeTok, err := p.parseType("parseParameter")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "parseParameter")
	if err != nil {
		return nil, err
	}
	if _, err := p.sem.DeclareVariable(name, spelling, true); err != nil {
		return nil, err
	}
	return NewNode(NodeVarDecl, name.Lexeme, name).Add(NewNode(NodeIdentifier, spelling, typeTok)), nil
}

// parseBlock parses { instruction* } in the current scope.
func (p *Parser) parseBlock() (*Node, error) {
	lbrace, err := p.expect(LBRACE, "parseBlock")
	if err != nil {
		return nil, err
	}
	block := NewNode(NodeBlock, "", lbrace)
	for p.peek().Type != RBRACE {
		if p.peek().Type == EOF {
			return nil, p.errorf(p.peek(), RBRACE.String(), "parseBlock")
		}
		stmt, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		block.Add(stmt)
	}
	p.advance() // }
	return block, nil
}

// parseScopedBlock parses a block inside a new scope.
func (p *Parser) parseScopedBlock(name string, kind ScopeKind) (*Node, error) {
	p.sem.EnterScope(name, kind)
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.sem.ExitScope(); err != nil {
		return nil, err
	}
	return block, nil
}

// parseInstruction dispatches to the correct sub-parser based on the
// leading token. A bare ";" yields a nil node.
func (p *Parser) parseInstruction() (*Node, error) {
	tok := p.peek()
	switch {
	case tok.Type == LBRACE:
		return p.parseScopedBlock("block", ScopeBlock)
	case tok.Is("cin"):
		return p.parseInput()
	case tok.Is("cout"):
		return p.parseOutput()
	case tok.Type == IF:
		return p.parseConditional()
	case tok.Type == WHILE || tok.Type == FOR:
		return p.parseLoop()
	case tok.Type == SWITCH:
		return p.parseSwitch()
	case tok.Type == BREAK || tok.Type == CONTINUE:
		return p.parseBreak()
	case tok.Type == RETURN:
		return p.parseReturn()
	case tok.Type == SEMICOLON:
		p.advance()
		return nil, nil
	case tok.Type.IsTypeName():
		return p.terminated(p.parseVarDecl())
	case tok.Type == IDENTIFIER && p.isAssignment():
		return p.terminated(p.parseAssignment())
	case tok.Type == IDENTIFIER, tok.Type.IsLiteral(), tok.Type == LPAREN,
		tok.Type == NOT, tok.Type == MINUS, tok.Is("true"), tok.Is("false"):
		return p.terminated(p.parseExpression())
	default:
		return nil, p.errorf(tok, "instruction", "parseInstruction")
	}
}

// terminated requires a ";" after a successfully parsed node.
func (p *Parser) terminated(n *Node, err error) (*Node, error) {
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "parseInstruction"); err != nil {
		return nil, err
	}
	return n, nil
}

// isAssignment looks past IDENTIFIER and any [index] groups for "=".
func (p *Parser) isAssignment() bool {
	i := 1
	for p.peekAt(i).Type == LBRACKET {
		i++
		for t := p.peekAt(i).Type; t != RBRACKET && t != EOF; t = p.peekAt(i).Type {
			i++
		}
		i++
	}
	return p.peekAt(i).Type == ASSIGN
}

// parseVarDecl parses type name([dim])* [= expression] without the ";".
// The name is declared before the initializer is parsed.
func (p *Parser) parseVarDecl() (*Node, error) {
	spelling, typeTok, err := p.parseType("parseVarDecl")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "parseVarDecl")
	if err != nil {
		return nil, err
	}
	typeNode := NewNode(NodeIdentifier, spelling, typeTok)
	for p.peek().Type == LBRACKET {
		p.advance()
		dim, err := p.parseIndex()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACKET, "parseVarDecl"); err != nil {
			return nil, err
		}
		typeNode.Add(dim)
	}
	for range typeNode.Children {
		spelling = "array<" + spelling + ">"
	}
	typeNode.Value = spelling

	entry, err := p.sem.DeclareVariable(name, spelling, false)
	if err != nil {
		return nil, err
	}
	decl := NewNode(NodeVarDecl, name.Lexeme, name).Add(typeNode)
	if p.peek().Type != ASSIGN {
		return decl, nil
	}
	p.advance() // =
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	actual, err := p.sem.ExprSpelling(value)
	if err != nil {
		return nil, err
	}
	if err := p.sem.CheckAssign(name, name.Lexeme, entry.Info, actual); err != nil {
		return nil, err
	}
	entry.Initialized = true
	return decl.Add(value), nil
}

// parseTarget parses the left side of an assignment.
func (p *Parser) parseTarget() (*Node, error) {
	name, err := p.expect(IDENTIFIER, "parseAssignment")
	if err != nil {
		return nil, err
	}
	if _, err := p.sem.Resolve(name); err != nil {
		return nil, err
	}
	target := NewNode(NodeIdentifier, name.Lexeme, name)
	for p.peek().Type == LBRACKET {
		p.advance()
		idx, err := p.parseIndex()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACKET, "parseAssignment"); err != nil {
			return nil, err
		}
		target.Add(idx)
	}
	return target, nil
}

// parseAssignment parses name([index])* = expression without the ";".
func (p *Parser) parseAssignment() (*Node, error) {
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	assign, err := p.expect(ASSIGN, "parseAssignment")
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	expected, err := p.sem.ExprSpelling(target)
	if err != nil {
		return nil, err
	}
	actual, err := p.sem.ExprSpelling(value)
	if err != nil {
		return nil, err
	}
	if err := p.sem.CheckAssign(assign, target.Value, expected, actual); err != nil {
		return nil, err
	}
	if _, err := p.sem.Initialize(target.Token); err != nil {
		return nil, err
	}
	return NewNode(NodeAssignment, target.Value, target.Token).Add(target, value), nil
}

// parseIndex accepts only an identifier or an integer literal.
func (p *Parser) parseIndex() (*Node, error) {
	tok := p.peek()
	switch tok.Type {
	case IDENTIFIER:
		p.advance()
		e, err := p.sem.Use(tok)
		if err != nil {
			return nil, err
		}
		if err := p.sem.CheckType(tok, tok.Lexeme, TypeInt, e.Type); err != nil {
			return nil, err
		}
		return NewNode(NodeIdentifier, tok.Lexeme, tok), nil
	case INT_LIT:
		p.advance()
		return NewNode(NodeLiteral, tok.Lexeme, tok), nil
	default:
		return nil, p.errorf(tok, "IDENTIFIER or INT_LIT", "parseIndex")
	}
}

func (p *Parser) parseInput() (*Node, error) {
	cin, _ := p.advance()
	node := NewNode(NodeInput, "", cin)
	for {
		if _, err := p.expect(STREAM_IN, "parseInput"); err != nil {
			return nil, err
		}
		name, err := p.expect(IDENTIFIER, "parseInput")
		if err != nil {
			return nil, err
		}
		if _, err := p.sem.Initialize(name); err != nil {
			return nil, err
		}
		node.Add(NewNode(NodeIdentifier, name.Lexeme, name))
		if p.peek().Type == SEMICOLON {
			break
		}
	}
	p.advance() // ;
	return node, nil
}

func (p *Parser) parseOutput() (*Node, error) {
	cout, _ := p.advance()
	node := NewNode(NodeOutput, "", cout)
	for {
		if _, err := p.expect(STREAM_OUT, "parseOutput"); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.sem.ExprType(expr); err != nil {
			return nil, err
		}
		node.Add(expr)
		if p.peek().Type == SEMICOLON {
			break
		}
	}
	p.advance() // ;
	return node, nil
}

// parseCondition parses "(" expression ")".
func (p *Parser) parseCondition(rule string) (*Node, error) {
	if _, err := p.expect(LPAREN, rule); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.sem.ExprType(cond); err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, rule); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseConditional() (*Node, error) {
	ifTok, _ := p.advance()
	cond, err := p.parseCondition("parseConditional")
	if err != nil {
		return nil, err
	}
	then, err := p.parseScopedBlock("if", ScopeBlock)
	if err != nil {
		return nil, err
	}
	node := NewNode(NodeIf, "", ifTok).Add(cond, then)
	if p.peek().Type != ELSE {
		return node, nil
	}
	p.advance() // else
	var alt *Node
	if p.peek().Type == IF {
		alt, err = p.parseConditional()
	} else {
		alt, err = p.parseScopedBlock("else", ScopeBlock)
	}
	if err != nil {
		return nil, err
	}
	return node.Add(alt), nil
}

func (p *Parser) parseLoop() (*Node, error) {
	tok, _ := p.advance()
	if tok.Type == WHILE {
		cond, err := p.parseCondition("parseLoop")
		if err != nil {
			return nil, err
		}
		p.sem.EnterScope("while", ScopeLoop)
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.sem.ExitScope(); err != nil {
			return nil, err
		}
		return NewNode(NodeLoop, "while", tok).Add(cond, body), nil
	}

	// for: the counter lives in the loop scope
	if _, err := p.expect(LPAREN, "parseLoop"); err != nil {
		return nil, err
	}
	p.sem.EnterScope("for", ScopeLoop)
	var setup *Node
	var err error
	switch {
	case p.peek().Type.IsTypeName():
		setup, err = p.parseVarDecl()
	case p.peek().Type == IDENTIFIER:
		setup, err = p.parseAssignment()
	default:
		err = p.errorf(p.peek(), "loop initialization", "parseLoop")
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "parseLoop"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.sem.ExprType(cond); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "parseLoop"); err != nil {
		return nil, err
	}
	step, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN, "parseLoop"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.sem.ExitScope(); err != nil {
		return nil, err
	}
	return NewNode(NodeLoop, "for", tok).Add(setup, cond, step, body), nil
}

func (p *Parser) parseSwitch() (*Node, error) {
	sw, _ := p.advance()
	target, err := p.parseCondition("parseSwitch")
	if err != nil {
		return nil, err
	}
	targetType, err := p.sem.ExprType(target)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE, "parseSwitch"); err != nil {
		return nil, err
	}
	node := NewNode(NodeSwitch, "", sw).Add(target)

	seen := make(map[string]bool)
	for p.peek().Type == CASE {
		caseTok, _ := p.advance()
		lit, err := p.parseLiteral("parseSwitch")
		if err != nil {
			return nil, err
		}
		key := lit.Token.Type.String() + ":" + lit.Value
		if seen[key] {
			return nil, semErrorf(lit.Token, "", "duplicate case value %q", lit.Value)
		}
		seen[key] = true
		if err := p.sem.CheckType(lit.Token, "case", targetType, literalType(lit.Token)); err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON, "parseSwitch"); err != nil {
			return nil, err
		}

		body := NewNode(NodeBlock, "case", caseTok).Add(lit)
		p.sem.EnterScope("case", ScopeBlock)
		for p.peek().Type != BREAK {
			if p.peek().Type == EOF {
				return nil, p.errorf(p.peek(), BREAK.String(), "parseSwitch")
			}
			stmt, err := p.parseInstruction()
			if err != nil {
				return nil, err
			}
			body.Add(stmt)
		}
		if err := p.sem.ExitScope(); err != nil {
			return nil, err
		}
		p.advance() // break
		if _, err := p.expect(SEMICOLON, "parseSwitch"); err != nil {
			return nil, err
		}
		node.Add(body)
	}

	defTok, err := p.expect(DEFAULT, "parseSwitch")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "parseSwitch"); err != nil {
		return nil, err
	}
	def := NewNode(NodeBlock, "default", defTok)
	p.sem.EnterScope("default", ScopeBlock)
	for p.peek().Type != RBRACE {
		if p.peek().Type == EOF {
			return nil, p.errorf(p.peek(), RBRACE.String(), "parseSwitch")
		}
		stmt, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		def.Add(stmt)
	}
	if err := p.sem.ExitScope(); err != nil {
		return nil, err
	}
	p.advance() // }
	return node.Add(def), nil
}

func (p *Parser) parseLiteral(rule string) (*Node, error) {
	tok := p.peek()
	if tok.Type.IsLiteral() || tok.Is("true") || tok.Is("false") {
		p.advance()
		return NewNode(NodeLiteral, tok.Lexeme, tok), nil
	}
	return nil, p.errorf(tok, "literal", rule)
}

func (p *Parser) parseBreak() (*Node, error) {
	tok, _ := p.advance()
	if err := p.sem.CheckBreak(tok); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "parseInstruction"); err != nil {
		return nil, err
	}
	if tok.Type == BREAK {
		return NewNode(NodeBreak, "", tok), nil
	}
	return NewNode(NodeContinue, "", tok), nil
}

func (p *Parser) parseReturn() (*Node, error) {
	ret, _ := p.advance()
	node := NewNode(NodeReturn, "", ret)
	if p.peek().Type == SEMICOLON {
		p.advance()
		if err := p.sem.CheckReturn(ret, false, ""); err != nil {
			return nil, err
		}
		return node, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	actual, err := p.sem.ExprSpelling(expr)
	if err != nil {
		return nil, err
	}
	if err := p.sem.CheckReturn(ret, true, actual); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON, "parseReturn"); err != nil {
		return nil, err
	}
	return node.Add(expr), nil
}

// parseExpression parses a full expression and records its token span.
func (p *Parser) parseExpression() (*Node, error) {
	start := p.stream.Pos()
	expr, err := p.parseComma()
	if err != nil {
		return nil, err
	}
	expr.Tokens = p.stream.Slice(start, p.stream.Pos())
	return expr, nil
}

func binary(op Token, left, right *Node) *Node {
	return NewNode(NodeExpression, op.Lexeme, op).Add(left, right)
}

// parseComma handles ,
func (p *Parser) parseComma() (*Node, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == COMMA {
		op, _ := p.advance()
		right, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

// parseLogicalOr handles ||
func (p *Parser) parseLogicalOr() (*Node, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == OR_LOGICAL {
		op, _ := p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

// parseLogicalAnd handles &&
func (p *Parser) parseLogicalAnd() (*Node, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == AND_LOGICAL {
		op, _ := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

// parseEquality handles == and !=
func (p *Parser) parseEquality() (*Node, error) {
	expr, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == EQUALS || p.peek().Type == NOT_EQ {
		op, _ := p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

// parseRelational handles < and >
func (p *Parser) parseRelational() (*Node, error) {
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == LESS || p.peek().Type == GREATER {
		op, _ := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

// parseAdditive handles + and -
func (p *Parser) parseAdditive() (*Node, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == PLUS || p.peek().Type == MINUS {
		op, _ := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

// parseMultiplicative handles * and /
func (p *Parser) parseMultiplicative() (*Node, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == STAR || p.peek().Type == SLASH {
		op, _ := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

// parseUnary handles prefix ! and -
func (p *Parser) parseUnary() (*Node, error) {
	if p.peek().Type == NOT || p.peek().Type == MINUS {
		op, _ := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewNode(NodeExpression, op.Lexeme, op).Add(operand), nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (*Node, error) {
	tok := p.peek()
	switch {
	case tok.Is("true") || tok.Is("false") || tok.Type.IsLiteral():
		p.advance()
		return NewNode(NodeLiteral, tok.Lexeme, tok), nil

	case tok.Type == IDENTIFIER:
		p.advance()
		if _, err := p.sem.Use(tok); err != nil {
			return nil, err
		}
		ident := NewNode(NodeIdentifier, tok.Lexeme, tok)
		for p.peek().Type == LBRACKET {
			p.advance()
			idx, err := p.parseIndex()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET, "parseAtom"); err != nil {
				return nil, err
			}
			ident.Add(idx)
		}
		return ident, nil

	case tok.Type == LPAREN:
		p.advance()
		inner, err := p.parseComma()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN, "parseAtom"); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.errorf(tok, "expression", "parseAtom")
	}
}
