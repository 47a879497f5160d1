package compiler

import (
	"fmt"
	"log"
)

// Analyzer is the semantic collaborator of the parser. It owns the scope
// stack and the identifier table and checks every declaration and use as
// the parser recognises it.
type Analyzer struct {
	table  *IdentifierTable
	scopes ScopeStack
	logger *log.Logger
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{table: NewIdentifierTable()}
}

// SetLogger enables tracing of declarations and scope changes. nil disables it.
func (a *Analyzer) SetLogger(l *log.Logger) { a.logger = l }

func (a *Analyzer) tracef(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}

func (a *Analyzer) Table() *IdentifierTable { return a.table }
func (a *Analyzer) Scopes() *ScopeStack     { return &a.scopes }

// CurrentScope is the innermost scope name, or GlobalScope.
func (a *Analyzer) CurrentScope() string { return a.scopes.Current() }

func semErrorf(at Token, name, format string, args ...any) *SemanticError {
	return &SemanticError{Line: at.Line, Col: at.Column, Name: name, Msg: fmt.Sprintf(format, args...)}
}

func (a *Analyzer) EnterScope(name string, kind ScopeKind) Scope {
	sc := a.scopes.EnterScope(name, kind)
	a.tracef("enter %s scope %s", kind, sc.Name)
	return sc
}

func (a *Analyzer) ExitScope() error {
	sc, err := a.scopes.ExitScope()
	if err != nil {
		return &SemanticError{Msg: err.Error(), Err: err}
	}
	a.tracef("exit scope %s", sc.Name)
	return nil
}

// DeclareFunction registers a function in the global scope. A function body
// opens a scope named after the function, so GlobalScope is not a legal name.
func (a *Analyzer) DeclareFunction(name Token, returnType string) error {
	if name.Lexeme == GlobalScope {
		return semErrorf(name, name.Lexeme, "function name %q is reserved for the global scope", name.Lexeme)
	}
	if a.table.Exists(name.Lexeme, GlobalScope) {
		return semErrorf(name, name.Lexeme, "function %q is already declared", name.Lexeme)
	}
	_, err := a.table.Declare(Entry{
		Name:        name.Lexeme,
		Scope:       GlobalScope,
		Type:        TypeFunction,
		Info:        returnType,
		Initialized: true,
		Line:        name.Line,
		Column:      name.Column,
	})
	if err != nil {
		return semErrorf(name, name.Lexeme, "%v", err)
	}
	a.tracef("declared function %s:%s", name.Lexeme, returnType)
	return nil
}

// DeclareVariable registers a variable or parameter of the given type
// spelling in the current scope.
func (a *Analyzer) DeclareVariable(name Token, spelling string, initialized bool) (*Entry, error) {
	if typeFromSpelling(spelling) == TypeVoid || ElementType(spelling) == "void" {
		return nil, semErrorf(name, name.Lexeme, "variable %q cannot have type %s", name.Lexeme, spelling)
	}
	scope := a.scopes.Current()
	e, err := a.table.Declare(Entry{
		Name:        name.Lexeme,
		Scope:       scope,
		Type:        typeFromSpelling(spelling),
		Info:        spelling,
		Initialized: initialized,
		Line:        name.Line,
		Column:      name.Column,
	})
	if err != nil {
		return nil, semErrorf(name, name.Lexeme, "redeclaration: %v", err)
	}
	a.tracef("declared %s:%s in %s", name.Lexeme, spelling, scope)
	return e, nil
}

// Resolve finds name in the current scope or the nearest enclosing one.
func (a *Analyzer) Resolve(name Token) (*Entry, error) {
	for _, scope := range a.scopes.Chain() {
		if e, ok := a.table.Lookup(name.Lexeme, scope); ok {
			return e, nil
		}
	}
	return nil, semErrorf(name, name.Lexeme, "identifier %q used without declaration in scope %q",
		name.Lexeme, a.scopes.Current())
}

// Use resolves name and marks it used.
func (a *Analyzer) Use(name Token) (*Entry, error) {
	e, err := a.Resolve(name)
	if err != nil {
		return nil, err
	}
	if err := a.table.MarkUsed(e.Name, e.Scope); err != nil {
		return nil, semErrorf(name, name.Lexeme, "%v", err)
	}
	return e, nil
}

// Initialize resolves name and marks it initialized.
func (a *Analyzer) Initialize(name Token) (*Entry, error) {
	e, err := a.Resolve(name)
	if err != nil {
		return nil, err
	}
	if e.Type == TypeFunction {
		return nil, semErrorf(name, name.Lexeme, "cannot assign to function %q", name.Lexeme)
	}
	if err := a.table.MarkInitialized(e.Name, e.Scope); err != nil {
		return nil, semErrorf(name, name.Lexeme, "%v", err)
	}
	return e, nil
}

// CheckType fails when actual cannot be stored where expected is required.
func (a *Analyzer) CheckType(at Token, name string, expected, actual IdentifierType) error {
	if compatible(expected, actual) {
		return nil
	}
	err := semErrorf(at, name, "type mismatch for %q: expected %s, got %s", name, expected, actual)
	err.Expected, err.Actual = expected.String(), actual.String()
	return err
}

// CheckAssign is CheckType over full spellings: two arrays match only when
// their element types match at every level.
func (a *Analyzer) CheckAssign(at Token, name, expected, actual string) error {
	if assignable(expected, actual) {
		return nil
	}
	err := semErrorf(at, name, "type mismatch for %q: expected %s, got %s", name, expected, actual)
	err.Expected, err.Actual = expected, actual
	return err
}

// CheckBreak fails when break/continue is not inside a loop.
func (a *Analyzer) CheckBreak(at Token) error {
	if a.scopes.InLoop() {
		return nil
	}
	return semErrorf(at, "", "%q outside of a loop", at.Lexeme)
}

// CheckReturn validates a return against the enclosing function's type.
// actual is a type spelling and is ignored when hasValue is false.
func (a *Analyzer) CheckReturn(at Token, hasValue bool, actual string) error {
	fn, ok := a.scopes.Function()
	if !ok {
		return semErrorf(at, "", "return outside of a function")
	}
	e, ok := a.table.Lookup(fn, GlobalScope)
	if !ok {
		return semErrorf(at, fn, "function %q is not declared", fn)
	}
	ret := typeFromSpelling(e.Info)
	switch {
	case ret == TypeVoid && hasValue:
		return semErrorf(at, fn, "void function %q cannot return a value", fn)
	case ret != TypeVoid && !hasValue:
		return semErrorf(at, fn, "function %q must return a %s value", fn, e.Info)
	case hasValue:
		return a.CheckAssign(at, fn, e.Info, actual)
	}
	return nil
}

// ExprType infers the type tag of an expression node.
func (a *Analyzer) ExprType(n *Node) (IdentifierType, error) {
	spelling, err := a.ExprSpelling(n)
	if err != nil {
		return TypeUnknown, err
	}
	return typeFromSpelling(spelling), nil
}

// ExprSpelling infers the full type spelling of an expression node, such as
// "int" or "array<array<char>>". Unknown operands yield "unknown".
func (a *Analyzer) ExprSpelling(n *Node) (string, error) {
	unknown := TypeUnknown.String()
	switch n.Type {
	case NodeLiteral:
		return literalType(n.Token).String(), nil
	case NodeIdentifier:
		return a.identSpelling(n)
	case NodeExpression:
		if len(n.Children) == 1 {
			s, err := a.ExprSpelling(n.Children[0])
			if err != nil || n.Value == "!" {
				return TypeBool.String(), err
			}
			return s, nil
		}
		if len(n.Children) != 2 {
			return unknown, nil
		}
		left, err := a.ExprSpelling(n.Children[0])
		if err != nil {
			return unknown, err
		}
		right, err := a.ExprSpelling(n.Children[1])
		if err != nil {
			return unknown, err
		}
		switch n.Value {
		case ",":
			return right, nil
		case "&&", "||":
			return TypeBool.String(), nil
		case "==", "!=", "<", ">":
			if !assignable(left, right) {
				return unknown, a.operandMismatch(n, left, right)
			}
			return TypeBool.String(), nil
		default:
			if !assignable(left, right) {
				return unknown, a.operandMismatch(n, left, right)
			}
			if typeFromSpelling(left) == TypeUnknown {
				return right, nil
			}
			return left, nil
		}
	}
	return unknown, nil
}

func (a *Analyzer) operandMismatch(n *Node, left, right string) error {
	err := semErrorf(n.Token, n.Value, "type mismatch in %q: %s %s %s", n.Value, left, n.Value, right)
	err.Expected, err.Actual = left, right
	return err
}

// identSpelling returns the type spelling of an identifier reference,
// stripping one array level per index child.
func (a *Analyzer) identSpelling(n *Node) (string, error) {
	e, err := a.Resolve(n.Token)
	if err != nil {
		return TypeUnknown.String(), err
	}
	if e.Type != TypeArray && len(n.Children) == 0 {
		return e.Type.String(), nil
	}
	spelling := e.Info
	for range n.Children {
		elem := ElementType(spelling)
		if elem == "" {
			return TypeUnknown.String(), semErrorf(n.Token, e.Name, "%q of type %s is not an array", e.Name, spelling)
		}
		spelling = elem
	}
	return spelling, nil
}
