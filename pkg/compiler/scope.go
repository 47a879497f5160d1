package compiler

import "fmt"

// ScopeKind classifies a lexical scope.
type ScopeKind int

const (
	ScopeFunction ScopeKind = iota
	ScopeBlock
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFunction:
		return "function"
	case ScopeLoop:
		return "loop"
	default:
		return "block"
	}
}

// Scope is one entry of the scope stack.
type Scope struct {
	Name string
	Kind ScopeKind
}

// ScopeStack is the LIFO of active scopes. An empty stack means global.
type ScopeStack struct {
	scopes []Scope
	serial int // numbering for synthetic scope ids
}

// EnterScope pushes a scope. Function scopes keep name; other kinds get a
// unique synthetic id built from name ("while" -> "while#3").
func (s *ScopeStack) EnterScope(name string, kind ScopeKind) Scope {
	if kind != ScopeFunction {
		s.serial++
		name = fmt.Sprintf("%s#%d", name, s.serial)
	}
	sc := Scope{Name: name, Kind: kind}
	s.scopes = append(s.scopes, sc)
	return sc
}

// ExitScope pops the innermost scope. Popping an empty stack is an error.
func (s *ScopeStack) ExitScope() (Scope, error) {
	if len(s.scopes) == 0 {
		return Scope{}, ErrScopeUnderflow
	}
	sc := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return sc, nil
}

// Current returns the innermost scope name, or GlobalScope.
func (s *ScopeStack) Current() string {
	if len(s.scopes) == 0 {
		return GlobalScope
	}
	return s.scopes[len(s.scopes)-1].Name
}

// Depth is the number of active scopes.
func (s *ScopeStack) Depth() int { return len(s.scopes) }

// Chain lists scope names from the innermost outward, ending with
// GlobalScope.
func (s *ScopeStack) Chain() []string {
	out := make([]string, 0, len(s.scopes)+1)
	for i := len(s.scopes) - 1; i >= 0; i-- {
		out = append(out, s.scopes[i].Name)
	}
	return append(out, GlobalScope)
}

// InLoop reports whether a loop scope is reached before a function scope
// when walking outward. Plain blocks are transparent.
func (s *ScopeStack) InLoop() bool {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		switch s.scopes[i].Kind {
		case ScopeLoop:
			return true
		case ScopeFunction:
			return false
		}
	}
	return false
}

// Function returns the innermost function scope name.
func (s *ScopeStack) Function() (string, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if s.scopes[i].Kind == ScopeFunction {
			return s.scopes[i].Name, true
		}
	}
	return "", false
}
