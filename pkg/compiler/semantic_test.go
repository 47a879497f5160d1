package compiler

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string // substring of the message; empty means success
	}{
		{"Redeclaration", "int x; int x;", "redeclaration"},
		{"GlobalAndLocalDoNotConflict", "int x; func void main() { int x; }", ""},
		{"UndeclaredAssign", "func void main() { y = 1; }", "used without declaration"},
		{"UndeclaredRead", "func void main() { int a = y; }", "used without declaration"},
		{"UndeclaredInput", "func void main() { cin >> y; }", "used without declaration"},
		{"BreakOutsideLoop", "func void main() { break; }", "outside of a loop"},
		{"ContinueOutsideLoop", "func void main() { if (true) { continue; } }", "outside of a loop"},
		{"BreakInsideWhile", "func void main() { bool c = true; while (c) { break; } }", ""},
		{"BreakInNestedBlock", "func void main() { bool c = true; while (c) { if (c) { { break; } } } }", ""},
		{"InitMismatch", `int x = "s";`, "type mismatch"},
		{"AssignMismatch", "func void main() { int x; x = 1.5; }", "type mismatch"},
		{"FunctionRedeclared", "func void f() { } func int f() { return 1; }", "already declared"},
		{"FunctionNameTakenByGlobal", "int f; func void f() { }", "already declared"},
		{"VoidReturnsValue", "func void f() { return 1; }", "cannot return a value"},
		{"MissingReturnValue", "func int f() { return; }", "must return"},
		{"ReturnMismatch", "func int f() { return true; }", "type mismatch"},
		{"CaseMismatch", "func void main() { int x = 1; switch (x) { case 'a': break; default: } }", "type mismatch"},
		{"DuplicateCase", "func void main() { int x = 1; switch (x) { case 1: break; case 1: break; default: } }", "duplicate case"},
		{"ParamRedeclaredInBody", "func void f(int a) { int a; }", "redeclaration"},
		{"ParamVisibleInNestedBlock", "func void f(int a) { { a = 2; } }", ""},
		{"ShadowInNestedBlock", "func void f(int a) { { float a = 1.0; } }", ""},
		{"NotAnArray", "int x; func void main() { x[1] = 2; }", "not an array"},
		{"FloatIndex", "func void main() { int a[3]; float f = 1.0; a[f] = 1; }", "type mismatch"},
		{"ElementType", "func void main() { int a[3]; a[0] = 1; int b = a[1]; }", ""},
		{"ArithmeticMismatch", "func void main() { int a = 1 + 2.5; }", "type mismatch"},
		{"ComparisonIsBool", "func void main() { int a = 1; bool b = a == 1 || a > 2; }", ""},
		{"AssignToFunction", "func void f() { f = 1; }", "type mismatch"},
		{"VoidVariable", "void v;", "cannot have type void"},
		{"FunctionNamedGlobal", "int x; func void global() { int x; }", "reserved for the global scope"},
		{"ArrayElementMismatch", "array<int> a; array<string> b; func void main() { a = b; }", "type mismatch"},
		{"ArrayDepthMismatch", "func void main() { int m[2][2]; int v[2]; m = v; }", "type mismatch"},
		{"ArrayInitMismatch", "func void main() { int v[2]; array<float> w = v; }", "type mismatch"},
		{"SameArrayType", "array<int> a; func void main() { int v[3]; a = v; }", ""},
		{"RowAssignment", "func void main() { int m[2][2]; int v[2]; m[0] = v; }", ""},
		{"ArrayReturnMismatch", "func array<int> f() { array<char> c; return c; }", "type mismatch"},
		{"CounterScopedToLoop", "func void main() { for (int i = 0; i < 3; i = i + 1) { } i = 1; }", "used without declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseSource(t, tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var semErr *SemanticError
			if !errors.As(err, &semErr) {
				t.Fatalf("expected *SemanticError, got %v", err)
			}
			if !strings.Contains(semErr.Msg, tt.wantErr) {
				t.Errorf("message %q does not contain %q", semErr.Msg, tt.wantErr)
			}
			if semErr.Line < 1 {
				t.Errorf("missing position: %v", err)
			}
		})
	}
}

func TestTypeMismatchDetails(t *testing.T) {
	_, _, err := parseSource(t, "func void main() {\n  char c = 42;\n}")
	var semErr *SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("expected *SemanticError, got %v", err)
	}
	if semErr.Name != "c" || semErr.Expected != "char" || semErr.Actual != "int" {
		t.Errorf("got name=%q expected=%q actual=%q", semErr.Name, semErr.Expected, semErr.Actual)
	}
	if semErr.Line != 2 || semErr.Col != 8 {
		t.Errorf("position = %d:%d, want 2:8", semErr.Line, semErr.Col)
	}
}

func TestArrayMismatchDetails(t *testing.T) {
	_, _, err := parseSource(t, "func void main() { int m[2][2]; int v[2]; m = v; }")
	var semErr *SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("expected *SemanticError, got %v", err)
	}
	if semErr.Expected != "array<array<int>>" || semErr.Actual != "array<int>" {
		t.Errorf("expected=%q actual=%q", semErr.Expected, semErr.Actual)
	}
}

func TestAnalyzerDirect(t *testing.T) {
	sem := NewAnalyzer()
	ret := Token{Type: RETURN, Lexeme: "return", Line: 1, Column: 1}
	if err := sem.CheckReturn(ret, false, ""); err == nil {
		t.Error("return outside a function should fail")
	}
	brk := Token{Type: BREAK, Lexeme: "break", Line: 1, Column: 1}
	if err := sem.CheckBreak(brk); err == nil {
		t.Error("break at global scope should fail")
	}

	name := Token{Type: IDENTIFIER, Lexeme: "n", Line: 1, Column: 5}
	if _, err := sem.DeclareVariable(name, "int", false); err != nil {
		t.Fatal(err)
	}
	sem.EnterScope("block", ScopeBlock)
	e, err := sem.Use(name)
	if err != nil {
		t.Fatalf("global should be visible from a nested scope: %v", err)
	}
	if e.Scope != GlobalScope || !e.Used {
		t.Errorf("Use() = %+v", e)
	}
	if sem.CurrentScope() == GlobalScope {
		t.Error("CurrentScope should be the block")
	}
	if err := sem.ExitScope(); err != nil {
		t.Fatal(err)
	}
	if err := sem.CheckType(name, "n", TypeUnknown, TypeString); err != nil {
		t.Errorf("unknown should match anything: %v", err)
	}
	if err := sem.CheckAssign(name, "n", "array<int>", "unknown"); err != nil {
		t.Errorf("unknown should match an array: %v", err)
	}
	if err := sem.CheckAssign(name, "n", "array<int>", "array<bool>"); err == nil {
		t.Error("array<bool> should not be assignable to array<int>")
	}
}

func TestAnalyzerTrace(t *testing.T) {
	var buf bytes.Buffer
	tokens, err := Lex("func void main() { int x = 1; }", NewKeywords())
	if err != nil {
		t.Fatal(err)
	}
	sem := NewAnalyzer()
	sem.SetLogger(log.New(&buf, "", 0))
	if _, err := NewParser(tokens, sem).ParseProgram(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"declared function main:void", "enter function scope main", "declared x:int in main", "exit scope main"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}
