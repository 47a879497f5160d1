package compiler

import (
	"errors"
	"strings"
	"testing"
)

func parseSource(t *testing.T, src string) (*Node, *Analyzer, error) {
	t.Helper()
	tokens, err := Lex(src, NewKeywords())
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	return Parse(tokens)
}

const fullProgram = `
int g = 10;

func int add(int a, int b) {
	return a + b;
}

/* everything the grammar offers */
func void main() {
	int x;
	cin >> x;
	x = g;
	int arr[10];
	arr[x] = x * 2;
	if (x > 0) {
		cout << "pos" << x;
	} else if (x == 0) {
		cout << "zero";
	} else {
		x = -x;
	}
	while (x > 0) {
		x = x - 1;
		if (x == 5) {
			break;
		}
	}
	for (int i = 0; i < 10; i = i + 1) {
		continue;
	}
	switch (x) {
		case 1:
			cout << 1;
			break;
		case 2:
			x = 3;
			break;
		default:
			x = 0;
	}
	bool flag = !(x == 1) && true;
	array<array<int>> m;
	m[1][x] = 4;
	{
		float f = 1.5;
		;
	}
	return;
}
`

func TestParseValidProgram(t *testing.T) {
	prog, sem, err := parseSource(t, fullProgram)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(prog.Children) != 3 {
		t.Fatalf("expected 3 top-level declarations, got %d\n%s", len(prog.Children), prog)
	}
	if prog.Children[1].Type != NodeFunction || prog.Children[1].Value != "add" {
		t.Errorf("second declaration = %v %q", prog.Children[1].Type, prog.Children[1].Value)
	}
	if sem.Scopes().Depth() != 0 {
		t.Errorf("scope stack not balanced: depth %d", sem.Scopes().Depth())
	}

	tab := sem.Table()
	checks := []struct {
		name, scope string
		typ         IdentifierType
		info        string
	}{
		{"g", GlobalScope, TypeInt, "int"},
		{"add", GlobalScope, TypeFunction, "int"},
		{"a", "add", TypeInt, "int"},
		{"x", "main", TypeInt, "int"},
		{"arr", "main", TypeArray, "array<int>"},
		{"m", "main", TypeArray, "array<array<int>>"},
		{"flag", "main", TypeBool, "bool"},
	}
	for _, c := range checks {
		e, ok := tab.Lookup(c.name, c.scope)
		if !ok {
			t.Errorf("%s not declared in %s\n%s", c.name, c.scope, tab)
			continue
		}
		if e.Type != c.typ || e.Info != c.info {
			t.Errorf("%s: got %v (%s), want %v (%s)", c.name, e.Type, e.Info, c.typ, c.info)
		}
	}

	x, _ := tab.Lookup("x", "main")
	if !x.Used || !x.Initialized {
		t.Errorf("x should be used and initialized: %+v", x)
	}
	g, _ := tab.Lookup("g", GlobalScope)
	if !g.Used {
		t.Error("global g read from main should be marked used")
	}

	var loopScoped bool
	for _, e := range tab.Entries() {
		if e.Name == "i" && strings.HasPrefix(e.Scope, "for#") {
			loopScoped = true
		}
	}
	if !loopScoped {
		t.Errorf("for counter should live in the loop scope\n%s", tab)
	}
}

func TestParseTree(t *testing.T) {
	prog, _, err := parseSource(t, "int x = 1 + 2 * 3;")
	if err != nil {
		t.Fatal(err)
	}
	want := `Program
  VarDecl "x"
    Identifier "int"
    Expression "+"
      Literal "1"
      Expression "*"
        Literal "2"
        Literal "3"
`
	if got := prog.String(); got != want {
		t.Errorf("tree mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseShapes(t *testing.T) {
	src := `func int f(int n) {
		int a[2][3];
		if (n > 1) { n = 1; } else if (n < 0) { n = 0; }
		for (int i = 0; i < n; i = i + 1) { a[1][i] = i; }
		return n;
	}`
	prog, _, err := parseSource(t, src)
	if err != nil {
		t.Fatal(err)
	}
	fn := prog.Children[0]
	if len(fn.Children) != 3 {
		t.Fatalf("function children = %d, want return type, param, body", len(fn.Children))
	}
	if fn.Children[0].Value != "int" || fn.Children[1].Type != NodeVarDecl {
		t.Errorf("unexpected function header\n%s", fn)
	}

	body := fn.Children[2]
	decl := body.Children[0]
	if decl.Children[0].Value != "array<array<int>>" || len(decl.Children[0].Children) != 2 {
		t.Errorf("dims should build the array spelling\n%s", decl)
	}

	ifNode := body.Children[1]
	if len(ifNode.Children) != 3 || ifNode.Children[2].Type != NodeIf {
		t.Errorf("else-if should nest an If node\n%s", ifNode)
	}

	loop := body.Children[2]
	if loop.Value != "for" || len(loop.Children) != 4 {
		t.Errorf("for loop should carry init, cond, step, body\n%s", loop)
	}

	roots := prog.Expressions()
	var spans []string
	for _, r := range roots {
		spans = append(spans, Detokenize(r.Tokens))
	}
	want := []string{"n > 1", "1", "n < 0", "0", "0", "i < n", "i + 1", "i", "n"}
	if strings.Join(spans, "|") != strings.Join(want, "|") {
		t.Errorf("expression spans = %q, want %q", spans, want)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		rule       string
		incomplete bool
	}{
		{"TopLevelStatement", "x = 1;", "parseDeclaration", false},
		{"MissingSemicolon", "int x", "parseDeclaration", true},
		{"UnclosedBlock", "func void main() {", "parseBlock", true},
		{"ExpressionIndex", "func void main() { int a[3]; a[1 + 1] = 2; }", "parseAssignment", false},
		{"SwitchWithoutDefault", "func void main() { int x = 1; switch (x) { case 1: break; } }", "parseSwitch", false},
		{"ForWithoutInit", "func void main() { for (; 1; ) { } }", "parseLoop", false},
		{"InputWithoutArrow", "func void main() { int x; cin x; }", "parseInput", false},
		{"MissingOperand", "int x = ;", "parseAtom", false},
		{"BadParamType", "func void f(x) { }", "parseParameter", false},
		{"ArrayWithoutArgument", "array a;", "parseType", false},
		{"StrayBrace", "func void main() { } }", "parseDeclaration", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseSource(t, tt.input)
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if synErr.Rule != tt.rule {
				t.Errorf("rule = %q, want %q (%v)", synErr.Rule, tt.rule, err)
			}
			if IsIncomplete(err) != tt.incomplete {
				t.Errorf("IsIncomplete = %v, want %v", IsIncomplete(err), tt.incomplete)
			}
		})
	}
}

func TestAdvancePastEnd(t *testing.T) {
	p := NewParser(nil, nil)
	_, err := p.advance()
	if !errors.Is(err, ErrUnexpectedEnd) {
		t.Errorf("advance() at EOF = %v, want ErrUnexpectedEnd", err)
	}
	if p.Analyzer() == nil {
		t.Error("NewParser(nil analyzer) should create one")
	}
}
