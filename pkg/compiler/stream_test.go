package compiler

import "testing"

func TestTokenStream(t *testing.T) {
	tokens, err := Lex("/* a */ x /* b */ = /* c */ 1;", NewKeywords())
	if err != nil {
		t.Fatal(err)
	}
	s := NewTokenStream(tokens)

	if got := s.Current(); got.Type != IDENTIFIER {
		t.Fatalf("Current() = %v, want IDENTIFIER (leading comment skipped)", got.Type)
	}
	peeks := []TokenType{IDENTIFIER, ASSIGN, INT_LIT, SEMICOLON, EOF, EOF}
	for i, want := range peeks {
		if got := s.Peek(i).Type; got != want {
			t.Errorf("Peek(%d) = %v, want %v", i, got, want)
		}
	}

	var seen []TokenType
	for {
		tok, ok := s.Next()
		if !ok {
			if tok.Type != EOF {
				t.Errorf("Next() past end returned %v", tok.Type)
			}
			break
		}
		seen = append(seen, tok.Type)
	}
	want := []TokenType{IDENTIFIER, ASSIGN, INT_LIT, SEMICOLON}
	if len(seen) != len(want) {
		t.Fatalf("Next() yielded %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, seen[i], want[i])
		}
	}
	if _, ok := s.Next(); ok {
		t.Error("Next() at EOF must keep reporting ok=false")
	}

	s.Reset()
	if s.Current().Lexeme != "x" {
		t.Errorf("after Reset, Current() = %q, want x", s.Current().Lexeme)
	}
}

func TestTokenStreamAppendsEOF(t *testing.T) {
	s := NewTokenStream([]Token{{Type: IDENTIFIER, Lexeme: "ab", Line: 2, Column: 4}})
	s.Next()
	eof := s.Current()
	if eof.Type != EOF {
		t.Fatalf("expected synthetic EOF, got %v", eof.Type)
	}
	if eof.Line != 2 || eof.Column != 6 {
		t.Errorf("EOF position = %d:%d, want 2:6", eof.Line, eof.Column)
	}

	empty := NewTokenStream(nil)
	if _, ok := empty.Next(); ok {
		t.Error("empty stream should be at EOF")
	}
}

func TestTokenStreamSlice(t *testing.T) {
	tokens, _ := Lex("a + b ;", NewKeywords())
	s := NewTokenStream(tokens)
	start := s.Pos()
	s.Next()
	s.Next()
	s.Next()
	span := s.Slice(start, s.Pos())
	if len(span) != 3 || span[2].Lexeme != "b" {
		t.Errorf("Slice() = %v", span)
	}
}
