package compiler

// TokenStream is a pull view over a lexed token slice. Comment tokens are
// skipped; the final EOF token is returned forever once reached.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream wraps tokens. If tokens does not end with EOF one is
// appended so the stream always terminates.
func NewTokenStream(tokens []Token) *TokenStream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		eof := Token{Type: EOF}
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			eof.Line, eof.Column = last.Line, last.Column+len([]rune(last.Lexeme))
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	s := &TokenStream{tokens: tokens}
	s.skipComments()
	return s
}

func (s *TokenStream) skipComments() {
	for s.pos < len(s.tokens)-1 && s.tokens[s.pos].Type == COMMENT_LIT {
		s.pos++
	}
}

// Current returns the token under the cursor without consuming it.
func (s *TokenStream) Current() Token {
	return s.tokens[s.pos]
}

// Peek returns the n-th non-comment token after the cursor. Peek(0) is
// Current. Looking past the end yields the EOF token.
func (s *TokenStream) Peek(n int) Token {
	i := s.pos
	for n > 0 && i < len(s.tokens)-1 {
		i++
		if s.tokens[i].Type != COMMENT_LIT {
			n--
		}
	}
	return s.tokens[i]
}

// Next consumes and returns the current token. At EOF it keeps returning
// EOF and reports ok=false.
func (s *TokenStream) Next() (tok Token, ok bool) {
	tok = s.tokens[s.pos]
	if tok.Type == EOF {
		return tok, false
	}
	s.pos++
	s.skipComments()
	return tok, true
}

// Pos is the index of the current token in the underlying slice.
func (s *TokenStream) Pos() int { return s.pos }

// Slice returns the underlying tokens in [from, to).
func (s *TokenStream) Slice(from, to int) []Token {
	return s.tokens[from:to:to]
}

// Reset rewinds the cursor to the first token.
func (s *TokenStream) Reset() {
	s.pos = 0
	s.skipComments()
}
