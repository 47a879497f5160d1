package compiler

import (
	"bufio"
	"io"
	"strings"
)

// BuiltinKeywords are reserved in every keyword set, whatever the host loads.
var BuiltinKeywords = []string{"func", "cin", "cout", "true", "false", "const"}

type trieNode struct {
	next map[rune]*trieNode
	term bool
}

// Trie is a prefix tree of reserved words. It is filled once and only read
// afterwards.
type Trie struct {
	root  trieNode
	words int
}

func NewTrie() *Trie {
	return &Trie{}
}

// NewKeywords returns a trie holding BuiltinKeywords plus words.
func NewKeywords(words ...string) *Trie {
	t := NewTrie()
	for _, w := range BuiltinKeywords {
		t.Insert(w)
	}
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// LoadKeywords reads a newline-separated keyword list. Blank lines are
// skipped. The builtin reserved words are always included.
func LoadKeywords(r io.Reader) (*Trie, error) {
	t := NewKeywords()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		t.Insert(w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Insert adds word. Inserting the empty string or a duplicate is a no-op.
func (t *Trie) Insert(word string) {
	if word == "" {
		return
	}
	n := &t.root
	for _, r := range word {
		if n.next == nil {
			n.next = make(map[rune]*trieNode)
		}
		child, ok := n.next[r]
		if !ok {
			child = &trieNode{}
			n.next[r] = child
		}
		n = child
	}
	if !n.term {
		n.term = true
		t.words++
	}
}

// Contains reports whether word was inserted. A proper prefix of an
// inserted word is not contained.
func (t *Trie) Contains(word string) bool {
	n := t.walk(word)
	return n != nil && n.term
}

// HasPrefix reports whether some inserted word starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	return t.walk(prefix) != nil
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.words
}

func (t *Trie) walk(s string) *trieNode {
	if t == nil {
		return nil
	}
	n := &t.root
	for _, r := range s {
		child, ok := n.next[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}
