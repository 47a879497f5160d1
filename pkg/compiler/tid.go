package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// GlobalScope is the scope of top-level declarations.
const GlobalScope = "global"

// Entry is one declaration in the identifier table.
type Entry struct {
	Name        string
	Scope       string
	Type        IdentifierType
	Info        string // full type spelling ("array<int>") or a function's return type
	Initialized bool
	Used        bool
	Line        int
	Column      int
}

// IdentifierTable maps (name, scope) pairs to declarations. The same name
// may live in several scopes at once. Entries are never removed.
type IdentifierTable struct {
	byName map[string][]*Entry
	order  []*Entry // declaration order, for dumps
}

func NewIdentifierTable() *IdentifierTable {
	return &IdentifierTable{byName: make(map[string][]*Entry)}
}

func (t *IdentifierTable) find(name, scope string) *Entry {
	for _, e := range t.byName[name] {
		if e.Scope == scope {
			return e
		}
	}
	return nil
}

// Declare inserts e. It fails if e.Name already exists in e.Scope.
func (t *IdentifierTable) Declare(e Entry) (*Entry, error) {
	if e.Scope == "" {
		e.Scope = GlobalScope
	}
	if t.find(e.Name, e.Scope) != nil {
		return nil, fmt.Errorf("identifier %q already declared in scope %q", e.Name, e.Scope)
	}
	entry := &e
	t.byName[e.Name] = append(t.byName[e.Name], entry)
	t.order = append(t.order, entry)
	return entry, nil
}

// Exists reports whether name is declared in exactly scope.
func (t *IdentifierTable) Exists(name, scope string) bool {
	return t.find(name, scope) != nil
}

// Lookup returns the entry for name in exactly scope.
func (t *IdentifierTable) Lookup(name, scope string) (*Entry, bool) {
	e := t.find(name, scope)
	return e, e != nil
}

// TypeOf returns the declared type of name in scope.
func (t *IdentifierTable) TypeOf(name, scope string) (IdentifierType, error) {
	e := t.find(name, scope)
	if e == nil {
		return TypeUnknown, fmt.Errorf("identifier %q not found in scope %q", name, scope)
	}
	return e.Type, nil
}

func (t *IdentifierTable) MarkUsed(name, scope string) error {
	e := t.find(name, scope)
	if e == nil {
		return fmt.Errorf("identifier %q not found in scope %q", name, scope)
	}
	e.Used = true
	return nil
}

func (t *IdentifierTable) MarkInitialized(name, scope string) error {
	e := t.find(name, scope)
	if e == nil {
		return fmt.Errorf("identifier %q not found in scope %q", name, scope)
	}
	e.Initialized = true
	return nil
}

// Entries returns copies of all entries in declaration order.
func (t *IdentifierTable) Entries() []Entry {
	out := make([]Entry, len(t.order))
	for i, e := range t.order {
		out[i] = *e
	}
	return out
}

// Len returns the number of entries.
func (t *IdentifierTable) Len() int { return len(t.order) }

// String returns a deterministically ordered dump of the table, grouped by
// scope in first-declaration order and sorted by name within a scope.
func (t *IdentifierTable) String() string {
	if len(t.order) == 0 {
		return "Identifiers: (empty)\n"
	}
	var scopes []string
	byScope := make(map[string][]*Entry)
	for _, e := range t.order {
		if _, ok := byScope[e.Scope]; !ok {
			scopes = append(scopes, e.Scope)
		}
		byScope[e.Scope] = append(byScope[e.Scope], e)
	}

	var sb strings.Builder
	sb.WriteString("Identifiers:\n")
	for _, scope := range scopes {
		fmt.Fprintf(&sb, "  Scope %s:\n", scope)
		entries := byScope[scope]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		for _, e := range entries {
			typ := e.Type.String()
			if e.Info != "" {
				typ += " (" + e.Info + ")"
			}
			fmt.Fprintf(&sb, "    %-16s  %-20s  initialized=%t used=%t\n", e.Name, typ, e.Initialized, e.Used)
		}
	}
	return sb.String()
}
