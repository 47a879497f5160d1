package compiler

import (
	"strings"
	"testing"
)

func TestIdentifierTable(t *testing.T) {
	t.Run("DeclareAndLookup", func(t *testing.T) {
		tab := NewIdentifierTable()
		if _, err := tab.Declare(Entry{Name: "x", Type: TypeInt}); err != nil {
			t.Fatal(err)
		}
		e, ok := tab.Lookup("x", GlobalScope)
		if !ok {
			t.Fatal("x not found in global scope")
		}
		if e.Scope != GlobalScope {
			t.Errorf("empty scope should default to %q, got %q", GlobalScope, e.Scope)
		}
		if typ, err := tab.TypeOf("x", GlobalScope); err != nil || typ != TypeInt {
			t.Errorf("TypeOf(x) = %v, %v", typ, err)
		}
		if _, err := tab.TypeOf("x", "main"); err == nil {
			t.Error("TypeOf in the wrong scope should fail")
		}
	})

	t.Run("Redeclaration", func(t *testing.T) {
		tab := NewIdentifierTable()
		tab.Declare(Entry{Name: "x", Scope: GlobalScope, Type: TypeInt})
		if _, err := tab.Declare(Entry{Name: "x", Scope: GlobalScope, Type: TypeFloat}); err == nil {
			t.Error("expected redeclaration error in the same scope")
		}
		if _, err := tab.Declare(Entry{Name: "x", Scope: "main", Type: TypeFloat}); err != nil {
			t.Errorf("same name in another scope must be allowed: %v", err)
		}
		if !tab.Exists("x", "main") || !tab.Exists("x", GlobalScope) || tab.Exists("x", "f") {
			t.Error("Exists reports wrong scopes")
		}
	})

	t.Run("Flags", func(t *testing.T) {
		tab := NewIdentifierTable()
		tab.Declare(Entry{Name: "y", Scope: "main", Type: TypeInt})
		if err := tab.MarkUsed("y", "main"); err != nil {
			t.Fatal(err)
		}
		if err := tab.MarkInitialized("y", "main"); err != nil {
			t.Fatal(err)
		}
		e, _ := tab.Lookup("y", "main")
		if !e.Used || !e.Initialized {
			t.Errorf("flags not set: %+v", e)
		}
		if err := tab.MarkUsed("y", GlobalScope); err == nil {
			t.Error("MarkUsed on a missing entry should fail")
		}
		if err := tab.MarkInitialized("z", "main"); err == nil {
			t.Error("MarkInitialized on a missing entry should fail")
		}
	})

	t.Run("EntriesAreCopies", func(t *testing.T) {
		tab := NewIdentifierTable()
		tab.Declare(Entry{Name: "a", Type: TypeInt})
		tab.Declare(Entry{Name: "b", Type: TypeChar})
		entries := tab.Entries()
		if len(entries) != 2 || entries[0].Name != "a" || entries[1].Name != "b" {
			t.Fatalf("Entries() = %+v", entries)
		}
		entries[0].Used = true
		if e, _ := tab.Lookup("a", GlobalScope); e.Used {
			t.Error("Entries() must not expose the stored entries")
		}
		if tab.Len() != 2 {
			t.Errorf("Len() = %d", tab.Len())
		}
	})
}

func TestIdentifierTableString(t *testing.T) {
	tab := NewIdentifierTable()
	if got := tab.String(); got != "Identifiers: (empty)\n" {
		t.Errorf("empty dump = %q", got)
	}

	tab.Declare(Entry{Name: "main", Type: TypeFunction, Info: "int"})
	tab.Declare(Entry{Name: "zeta", Scope: "main", Type: TypeInt, Info: "int"})
	tab.Declare(Entry{Name: "alpha", Scope: "main", Type: TypeArray, Info: "array<int>"})
	tab.Declare(Entry{Name: "g", Type: TypeBool, Info: "bool"})

	out := tab.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var names []string
	for _, l := range lines {
		fields := strings.Fields(l)
		if len(fields) > 0 && fields[0] != "Identifiers:" && fields[0] != "Scope" {
			names = append(names, fields[0])
		}
	}
	want := []string{"g", "main", "alpha", "zeta"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("dump order = %v, want %v\n%s", names, want, out)
	}
	if !strings.Contains(out, "array (array<int>)") {
		t.Errorf("dump should show the type spelling:\n%s", out)
	}
	if strings.Index(out, "Scope global") > strings.Index(out, "Scope main") {
		t.Errorf("scopes should appear in first-declaration order:\n%s", out)
	}
}
