package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo("a/../b/prog.cppt")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(full) || filepath.Base(full) != "prog.cppt" || filepath.Base(dir) != "b" {
		t.Errorf("GetPathInfo = %q, %q", full, dir)
	}
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.cppt")
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := ReadSource(path)
	if err != nil || src != "int x;\n" {
		t.Errorf("ReadSource = %q, %v", src, err)
	}
	if _, err := ReadSource(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadKeywords(t *testing.T) {
	builtin, err := ReadKeywords("")
	if err != nil {
		t.Fatal(err)
	}
	if !builtin.Contains("cout") || builtin.Contains("print") {
		t.Error("empty path should give the builtin set only")
	}

	path := filepath.Join(t.TempDir(), "keywords.txt")
	if err := os.WriteFile(path, []byte("print\nscan\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	kw, err := ReadKeywords(path)
	if err != nil {
		t.Fatal(err)
	}
	if !kw.Contains("print") || !kw.Contains("scan") || !kw.Contains("cin") {
		t.Error("file keywords and builtins should all be present")
	}

	if _, err := ReadKeywords(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing keyword file")
	}
}
