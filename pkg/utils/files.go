package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"cppt/pkg/compiler"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource reads a whole source file.
func ReadSource(path string) (string, error) {
	full, _, err := GetPathInfo(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read source %q: %w", path, err)
	}
	return string(data), nil
}

// ReadKeywords loads a keyword file, one word per line. An empty path
// returns the builtin keyword set.
func ReadKeywords(path string) (*compiler.Trie, error) {
	if path == "" {
		return compiler.NewKeywords(), nil
	}
	full, _, err := GetPathInfo(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("read keywords %q: %w", path, err)
	}
	defer f.Close()
	kw, err := compiler.LoadKeywords(f)
	if err != nil {
		return nil, fmt.Errorf("read keywords %q: %w", path, err)
	}
	return kw, nil
}
