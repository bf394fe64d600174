package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolve converts path to its canonical absolute form. Symbolic links are
// resolved through the deepest existing ancestor; a missing tail is kept
// verbatim so destinations that do not exist yet still resolve.
func Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := resolve(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return resolved, nil
}

func resolve(abs string) (string, error) {
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}
	resolvedParent, err := resolve(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(abs)), nil
}

// Validate resolves path and, when shouldExist is set, verifies it exists.
// The returned error wraps fs.ErrNotExist for missing paths so callers can
// classify it with errors.Is.
func Validate(path string, shouldExist bool) (string, error) {
	resolved, err := Resolve(path)
	if err != nil {
		return "", err
	}
	if shouldExist {
		if _, err := os.Stat(resolved); err != nil {
			return "", fmt.Errorf("path %s: %w", resolved, err)
		}
	}
	return resolved, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Within reports whether child lies inside parent after lexical cleaning.
// Used to guard against path traversal when joining untrusted names.
func Within(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
