// Package security guards file access driven by request input.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscape is returned when a name resolves outside its base directory.
var ErrPathEscape = errors.New("path escapes base directory")

// ResolveWithin joins name onto base and returns the resulting path after
// resolving symlinks on both sides. It fails with ErrPathEscape when the
// result is not inside base, including through a symlink. The target must
// exist.
func ResolveWithin(base, name string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base %s: %w", base, err)
	}
	realBase, err := filepath.EvalSymlinks(absBase)
	if err != nil {
		return "", fmt.Errorf("resolve base %s: %w", base, err)
	}

	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s is absolute", ErrPathEscape, name)
	}
	joined := filepath.Join(absBase, name)
	if !within(absBase, joined) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, name)
	}

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}
	if !within(realBase, resolved) {
		return "", fmt.Errorf("%w: %s links outside %s", ErrPathEscape, name, base)
	}
	return resolved, nil
}

func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
