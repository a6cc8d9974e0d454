// Package filesystem provides the served-root backend for softserve.
// It canonicalizes request paths against the real filesystem, enforces
// containment below the root, and opens files through an os.Root so that
// a symlink swapped in after the containment check still cannot escape.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sagarc03/softserve"
)

// Root is an immutable, canonicalized served directory.
type Root struct {
	path string
	root *os.Root
}

// NewRoot canonicalizes path (absolute, symlinks resolved) and opens it.
// It fails if the path does not exist or is not a directory.
func NewRoot(path string) (*Root, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("new root: %w", err)
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("new root: %w", err)
	}

	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("new root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("new root: %s is not a directory", canonical)
	}

	root, err := os.OpenRoot(canonical)
	if err != nil {
		return nil, fmt.Errorf("new root: %w", err)
	}

	return &Root{path: canonical, root: root}, nil
}

// Path returns the canonical absolute path of the root.
func (r *Root) Path() string {
	return r.path
}

// FS returns a read-only io/fs view of the root. Like Open, it refuses to
// follow symlinks that leave the root.
func (r *Root) FS() fs.FS {
	return r.root.FS()
}

func (r *Root) Close() error {
	return r.root.Close()
}

// Contains reports whether the canonical path p is the root or below it.
func (r *Root) Contains(p string) bool {
	if p == r.path {
		return true
	}

	prefix := r.path
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(p, prefix)
}

// Resolve joins name onto the root without cleaning it and resolves the
// result against the real filesystem. Returns softserve.ErrOutsideRoot
// when the canonical path is not contained in the root.
func (r *Root) Resolve(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	candidate := r.path + string(filepath.Separator) + filepath.FromSlash(name)

	canonical, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", Classify(err)
	}

	if !r.Contains(canonical) {
		return "", fmt.Errorf("resolve %s: %w", name, softserve.ErrOutsideRoot)
	}

	return canonical, nil
}

// Open opens the absolute path p for reading through the os.Root handle.
func (r *Root) Open(ctx context.Context, p string) (softserve.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !r.Contains(p) {
		return nil, fmt.Errorf("open %s: %w", p, softserve.ErrOutsideRoot)
	}

	rel, err := filepath.Rel(r.path, p)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p, softserve.ErrOutsideRoot)
	}

	f, err := r.root.Open(rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", p, softserve.ErrNotFound)
		}
		// os.Root refuses links that leave the root. The path was swapped
		// after Resolve if it no longer canonicalizes inside.
		if canonical, evalErr := filepath.EvalSymlinks(p); evalErr == nil && !r.Contains(canonical) {
			return nil, fmt.Errorf("open %s: %w", p, softserve.ErrOutsideRoot)
		}
		return nil, Classify(err)
	}

	return f, nil
}
