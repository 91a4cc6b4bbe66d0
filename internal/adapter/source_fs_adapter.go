// Package adapter contains filesystem and persistence adapters for srcmap.
package adapter

import (
	"io/fs"
	"os"
	"path/filepath"

	m "srcmap.dev/pkg/srcmap/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that discovery and
// reporting rely on. It hides direct `os` access so the domain logic can be
// tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps domain logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses root in lexical order. Errors from the walk itself are
	// passed to fn, like filepath.WalkDir.
	Walk(root m.Path, fn WalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so callers can check existence or
	// distinguish between files and directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(path m.Path, perm os.FileMode) error

	// WriteFile writes content to a file with the given permissions,
	// replacing any previous content.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// AbsPath returns an absolute representation of path.
	AbsPath(path m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// WalkFunc mirrors fs.WalkDirFunc without leaking the standard-library type
// into the domain layer.
type WalkFunc func(path m.Path, entry fs.DirEntry, err error) error

// SkipDir can be returned from a WalkFunc to skip the current directory.
var SkipDir = filepath.SkipDir

// LocalSourceFSAdapter is the os-backed implementation of SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into discovery and the report store.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over entries under root in lexical order.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn WalkFunc) error {
	return filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		return fn(m.Path(path), entry, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path is a project file chosen by the caller
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// MkdirAll creates the directory chain for path.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// AbsPath returns the absolute form of path.
func (a *LocalSourceFSAdapter) AbsPath(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
