// Package lang provides the language support that exposes source sets on a
// project: Kotlin source layout conventions, Go modules and workspaces, and an
// explicit sourcesets.yaml manifest.
package lang

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// SourceSet is a named group of source roots as seen by a language extension.
type SourceSet interface {
	Name() string
	// SrcDirs returns the configured root directories, absolute.
	SrcDirs() []m.Path
	// Files resolves the source files currently present under the roots,
	// absolute, in enumeration order.
	Files() ([]m.Path, error)
}

// Extension is the capability a language plugin registers on a project.
type Extension interface {
	// Platform is the identifier of the plugin that registered the extension.
	Platform() string
	// SourceSets enumerates the source sets in the extension's own order.
	SourceSets() ([]SourceSet, error)
}

// Extension names as registered in the project's extension container.
const (
	ManifestExtensionName = "sourceSets"
	KotlinExtensionName   = "kotlin"
	GoExtensionName       = "golang"
)

var kotlinPluginIDs = []string{
	project.KotlinJVMPluginID,
	project.KotlinAndroidPluginID,
	project.KotlinMultiplatformPluginID,
}

// Apply registers the language extensions matching the project's platform
// identifiers. The manifest wins over Kotlin conventions, which win over Go.
func Apply(p *project.Project, fsys adapter.SourceFSAdapter) error {
	if p.HasPlugin(project.ManifestPluginID) {
		ext := NewManifestExtension(fsys, p.Dir())
		if err := p.Extensions().Add(ManifestExtensionName, ext); err != nil {
			return err
		}
	}

	for _, id := range p.PluginIDs() {
		if !slices.Contains(kotlinPluginIDs, id) {
			continue
		}

		ext := NewKotlinExtension(fsys, p.Dir(), id)
		if err := p.Extensions().Add(KotlinExtensionName, ext); err != nil {
			return err
		}

		break
	}

	if p.HasPlugin(project.GoPluginID) {
		ext := NewGoExtension(fsys, p.Dir())
		if err := p.Extensions().Add(GoExtensionName, ext); err != nil {
			return err
		}
	}

	slog.Debug("language extensions applied", "dir", p.Dir(), "extensions", p.Extensions().Names())

	return nil
}

// sourceSet resolves its files lazily on every Files call so callers always
// see the current state of the disk.
type sourceSet struct {
	name    string
	dirs    []m.Path
	resolve func() ([]m.Path, error)
}

func (s *sourceSet) Name() string {
	return s.name
}

func (s *sourceSet) SrcDirs() []m.Path {
	return slices.Clone(s.dirs)
}

func (s *sourceSet) Files() ([]m.Path, error) {
	if s.resolve == nil {
		return nil, nil
	}

	return s.resolve()
}

// walkFilter decides per entry during collectFiles. rel is slash separated and
// relative to the walked root.
type walkFilter struct {
	skipDir func(rel string, entry fs.DirEntry) bool
	include func(rel string, entry fs.DirEntry) bool
}

// collectFiles walks root in lexical order and returns the included files.
// A missing root yields no files.
func collectFiles(fsys adapter.SourceFSAdapter, root m.Path, filter walkFilter) ([]m.Path, error) {
	var files []m.Path

	err := fsys.Walk(root, func(path m.Path, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return adapter.SkipDir
			}

			return err
		}

		rel, relErr := fsys.RelPath(root, path)
		if relErr != nil {
			return relErr
		}

		slashRel := toSlash(rel)

		if entry.IsDir() {
			if path != root && filter.skipDir != nil && filter.skipDir(slashRel, entry) {
				return adapter.SkipDir
			}

			return nil
		}

		if filter.include == nil || filter.include(slashRel, entry) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

func isDir(fsys adapter.SourceFSAdapter, path m.Path) (bool, error) {
	info, err := fsys.FileInfo(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return info.IsDir(), nil
}
