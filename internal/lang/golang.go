package lang

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"golang.org/x/mod/modfile"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// Go source set names.
const (
	GoMainSourceSet = "main"
	GoTestSourceSet = "test"
)

// ErrNoModule is returned when go.mod does not declare a module path.
var ErrNoModule = errors.New("go.mod has no module directive")

// GoExtension exposes the packages of a Go module, or of every module used by
// a go.work workspace, as a "main" and a "test" source set.
type GoExtension struct {
	fs  adapter.SourceFSAdapter
	dir m.Path
}

// NewGoExtension creates the extension for the project at dir.
func NewGoExtension(fsys adapter.SourceFSAdapter, dir m.Path) *GoExtension {
	return &GoExtension{fs: fsys, dir: dir}
}

// Platform implements Extension.
func (g *GoExtension) Platform() string {
	return project.GoPluginID
}

// SourceSets implements Extension.
func (g *GoExtension) SourceSets() ([]SourceSet, error) {
	roots, err := g.moduleRoots()
	if err != nil {
		return nil, err
	}

	return []SourceSet{
		&sourceSet{
			name: GoMainSourceSet,
			dirs: roots,
			resolve: func() ([]m.Path, error) {
				return g.collect(roots, func(name string) bool { return !strings.HasSuffix(name, "_test.go") })
			},
		},
		&sourceSet{
			name: GoTestSourceSet,
			dirs: roots,
			resolve: func() ([]m.Path, error) {
				return g.collect(roots, func(name string) bool { return strings.HasSuffix(name, "_test.go") })
			},
		},
	}, nil
}

// moduleRoots lists the module directories: the go.work use entries when a
// workspace file exists, otherwise the project directory itself.
func (g *GoExtension) moduleRoots() ([]m.Path, error) {
	workPath := g.dir.Join(project.GoWorkFile)

	data, err := g.fs.ReadFile(workPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", workPath, err)
	}

	if err == nil {
		work, parseErr := modfile.ParseWork(string(workPath), data, nil)
		if parseErr != nil {
			return nil, fmt.Errorf("parse %s: %w", workPath, parseErr)
		}

		roots := make([]m.Path, 0, len(work.Use))
		for _, use := range work.Use {
			root := resolveDir(g.dir, use.Path)
			if _, modErr := g.modulePath(root); modErr != nil {
				return nil, modErr
			}

			roots = append(roots, root)
		}

		return roots, nil
	}

	if _, err := g.modulePath(g.dir); err != nil {
		return nil, err
	}

	return []m.Path{g.dir}, nil
}

func (g *GoExtension) modulePath(root m.Path) (string, error) {
	modPath := root.Join(project.GoModFile)

	data, err := g.fs.ReadFile(modPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", modPath, err)
	}

	file, err := modfile.ParseLax(string(modPath), data, nil)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", modPath, err)
	}

	if file.Module == nil {
		return "", fmt.Errorf("%s: %w", modPath, ErrNoModule)
	}

	slog.Debug("go module found", "root", root, "module", file.Module.Mod.Path)

	return file.Module.Mod.Path, nil
}

func (g *GoExtension) collect(roots []m.Path, keep func(name string) bool) ([]m.Path, error) {
	var files []m.Path

	for _, root := range roots {
		found, err := collectFiles(g.fs, root, walkFilter{
			skipDir: g.skipDir(root),
			include: func(_ string, entry fs.DirEntry) bool {
				return strings.HasSuffix(entry.Name(), ".go") && keep(entry.Name())
			},
		})
		if err != nil {
			return nil, err
		}

		files = append(files, found...)
	}

	return files, nil
}

// skipDir mirrors the go tool: vendor, testdata, dot and underscore dirs and
// nested modules are not part of the module's packages.
func (g *GoExtension) skipDir(root m.Path) func(rel string, entry fs.DirEntry) bool {
	return func(rel string, entry fs.DirEntry) bool {
		name := entry.Name()
		if name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return true
		}

		info, err := g.fs.FileInfo(root.Join(rel, project.GoModFile))

		return err == nil && !info.IsDir()
	}
}
