package project

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
)

// DefaultBuildDir is the build output directory used when none is configured.
const DefaultBuildDir = "build"

// Project is the context plugins and language support operate on.
type Project struct {
	dir        m.Path
	buildDir   m.Path
	pluginIDs  []string
	extensions *ExtensionContainer
	tasks      *TaskContainer
}

// LoadOptions tunes project loading.
type LoadOptions struct {
	// BuildDir is the build output directory, relative to the project
	// directory unless absolute. Empty means DefaultBuildDir.
	BuildDir string
	// PluginIDs are applied in addition to those detected from build files.
	PluginIDs []string
}

// New creates a project rooted at dir with the given platform identifiers.
// dir should be absolute.
func New(dir m.Path, pluginIDs ...string) *Project {
	return &Project{
		dir:        dir,
		buildDir:   dir.Join(DefaultBuildDir),
		pluginIDs:  slices.Clone(pluginIDs),
		extensions: NewExtensionContainer(),
		tasks:      NewTaskContainer(),
	}
}

// Load resolves dir and detects the platform identifiers declared by its
// build files.
func Load(fsys adapter.SourceFSAdapter, dir m.Path, opts LoadOptions) (*Project, error) {
	abs, err := fsys.AbsPath(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve project dir %s: %w", dir, err)
	}

	info, err := fsys.FileInfo(abs)
	if err != nil {
		return nil, fmt.Errorf("project dir %s: %w", abs, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("project dir %s is not a directory", abs)
	}

	ids, err := DetectPluginIDs(fsys, abs)
	if err != nil {
		return nil, fmt.Errorf("detect plugins: %w", err)
	}

	p := New(abs, ids...)

	for _, id := range opts.PluginIDs {
		if !p.HasPlugin(id) {
			p.pluginIDs = append(p.pluginIDs, id)
		}
	}

	if opts.BuildDir != "" {
		p.SetBuildDir(m.Path(opts.BuildDir))
	}

	slog.Debug("project loaded", "dir", p.dir, "buildDir", p.buildDir, "plugins", p.pluginIDs)

	return p, nil
}

// Dir returns the absolute project directory.
func (p *Project) Dir() m.Path {
	return p.dir
}

// BuildDir returns the absolute build output directory.
func (p *Project) BuildDir() m.Path {
	return p.buildDir
}

// SetBuildDir changes the build output directory. Relative values are
// resolved against the project directory.
func (p *Project) SetBuildDir(dir m.Path) {
	if filepath.IsAbs(string(dir)) {
		p.buildDir = dir
		return
	}

	p.buildDir = p.dir.Join(string(dir))
}

// PluginIDs returns the platform identifiers applied to the project.
func (p *Project) PluginIDs() []string {
	return slices.Clone(p.pluginIDs)
}

// HasPlugin reports whether id was applied.
func (p *Project) HasPlugin(id string) bool {
	return slices.Contains(p.pluginIDs, id)
}

// Extensions returns the project's extension container.
func (p *Project) Extensions() *ExtensionContainer {
	return p.extensions
}

// Tasks returns the project's task container.
func (p *Project) Tasks() *TaskContainer {
	return p.tasks
}
