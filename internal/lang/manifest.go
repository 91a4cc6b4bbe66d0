package lang

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// ManifestEntry declares one source set in sourcesets.yaml.
type ManifestEntry struct {
	Name    string   `yaml:"name"`
	SrcDirs []string `yaml:"srcDirs"`
	// Include and Exclude are doublestar patterns matched against paths
	// relative to each source directory. An empty Include keeps every file.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// Manifest is the decoded sourcesets.yaml document.
type Manifest struct {
	SourceSets []ManifestEntry `yaml:"sourceSets"`
}

// ParseManifest decodes and validates a manifest document.
func ParseManifest(data []byte) (Manifest, error) {
	var manifest Manifest

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&manifest); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	seen := make(map[string]bool, len(manifest.SourceSets))

	for i, entry := range manifest.SourceSets {
		if entry.Name == "" {
			return Manifest{}, fmt.Errorf("source set #%d: name is required", i+1)
		}

		if seen[entry.Name] {
			return Manifest{}, fmt.Errorf("source set %q declared twice", entry.Name)
		}

		seen[entry.Name] = true

		if err := validatePatterns(entry.Include, entry.Name, "include"); err != nil {
			return Manifest{}, err
		}

		if err := validatePatterns(entry.Exclude, entry.Name, "exclude"); err != nil {
			return Manifest{}, err
		}
	}

	return manifest, nil
}

func validatePatterns(patterns []string, set, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("source set %q: invalid %s pattern %q", set, label, pat)
		}
	}

	return nil
}

// ManifestExtension exposes the source sets declared in sourcesets.yaml, in
// declaration order.
type ManifestExtension struct {
	fs  adapter.SourceFSAdapter
	dir m.Path
}

// NewManifestExtension creates the extension for the project at dir.
func NewManifestExtension(fsys adapter.SourceFSAdapter, dir m.Path) *ManifestExtension {
	return &ManifestExtension{fs: fsys, dir: dir}
}

// Platform implements Extension.
func (e *ManifestExtension) Platform() string {
	return project.ManifestPluginID
}

// SourceSets implements Extension. The manifest is re-read on every call.
func (e *ManifestExtension) SourceSets() ([]SourceSet, error) {
	path := e.dir.Join(project.ManifestFile)

	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sets := make([]SourceSet, 0, len(manifest.SourceSets))
	for _, entry := range manifest.SourceSets {
		dirs := make([]m.Path, 0, len(entry.SrcDirs))
		for _, dir := range entry.SrcDirs {
			dirs = append(dirs, resolveDir(e.dir, dir))
		}

		include, exclude := entry.Include, entry.Exclude

		sets = append(sets, &sourceSet{
			name: entry.Name,
			dirs: dirs,
			resolve: func() ([]m.Path, error) {
				var files []m.Path

				for _, dir := range dirs {
					found, err := collectFiles(e.fs, dir, walkFilter{
						include: func(rel string, _ fs.DirEntry) bool {
							return matchesAny(include, rel, true) && !matchesAny(exclude, rel, false)
						},
					})
					if err != nil {
						return nil, err
					}

					files = append(files, found...)
				}

				return files, nil
			},
		})
	}

	return sets, nil
}

// matchesAny reports whether rel matches one of patterns, or whenEmpty when
// there are no patterns.
func matchesAny(patterns []string, rel string, whenEmpty bool) bool {
	if len(patterns) == 0 {
		return whenEmpty
	}

	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}

	return false
}
