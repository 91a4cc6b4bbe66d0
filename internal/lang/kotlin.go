package lang

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

const (
	kotlinSourceRoot = "src"
	kotlinSourceDir  = "kotlin"
)

var kotlinExtensions = []string{".kt", ".kts"}

// KotlinExtension exposes source sets following the Kotlin Gradle plugin
// layout: one source set per src/<name>/kotlin directory, plus the sets the
// plugin always creates for its platform.
type KotlinExtension struct {
	fs       adapter.SourceFSAdapter
	dir      m.Path
	platform string
}

// NewKotlinExtension creates the extension for the given Kotlin plugin ID.
func NewKotlinExtension(fsys adapter.SourceFSAdapter, dir m.Path, platform string) *KotlinExtension {
	return &KotlinExtension{fs: fsys, dir: dir, platform: platform}
}

// Platform implements Extension.
func (k *KotlinExtension) Platform() string {
	return k.platform
}

// SourceSets implements Extension. Sets iterate in name order, as a Gradle
// named container does.
func (k *KotlinExtension) SourceSets() ([]SourceSet, error) {
	names := k.defaultNames()

	declared, err := k.declaredNames()
	if err != nil {
		return nil, err
	}

	for _, name := range declared {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	sets := make([]SourceSet, 0, len(names))
	for _, name := range names {
		root := k.dir.Join(kotlinSourceRoot, name, kotlinSourceDir)
		sets = append(sets, &sourceSet{
			name: name,
			dirs: []m.Path{root},
			resolve: func() ([]m.Path, error) {
				return collectFiles(k.fs, root, walkFilter{include: isKotlinSource})
			},
		})
	}

	return sets, nil
}

func (k *KotlinExtension) defaultNames() []string {
	if k.platform == project.KotlinMultiplatformPluginID {
		return []string{"commonMain", "commonTest"}
	}

	return []string{"main", "test"}
}

// declaredNames finds src/<name> directories that contain a kotlin root.
func (k *KotlinExtension) declaredNames() ([]string, error) {
	srcDir := k.dir.Join(kotlinSourceRoot)

	ok, err := isDir(k.fs, srcDir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", srcDir, err)
	}

	if !ok {
		return nil, nil
	}

	var names []string

	err = k.fs.Walk(srcDir, func(path m.Path, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == srcDir || !entry.IsDir() {
			return nil
		}

		hasKotlin, statErr := isDir(k.fs, path.Join(kotlinSourceDir))
		if statErr != nil {
			return statErr
		}

		if hasKotlin {
			names = append(names, filepath.Base(string(path)))
		}

		return adapter.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", srcDir, err)
	}

	return names, nil
}

func isKotlinSource(rel string, _ fs.DirEntry) bool {
	return slices.Contains(kotlinExtensions, filepath.Ext(rel))
}
