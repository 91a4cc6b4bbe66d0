package lang

import (
	"path/filepath"

	m "srcmap.dev/pkg/srcmap/internal/model"
)

func toSlash(p m.Path) string {
	return filepath.ToSlash(string(p))
}

// resolveDir makes a configured directory absolute against the project dir.
func resolveDir(projectDir m.Path, dir string) m.Path {
	native := filepath.FromSlash(dir)
	if filepath.IsAbs(native) {
		return m.Path(filepath.Clean(native))
	}

	return projectDir.Join(native)
}
