package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"unicode/utf8"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
)

// Build turns discovered groups into a report whose paths are relative to
// projectRoot and use forward slashes. Relative inputs are taken as relative
// to projectRoot; paths outside it keep their "../" segments. Group order is
// preserved and empty groups get empty, non-nil slices.
func Build(fsys adapter.SourceFSAdapter, groups []Group, projectRoot m.Path) (m.Report, error) {
	report := make(m.Report, 0, len(groups))

	for _, group := range groups {
		dirs, err := relativize(fsys, projectRoot, group.Directories)
		if err != nil {
			return nil, fmt.Errorf("source set %q directories: %w", group.Name, err)
		}

		files, err := relativize(fsys, projectRoot, group.Files)
		if err != nil {
			return nil, fmt.Errorf("source set %q files: %w", group.Name, err)
		}

		report = append(report, m.SourceSet{
			Name:        group.Name,
			Directories: dirs,
			Files:       files,
		})
	}

	return report, nil
}

func relativize(fsys adapter.SourceFSAdapter, root m.Path, paths []m.Path) ([]string, error) {
	out := make([]string, 0, len(paths))

	for _, p := range paths {
		target := p
		if !filepath.IsAbs(string(p)) {
			target = fsys.JoinPath(string(root), string(p))
		}

		rel, err := fsys.RelPath(root, target)
		if err != nil {
			return nil, fmt.Errorf("relative path of %s: %w", p, err)
		}

		slashed := filepath.ToSlash(string(rel))
		if !utf8.ValidString(slashed) {
			slog.Warn("path is not valid UTF-8, the report will carry U+FFFD in its place", "path", slashed)
		}

		out = append(out, slashed)
	}

	return out, nil
}
