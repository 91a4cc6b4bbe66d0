package domain

import (
	"fmt"
	"log/slog"

	"srcmap.dev/pkg/srcmap/internal/lang"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// Group is the raw source-set data read from a language extension, before
// paths are made relative to the project.
type Group struct {
	Name        string
	Directories []m.Path
	Files       []m.Path
}

// DiscoveryContext is the project view discovery needs.
type DiscoveryContext interface {
	Dir() m.Path
	Extensions() *project.ExtensionContainer
}

// Discover reads the source sets of the project's language extension. It
// returns None when no extension is registered; that is not an error.
// Groups keep the extension's order and are neither filtered nor deduplicated.
func Discover(ctx DiscoveryContext) (m.Optional[[]Group], error) {
	ext, ok := project.FindByType[lang.Extension](ctx.Extensions()).Get()
	if !ok {
		slog.Debug("no language extension registered", "dir", ctx.Dir())
		return m.None[[]Group](), nil
	}

	sets, err := ext.SourceSets()
	if err != nil {
		return m.None[[]Group](), fmt.Errorf("list %s source sets: %w", ext.Platform(), err)
	}

	groups := make([]Group, 0, len(sets))

	for _, set := range sets {
		files, err := set.Files()
		if err != nil {
			return m.None[[]Group](), fmt.Errorf("resolve files of source set %q: %w", set.Name(), err)
		}

		groups = append(groups, Group{
			Name:        set.Name(),
			Directories: set.SrcDirs(),
			Files:       files,
		})
	}

	slog.Debug("source sets discovered", "dir", ctx.Dir(), "platform", ext.Platform(), "count", len(groups))

	return m.Some(groups), nil
}
