package lang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

func TestApply(t *testing.T) {
	fsys := adapter.NewLocalSourceFSAdapter()

	tests := []struct {
		name      string
		pluginIDs []string
		wantNames []string
		wantFirst string
	}{
		{
			name:      "no plugins registers nothing",
			pluginIDs: nil,
			wantNames: []string{},
		},
		{
			name:      "kotlin jvm",
			pluginIDs: []string{project.KotlinJVMPluginID},
			wantNames: []string{KotlinExtensionName},
			wantFirst: project.KotlinJVMPluginID,
		},
		{
			name:      "first kotlin plugin wins",
			pluginIDs: []string{project.KotlinMultiplatformPluginID, project.KotlinJVMPluginID},
			wantNames: []string{KotlinExtensionName},
			wantFirst: project.KotlinMultiplatformPluginID,
		},
		{
			name:      "manifest takes priority",
			pluginIDs: []string{project.GoPluginID, project.KotlinJVMPluginID, project.ManifestPluginID},
			wantNames: []string{ManifestExtensionName, KotlinExtensionName, GoExtensionName},
			wantFirst: project.ManifestPluginID,
		},
		{
			name:      "go only",
			pluginIDs: []string{project.GoPluginID},
			wantNames: []string{GoExtensionName},
			wantFirst: project.GoPluginID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project.New(m.Path(t.TempDir()), tt.pluginIDs...)

			require.NoError(t, Apply(p, fsys))
			assert.Equal(t, tt.wantNames, p.Extensions().Names())

			ext, ok := project.FindByType[Extension](p.Extensions()).Get()
			if tt.wantFirst == "" {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.wantFirst, ext.Platform())
		})
	}
}

func TestCollectFiles_MissingRoot(t *testing.T) {
	files, err := collectFiles(adapter.NewLocalSourceFSAdapter(), m.Path(filepath.Join(t.TempDir(), "missing")), walkFilter{})
	require.NoError(t, err)
	assert.Empty(t, files)
}

// snapshot resolves every source set into plain relative strings.
type snapshot struct {
	Name  string
	Dirs  []string
	Files []string
}

func resolveAll(t *testing.T, root string, ext Extension) []snapshot {
	t.Helper()

	sets, err := ext.SourceSets()
	require.NoError(t, err)

	out := make([]snapshot, 0, len(sets))
	for _, set := range sets {
		files, err := set.Files()
		require.NoError(t, err)

		out = append(out, snapshot{
			Name:  set.Name(),
			Dirs:  relAll(t, root, set.SrcDirs()),
			Files: relAll(t, root, files),
		})
	}

	return out
}

func relAll(t *testing.T, root string, paths []m.Path) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, string(p))
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}

	return out
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755))
}
