package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	m "srcmap.dev/pkg/srcmap/internal/model"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
		wantLen int
	}{
		{name: "empty document", doc: "", wantLen: 0},
		{name: "empty list", doc: "sourceSets: []\n", wantLen: 0},
		{
			name:    "two entries",
			doc:     "sourceSets:\n  - name: main\n    srcDirs: [src]\n  - name: test\n",
			wantLen: 2,
		},
		{name: "missing name", doc: "sourceSets:\n  - srcDirs: [src]\n", wantErr: "name is required"},
		{name: "duplicate name", doc: "sourceSets:\n  - name: a\n  - name: a\n", wantErr: "declared twice"},
		{name: "bad include", doc: "sourceSets:\n  - name: a\n    include: ['[']\n", wantErr: "invalid include pattern"},
		{name: "bad exclude", doc: "sourceSets:\n  - name: a\n    exclude: ['{a']\n", wantErr: "invalid exclude pattern"},
		{name: "unknown field", doc: "sourceSets:\n  - name: a\n    roots: [src]\n", wantErr: "decode manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest([]byte(tt.doc))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.SourceSets, tt.wantLen)
		})
	}
}

func TestManifestExtension_SourceSets(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sourcesets.yaml", `sourceSets:
  - name: main
    srcDirs: [app/src, shared]
    include: ["**/*.kt"]
    exclude: ["generated/**"]
  - name: scripts
    srcDirs: [scripts]
  - name: empty
`)
	writeFile(t, root, "app/src/Main.kt", "fun main() {}\n")
	writeFile(t, root, "app/src/generated/Gen.kt", "class Gen\n")
	writeFile(t, root, "app/src/notes.txt", "notes\n")
	writeFile(t, root, "shared/util/Util.kt", "object Util\n")
	writeFile(t, root, "scripts/deploy.sh", "#!/bin/sh\n")

	ext := NewManifestExtension(adapter.NewLocalSourceFSAdapter(), m.Path(root))
	got := resolveAll(t, root, ext)

	assert.Equal(t, []snapshot{
		{Name: "main", Dirs: []string{"app/src", "shared"}, Files: []string{"app/src/Main.kt", "shared/util/Util.kt"}},
		{Name: "scripts", Dirs: []string{"scripts"}, Files: []string{"scripts/deploy.sh"}},
		{Name: "empty", Dirs: []string{}, Files: []string{}},
	}, got)
}

func TestManifestExtension_MissingOrInvalid(t *testing.T) {
	fsys := adapter.NewLocalSourceFSAdapter()

	t.Run("missing manifest", func(t *testing.T) {
		_, err := NewManifestExtension(fsys, m.Path(t.TempDir())).SourceSets()
		require.Error(t, err)
	})

	t.Run("invalid manifest", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "sourcesets.yaml", "sourceSets:\n  - name: ''\n")

		_, err := NewManifestExtension(fsys, m.Path(root)).SourceSets()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, matchesAny(nil, "a/b.kt", true))
	assert.False(t, matchesAny(nil, "a/b.kt", false))
	assert.True(t, matchesAny([]string{"**/*.kt"}, "a/b.kt", false))
	assert.True(t, matchesAny([]string{"*.kt"}, "b.kt", false))
	assert.False(t, matchesAny([]string{"*.kt"}, "a/b.kt", false))
}
