package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "srcmap.dev/pkg/srcmap/internal/model"
)

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	_, isTUI := NewUI(cmd, true).(*TUI)
	assert.True(t, isTUI)

	_, isSimple := NewUI(cmd, false).(*SimpleUI)
	assert.True(t, isSimple)
}

func TestIsTTY_Nil(t *testing.T) {
	assert.False(t, IsTTY(nil))
}

func TestTUI_DisplaySourceSets_PrintsWhenNotATerminal(t *testing.T) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	report := m.Report{
		{Name: "main", Directories: []string{"src/main/kotlin"}, Files: []string{"src/main/kotlin/A.kt"}},
		{Name: "test", Directories: []string{"src/test/kotlin"}, Files: []string{}},
	}

	require.NoError(t, NewTUI(cmd).DisplaySourceSets(context.Background(), report))

	output := out.String()
	assert.Contains(t, output, "2 source set(s), 1 file(s)")
	assert.Contains(t, output, "src/main/kotlin/\n")
	assert.Contains(t, output, "    src/main/kotlin/A.kt\n")
	assert.Contains(t, output, "(no files)")
	assert.Less(t, strings.Index(output, "main"), strings.Index(output, "test"))
}

func TestTUI_DisplaySourceSets_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTUI(&cobra.Command{}).DisplaySourceSets(ctx, m.Report{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNeedsPager(t *testing.T) {
	content := strings.Repeat("line\n", 20)

	tests := []struct {
		name   string
		height int
		want   bool
	}{
		{"unknown height", 0, false},
		{"fits", 40, false},
		{"too tall", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsPager(content, tt.height))
		})
	}
}

func TestPagerModel(t *testing.T) {
	content := strings.Repeat("src/main/kotlin/File.kt\n", 50)
	model := newPagerModel("1 source set(s), 50 file(s)", content)

	assert.Nil(t, model.Init())
	assert.Contains(t, model.View(), "Loading")

	updated, cmd := model.Update(tea.WindowSizeMsg{Width: 80, Height: 14})
	assert.Nil(t, cmd)

	pm, ok := updated.(pagerModel)
	require.True(t, ok)
	assert.True(t, pm.ready)
	assert.Equal(t, 10, pm.viewport.Height)

	view := pm.View()
	assert.Contains(t, view, "1 source set(s), 50 file(s)")
	assert.Contains(t, view, "src/main/kotlin/File.kt")
	assert.Contains(t, view, "q: quit")
	assert.True(t, pm.viewport.AtTop())

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	pm = updated.(pagerModel)
	assert.True(t, pm.viewport.AtBottom())

	updated, _ = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	pm = updated.(pagerModel)
	assert.True(t, pm.viewport.AtTop())

	updated, _ = pm.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	pm = updated.(pagerModel)
	assert.Equal(t, 26, pm.viewport.Height)
	assert.Equal(t, 100, pm.viewport.Width)

	_, cmd = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
