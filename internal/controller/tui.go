package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	m "srcmap.dev/pkg/srcmap/internal/model"
)

// pagerChrome is the number of lines used by the pager header and footer.
const pagerChrome = 4

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	setNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// TUI implements UI for interactive terminals. Source-set listings taller
// than the terminal open in a scrollable pager; everything else prints like
// SimpleUI.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd)}
}

// NewUI returns a TUI when useTTY is set and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(f.Fd())
}

// DisplaySourceSets renders every source set with its roots and files.
func (t *TUI) DisplaySourceSets(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := fmt.Sprintf("%d source set(s), %d file(s)", len(report), report.FileCount())
	content := renderSourceSets(report)

	output := t.cmd.OutOrStdout()

	height := 0
	if f, ok := output.(*os.File); ok {
		if _, h, err := term.GetSize(f.Fd()); err == nil {
			height = h
		}
	}

	if !needsPager(content, height) {
		t.printf("%s\n\n%s", titleStyle.Render(title), content)
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	program := tea.NewProgram(
		newPagerModel(title, content),
		tea.WithOutput(output),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}

	return nil
}

func needsPager(content string, height int) bool {
	if height <= 0 {
		return false
	}

	return strings.Count(content, "\n")+pagerChrome > height
}

func renderSourceSets(report m.Report) string {
	var b strings.Builder

	for _, set := range report {
		b.WriteString(setNameStyle.Render(set.Name))
		b.WriteString("\n")

		for _, dir := range set.Directories {
			fmt.Fprintf(&b, "  %s/\n", dir)
		}

		if len(set.Files) == 0 {
			fmt.Fprintf(&b, "    %s\n", mutedStyle.Render("(no files)"))
		}

		for _, file := range set.Files {
			fmt.Fprintf(&b, "    %s\n", file)
		}

		b.WriteString("\n")
	}

	return b.String()
}

// pagerModel is the Bubble Tea model for scrolling long listings.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-pagerChrome, 1)
		if !pm.ready {
			pm.viewport = viewport.New(msg.Width, height)
			pm.viewport.SetContent(pm.content)
			pm.ready = true

			return pm, nil
		}

		pm.viewport.Width = msg.Width
		pm.viewport.Height = height

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if !pm.ready {
		return "\n  Loading..."
	}

	header := titleStyle.Render(pm.title)
	footer := mutedStyle.Render(fmt.Sprintf(
		"%3.f%% | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit",
		pm.viewport.ScrollPercent()*100,
	))

	return fmt.Sprintf("%s\n\n%s\n\n%s", header, pm.viewport.View(), footer)
}
