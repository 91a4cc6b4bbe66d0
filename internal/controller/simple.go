package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// SimpleUI implements UI using the cobra command's output streams. It is
// safe for concurrent use; every message reaches the stream in one write.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayWritten prints the completion message with the absolute target path.
func (s *SimpleUI) DisplayWritten(ctx context.Context, target m.Path, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n%s\n",
		successStyle.Render(fmt.Sprintf("Sources structure written to %s", target)),
		mutedStyle.Render(fmt.Sprintf("%d source set(s), %d file(s)", len(report), report.FileCount())),
	)
}

// DisplayWriteFailed prints the write error to stderr.
func (s *SimpleUI) DisplayWriteFailed(ctx context.Context, target m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.errorf("%s\n", errorStyle.Render(fmt.Sprintf("failed to write sources structure to %s: %v", target, err)))
}

// DisplaySkipped notes that a project exposes no source sets.
func (s *SimpleUI) DisplaySkipped(ctx context.Context, projectDir m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", mutedStyle.Render(fmt.Sprintf("No language extension configured for %s, nothing to do", projectDir)))
}

// DisplaySourceSets renders one table row per source set.
func (s *SimpleUI) DisplaySourceSets(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Source Set", "Directories", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, set := range report {
		dirs := "-"
		if len(set.Directories) > 0 {
			dirs = strings.Join(set.Directories, "\n")
		}

		table.Append([]string{set.Name, dirs, fmt.Sprintf("%d", len(set.Files))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Sets %d", len(report)),
		"",
		fmt.Sprintf("%d", report.FileCount()),
	})

	table.Render()

	s.printf("\n%s", buf.String())

	return nil
}

// DisplayTasks lists the registered tasks of a project.
func (s *SimpleUI) DisplayTasks(ctx context.Context, projectDir m.Path, tasks []project.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(tasks) == 0 {
		s.printf("No tasks registered for %s\n", projectDir)
		return nil
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Task", "Group", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, task := range tasks {
		table.Append([]string{task.Name, task.Group, task.Description})
	}

	table.Render()

	s.printf("%s", buf.String())

	return nil
}

// DisplayVerification prints whether the report on disk is current, with a
// diff when it is not.
func (s *SimpleUI) DisplayVerification(ctx context.Context, result m.Verification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	case result.Skipped:
		s.printf("%s\n", mutedStyle.Render("No language extension configured, nothing to verify"))
	case result.Missing:
		s.printf("%s\n", errorStyle.Render(fmt.Sprintf("Sources structure missing: %s", result.Target)))
	case result.Stale:
		s.printf("%s\n%s", errorStyle.Render(fmt.Sprintf("Sources structure is stale: %s", result.Target)), result.Diff)
	default:
		s.printf("%s\n", successStyle.Render(fmt.Sprintf("Sources structure is up to date: %s", result.Target)))
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.write(s.cmd.OutOrStdout(), fmt.Sprintf(format, args...))
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	s.write(s.cmd.ErrOrStderr(), fmt.Sprintf(format, args...))
}

// write emits msg with a single Write call. Stdout and stderr share the lock
// since they are often the same terminal.
func (s *SimpleUI) write(w io.Writer, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = io.WriteString(w, msg)
}
