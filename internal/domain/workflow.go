// Package domain implements source-set discovery and the report workflow.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"srcmap.dev/pkg/srcmap/internal/adapter"
	"srcmap.dev/pkg/srcmap/internal/controller"
	m "srcmap.dev/pkg/srcmap/internal/model"
)

// GenerateArgs contains the arguments for writing a report.
type GenerateArgs struct {
	Project DiscoveryContext
	// Target is the report file. Relative targets resolve against the
	// project directory.
	Target m.Path
}

// ListArgs contains the arguments for displaying source sets.
type ListArgs struct {
	Project DiscoveryContext
}

// VerifyArgs contains the arguments for checking a written report.
type VerifyArgs struct {
	Project DiscoveryContext
	Target  m.Path
}

// Workflow defines the report operations exposed to the CLI.
type Workflow interface {
	// Generate discovers, builds and writes the report. Write failures are
	// reported through the UI and yield StateWriteFailed with a nil error;
	// discovery and build errors are returned.
	Generate(ctx context.Context, args GenerateArgs) (State, error)
	// List displays the current source sets without writing anything.
	List(ctx context.Context, args ListArgs) error
	// Verify compares the report on disk with a freshly built one.
	Verify(ctx context.Context, args VerifyArgs) (m.Verification, error)
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
	}
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) (State, error) {
	state := StateNotStarted
	if err := ctx.Err(); err != nil {
		return state, err
	}

	target, err := w.resolveTarget(args.Project, args.Target)
	if err != nil {
		return state, err
	}

	state = w.transition(state, StateDiscovering, target)

	report, found, err := w.assemble(args.Project)
	if err != nil {
		return state, err
	}

	if !found {
		w.DisplaySkipped(ctx, args.Project.Dir())
		return w.transition(state, StateSkipped, target), nil
	}

	state = w.transition(state, StateBuilt, target)
	state = w.transition(state, StateWriting, target)

	if err := w.SaveReport(target, report); err != nil {
		slog.Error("failed to write sources structure", "target", target, "error", err)
		w.DisplayWriteFailed(ctx, target, err)

		return w.transition(state, StateWriteFailed, target), nil
	}

	w.DisplayWritten(ctx, target, report)

	return w.transition(state, StateWritten, target), nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	report, found, err := w.assemble(args.Project)
	if err != nil {
		return err
	}

	if !found {
		w.DisplaySkipped(ctx, args.Project.Dir())
		return nil
	}

	return w.DisplaySourceSets(ctx, report)
}

func (w *workflow) Verify(ctx context.Context, args VerifyArgs) (m.Verification, error) {
	target, err := w.resolveTarget(args.Project, args.Target)
	if err != nil {
		return m.Verification{}, err
	}

	result := m.Verification{Target: target}

	report, found, err := w.assemble(args.Project)
	if err != nil {
		return result, err
	}

	if !found {
		result.Skipped = true
		return result, w.DisplayVerification(ctx, result)
	}

	fresh, err := adapter.EncodeReport(report)
	if err != nil {
		return result, err
	}

	onDisk, err := w.ReadFile(target)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("read %s: %w", target, err)
		}

		result.Missing = true

		return result, w.DisplayVerification(ctx, result)
	}

	if string(onDisk) != string(fresh) {
		diff, diffErr := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(onDisk)),
			B:        difflib.SplitLines(string(fresh)),
			FromFile: string(target),
			ToFile:   "current",
			Context:  3,
		})
		if diffErr != nil {
			return result, fmt.Errorf("diff %s: %w", target, diffErr)
		}

		result.Stale = true
		result.Diff = diff
	}

	return result, w.DisplayVerification(ctx, result)
}

// assemble runs discovery and builds the in-memory report. found is false
// when the project has no language extension.
func (w *workflow) assemble(project DiscoveryContext) (m.Report, bool, error) {
	groups, err := Discover(project)
	if err != nil {
		return nil, false, fmt.Errorf("discover source sets: %w", err)
	}

	discovered, ok := groups.Get()
	if !ok {
		return nil, false, nil
	}

	report, err := Build(w.SourceFSAdapter, discovered, project.Dir())
	if err != nil {
		return nil, false, fmt.Errorf("build report: %w", err)
	}

	return report, true, nil
}

func (w *workflow) resolveTarget(project DiscoveryContext, target m.Path) (m.Path, error) {
	if target == "" {
		return "", errors.New("report target path is empty")
	}

	if !filepath.IsAbs(string(target)) {
		target = w.JoinPath(string(project.Dir()), string(target))
	}

	return w.AbsPath(target)
}

func (w *workflow) transition(from, to State, target m.Path) State {
	slog.Debug("generation state", "from", from, "to", to, "target", target)
	return to
}
