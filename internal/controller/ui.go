// Package controller renders srcmap results for the user.
package controller

import (
	"context"

	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// UI is the diagnostic channel of srcmap. Implementations decide how
// results reach the user.
type UI interface {
	// DisplayWritten reports a successfully written report.
	DisplayWritten(ctx context.Context, target m.Path, report m.Report)
	// DisplayWriteFailed reports a report that could not be written.
	DisplayWriteFailed(ctx context.Context, target m.Path, err error)
	// DisplaySkipped reports a project without a language extension.
	DisplaySkipped(ctx context.Context, projectDir m.Path)
	// DisplaySourceSets prints the source sets of a report.
	DisplaySourceSets(ctx context.Context, report m.Report) error
	// DisplayTasks prints the tasks registered on a project.
	DisplayTasks(ctx context.Context, projectDir m.Path, tasks []project.Task) error
	// DisplayVerification prints the outcome of a staleness check.
	DisplayVerification(ctx context.Context, result m.Verification) error
}
