package plugin

import (
	"context"

	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

type nopUI struct{}

func (nopUI) DisplayWritten(context.Context, m.Path, m.Report) {}
func (nopUI) DisplayWriteFailed(context.Context, m.Path, error) {}
func (nopUI) DisplaySkipped(context.Context, m.Path) {}
func (nopUI) DisplaySourceSets(context.Context, m.Report) error { return nil }
func (nopUI) DisplayTasks(context.Context, m.Path, []project.Task) error { return nil }
func (nopUI) DisplayVerification(context.Context, m.Verification) error { return nil }
