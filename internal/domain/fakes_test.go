package domain

import (
	"context"

	"srcmap.dev/pkg/srcmap/internal/lang"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

type fakeSourceSet struct {
	name  string
	dirs  []m.Path
	files []m.Path
	err   error
}

func (f *fakeSourceSet) Name() string             { return f.name }
func (f *fakeSourceSet) SrcDirs() []m.Path        { return f.dirs }
func (f *fakeSourceSet) Files() ([]m.Path, error) { return f.files, f.err }

type fakeExtension struct {
	sets []lang.SourceSet
	err  error
}

func (f *fakeExtension) Platform() string                      { return "fake" }
func (f *fakeExtension) SourceSets() ([]lang.SourceSet, error) { return f.sets, f.err }

func projectWith(dir m.Path, ext lang.Extension) *project.Project {
	p := project.New(dir)
	if ext != nil {
		_ = p.Extensions().Add("fake", ext)
	}

	return p
}

// recordingUI captures UI calls for assertions.
type recordingUI struct {
	written      []m.Path
	writeFailed  []error
	skipped      []m.Path
	listed       []m.Report
	tasks        [][]project.Task
	verification []m.Verification
}

func (r *recordingUI) DisplayWritten(_ context.Context, target m.Path, _ m.Report) {
	r.written = append(r.written, target)
}

func (r *recordingUI) DisplayWriteFailed(_ context.Context, _ m.Path, err error) {
	r.writeFailed = append(r.writeFailed, err)
}

func (r *recordingUI) DisplaySkipped(_ context.Context, dir m.Path) {
	r.skipped = append(r.skipped, dir)
}

func (r *recordingUI) DisplaySourceSets(_ context.Context, report m.Report) error {
	r.listed = append(r.listed, report)
	return nil
}

func (r *recordingUI) DisplayTasks(_ context.Context, _ m.Path, tasks []project.Task) error {
	r.tasks = append(r.tasks, tasks)
	return nil
}

func (r *recordingUI) DisplayVerification(_ context.Context, result m.Verification) error {
	r.verification = append(r.verification, result)
	return nil
}
