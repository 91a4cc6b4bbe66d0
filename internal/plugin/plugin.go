// Package plugin registers the sources-structure report task on projects
// whose build declares a supported language platform.
package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"srcmap.dev/pkg/srcmap/internal/domain"
	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/project"
)

// Task metadata.
const (
	TaskName        = "generateSourcesStructure"
	TaskGroup       = "reporting"
	TaskDescription = "Generates source structure as JSON."
)

// DefaultReportPath is the report location relative to the build directory.
var DefaultReportPath = filepath.Join("reports", "sources-structure.json")

// KnownPlatformIDs are the platform identifiers that activate the plugin.
var KnownPlatformIDs = []string{
	project.KotlinJVMPluginID,
	project.KotlinAndroidPluginID,
	project.KotlinMultiplatformPluginID,
	project.GoPluginID,
	project.ManifestPluginID,
}

// Options configures the registered task.
type Options struct {
	Workflow domain.Workflow
	// Output overrides the report location. Relative values resolve against
	// the project directory. Empty means <buildDir>/DefaultReportPath.
	Output m.Path
}

// ShouldActivate reports whether p declares any known platform identifier.
func ShouldActivate(p *project.Project) bool {
	return slices.ContainsFunc(p.PluginIDs(), func(id string) bool {
		return slices.Contains(KnownPlatformIDs, id)
	})
}

// ReportTarget returns the report path the task writes for p.
func ReportTarget(p *project.Project, output m.Path) m.Path {
	if output == "" {
		return p.BuildDir().Join(DefaultReportPath)
	}

	if filepath.IsAbs(string(output)) {
		return output
	}

	return p.Dir().Join(string(output))
}

// Apply registers the report task when the project activates the plugin. It
// reports whether the task was registered.
func Apply(p *project.Project, opts Options) (bool, error) {
	if !ShouldActivate(p) {
		slog.Debug("plugin not activated", "dir", p.Dir(), "plugins", p.PluginIDs())
		return false, nil
	}

	if opts.Workflow == nil {
		return false, fmt.Errorf("plugin: workflow is required")
	}

	target := ReportTarget(p, opts.Output)

	err := p.Tasks().Register(project.Task{
		Name:        TaskName,
		Group:       TaskGroup,
		Description: TaskDescription,
		Action: func(ctx context.Context) error {
			_, err := opts.Workflow.Generate(ctx, domain.GenerateArgs{Project: p, Target: target})
			return err
		},
	})
	if err != nil {
		return false, fmt.Errorf("register %s: %w", TaskName, err)
	}

	slog.Debug("plugin activated", "dir", p.Dir(), "task", TaskName, "target", target)

	return true, nil
}
