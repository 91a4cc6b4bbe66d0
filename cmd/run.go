package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	m "srcmap.dev/pkg/srcmap/internal/model"
	"srcmap.dev/pkg/srcmap/internal/plugin"
	"srcmap.dev/pkg/srcmap/internal/project"
)

var runParallelFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [task]",
		Short: "Run a project task",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := plugin.TaskName
			if len(args) == 1 {
				task = args[0]
			}

			return runTask(cmd.Context(), parseProjectDirs(projectDirsFlag), task, currentProjectConfig(), viper.GetInt(runParallelConfigKey))
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of projects processed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
}

// runTask runs task in every project directory. Projects are independent:
// a failure in one does not stop the others.
func runTask(ctx context.Context, dirs []m.Path, task string, cfg projectConfig, parallel int) error {
	var (
		errs   []error
		errsMu sync.Mutex
	)

	var group errgroup.Group
	if parallel > 0 {
		group.SetLimit(parallel)
	}

	for _, dir := range dirs {
		currentDir := dir

		group.Go(func() error {
			err := forProject(currentDir, cfg, func(p *project.Project) error {
				return p.Tasks().Run(ctx, task)
			})
			if err != nil {
				errsMu.Lock()

				errs = append(errs, err)

				errsMu.Unlock()
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	return errors.Join(errs...)
}

// forProject loads dir and calls fn with the configured project.
func forProject(dir m.Path, cfg projectConfig, fn func(p *project.Project) error) error {
	p, err := loadProject(dir, cfg)
	if err != nil {
		return err
	}

	if err := fn(p); err != nil {
		return fmt.Errorf("%s: %w", p.Dir(), err)
	}

	return nil
}
